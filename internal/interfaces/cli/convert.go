package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	ctypes "github.com/turtacn/stilbar/pkg/types/compound"
)

// convertOutput is the text/table rendering of a single conversion.
type convertOutput struct {
	Results []ctypes.ConversionResult `json:"results"`
}

func (o convertOutput) TableHeaders() []string {
	return []string{"CODE", "METHOD", "CONFIDENCE", "SMILES"}
}

func (o convertOutput) TableRows() [][]string {
	rows := make([][]string, 0, len(o.Results))
	for _, r := range o.Results {
		rows = append(rows, []string{
			r.Normalized,
			r.Method.String(),
			fmt.Sprintf("%.2f", r.Confidence),
			r.SMILES,
		})
	}
	return rows
}

func (o convertOutput) String() string {
	var sb strings.Builder
	for _, r := range o.Results {
		sb.WriteString(r.SMILES)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// NewConvertCmd creates the convert command.
func NewConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert CODE [CODE...]",
		Short: "Convert StilBAR codes to SMILES",
		Long:  "Convert one or more StilBAR codes to SMILES strings.\nCodes may be full barcode notation, raw dash variants, or library\nsequence numbers.",
		Example: `  stilbar convert "T=37.48=T"
  stilbar convert 12
  stilbar convert -o json "H|–4R0.5R1–|T" "P≡4r7.5r5r.74r≡P"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			out := convertOutput{Results: make([]ctypes.ConversionResult, 0, len(args))}
			for _, code := range args {
				result, err := cliCtx.Client.Convert().Convert(cmd.Context(), code)
				if err != nil {
					return fmt.Errorf("convert %q: %w", code, err)
				}
				out.Results = append(out.Results, *result)
			}
			return PrintResult(cmd, out)
		},
	}
}
