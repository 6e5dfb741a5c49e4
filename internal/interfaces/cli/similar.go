package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	ctypes "github.com/turtacn/stilbar/pkg/types/compound"
)

// similarOutput renders a similarity search result.
type similarOutput struct {
	Matches []ctypes.SimilarityMatch `json:"matches"`
}

func (o similarOutput) TableHeaders() []string {
	return []string{"SIMILARITY", "SEQ", "NAME", "CODE"}
}

func (o similarOutput) TableRows() [][]string {
	rows := make([][]string, 0, len(o.Matches))
	for _, m := range o.Matches {
		rows = append(rows, []string{
			fmt.Sprintf("%.3f", m.Similarity),
			strconv.Itoa(m.Compound.Seq),
			m.Compound.Name,
			m.Compound.Code,
		})
	}
	return rows
}

func (o similarOutput) String() string {
	var sb strings.Builder
	for _, m := range o.Matches {
		fmt.Fprintf(&sb, "%.3f  %s\n", m.Similarity, m.Compound.Name)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// NewSimilarCmd creates the similar command.
func NewSimilarCmd() *cobra.Command {
	var threshold float64
	var limit int

	cmd := &cobra.Command{
		Use:     "similar SMILES",
		Short:   "Search the library for structurally similar compounds",
		Args:    cobra.ExactArgs(1),
		Example: `  stilbar similar "OC1=CC(O)=CC(CCC2=CC=C(O)C=C2)=C1" --threshold 0.7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			matches, err := cliCtx.Client.Library().FindSimilar(cmd.Context(), args[0], threshold, limit)
			if err != nil {
				return err
			}
			if len(matches) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no matches")
				return nil
			}
			return PrintResult(cmd, similarOutput{Matches: matches})
		},
	}
	cmd.Flags().Float64Var(&threshold, "threshold", 0.5, "minimum similarity score (0-1)")
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of matches")
	return cmd
}
