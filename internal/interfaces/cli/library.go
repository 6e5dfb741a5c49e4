package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	ctypes "github.com/turtacn/stilbar/pkg/types/compound"
)

// compoundList renders a page of compounds.
type compoundList struct {
	Compounds []ctypes.CompoundDTO `json:"compounds"`
	Total     int64                `json:"total"`
}

func (l compoundList) TableHeaders() []string {
	return []string{"HASH", "SEQ", "NAME", "CODE"}
}

func (l compoundList) TableRows() [][]string {
	rows := make([][]string, 0, len(l.Compounds))
	for _, c := range l.Compounds {
		rows = append(rows, []string{c.Hash, strconv.Itoa(c.Seq), c.Name, c.Code})
	}
	return rows
}

func (l compoundList) String() string {
	var sb strings.Builder
	for _, c := range l.Compounds {
		fmt.Fprintf(&sb, "%s  %3d  %s\n", c.Hash, c.Seq, c.Name)
	}
	fmt.Fprintf(&sb, "%d of %d compounds", len(l.Compounds), l.Total)
	return sb.String()
}

// NewLibraryCmd creates the library command group.
func NewLibraryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "library",
		Aliases: []string{"lib"},
		Short:   "Compound library operations",
	}
	cmd.AddCommand(
		newLibraryListCmd(),
		newLibraryGetCmd(),
		newLibraryAddCmd(),
		newLibraryDeleteCmd(),
		newLibraryStatsCmd(),
		newLibraryAnalyzeCmd(),
		newLibraryImportCmd(),
		newLibraryExportCmd(),
	)
	return cmd
}

func newLibraryListCmd() *cobra.Command {
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List library compounds",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			result, err := cliCtx.Client.Library().List(cmd.Context(), page, pageSize)
			if err != nil {
				return err
			}
			return PrintResult(cmd, compoundList{
				Compounds: result.Compounds,
				Total:     result.Pagination.Total,
			})
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "compounds per page")
	return cmd
}

func newLibraryGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get HASH",
		Short: "Show one compound by hash ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			dto, err := cliCtx.Client.Library().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if strings.EqualFold(cliCtx.OutputFormat, "json") {
				return PrintResult(cmd, dto)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "hash:   %s\nseq:    %d\nname:   %s\ncode:   %s\nsmiles: %s\n",
				dto.Hash, dto.Seq, dto.Name, dto.Code, dto.SMILES)
			return nil
		},
	}
}

func newLibraryAddCmd() *cobra.Command {
	var code string

	cmd := &cobra.Command{
		Use:     "add NAME SMILES",
		Short:   "Add a compound to the library",
		Args:    cobra.ExactArgs(2),
		Example: `  stilbar library add "Quadrangularin A" "OC1=..." --code "T=37.48=T"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			dto, err := cliCtx.Client.Library().Create(cmd.Context(), args[0], code, args[1])
			if err != nil {
				return err
			}
			if strings.EqualFold(cliCtx.OutputFormat, "json") {
				return PrintResult(cmd, dto)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", dto.Name, dto.Hash)
			return nil
		},
	}
	cmd.Flags().StringVar(&code, "code", "", "StilBAR code (optional)")
	return cmd
}

func newLibraryDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete HASH [HASH...]",
		Short: "Delete compounds by hash ID",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			result, err := cliCtx.Client.Library().Delete(cmd.Context(), args)
			if err != nil {
				return err
			}
			if strings.EqualFold(cliCtx.OutputFormat, "json") {
				return PrintResult(cmd, result)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d, missing %d\n",
				len(result.Deleted), len(result.Missing))
			for _, h := range result.Missing {
				fmt.Fprintf(cmd.OutOrStdout(), "  not found: %s\n", h)
			}
			return nil
		},
	}
}

func newLibraryStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show library composition counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			stats, err := cliCtx.Client.Library().Stats(cmd.Context())
			if err != nil {
				return err
			}
			if strings.EqualFold(cliCtx.OutputFormat, "json") {
				return PrintResult(cmd, stats)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "total:        %d\nwith code:    %d\nwithout code: %d\n",
				stats.Total, stats.WithCode, stats.WithoutCode)
			return nil
		},
	}
}

func newLibraryAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze HASH",
		Short: "Estimate physicochemical properties for a compound",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			analysis, err := cliCtx.Client.Library().Analyze(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if strings.EqualFold(cliCtx.OutputFormat, "json") {
				return PrintResult(cmd, analysis)
			}
			p := analysis.Properties
			fmt.Fprintf(cmd.OutOrStdout(),
				"formula:  %s\nweight:   %.1f\nlogP:     %.2f\nTPSA:     %.1f\nHBD/HBA:  %d/%d\n",
				p.Formula, p.Weight, p.LogP, p.TPSA, p.HBondDonors, p.HBondAcceptors)
			if analysis.Lipinski.Passed {
				fmt.Fprintln(cmd.OutOrStdout(), "lipinski: pass")
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "lipinski: %d violation(s)\n", analysis.Lipinski.Violations)
				for _, rule := range analysis.Lipinski.Rules {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", rule)
				}
			}
			return nil
		},
	}
}

func newLibraryImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import compounds from a library CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read CSV file: %w", err)
			}
			result, err := cliCtx.Client.Library().Import(cmd.Context(), data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d, skipped %d\n",
				result.Imported, result.Skipped)
			return nil
		},
	}
}

func newLibraryExportCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the full library as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			data, err := cliCtx.Client.Library().Export(cmd.Context())
			if err != nil {
				return err
			}
			if outPath == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return fmt.Errorf("write CSV file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "O", "", "write CSV to this file instead of stdout")
	return cmd
}
