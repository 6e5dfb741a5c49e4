package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	ctypes "github.com/turtacn/stilbar/pkg/types/compound"
)

// batchOutput renders a synchronous batch result.
type batchOutput struct {
	*ctypes.BatchResult
}

func (o batchOutput) TableHeaders() []string {
	return []string{"CODE", "STATUS", "METHOD", "SMILES", "ERROR"}
}

func (o batchOutput) TableRows() [][]string {
	rows := make([][]string, 0, len(o.Items))
	for _, item := range o.Items {
		rows = append(rows, []string{
			item.Code,
			string(item.Status),
			item.Method.String(),
			item.SMILES,
			item.Error,
		})
	}
	return rows
}

func (o batchOutput) String() string {
	var sb strings.Builder
	for _, item := range o.Items {
		if item.Status == ctypes.BatchItemSuccess {
			fmt.Fprintf(&sb, "%s\t%s\n", item.Code, item.SMILES)
		} else {
			fmt.Fprintf(&sb, "%s\tFAILED: %s\n", item.Code, item.Error)
		}
	}
	fmt.Fprintf(&sb, "%d/%d converted (%.0f%%)",
		o.Summary.Succeeded, o.Summary.Total, o.Summary.SuccessRate*100)
	return sb.String()
}

// NewBatchCmd creates the batch command group.
func NewBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Batch conversion operations",
	}
	cmd.AddCommand(
		newBatchConvertCmd(),
		newBatchSubmitCmd(),
		newBatchStatusCmd(),
	)
	return cmd
}

// readCodes collects codes from args plus an optional file ("-" for stdin).
func readCodes(cmd *cobra.Command, args []string, file string) ([]string, error) {
	codes := append([]string{}, args...)
	if file == "" {
		return codes, nil
	}

	var scanner *bufio.Scanner
	if file == "-" {
		scanner = bufio.NewScanner(cmd.InOrStdin())
	} else {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("open code file: %w", err)
		}
		defer f.Close()
		scanner = bufio.NewScanner(f)
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		codes = append(codes, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read code file: %w", err)
	}
	return codes, nil
}

func newBatchConvertCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "convert [CODE...]",
		Short: "Convert a list of codes synchronously",
		Example: `  stilbar batch convert "T=37.48=T" 12 H
  stilbar batch convert -f codes.txt
  cat codes.txt | stilbar batch convert -f -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			codes, err := readCodes(cmd, args, file)
			if err != nil {
				return err
			}
			if len(codes) == 0 {
				return fmt.Errorf("no codes given; pass codes as arguments or via --file")
			}

			result, err := cliCtx.Client.Convert().ConvertBatch(cmd.Context(), codes)
			if err != nil {
				return err
			}
			return PrintResult(cmd, batchOutput{result})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "file with one code per line (\"-\" for stdin)")
	return cmd
}

func newBatchSubmitCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "submit [CODE...]",
		Short: "Submit an asynchronous batch conversion job",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			codes, err := readCodes(cmd, args, file)
			if err != nil {
				return err
			}
			if len(codes) == 0 {
				return fmt.Errorf("no codes given; pass codes as arguments or via --file")
			}

			job, err := cliCtx.Client.Convert().SubmitBatchJob(cmd.Context(), codes)
			if err != nil {
				return err
			}
			if strings.EqualFold(cliCtx.OutputFormat, "json") {
				return PrintResult(cmd, job)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "job %s submitted (%d codes)\n", job.ID, len(codes))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "file with one code per line (\"-\" for stdin)")
	return cmd
}

func newBatchStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status JOB_ID",
		Short: "Show the state of a batch job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			job, err := cliCtx.Client.Convert().GetBatchJob(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if strings.EqualFold(cliCtx.OutputFormat, "json") {
				return PrintResult(cmd, job)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "job %s: %s\n", job.ID, job.State)
			if job.Result != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%d/%d converted\n",
					job.Result.Summary.Succeeded, job.Result.Summary.Total)
				if job.Result.ExportURL != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "export: %s\n", job.Result.ExportURL)
				}
			}
			if job.Error != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "error: %s\n", job.Error)
			}
			return nil
		},
	}
}
