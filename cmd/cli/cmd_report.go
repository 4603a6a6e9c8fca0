package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"gosupply/internal/report"
)

func newReportCmd(rt *runtime) *cobra.Command {
	var format, title, outPath string

	cmd := &cobra.Command{
		Use:   "report FILE",
		Short: "Render saved recommendation records as markdown or HTML",
		Long: `Render a JSON file holding one recommendation record or an array of them.
Use "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to read records: %w", err)
			}

			records, err := report.DecodeRecords(data)
			if err != nil {
				return err
			}
			out, _, err := report.NewRenderer(title).Render(format, records)
			if err != nil {
				return err
			}
			if outPath != "" {
				return os.WriteFile(outPath, out, 0o644)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", report.FormatMarkdown, "Output format: markdown or html")
	cmd.Flags().StringVar(&title, "title", "", "Report title")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to this file instead of stdout")
	return cmd
}
