package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gosupply/domain/intent"
	"gosupply/domain/planning"
	"gosupply/internal/report"
)

func newRecommendCmd(rt *runtime) *cobra.Command {
	var rawArgs, format string

	cmd := &cobra.Command{
		Use:   "recommend TASK",
		Short: "Run a scenario pipeline on structured arguments",
		Long: `Run the scenario pipeline of a task (t1..t7) on JSON arguments.

` + taskHelp(),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := intent.ParseTaskKind(args[0])
			if err != nil {
				return err
			}
			parsed, err := intent.Decode(task, []byte(rawArgs))
			if err != nil {
				return err
			}
			c, err := rt.container(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Shutdown(cmd.Context())

			rec, err := c.Services.Recommend(cmd.Context(), parsed)
			if err != nil {
				return err
			}
			return writeRecord(cmd, rec, format)
		},
	}
	cmd.Flags().StringVar(&rawArgs, "args", "{}", "Task arguments as a JSON object")
	cmd.Flags().StringVar(&format, "format", "json", "Output format: json, markdown or html")
	return cmd
}

func newIntentCmd(rt *runtime) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "intent TASK QUERY...",
		Short: "Parse a free-text request with the intent model and run it",
		Long: `Parse a free-text request into the arguments of a task and run its
scenario pipeline. Requires an intent provider (OPENAI_API_KEY or GEMINI_API_KEY).

Example: gosupply intent t3 "forecast SEDAN-LUX demand for 2025-03 with the spring launch"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := intent.ParseTaskKind(args[0])
			if err != nil {
				return err
			}
			c, err := rt.container(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Shutdown(cmd.Context())
			if c.Intent == nil {
				return fmt.Errorf("no intent provider configured")
			}

			parsed, err := c.Intent.Parse(cmd.Context(), task, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			rec, err := c.Services.Recommend(cmd.Context(), parsed)
			if err != nil {
				return err
			}
			return writeRecord(cmd, rec, format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "Output format: json, markdown or html")
	return cmd
}

func writeRecord(cmd *cobra.Command, rec planning.RecommendationRecord, format string) error {
	if format == "" || format == "json" {
		return printJSON(cmd.OutOrStdout(), rec)
	}
	out, _, err := report.NewRenderer("").Render(format, []planning.RecommendationRecord{rec})
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func taskHelp() string {
	var b strings.Builder
	b.WriteString("Tasks:\n")
	for _, k := range intent.AllTasks {
		fmt.Fprintf(&b, "  %s  %s\n", k, k.Describe())
	}
	return b.String()
}
