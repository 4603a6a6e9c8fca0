package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newToolsCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List and call planning tools",
	}
	cmd.AddCommand(newToolsListCmd(rt), newToolsCallCmd(rt))
	return cmd
}

func newToolsListCmd(rt *runtime) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := rt.container(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Shutdown(cmd.Context())

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCATEGORY\tDESCRIPTION")
			for _, spec := range c.Tools.List() {
				if category != "" && string(spec.Category) != category {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", spec.Name, spec.Category, spec.Description)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Only list tools of this category (data, metric, step, scenario, intent)")
	return cmd
}

func newToolsCallCmd(rt *runtime) *cobra.Command {
	var rawArgs string

	cmd := &cobra.Command{
		Use:   "call NAME",
		Short: "Call a tool with JSON arguments",
		Long: `Call a tool with JSON arguments and print its JSON result.

Example: gosupply tools call read_products --args '{"product_id":"SEDAN-LUX"}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := rt.container(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Shutdown(cmd.Context())

			out, err := c.Tools.Call(cmd.Context(), args[0], json.RawMessage(rawArgs))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&rawArgs, "args", "{}", "Tool arguments as a JSON object")
	return cmd
}
