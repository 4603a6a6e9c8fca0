package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"gosupply/adapters/excel"
	"gosupply/internal/migration"
)

func newMigrateCmd(rt *runtime) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the planning schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := rt.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			runner := migration.NewRunner(rt.logger)
			if reset {
				err = runner.Reset(cmd.Context(), db)
			} else {
				err = runner.Run(cmd.Context(), db)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Schema ready (version %s)\n", runner.Version())
			return nil
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "Drop every planning table before recreating the schema")
	return cmd
}

func newLoadCmd(rt *runtime) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "load DIR",
		Short: "Load <table>.csv or <table>.xlsx seed files into the planning tables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := rt.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			if migrate {
				if err := migration.NewRunner(rt.logger).Run(cmd.Context(), db); err != nil {
					return err
				}
			}
			loads, err := excel.NewLoader(db, rt.logger).LoadDir(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TABLE\tFILE\tROWS")
			for _, l := range loads {
				fmt.Fprintf(w, "%s\t%s\t%d\n", l.Table, l.File, l.Rows)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", true, "Create missing tables before loading")
	return cmd
}
