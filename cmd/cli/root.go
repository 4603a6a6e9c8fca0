package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gosupply/internal/config"
	"gosupply/internal/container"
	"gosupply/internal/logging"
)

// runtime carries what the subcommands share. Fields left nil are built
// lazily from the environment.
type runtime struct {
	envFile string
	cfg     *config.Config
	logger  *zap.Logger

	// newContainer overrides the database-backed container
	newContainer func(ctx context.Context) (*container.Container, error)
}

func newRootCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gosupply",
		Short: "Supply-chain planning tools from the command line",
		Long: `gosupply runs the planning tools and scenario pipelines against the
planning database.

Example: gosupply recommend t4 --args '{"base_model":"SEDAN","period":"1 quarter"}'`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.init()
		},
	}
	cmd.PersistentFlags().StringVar(&rt.envFile, "env-file", ".env", "Environment file to load before reading configuration")

	cmd.AddCommand(
		newToolsCmd(rt),
		newRecommendCmd(rt),
		newIntentCmd(rt),
		newMigrateCmd(rt),
		newLoadCmd(rt),
		newReportCmd(rt),
	)
	return cmd
}

func (rt *runtime) init() error {
	if rt.cfg == nil {
		if err := godotenv.Load(rt.envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to load %s: %w", rt.envFile, err)
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		rt.cfg = cfg
	}
	if rt.logger == nil {
		logger, err := logging.New(rt.cfg.Log)
		if err != nil {
			return err
		}
		rt.logger = logger
	}
	return nil
}

func (rt *runtime) container(ctx context.Context) (*container.Container, error) {
	if rt.newContainer != nil {
		return rt.newContainer(ctx)
	}
	db, err := rt.openDB()
	if err != nil {
		return nil, err
	}
	c, err := container.New(rt.cfg, rt.logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	if err := c.InitWithDatabase(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func (rt *runtime) openDB() (*sqlx.DB, error) {
	return container.OpenDatabase(rt.cfg)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
