package container

import (
	"context"
	"fmt"

	"gosupply/adapters/cache"
	"gosupply/adapters/llm"
	"gosupply/adapters/postgres"
	"gosupply/app"
	"gosupply/domain/core"
	"gosupply/internal/config"
	"gosupply/internal/errors"
	"gosupply/internal/recommend"
	"gosupply/internal/simulation"
	"gosupply/internal/tools"
	"gosupply/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *zap.Logger
	// Clock is the planning "today"; nil uses the system clock
	Clock core.Clock

	// Infrastructure
	DB *sqlx.DB

	// Planning
	Store     ports.PlanningStore
	Planner   *app.Planner
	Formatter *recommend.Formatter
	Simulator ports.DemandSimulator
	Services  *app.Services

	// Intent parsing, nil when no provider is configured
	Intent ports.IntentParser

	Tools *tools.Registry
}

// New creates a new dependency injection container
func New(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Container{Config: cfg, Logger: logger}, nil
}

// OpenDatabase connects to the planning database
func OpenDatabase(cfg *config.Config) (*sqlx.DB, error) {
	if err := cfg.RequireDatabase(); err != nil {
		return nil, err
	}
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, errors.DatabaseError("failed to connect to database", err)
	}
	if cfg.Database.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	}
	return db, nil
}

// InitWithDatabase wires the planning components over a postgres repository
func (c *Container) InitWithDatabase(ctx context.Context, db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database connection cannot be nil")
	}
	if err := db.PingContext(ctx); err != nil {
		return errors.DatabaseError("database connection test failed", err)
	}
	c.DB = db
	return c.InitWithStore(ctx, postgres.NewRepository(db))
}

// InitWithStore wires the planning components over any planning store. Master
// data reads are cached.
func (c *Container) InitWithStore(ctx context.Context, store ports.PlanningStore) error {
	cached, err := cache.New(store, c.Config.Planning.MasterDataCacheSize)
	if err != nil {
		return fmt.Errorf("failed to create master data cache: %w", err)
	}
	c.Store = cached

	if err := c.initPlanning(); err != nil {
		return err
	}
	if err := c.initIntent(ctx); err != nil {
		return err
	}
	if err := c.initTools(); err != nil {
		return fmt.Errorf("failed to register tools: %w", err)
	}

	c.Logger.Info("container initialized",
		zap.Int("tools", len(c.Tools.List())),
		zap.String("intent_provider", c.Config.AI.Provider))
	return nil
}

func (c *Container) initPlanning() error {
	p := c.Config.Planning
	c.Planner = app.NewPlanner(c.Store, c.Clock, c.Logger)
	c.Formatter = recommend.NewFormatter()
	c.Simulator = simulation.NewSimulator(p.SimulationRuns, p.SimulationSeed)
	c.Services = app.NewServices(c.Planner, c.Formatter, app.ServiceOptions{
		SupplierWeights:  p.SupplierWeights,
		TimeValuePerHour: p.RouteTimeValuePerHour,
		ServiceFactor:    p.TransferServiceFactor,
		Simulator:        c.Simulator,
	}, c.Logger)
	return nil
}

// initIntent builds the intent parser for the configured provider
func (c *Container) initIntent(ctx context.Context) error {
	ai := c.Config.AI
	var (
		completer ports.JSONCompleter
		err       error
	)
	switch ai.Provider {
	case config.ProviderOpenAI:
		completer, err = llm.NewOpenAIClient(llm.Config{
			Provider:    ai.Provider,
			APIKey:      ai.OpenAIKey,
			BaseURL:     ai.BaseURL,
			Model:       ai.OpenAIModel,
			Temperature: ai.Temperature,
			MaxTokens:   ai.MaxTokens,
			Timeout:     ai.Timeout,
		})
	case config.ProviderGemini:
		completer, err = llm.NewGeminiClient(ctx, llm.Config{
			Provider:    ai.Provider,
			APIKey:      ai.GeminiKey,
			Model:       ai.GeminiModel,
			Temperature: ai.Temperature,
			MaxTokens:   ai.MaxTokens,
			Timeout:     ai.Timeout,
		})
	default:
		c.Logger.Info("no intent provider configured, natural-language requests are disabled")
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "failed to create %s client", ai.Provider)
	}
	c.Intent = llm.NewIntentParser(completer, c.Logger)
	return nil
}

func (c *Container) initTools() error {
	p := c.Config.Planning
	c.Tools = tools.NewRegistry(c.Logger)
	return tools.RegisterAll(c.Tools, tools.Deps{
		Planner:          c.Planner,
		Services:         c.Services,
		Simulator:        c.Simulator,
		Intent:           c.Intent,
		SupplierWeights:  p.SupplierWeights,
		TimeValuePerHour: p.RouteTimeValuePerHour,
		ServiceFactor:    p.TransferServiceFactor,
	})
}

// Shutdown gracefully shuts down all components
func (c *Container) Shutdown(ctx context.Context) error {
	_ = c.Logger.Sync()
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
