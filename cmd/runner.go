package main

import (
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"chartctl/internal/repositories"
	"chartctl/internal/services"
	"chartctl/internal/session"
	"chartctl/internal/shared"
	"chartctl/internal/tasks"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer

	// Built lazily by connect; injectable for tests.
	db         *sql.DB
	store      *session.Store
	api        tasks.ChartAPI
	cache      tasks.PageCache
	controller *tasks.Controller
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer

	Store *session.Store
	API   tasks.ChartAPI
	Cache tasks.PageCache
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	r := &Runner{
		config:     opts.Config,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		store:      opts.Store,
		api:        opts.API,
		cache:      opts.Cache,
	}

	if r.store != nil && r.api != nil {
		r.controller = tasks.NewController(r.store, r.api, r.cache)
	}
	return r
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, chartsCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// connect opens the database, loads the stored session, and wires the chart
// service and controller. Safe to call from every action; it is a no-op once
// connected.
func (r *Runner) connect() error {
	if r.controller != nil {
		return nil
	}

	if r.store == nil {
		db, err := shared.NewDatabase(r.config.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

		if err := shared.RunMigrations(db); err != nil {
			db.Close()
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		r.db = db
		r.store = session.NewStore(db)
		if r.cache == nil {
			r.cache = repositories.NewChartCacheRepository(db)
		}
	}

	if err := r.store.Load(); err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	if r.api == nil {
		r.api = services.NewChartService(r.config.API.BaseURL, r.config.API.AssetBase, r.store, r.httpClient)
	}

	r.controller = tasks.NewController(r.store, r.api, r.cache)
	return nil
}

// Close releases the database handle if connect opened one.
func (r *Runner) Close() {
	if r.db != nil {
		r.db.Close()
		r.db = nil
	}
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
