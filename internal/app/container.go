package app

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/doeshing/calc-go/internal/application/calculator"
	"github.com/doeshing/calc-go/internal/application/dispatch"
	"github.com/doeshing/calc-go/internal/application/doctor"
	"github.com/doeshing/calc-go/internal/application/ledger"
	"github.com/doeshing/calc-go/internal/application/registry"
	"github.com/doeshing/calc-go/internal/domain"
	"github.com/doeshing/calc-go/internal/infrastructure/config"
	"github.com/doeshing/calc-go/internal/infrastructure/history"
	"github.com/doeshing/calc-go/internal/infrastructure/metrics"
	"github.com/doeshing/calc-go/internal/infrastructure/plugins"
	"github.com/doeshing/calc-go/internal/pkg/logger"
	"github.com/doeshing/calc-go/internal/ports"
)

// Options tunes how the container is built.
type Options struct {
	ConfigPath string
	Verbose    bool
	Out        io.Writer
	Presenter  dispatch.Presenter
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config        domain.Config
	ConfigLoader  *config.FileLoader
	Logger        *logger.FileLogger
	Metrics       *metrics.Recorder
	HistoryStore  ports.HistoryStore
	Ledger        *ledger.Ledger
	Evaluator     *calculator.Evaluator
	Registry      *registry.Registry
	Dispatcher    *dispatch.Dispatcher
	DoctorService *doctor.Service
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	level, _ := logger.ParseLevel(cfg.Logging.Level)
	if opts.Verbose {
		level = logger.LevelDebug
	}
	// NewFile falls back to stderr and the failure is already reported there.
	log, _ := logger.NewFile(logger.ResolvePath(cfg.Logging.File), level, "calc")
	if opts.Verbose {
		log.Mirror(logger.NewStd(true))
	}

	recorder := metrics.NewRecorder()
	store, err := history.NewStore(cfg.History, log.Named("history"))
	if err != nil {
		log.Close()
		return nil, err
	}

	ledgerLog := log.Named("ledger")
	l := ledger.New(store, ledgerLog, recorder)
	if cfg.History.LoadOnStart {
		l.Restore()
	}

	evaluator := &calculator.Evaluator{
		History:   l,
		Logger:    log.Named("calculator"),
		Metrics:   recorder,
		Precision: cfg.Calculator.DivisionPrecision,
	}

	reg := registry.New()
	plugins.RegisterBuiltins(reg, out)

	dispatcher := &dispatch.Dispatcher{
		History:    l,
		Calculator: evaluator,
		Commands:   reg,
		Presenter:  opts.Presenter,
		Logger:     log.Named("dispatch"),
		Out:        out,
	}

	doctorService := &doctor.Service{
		ConfigProvider: cfgLoader,
		HistoryStore:   store,
		Commands:       reg,
		LogPath:        log.Path(),
	}

	log.Info("calc started", map[string]interface{}{
		"config":  cfgLoader.Path(),
		"backend": string(cfg.History.Backend),
		"history": store.Location(),
	})

	return &Container{
		Config:        cfg,
		ConfigLoader:  cfgLoader,
		Logger:        log,
		Metrics:       recorder,
		HistoryStore:  store,
		Ledger:        l,
		Evaluator:     evaluator,
		Registry:      reg,
		Dispatcher:    dispatcher,
		DoctorService: doctorService,
	}, nil
}

// Close flushes metrics and releases the store and the log file.
func (c *Container) Close() error {
	var errs []error
	if path := c.Config.Metrics.Textfile; path != "" {
		if err := c.Metrics.WriteTextfile(path); err != nil {
			c.Logger.Error("failed to write metrics textfile", err, map[string]interface{}{"path": path})
			errs = append(errs, err)
		}
	}
	if closer, ok := c.HistoryStore.(io.Closer); ok {
		errs = append(errs, closer.Close())
	}
	c.Logger.Info("calc stopped", nil)
	errs = append(errs, c.Logger.Close())
	return errors.Join(errs...)
}
