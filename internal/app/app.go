package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/you-humble/pc-builder/internal/config"
	envconfig "github.com/you-humble/pc-builder/internal/config/env"
	"github.com/you-humble/pc-builder/internal/transport/cli"
	"github.com/you-humble/pc-builder/platform/closer"
	"github.com/you-humble/pc-builder/platform/logger"
)

type app struct {
	di      *di
	rootCmd *cobra.Command
}

func New(ctx context.Context) (*app, error) {
	a := &app{}

	if err := a.init(ctx); err != nil {
		return nil, err
	}

	return a, nil
}

// Run executes the command line in args and then flushes pending writes
// and releases storage connections.
func (a *app) Run(ctx context.Context, args []string) error {
	defer gracefulShutdown()

	a.rootCmd.SetArgs(args)
	return a.rootCmd.ExecuteContext(ctx)
}

func (a *app) init(ctx context.Context) (err error) {
	// DI constructors panic on unreachable storage, as servers do at startup.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("app.init: %v", r)
			_ = closer.CloseAll(context.Background())
		}
	}()

	inits := []func(context.Context) error{
		a.initConfig,
		a.initLogger,
		a.initCloser,
		a.initDI,
		a.initTables,
		a.initState,
		a.initCLI,
	}

	for _, initFn := range inits {
		if err := initFn(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) initConfig(_ context.Context) error {
	return config.Load()
}

func (a *app) initLogger(_ context.Context) error {
	return logger.Init(
		config.C().Logger.Level(),
		config.C().Logger.AsJSON(),
	)
}

func (a *app) initCloser(_ context.Context) error {
	closer.SetLogger(logger.L())
	return nil
}

func (a *app) initDI(_ context.Context) error {
	a.di = NewDI()
	return nil
}

func (a *app) initTables(ctx context.Context) error {
	if config.C().Storage.Driver() != envconfig.DriverPostgres {
		return nil
	}

	if err := a.di.Migrator(ctx).Up(ctx); err != nil {
		logger.Error(ctx, "failed to apply migrations", logger.ErrorF(err))
		return err
	}
	return nil
}

// initState restores the saved build and comparison list side by side.
// Both loads swallow their own storage errors.
func (a *app) initState(ctx context.Context) error {
	build := a.di.BuildService(ctx)
	compare := a.di.CompareService(ctx)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		build.Load(egCtx)
		return nil
	})
	eg.Go(func() error {
		compare.Load(egCtx)
		return nil
	})

	return eg.Wait()
}

func (a *app) initCLI(ctx context.Context) error {
	a.rootCmd = cli.NewRootCmd(
		a.di.BuildService(ctx),
		a.di.CompareService(ctx),
	)
	return nil
}

//nolint:contextcheck
func gracefulShutdown() {
	ctx, cancel := context.WithTimeout(
		context.Background(), // pending writes must finish even after an interrupt
		config.C().Storage.ShutdownTimeout(),
	)
	defer cancel()

	if err := closer.CloseAll(ctx); err != nil {
		logger.Error(ctx, "shutdown finished with errors", logger.ErrorF(err))
		return
	}
	logger.Debug(ctx, "storage closed")
}
