// Command journal imports workout journal notes, plans programs and maintains the activity
// search index from the command line.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/asyncopatedsoul/health-protocol/config"
	"github.com/asyncopatedsoul/health-protocol/internal/activity"
	activityUC "github.com/asyncopatedsoul/health-protocol/internal/activity/usecase"
	"github.com/asyncopatedsoul/health-protocol/internal/bootstrap"
	"github.com/asyncopatedsoul/health-protocol/internal/importer"
	importerUC "github.com/asyncopatedsoul/health-protocol/internal/importer/usecase"
	"github.com/asyncopatedsoul/health-protocol/internal/plan"
	planUC "github.com/asyncopatedsoul/health-protocol/internal/plan/usecase"
	"github.com/asyncopatedsoul/health-protocol/pkg/datemath"
	"github.com/asyncopatedsoul/health-protocol/pkg/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(loadApp).ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// app holds the usecases a command runs against.
type app struct {
	importer importer.UseCase
	activity activity.UseCase
	plan     plan.UseCase
	dates    *datemath.Parser
	close    func()
}

type appLoader func(ctx context.Context) (*app, error)

// loadApp wires the usecases from config.yaml the same way cmd/api does.
func loadApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	infra, err := bootstrap.Open(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	var planOpts []planUC.Option
	if infra.Calendar != nil {
		planOpts = append(planOpts, planUC.WithCalendar(infra.Calendar))
	}

	resolver := activityUC.New(infra.Store, infra.Search, logger)
	return &app{
		importer: importerUC.New(logger, infra.Notes, infra.Store, infra.Store, infra.Store, resolver, infra.Publisher, bootstrap.ImporterConfig(cfg)),
		activity: resolver,
		plan:     planUC.New(logger, infra.Programs, infra.Store, infra.Store, infra.Store, infra.Publisher, bootstrap.PlanConfig(cfg), planOpts...),
		dates:    infra.Dates,
		close:    infra.Close,
	}, nil
}

func newRootCmd(load appLoader) *cobra.Command {
	var asJSON bool

	root := &cobra.Command{
		Use:           "journal",
		Short:         "Workout journal importer and program planner",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&asJSON, "json", false, "print results as JSON")

	out := func(cmd *cobra.Command) printer {
		return printer{w: cmd.OutOrStdout(), json: asJSON}
	}
	withApp := func(cmd *cobra.Command, fn func(*app) error) error {
		a, err := load(cmd.Context())
		if err != nil {
			return err
		}
		if a.close != nil {
			defer a.close()
		}
		return fn(a)
	}

	root.AddCommand(newImportCmd(withApp, out))
	root.AddCommand(newParseCmd(withApp, out))
	root.AddCommand(newPlanCmd(withApp, out))
	root.AddCommand(newPlannedCmd(withApp, out))
	root.AddCommand(newProgramCmd(withApp, out))
	root.AddCommand(newSearchCmd(withApp, out))
	return root
}

type runFunc func(cmd *cobra.Command, fn func(*app) error) error

type printerFunc func(cmd *cobra.Command) printer

// printer writes either human readable lines or one JSON document.
type printer struct {
	w    io.Writer
	json bool
}

// result prints v as JSON in --json mode and calls text otherwise.
func (p printer) result(v any, text func(w io.Writer)) error {
	if p.json {
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(p.w)
	return nil
}
