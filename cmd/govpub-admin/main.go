// Command govpub-admin runs one-off maintenance tasks against the content
// store: bulk force publishing, republishing to the publishing API and
// report mails.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"govpub/internal/app"
	"govpub/internal/jobs"
	"govpub/internal/platform/config"
	"govpub/internal/platform/logger"
)

// env is what every subcommand needs once the root command has run.
type env struct {
	cfg   config.Server
	log   *slog.Logger
	infra *app.Infra
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:           "govpub-admin",
		Short:         "Maintenance tasks for the publishing backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			e.cfg = cfg
			e.log = logger.NewWithWriter(cmd.ErrOrStderr(), cfg.LogFormat, cfg.LogLevel)
			e.infra, err = app.Open(cmd.Context(), cfg, e.log)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if e.infra == nil {
				return nil
			}
			return e.infra.Close()
		},
	}
	root.AddCommand(
		newForcePublishCommand(e),
		newPushCaseStudiesCommand(e),
		newPublishStaticPagesCommand(e),
		newTopicsCommand(e),
		newDocumentListCommand(e),
	)
	return root
}

// runJobs runs fn while a local worker processes the jobs it queues to an
// in-process queue, since nothing else would ever pick them up. Jobs queued
// to Redis are left for the server's worker.
func (e *env) runJobs(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := e.infra.Queue.(*jobs.MemoryQueue); !ok {
		return fn(ctx)
	}
	worker, err := e.newWorker()
	if err != nil {
		return err
	}
	done := make(chan struct{})
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return worker.RunUntil(gctx, done)
	})
	g.Go(func() error {
		defer close(done)
		return fn(gctx)
	})
	return g.Wait()
}
