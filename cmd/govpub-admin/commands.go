package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"govpub/internal/casestudies"
	"govpub/internal/content/models"
	"govpub/internal/forcepublish"
	"govpub/internal/jobs"
	"govpub/internal/notifications"
	"govpub/internal/publishingapi"
	"govpub/internal/staticpages"
	"govpub/internal/topics"
	"govpub/internal/workflow"
	strutil "govpub/pkg/platform/strings"
)

func newForcePublishCommand(e *env) *cobra.Command {
	var (
		org     string
		exclude string
		limit   int
	)
	cmd := &cobra.Command{
		Use:   "force-publish",
		Short: "Force publish an organisation's imported drafts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if org == "" {
				return errors.New("--org is required")
			}
			var excluded []models.EditionType
			for _, t := range strutil.SplitList(exclude) {
				excluded = append(excluded, models.EditionType(t))
			}

			candidates, err := forcepublish.NewCandidates(e.infra.Organisations, e.infra.Editions)
			if err != nil {
				return err
			}
			editions, err := candidates.ForOrganisation(ctx, org, excluded)
			if err != nil {
				return err
			}

			publisher, err := workflow.NewForcePublisher(e.infra.Editions, e.infra.Queue, workflow.WithLogger(e.log))
			if err != nil {
				return err
			}
			out := newStatusWriter(cmd.OutOrStdout())
			opts := []forcepublish.Option{
				forcepublish.WithLogger(e.log),
				forcepublish.WithMetrics(forcepublish.NewMetrics(prometheus.NewRegistry())),
			}
			if e.infra.QueryLog != nil {
				opts = append(opts, forcepublish.WithQueryLog(e.infra.QueryLog, e.cfg.ForcePublishLogPath))
			}
			runner, err := forcepublish.NewRunner(forcepublish.FromWorkflow(publisher), e.infra.Users, out, opts...)
			if err != nil {
				return err
			}

			var report forcepublish.Report
			err = e.runJobs(ctx, func(ctx context.Context) error {
				var err error
				if report, err = runner.Run(ctx, editions, limit); err != nil {
					return err
				}
				return out.Flush()
			})
			fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render(fmt.Sprintf("%d published, %d failed",
				len(report.Successes()), len(report.Failures()))))
			return err
		},
	}
	cmd.Flags().StringVar(&org, "org", "", "organisation acronym")
	cmd.Flags().StringVar(&exclude, "exclude", "", "comma-separated edition types to skip, e.g. Speech,NewsArticle")
	cmd.Flags().IntVar(&limit, "limit", 0, "stop after this many editions (0 = all)")
	return cmd
}

func newPushCaseStudiesCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "push-case-studies",
		Short: "Queue every case study for pushing to the publishing API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pusher, err := casestudies.NewPusher(e.infra.Editions, e.infra.Queue, cmd.OutOrStdout(), e.log)
			if err != nil {
				return err
			}
			return e.runJobs(cmd.Context(), func(ctx context.Context) error {
				_, err := pusher.Run(ctx)
				return err
			})
		},
	}
}

func newPublishStaticPagesCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "publish-static-pages",
		Short: "Publish placeholder content items for the fixed informational pages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			api, err := e.publishingAPI()
			if err != nil {
				return err
			}
			publisher, err := staticpages.NewPublisher(api, e.infra.Indexer,
				staticpages.WithLogger(e.log),
				staticpages.WithApps(e.cfg.PublishingAPI.AppName, "government-frontend"),
			)
			if err != nil {
				return err
			}
			if err := publisher.Publish(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("Static pages published"))
			return nil
		},
	}
}

func newTopicsCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "topics",
		Short: "List linkable topics grouped by parent",
		RunE: func(cmd *cobra.Command, _ []string) error {
			api, err := e.publishingAPI()
			if err != nil {
				return err
			}
			svc, err := topics.NewService(api, topics.WithLogger(e.log))
			if err != nil {
				return err
			}
			groups, err := svc.Topics(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, g := range groups {
				fmt.Fprintln(out, headStyle.Render(g.Parent))
				for _, o := range g.Options {
					fmt.Fprintf(out, "  %s %s\n", o.Title, dimStyle.Render(o.ContentID))
				}
			}
			return nil
		},
	}
}

func newDocumentListCommand(e *env) *cobra.Command {
	var (
		editionType string
		recipient   string
	)
	cmd := &cobra.Command{
		Use:   "document-list",
		Short: "Mail a CSV of the latest editions of a document type",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if recipient == "" {
				return errors.New("--recipient is required")
			}
			typ := models.EditionType(editionType)

			var editions []*models.Edition
			err := e.infra.Editions.EachLatestByType(ctx, typ, 100, func(ed *models.Edition) error {
				editions = append(editions, ed)
				return nil
			})
			if err != nil {
				return err
			}
			csv, err := notifications.DocumentListCSV(editions, e.cfg.PublicHost)
			if err != nil {
				return err
			}

			mailer, err := notifications.NewMailer(e.infra.Queue, e.cfg.EnvironmentLabel,
				notifications.WithLogger(e.log),
				notifications.WithHosts(e.cfg.AdminHost, e.cfg.PublicHost),
			)
			if err != nil {
				return err
			}
			title := "All " + typ.FormatName() + " documents"
			err = e.runJobs(ctx, func(ctx context.Context) error {
				return mailer.Deliver(ctx, mailer.DocumentList(csv, recipient, title))
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render(fmt.Sprintf("%d documents sent to %s", len(editions), recipient)))
			return nil
		},
	}
	cmd.Flags().StringVar(&editionType, "type", string(models.TypeCaseStudy), "edition type, e.g. CaseStudy")
	cmd.Flags().StringVar(&recipient, "recipient", "", "email address to send the list to")
	return cmd
}

func (e *env) publishingAPI() (*publishingapi.Client, error) {
	c := e.cfg.PublishingAPI
	return publishingapi.New(c.URL, c.BearerToken, c.Timeout)
}

// newWorker builds a worker with the same handlers as the server.
func (e *env) newWorker() (*jobs.Worker, error) {
	api, err := e.publishingAPI()
	if err != nil {
		return nil, err
	}
	sync, err := publishingapi.NewEditionSync(e.infra.Editions, api, e.cfg.PublishingAPI.AppName, e.log)
	if err != nil {
		return nil, err
	}
	worker, err := jobs.NewWorker(e.infra.Queue, jobs.WithLogger(e.log))
	if err != nil {
		return nil, err
	}
	worker.Handle(jobs.KindPublishingAPIEdition, sync.HandleJob)
	worker.Handle(jobs.KindDeliverMail, notifications.DeliveryHandler(e.log))
	return worker, nil
}
