package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"

	"github.com/rudderlabs/rudder-go-kit/config"
	"github.com/rudderlabs/rudder-go-kit/logger"
	obskit "github.com/rudderlabs/rudder-observability-kit/go/labels"

	"github.com/rudderlabs/bq-cicd/internal/asset"
	"github.com/rudderlabs/bq-cicd/internal/dataset"
	"github.com/rudderlabs/bq-cicd/internal/retry"
	"github.com/rudderlabs/bq-cicd/internal/service"
	"github.com/rudderlabs/bq-cicd/internal/warehouse/bigquery"
	"github.com/rudderlabs/bq-cicd/internal/warehouse/transfer"
)

const envPrefix = "BQCICD"

// args are the positional arguments passed by the pipeline.
type args struct {
	ProjectID string
	Input     service.Input
}

type deployFunc func(ctx context.Context, conf *config.Config, log logger.Logger, a args) error

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx, os.Args)
	cancel()
	os.Exit(exitCode)
}

func run(ctx context.Context, osArgs []string) int {
	conf := config.New(config.WithEnvPrefix(envPrefix))
	log := logger.NewFactory(conf).NewLogger().Child("bq-cicd")

	if err := newApp(conf, log, deploy).RunContext(ctx, osArgs); err != nil {
		log.Errorn("Deployment failed", obskit.Error(err))
		return 1
	}
	return 0
}

func newApp(conf *config.Config, log logger.Logger, deploy deployFunc) *cli.App {
	return &cli.App{
		Name:      "bq-cicd",
		Usage:     "deploy changed BigQuery sql and scheduled query assets of a commit",
		ArgsUsage: "<project-id> <branch> <file names> <file statuses>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "location",
				Usage: "location of created datasets and scheduled queries",
				Value: "EU",
			},
			&cli.StringFlag{
				Name:  "workspace",
				Usage: "directory the changed file names are relative to",
				Value: "/workspace",
			},
			&cli.StringFlag{
				Name:  "credentials",
				Usage: "service account JSON file, application default credentials are used when empty",
			},
		},
		HideHelpCommand: true,
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 4 {
				return fmt.Errorf("expected 4 arguments, got %d: %s", c.Args().Len(), c.App.ArgsUsage)
			}

			if c.IsSet("location") {
				conf.Set("BigQuery.location", c.String("location"))
			}
			if c.IsSet("workspace") {
				conf.Set("Workspace.dir", c.String("workspace"))
			}
			if c.IsSet("credentials") {
				credentials, err := afero.ReadFile(afero.NewOsFs(), c.String("credentials"))
				if err != nil {
					return fmt.Errorf("reading credentials: %w", err)
				}
				conf.Set("BigQuery.credentials", string(credentials))
			}

			return deploy(c.Context, conf, log, args{
				ProjectID: c.Args().Get(0),
				Input: service.Input{
					Branch:       c.Args().Get(1),
					FileNames:    c.Args().Get(2),
					FileStatuses: c.Args().Get(3),
				},
			})
		},
	}
}

func deploy(ctx context.Context, conf *config.Config, log logger.Logger, a args) error {
	credentials := conf.GetString("BigQuery.credentials", "")
	retrier := retry.New(conf, log)

	db, err := bigquery.Connect(ctx, &bigquery.Credentials{
		ProjectID:   a.ProjectID,
		Credentials: credentials,
	})
	if err != nil {
		return fmt.Errorf("connecting to bigquery: %w", err)
	}
	bq := bigquery.New(conf, log, db, retrier)
	defer func() { _ = bq.Close() }()

	scheduledQueries := transfer.NewLazy(func(ctx context.Context) (*transfer.Client, error) {
		dt, err := transfer.Connect(ctx, credentials)
		if err != nil {
			return nil, err
		}
		return transfer.New(dt, retrier), nil
	})
	defer func() { _ = scheduledQueries.Close() }()

	workspace := afero.NewBasePathFs(afero.NewOsFs(), conf.GetString("Workspace.dir", "/workspace"))

	svc := service.Service{
		Resolver: dataset.New(conf, log, bq),
		Deployer: asset.New(conf, log, workspace, a.ProjectID, bq, scheduledQueries),
		Logger:   log,
	}
	return svc.Run(ctx, a.Input)
}
