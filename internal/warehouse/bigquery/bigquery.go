package bigquery

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/rudderlabs/rudder-go-kit/config"
	"github.com/rudderlabs/rudder-go-kit/googleutil"
	"github.com/rudderlabs/rudder-go-kit/logger"
	obskit "github.com/rudderlabs/rudder-observability-kit/go/labels"

	"github.com/rudderlabs/bq-cicd/internal/model"
	"github.com/rudderlabs/bq-cicd/internal/retry"
)

type Credentials struct {
	ProjectID   string
	Credentials string
}

// ClientOptions returns the client options for the given credentials JSON.
// Empty credentials fall back to application default credentials.
func ClientOptions(credentials string) ([]option.ClientOption, error) {
	var opts []option.ClientOption
	if !googleutil.ShouldSkipCredentialsInit(credentials) {
		credBytes := []byte(credentials)
		if err := googleutil.CompatibleGoogleCredentialsJSON(credBytes); err != nil {
			return nil, err
		}
		opts = append(opts, option.WithCredentialsJSON(credBytes))
	}
	return opts, nil
}

func Connect(ctx context.Context, cred *Credentials) (*bigquery.Client, error) {
	opts, err := ClientOptions(cred.Credentials)
	if err != nil {
		return nil, err
	}
	return bigquery.NewClient(ctx, cred.ProjectID, opts...)
}

// Client manages datasets and runs queries of a single project.
type Client struct {
	db      *bigquery.Client
	retrier *retry.Retrier
	logger  logger.Logger
	since   func(time.Time) time.Duration

	config struct {
		slowQueryThreshold time.Duration
	}
}

func New(conf *config.Config, log logger.Logger, db *bigquery.Client, retrier *retry.Retrier) *Client {
	c := &Client{
		db:      db,
		retrier: retrier,
		logger:  log.Child("bigquery"),
		since:   time.Since,
	}
	c.config.slowQueryThreshold = conf.GetDuration("BigQuery.slowQueryThreshold", 5, time.Minute)
	return c
}

// ListDatasets returns every dataset of the project together with its labels
// and creation time. Datasets deleted while listing are left out.
func (c *Client) ListDatasets(ctx context.Context) ([]model.Dataset, error) {
	var datasets []model.Dataset
	err := c.retrier.Do(ctx, "list datasets", func() error {
		datasets = nil

		it := c.db.Datasets(ctx)
		for {
			ds, err := it.Next()
			if errors.Is(err, iterator.Done) {
				break
			}
			if err != nil {
				return fmt.Errorf("iterating datasets: %w", err)
			}

			meta, err := ds.Metadata(ctx)
			var apiErr *googleapi.Error
			if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
				c.logger.Warnn("Dataset disappeared while listing, skipping",
					obskit.Namespace(ds.DatasetID),
				)
				continue
			}
			if err != nil {
				return fmt.Errorf("getting metadata for dataset %s: %w", ds.DatasetID, err)
			}
			datasets = append(datasets, model.Dataset{
				ID:           ds.DatasetID,
				Labels:       meta.Labels,
				CreationTime: meta.CreationTime,
			})
		}
		return nil
	})
	return datasets, err
}

func (c *Client) CreateDataset(ctx context.Context, datasetID string, meta model.DatasetMetadata) error {
	c.logger.Infon("Creating dataset",
		obskit.Namespace(datasetID),
		logger.NewStringField("location", meta.Location),
	)
	return c.db.Dataset(datasetID).Create(ctx, &bigquery.DatasetMetadata{
		Location:               meta.Location,
		DefaultTableExpiration: meta.DefaultTableExpiration,
	})
}

// DeleteDataset deletes the dataset together with all of its tables.
func (c *Client) DeleteDataset(ctx context.Context, datasetID string) error {
	return c.db.Dataset(datasetID).DeleteWithContents(ctx)
}

// RunQuery submits the query and blocks until the job reaches a terminal
// state. Once the job has been submitted, any failure other than the context
// ending is reported through JobStatus.Err.
func (c *Client) RunQuery(ctx context.Context, query string) (model.JobStatus, error) {
	startedAt := time.Now()
	defer func() {
		if executionTime := c.since(startedAt); executionTime > c.config.slowQueryThreshold {
			c.logger.Warnn("Slow query",
				logger.NewStringField("query", query),
				logger.NewDurationField("executionTime", executionTime),
			)
		}
	}()

	job, err := c.db.Query(query).Run(ctx)
	if err != nil {
		return model.JobStatus{}, fmt.Errorf("running query: %w", err)
	}

	status, err := job.Wait(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return model.JobStatus{JobID: job.ID()}, fmt.Errorf("waiting for job %s: %w", job.ID(), err)
		}
		return model.JobStatus{
			JobID: job.ID(),
			State: model.JobStateDone,
			Err:   err,
		}, nil
	}

	result := model.JobStatus{
		JobID: job.ID(),
		State: jobState(status.State),
		Err:   status.Err(),
	}
	if result.Err != nil {
		return result, nil
	}

	it, err := job.Read(ctx)
	if err != nil {
		return result, fmt.Errorf("reading results of job %s: %w", job.ID(), err)
	}
	result.TotalRows = it.TotalRows
	return result, nil
}

func (c *Client) Close() error {
	return c.db.Close()
}

func jobState(state bigquery.State) model.JobState {
	switch state {
	case bigquery.Pending:
		return model.JobStatePending
	case bigquery.Running:
		return model.JobStateRunning
	case bigquery.Done:
		return model.JobStateDone
	default:
		return model.JobState(fmt.Sprintf("UNKNOWN(%d)", state))
	}
}
