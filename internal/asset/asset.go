package asset

//go:generate mockgen -destination=../../mocks/asset/mock_asset.go -package=mock_asset github.com/rudderlabs/bq-cicd/internal/asset QueryRunner,ScheduledQueries

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"

	"github.com/rudderlabs/rudder-go-kit/config"
	"github.com/rudderlabs/rudder-go-kit/logger"
	obskit "github.com/rudderlabs/rudder-observability-kit/go/labels"

	"github.com/rudderlabs/bq-cicd/internal/changeset"
	"github.com/rudderlabs/bq-cicd/internal/model"
)

const (
	// Placeholder is replaced by the resolved dataset name in sql and config assets.
	Placeholder = "${dataset_name}"

	scheduledQueryDataSource = "scheduled_query"
)

var errNoScheduledQueries = errors.New("scheduled queries client not configured")

type QueryRunner interface {
	RunQuery(ctx context.Context, query string) (model.JobStatus, error)
}

type ScheduledQueries interface {
	ListScheduledQueries(ctx context.Context, parent string) ([]model.ScheduledQuery, error)
	DeleteScheduledQuery(ctx context.Context, name string) error
	CreateScheduledQuery(ctx context.Context, parent string, sq model.ScheduledQuery) (model.ScheduledQuery, error)
}

// ScheduledQueryAsset is the content of a .config file.
type ScheduledQueryAsset struct {
	DisplayName string
	Query       string
	Schedule    string
}

// ParseScheduledQuery parses a .config file. display_name, query and schedule
// are required and must be strings.
func ParseScheduledQuery(data []byte) (ScheduledQueryAsset, error) {
	if !gjson.ValidBytes(data) {
		return ScheduledQueryAsset{}, fmt.Errorf("%w: invalid JSON", model.ErrMalformedAsset)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return ScheduledQueryAsset{}, fmt.Errorf("%w: expected a JSON object", model.ErrMalformedAsset)
	}

	fields := make(map[string]string, 3)
	for _, key := range []string{"display_name", "query", "schedule"} {
		value := root.Get(key)
		if !value.Exists() {
			return ScheduledQueryAsset{}, fmt.Errorf("%w: missing required field %q", model.ErrMalformedAsset, key)
		}
		if value.Type != gjson.String {
			return ScheduledQueryAsset{}, fmt.Errorf("%w: field %q must be a string", model.ErrMalformedAsset, key)
		}
		fields[key] = value.String()
	}
	return ScheduledQueryAsset{
		DisplayName: fields["display_name"],
		Query:       fields["query"],
		Schedule:    fields["schedule"],
	}, nil
}

// Substitute replaces every occurrence of the placeholder with datasetName.
func Substitute(text, datasetName string) string {
	return strings.ReplaceAll(text, Placeholder, datasetName)
}

// Deployer executes sql assets and registers config assets as scheduled
// queries. Files are read relative to the root of fs.
type Deployer struct {
	fs               afero.Fs
	logger           logger.Logger
	queries          QueryRunner
	scheduledQueries ScheduledQueries
	projectID        string

	config struct {
		location string
	}
}

func New(conf *config.Config, log logger.Logger, fs afero.Fs, projectID string, queries QueryRunner, scheduledQueries ScheduledQueries) *Deployer {
	d := &Deployer{
		fs:               fs,
		logger:           log.Child("asset"),
		queries:          queries,
		scheduledQueries: scheduledQueries,
		projectID:        projectID,
	}
	d.config.location = conf.GetString("BigQuery.location", "EU")
	return d
}

// Deploy deploys the files in order into datasetName. It stops at the first
// failure, already deployed files are left in place.
func (d *Deployer) Deploy(ctx context.Context, datasetName string, files []string) error {
	d.logger.Infon("Processing files",
		obskit.Namespace(datasetName),
		logger.NewStringField("files", strings.Join(files, " ")),
	)

	for _, file := range files {
		log := d.logger.Withn(
			logger.NewStringField("file", file),
			obskit.Namespace(datasetName),
		)
		log.Infon("Processing file")

		var err error
		switch {
		case changeset.IsSQL(file):
			err = d.deploySQL(ctx, log, datasetName, file)
		case changeset.IsConfig(file):
			err = d.deployConfig(ctx, log, datasetName, file)
		default:
			log.Infon("Not a config or sql file, skipping")
		}
		if err != nil {
			return fmt.Errorf("deploying %s: %w", file, err)
		}
	}
	return nil
}

func (d *Deployer) deploySQL(ctx context.Context, log logger.Logger, datasetName, file string) error {
	data, err := afero.ReadFile(d.fs, file)
	if err != nil {
		return fmt.Errorf("reading sql file: %w", err)
	}

	query := Substitute(string(data), datasetName)
	log.Infon("Executing query", logger.NewStringField("query", query))

	status, err := d.queries.RunQuery(ctx, query)
	if err != nil {
		return fmt.Errorf("executing query: %w", err)
	}
	if status.State != model.JobStateDone || status.Err != nil {
		queryErr := &model.QueryError{Query: query, Err: status.Err}
		log.Errorn("Query failed",
			logger.NewStringField("jobID", status.JobID),
			logger.NewStringField("state", string(status.State)),
			obskit.Error(queryErr),
		)
		return queryErr
	}

	log.Infon("Query completed",
		logger.NewStringField("jobID", status.JobID),
		logger.NewIntField("totalRows", int64(status.TotalRows)),
	)
	return nil
}

func (d *Deployer) deployConfig(ctx context.Context, log logger.Logger, datasetName, file string) error {
	if d.scheduledQueries == nil {
		return errNoScheduledQueries
	}

	data, err := afero.ReadFile(d.fs, file)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	asset, err := ParseScheduledQuery(data)
	if err != nil {
		return err
	}

	displayName := Substitute(asset.DisplayName, datasetName)
	query := Substitute(asset.Query, datasetName)
	parent := d.parent()

	log = log.Withn(
		logger.NewStringField("displayName", displayName),
		logger.NewStringField("parent", parent),
	)

	existing, err := d.scheduledQueries.ListScheduledQueries(ctx, parent)
	if err != nil {
		return fmt.Errorf("listing scheduled queries: %w", err)
	}
	for _, sq := range existing {
		if sq.DisplayName != displayName {
			continue
		}
		err := d.scheduledQueries.DeleteScheduledQuery(ctx, sq.Name)
		switch {
		case errors.Is(err, model.ErrNotFound):
			log.Warnn("Scheduled query not found", logger.NewStringField("name", sq.Name))
		case err != nil:
			return fmt.Errorf("deleting scheduled query %s: %w", sq.Name, err)
		default:
			log.Infon("Deleted scheduled query", logger.NewStringField("name", sq.Name))
		}
	}

	created, err := d.scheduledQueries.CreateScheduledQuery(ctx, parent, model.ScheduledQuery{
		DisplayName:  displayName,
		DataSourceID: scheduledQueryDataSource,
		Query:        query,
		Schedule:     asset.Schedule,
	})
	if err != nil {
		return fmt.Errorf("creating scheduled query: %w", err)
	}
	log.Infon("Created scheduled query", logger.NewStringField("name", created.Name))
	return nil
}

func (d *Deployer) parent() string {
	return fmt.Sprintf("projects/%s/locations/%s", d.projectID, strings.ToLower(d.config.location))
}
