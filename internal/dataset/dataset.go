package dataset

//go:generate mockgen -destination=../../mocks/dataset/mock_warehouse.go -package=mock_dataset github.com/rudderlabs/bq-cicd/internal/dataset Warehouse

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/rudderlabs/rudder-go-kit/config"
	"github.com/rudderlabs/rudder-go-kit/logger"
	obskit "github.com/rudderlabs/rudder-observability-kit/go/labels"

	"github.com/rudderlabs/bq-cicd/internal/model"
)

const (
	productionBranch  = "main"
	productionDataset = "production"
)

var (
	featureBranch     = regexp.MustCompile(`(?i)feature/(.+)`)
	invalidIdentifier = regexp.MustCompile(`[^a-zA-Z0-9_]`)
)

type Warehouse interface {
	ListDatasets(ctx context.Context) ([]model.Dataset, error)
	CreateDataset(ctx context.Context, datasetID string, meta model.DatasetMetadata) error
	DeleteDataset(ctx context.Context, datasetID string) error
}

// Name returns the dataset a branch deploys into and whether it is the
// production dataset.
func Name(branch string) (string, bool, error) {
	if match := featureBranch.FindStringSubmatch(branch); match != nil {
		name := strings.ToLower(invalidIdentifier.ReplaceAllString(strings.ReplaceAll(match[1], "-", "_"), ""))
		if name == "" {
			return "", false, fmt.Errorf("%w: %q has no usable suffix", model.ErrUnsupportedBranch, branch)
		}
		return name, false, nil
	}
	if branch == productionBranch {
		return productionDataset, true, nil
	}
	return "", false, fmt.Errorf("%w: %q", model.ErrUnsupportedBranch, branch)
}

type Resolver struct {
	warehouse Warehouse
	logger    logger.Logger
	now       func() time.Time

	config struct {
		location               string
		defaultTableExpiration time.Duration
		maxAge                 time.Duration
		permanentLabelKey      string
		permanentLabelValue    string
	}
}

type Opt func(*Resolver)

func WithNow(now func() time.Time) Opt {
	return func(r *Resolver) {
		r.now = now
	}
}

func New(conf *config.Config, log logger.Logger, warehouse Warehouse, opts ...Opt) *Resolver {
	r := &Resolver{
		warehouse: warehouse,
		logger:    log.Child("dataset"),
		now:       time.Now,
	}

	r.config.location = conf.GetString("BigQuery.location", "EU")
	r.config.defaultTableExpiration = conf.GetDuration("Dataset.defaultTableExpiration", 30*24, time.Hour)
	r.config.maxAge = conf.GetDuration("Dataset.maxAge", 60*24, time.Hour)
	r.config.permanentLabelKey = conf.GetString("Dataset.permanentLabelKey", "expiry")
	r.config.permanentLabelValue = conf.GetString("Dataset.permanentLabelValue", "never")

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the dataset for the branch, creating it when it does not
// exist yet. Resolving the production branch sweeps stale datasets first.
func (r *Resolver) Resolve(ctx context.Context, branch string) (string, error) {
	name, production, err := Name(branch)
	if err != nil {
		return "", err
	}

	datasets, err := r.warehouse.ListDatasets(ctx)
	if err != nil {
		return "", fmt.Errorf("listing datasets: %w", err)
	}

	if production {
		deleted, err := r.Sweep(ctx, datasets)
		if err != nil {
			return "", fmt.Errorf("sweeping stale datasets: %w", err)
		}
		datasets = lo.Reject(datasets, func(d model.Dataset, _ int) bool {
			return lo.Contains(deleted, d.ID)
		})
	}

	log := r.logger.Withn(
		logger.NewStringField("branch", branch),
		obskit.Namespace(name),
	)
	log.Infon("Branch will create or modify assets in dataset")

	if lo.ContainsBy(datasets, func(d model.Dataset) bool { return d.ID == name }) {
		log.Infon("Dataset already exists")
		return name, nil
	}

	log.Infon("Dataset does not exist, creating it",
		logger.NewStringField("location", r.config.location),
		logger.NewDurationField("defaultTableExpiration", r.config.defaultTableExpiration),
	)
	err = r.warehouse.CreateDataset(ctx, name, model.DatasetMetadata{
		Location:               r.config.location,
		DefaultTableExpiration: r.config.defaultTableExpiration,
	})
	if err != nil {
		return "", fmt.Errorf("creating dataset %s: %w", name, err)
	}
	log.Infon("Dataset created")
	return name, nil
}

// Sweep deletes every dataset older than the configured maximum age that is
// not labelled as permanent and returns the deleted ids. It stops at the first
// failed deletion.
func (r *Resolver) Sweep(ctx context.Context, datasets []model.Dataset) ([]string, error) {
	var deleted []string

	now := r.now()
	for _, d := range datasets {
		if r.permanent(d) {
			continue
		}

		age := now.Sub(d.CreationTime)
		if age <= r.config.maxAge {
			continue
		}

		if err := r.warehouse.DeleteDataset(ctx, d.ID); err != nil {
			return deleted, fmt.Errorf("deleting dataset %s: %w", d.ID, err)
		}
		deleted = append(deleted, d.ID)
		r.logger.Infon("Deleted stale dataset",
			obskit.Namespace(d.ID),
			logger.NewDurationField("age", age),
		)
	}
	return deleted, nil
}

func (r *Resolver) permanent(d model.Dataset) bool {
	return d.Labels[r.config.permanentLabelKey] == r.config.permanentLabelValue
}
