package transfer

import (
	"context"
	"errors"
	"fmt"

	datatransfer "cloud.google.com/go/bigquery/datatransfer/apiv1"
	"cloud.google.com/go/bigquery/datatransfer/apiv1/datatransferpb"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/rudderlabs/bq-cicd/internal/model"
	"github.com/rudderlabs/bq-cicd/internal/retry"
	"github.com/rudderlabs/bq-cicd/internal/warehouse/bigquery"
)

const queryParam = "query"

func Connect(ctx context.Context, credentials string) (*datatransfer.Client, error) {
	opts, err := bigquery.ClientOptions(credentials)
	if err != nil {
		return nil, err
	}
	return datatransfer.NewClient(ctx, opts...)
}

// Client manages scheduled queries through the BigQuery Data Transfer API.
type Client struct {
	dt      *datatransfer.Client
	retrier *retry.Retrier
}

func New(dt *datatransfer.Client, retrier *retry.Retrier) *Client {
	return &Client{
		dt:      dt,
		retrier: retrier,
	}
}

func (c *Client) ListScheduledQueries(ctx context.Context, parent string) ([]model.ScheduledQuery, error) {
	var scheduledQueries []model.ScheduledQuery
	err := c.retrier.Do(ctx, "list transfer configs", func() error {
		scheduledQueries = nil

		it := c.dt.ListTransferConfigs(ctx, &datatransferpb.ListTransferConfigsRequest{Parent: parent})
		for {
			tc, err := it.Next()
			if errors.Is(err, iterator.Done) {
				break
			}
			if err != nil {
				return fmt.Errorf("iterating transfer configs: %w", err)
			}
			scheduledQueries = append(scheduledQueries, fromTransferConfig(tc))
		}
		return nil
	})
	return scheduledQueries, err
}

// DeleteScheduledQuery deletes the transfer config with the given resource
// name. A config that no longer exists yields model.ErrNotFound.
func (c *Client) DeleteScheduledQuery(ctx context.Context, name string) error {
	err := c.dt.DeleteTransferConfig(ctx, &datatransferpb.DeleteTransferConfigRequest{Name: name})
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("deleting transfer config %s: %w: %v", name, model.ErrNotFound, err)
	}
	return err
}

func (c *Client) CreateScheduledQuery(ctx context.Context, parent string, sq model.ScheduledQuery) (model.ScheduledQuery, error) {
	tc, err := toTransferConfig(sq)
	if err != nil {
		return model.ScheduledQuery{}, err
	}

	created, err := c.dt.CreateTransferConfig(ctx, &datatransferpb.CreateTransferConfigRequest{
		Parent:         parent,
		TransferConfig: tc,
	})
	if err != nil {
		return model.ScheduledQuery{}, fmt.Errorf("creating transfer config: %w", err)
	}
	return fromTransferConfig(created), nil
}

func (c *Client) Close() error {
	return c.dt.Close()
}

func toTransferConfig(sq model.ScheduledQuery) (*datatransferpb.TransferConfig, error) {
	params, err := structpb.NewStruct(map[string]any{
		queryParam: sq.Query,
	})
	if err != nil {
		return nil, fmt.Errorf("building transfer params: %w", err)
	}
	return &datatransferpb.TransferConfig{
		DisplayName:  sq.DisplayName,
		DataSourceId: sq.DataSourceID,
		Params:       params,
		Schedule:     sq.Schedule,
	}, nil
}

func fromTransferConfig(tc *datatransferpb.TransferConfig) model.ScheduledQuery {
	sq := model.ScheduledQuery{
		Name:         tc.GetName(),
		DisplayName:  tc.GetDisplayName(),
		DataSourceID: tc.GetDataSourceId(),
		Schedule:     tc.GetSchedule(),
	}
	if query, ok := tc.GetParams().GetFields()[queryParam]; ok {
		sq.Query = query.GetStringValue()
	}
	return sq
}

// Lazy connects to the Data Transfer API on first use, so runs without config
// assets never open a client.
type Lazy struct {
	connect func(ctx context.Context) (*Client, error)
	client  *Client
}

func NewLazy(connect func(ctx context.Context) (*Client, error)) *Lazy {
	return &Lazy{connect: connect}
}

func (l *Lazy) get(ctx context.Context) (*Client, error) {
	if l.client != nil {
		return l.client, nil
	}
	client, err := l.connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("connecting to data transfer service: %w", err)
	}
	l.client = client
	return client, nil
}

func (l *Lazy) ListScheduledQueries(ctx context.Context, parent string) ([]model.ScheduledQuery, error) {
	c, err := l.get(ctx)
	if err != nil {
		return nil, err
	}
	return c.ListScheduledQueries(ctx, parent)
}

func (l *Lazy) DeleteScheduledQuery(ctx context.Context, name string) error {
	c, err := l.get(ctx)
	if err != nil {
		return err
	}
	return c.DeleteScheduledQuery(ctx, name)
}

func (l *Lazy) CreateScheduledQuery(ctx context.Context, parent string, sq model.ScheduledQuery) (model.ScheduledQuery, error) {
	c, err := l.get(ctx)
	if err != nil {
		return model.ScheduledQuery{}, err
	}
	return c.CreateScheduledQuery(ctx, parent, sq)
}

func (l *Lazy) Close() error {
	if l.client == nil {
		return nil
	}
	return l.client.Close()
}
