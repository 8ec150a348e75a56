package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rudderlabs/rudder-go-kit/logger"
	obskit "github.com/rudderlabs/rudder-observability-kit/go/labels"

	"github.com/rudderlabs/bq-cicd/internal/changeset"
)

type resolver interface {
	Resolve(ctx context.Context, branch string) (string, error)
}

type deployer interface {
	Deploy(ctx context.Context, datasetName string, files []string) error
}

// Input is the commit being deployed.
type Input struct {
	Branch       string
	FileNames    string
	FileStatuses string
}

type Service struct {
	Resolver resolver
	Deployer deployer
	Logger   logger.Logger
}

// Run resolves the dataset of the branch and deploys the changed sql files
// followed by the changed config files.
func (s *Service) Run(ctx context.Context, in Input) error {
	cs := changeset.Classify(in.FileNames, in.FileStatuses)
	if cs.Truncated > 0 {
		s.Logger.Warnn("File names and statuses differ in length, ignoring unpaired entries",
			logger.NewIntField("ignored", int64(cs.Truncated)),
		)
	}
	s.Logger.Infon("Files to process",
		logger.NewStringField("configFiles", strings.Join(cs.Configs, " ")),
		logger.NewStringField("sqlFiles", strings.Join(cs.SQLs, " ")),
	)

	datasetName, err := s.Resolver.Resolve(ctx, in.Branch)
	if err != nil {
		return fmt.Errorf("resolving dataset for branch %s: %w", in.Branch, err)
	}

	if cs.Empty() {
		s.Logger.Infon("No config or SQL files have been added or modified")
		return nil
	}

	if len(cs.SQLs) > 0 {
		if err := s.Deployer.Deploy(ctx, datasetName, cs.SQLs); err != nil {
			return fmt.Errorf("deploying sql files: %w", err)
		}
	}
	if len(cs.Configs) > 0 {
		if err := s.Deployer.Deploy(ctx, datasetName, cs.Configs); err != nil {
			return fmt.Errorf("deploying config files: %w", err)
		}
	}

	s.Logger.Infon("Assets deployed",
		obskit.Namespace(datasetName),
		logger.NewIntField("sqlFiles", int64(len(cs.SQLs))),
		logger.NewIntField("configFiles", int64(len(cs.Configs))),
	)
	return nil
}
