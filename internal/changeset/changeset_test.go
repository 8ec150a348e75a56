package changeset_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rudderlabs/bq-cicd/internal/changeset"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		name          string
		names         string
		statuses      string
		wantConfigs   []string
		wantSQLs      []string
		wantTruncated int
	}{
		{
			name:        "config and sql files",
			names:       "jobs/daily.config tables/users.sql README.md",
			statuses:    "added modified added",
			wantConfigs: []string{"jobs/daily.config"},
			wantSQLs:    []string{"tables/users.sql"},
		},
		{
			name:     "removed files are skipped",
			names:    "a.sql b.config c.sql",
			statuses: "removed removed modified",
			wantSQLs: []string{"c.sql"},
		},
		{
			name:        "extension match is case insensitive",
			names:       "Report.SQL Job.Config",
			statuses:    "added added",
			wantConfigs: []string{"Job.Config"},
			wantSQLs:    []string{"Report.SQL"},
		},
		{
			name:     "extension must be a suffix",
			names:    "report.sql.bak foo.configuration dataset_sql notconfig",
			statuses: "added added added added",
		},
		{
			name:     "order is preserved",
			names:    "c.sql a.sql b.sql",
			statuses: "added added added",
			wantSQLs: []string{"c.sql", "a.sql", "b.sql"},
		},
		{
			name:          "more names than statuses",
			names:         "a.sql b.sql c.sql",
			statuses:      "added added",
			wantSQLs:      []string{"a.sql", "b.sql"},
			wantTruncated: 1,
		},
		{
			name:          "more statuses than names",
			names:         "a.config",
			statuses:      "added removed removed",
			wantConfigs:   []string{"a.config"},
			wantTruncated: 2,
		},
		{
			name:     "empty input",
			names:    "",
			statuses: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cs := changeset.Classify(tc.names, tc.statuses)
			require.Equal(t, tc.wantConfigs, cs.Configs)
			require.Equal(t, tc.wantSQLs, cs.SQLs)
			require.Equal(t, tc.wantTruncated, cs.Truncated)
			require.Equal(t, len(tc.wantConfigs)+len(tc.wantSQLs) == 0, cs.Empty())
		})
	}
}

func TestClassifyNeverReturnsRemovedFiles(t *testing.T) {
	names := "a.sql b.sql c.config d.config e.sql"
	statuses := "removed added removed renamed removed"

	cs := changeset.Classify(names, statuses)
	require.Equal(t, []string{"b.sql"}, cs.SQLs)
	require.Equal(t, []string{"d.config"}, cs.Configs)
}
