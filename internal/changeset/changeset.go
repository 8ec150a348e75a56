package changeset

import (
	"regexp"
	"strings"
)

const statusRemoved = "removed"

var (
	configSuffix = regexp.MustCompile(`(?i)\.config$`)
	sqlSuffix    = regexp.MustCompile(`(?i)\.sql$`)
)

// Changeset is the set of deployable files of a commit.
type Changeset struct {
	Configs []string
	SQLs    []string

	// Truncated is the number of entries ignored because the names and
	// statuses lists differ in length.
	Truncated int
}

func (c Changeset) Empty() bool {
	return len(c.Configs) == 0 && len(c.SQLs) == 0
}

func IsConfig(fileName string) bool {
	return configSuffix.MatchString(fileName)
}

func IsSQL(fileName string) bool {
	return sqlSuffix.MatchString(fileName)
}

// Classify pairs space separated file names with their statuses and splits the
// files that were not removed into config and sql assets. Pairs are matched by
// position, entries without a counterpart are ignored.
func Classify(names, statuses string) Changeset {
	fileNames, fileStatuses := strings.Split(names, " "), strings.Split(statuses, " ")

	n := min(len(fileNames), len(fileStatuses))

	cs := Changeset{
		Truncated: max(len(fileNames), len(fileStatuses)) - n,
	}
	for i := 0; i < n; i++ {
		fileName, status := fileNames[i], fileStatuses[i]
		if fileName == "" || status == statusRemoved {
			continue
		}

		switch {
		case IsConfig(fileName):
			cs.Configs = append(cs.Configs, fileName)
		case IsSQL(fileName):
			cs.SQLs = append(cs.SQLs, fileName)
		}
	}
	return cs
}
