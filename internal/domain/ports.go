package domain

import "context"

// DrawSource loads the raw draw rows of one capture.
type DrawSource interface {
	LoadDraws(ctx context.Context, ref string) ([]map[string]any, error)
}

// ConfigLoader reads the tool configuration found in a directory.
type ConfigLoader interface {
	Load(dir string) (Config, error)
}

// DiffHistory persists summaries of past diff runs under a directory.
type DiffHistory interface {
	Save(dir string, entry DiffEntry) error
	Load(dir string) ([]DiffEntry, error)
}

// GitInfo exposes version control metadata for a working directory.
type GitInfo interface {
	IsGitRepo(path string) bool
	CommitHash(path string) (string, error)
}
