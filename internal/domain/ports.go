package domain

import "context"

// DocumentLoader reads and canonicalizes a configuration document.
type DocumentLoader interface {
	// Read returns the raw contents of path. Failures are FileError.
	Read(path string) ([]byte, error)
	// Parse canonicalizes content under the given source name.
	// Malformed content is ParseError.
	Parse(name string, data []byte) (*Document, error)
}

// Linter submits canonical document text to a remote lint endpoint.
type Linter interface {
	Lint(ctx context.Context, content string) (*LintResult, error)
}

// ConfigLoader loads client configuration for a working directory.
type ConfigLoader interface {
	Load(dir string) (ClientConfig, error)
}

// RepoInfo answers questions about the git repository enclosing a path.
type RepoInfo interface {
	// Root returns the worktree root of the repository containing path.
	Root(path string) (string, error)
	CommitHash(path string) (string, error)
}

// ResultCache persists lint results between runs.
type ResultCache interface {
	// Load returns the entry for key, or (nil, nil) when there is none.
	Load(key string) (*CachedResult, error)
	Save(entry *CachedResult) error
	Clear() error
}
