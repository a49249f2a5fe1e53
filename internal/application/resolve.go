package application

import (
	"os"
	"path/filepath"

	"github.com/travislint/travislint/internal/domain"
)

// FileResolver decides which file a lint run reads.
type FileResolver struct {
	repo domain.RepoInfo
}

func NewFileResolver(repo domain.RepoInfo) *FileResolver {
	return &FileResolver{repo: repo}
}

// Resolve returns requested unchanged when it is set. Otherwise it returns
// defaultFile under workDir, falling back to defaultFile at the root of the
// enclosing git worktree when workDir has none.
func (r *FileResolver) Resolve(workDir, requested, defaultFile string) string {
	if requested != "" {
		return requested
	}
	if defaultFile == "" {
		defaultFile = domain.DefaultFile
	}
	if filepath.IsAbs(defaultFile) {
		return defaultFile
	}

	local := filepath.Join(workDir, defaultFile)
	if fileExists(local) || r.repo == nil {
		return local
	}

	root, err := r.repo.Root(workDir)
	if err != nil {
		return local
	}
	if atRoot := filepath.Join(root, defaultFile); fileExists(atRoot) {
		return atRoot
	}
	return local
}

// Revision returns the abbreviated HEAD commit of the repository containing
// path, or "" outside a repository.
func (r *FileResolver) Revision(path string) string {
	if r.repo == nil {
		return ""
	}
	hash, err := r.repo.CommitHash(filepath.Dir(path))
	if err != nil {
		return ""
	}
	if len(hash) > 7 {
		hash = hash[:7]
	}
	return hash
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
