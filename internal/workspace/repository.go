package workspace

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/jubbon/isolde-sub000/internal/config"
	"github.com/jubbon/isolde-sub000/internal/errors"
	"github.com/jubbon/isolde-sub000/internal/logging"
	"github.com/jubbon/isolde-sub000/internal/system"
)

// initialCommitMessage is used for the first commit in each generated
// repository.
const initialCommitMessage = "Initial commit"

// RepositoryInitializer turns generated directories into git repositories.
// All git invocations run through a CommandExecutor so tests never spawn
// git.
type RepositoryInitializer struct {
	executor system.CommandExecutor
	fs       system.FileSystem
}

// NewRepositoryInitializer returns an initializer using the default OS
// executor and filesystem.
func NewRepositoryInitializer() *RepositoryInitializer {
	return &RepositoryInitializer{
		executor: system.DefaultExecutor(),
		fs:       system.DefaultFS(),
	}
}

// NewRepositoryInitializerWith returns an initializer with explicit
// dependencies, for tests.
func NewRepositoryInitializerWith(executor system.CommandExecutor, fs system.FileSystem) *RepositoryInitializer {
	return &RepositoryInitializer{executor: executor, fs: fs}
}

// Init makes dir a git repository with an initial commit. It is idempotent:
// a directory that already has a .git and at least one commit is left
// untouched, so regeneration never rewrites history.
func (r *RepositoryInitializer) Init(ctx context.Context, dir string) error {
	if r.hasCommits(ctx, dir) {
		logging.Debug("repository already initialized", "dir", dir)
		return nil
	}

	if !r.fs.Exists(filepath.Join(dir, ".git")) {
		if out, err := r.executor.Execute(ctx, "git", "-C", dir, "init", "-q"); err != nil {
			return errors.RepositoryFailed("init", gitError(out, err))
		}
	}

	if out, err := r.executor.Execute(ctx, "git", "-C", dir, "add", "-A"); err != nil {
		return errors.RepositoryFailed("add", gitError(out, err))
	}

	if out, err := r.executor.Execute(ctx, "git", "-C", dir, "commit", "-q", "-m", initialCommitMessage); err != nil {
		return errors.RepositoryFailed("commit", gitError(out, err))
	}

	logging.Debug("initialized repository", "dir", dir)
	return nil
}

// hasCommits reports whether dir is a repository with at least one commit.
func (r *RepositoryInitializer) hasCommits(ctx context.Context, dir string) bool {
	if !r.fs.Exists(filepath.Join(dir, ".git")) {
		return false
	}
	_, err := r.executor.Execute(ctx, "git", "-C", dir, "rev-parse", "--verify", "HEAD")
	return err == nil
}

// GeneratedPaths are the generation artifacts the git.generated policy
// applies to, relative to the target directory.
var GeneratedPaths = []string{
	".devcontainer/",
}

// ApplyGeneratedPolicy renders the version-control treatment of generated
// files for a target directory. The returned map is relative path to file
// content; the caller writes (or reports) the files, so dry-run can reuse
// this. The committed policy needs no marker files and returns nothing.
func ApplyGeneratedPolicy(policy config.GeneratedPolicy) map[string][]byte {
	switch policy {
	case config.GeneratedIgnored:
		return map[string][]byte{
			".gitignore": []byte(strings.Join(GeneratedPaths, "\n") + "\n"),
		}
	case config.GeneratedLinguist:
		var b strings.Builder
		for _, p := range GeneratedPaths {
			b.WriteString(p + "** linguist-generated=true\n")
		}
		return map[string][]byte{
			".gitattributes": []byte(b.String()),
		}
	default:
		return nil
	}
}

// gitError wraps the captured output into the error chain when git printed
// anything useful.
func gitError(out []byte, err error) error {
	msg := strings.TrimSpace(string(out))
	if msg == "" {
		return err
	}
	return errors.Wrap(errors.ExitRepository, msg, err)
}
