package git

import (
	stderrors "errors"
	"log/slog"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"git.home.luguber.info/inful/symdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/symdoc/internal/logfields"
)

// ShortLength is the number of hex digits of an abbreviated commit hash.
const ShortLength = 8

// Revision describes the checked out state of a repository.
type Revision struct {
	Commit string
	Branch string
	Dirty  bool
}

// Short returns the abbreviated commit hash, with a "-dirty" suffix for a
// modified worktree.
func (r Revision) Short() string {
	s := r.Commit
	if len(s) > ShortLength {
		s = s[:ShortLength]
	}
	if r.Dirty {
		s += "-dirty"
	}
	return s
}

// ErrNotRepository is returned when no repository contains the path.
var ErrNotRepository = stderrors.New("not inside a git repository")

// ReadRevision opens the repository containing path (searching parent
// directories) and reports its HEAD.
func ReadRevision(path string) (Revision, error) {
	repository, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if stderrors.Is(err, git.ErrRepositoryNotExists) {
			return Revision{}, errors.WrapError(ErrNotRepository, errors.CategoryNotFound, "open repository").
				WithContext("path", path).
				Build()
		}
		return Revision{}, errors.WrapError(err, errors.CategoryFileSystem, "open repository").
			WithContext("path", path).
			Build()
	}

	ref, err := repository.Head()
	if err != nil {
		// A repository without commits has an unborn HEAD.
		if stderrors.Is(err, plumbing.ErrReferenceNotFound) {
			return Revision{}, errors.WrapError(err, errors.CategoryNotFound, "repository has no commits").
				WithContext("path", path).
				Build()
		}
		return Revision{}, errors.WrapError(err, errors.CategoryFileSystem, "read HEAD").
			WithContext("path", path).
			Build()
	}

	rev := Revision{Commit: ref.Hash().String()}
	if ref.Name().IsBranch() {
		rev.Branch = ref.Name().Short()
	}

	if wt, err := repository.Worktree(); err == nil {
		if status, err := wt.Status(); err == nil {
			rev.Dirty = !status.IsClean()
		} else {
			slog.Debug("Worktree status unavailable", logfields.Path(path), logfields.Error(err))
		}
	}
	return rev, nil
}
