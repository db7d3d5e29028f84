package render

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/inful/mdfp"
	"golang.org/x/sync/errgroup"

	ferrors "git.home.luguber.info/inful/symdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/symdoc/internal/graph"
)

// Writer writes pages into an output directory, skipping files whose content
// fingerprint already matches.
type Writer struct {
	dir         string
	concurrency int
	// OnWrite, when set, is called after every page with skipped reporting
	// an unchanged file. It must be safe for concurrent use.
	OnWrite func(skipped bool)
}

// NewWriter returns a Writer for dir running up to concurrency writes.
func NewWriter(dir string, concurrency int) *Writer {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Writer{dir: dir, concurrency: concurrency}
}

// WriteStats counts the outcome of a batch of writes.
type WriteStats struct {
	Written   int
	Unchanged int
}

// Write stores content at name (a slash separated path inside the output
// directory).
func (w *Writer) Write(name string, content []byte) (skipped bool, err error) {
	dest := filepath.Join(w.dir, filepath.FromSlash(name))
	if existing, err := os.ReadFile(dest); err == nil { //nolint:gosec // path is built from the output directory
		if fingerprint(existing) == fingerprint(content) {
			w.notify(true)
			return true, nil
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, ferrors.WrapError(err, ferrors.CategoryFileSystem, "read existing page").
			WithContext("path", dest).
			Build()
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		return false, ferrors.WrapError(err, ferrors.CategoryFileSystem, "create page directory").
			WithContext("path", dest).
			Retryable().
			Build()
	}
	if err := os.WriteFile(dest, content, 0o644); err != nil { //nolint:gosec // pages are world readable
		return false, ferrors.WrapError(err, ferrors.CategoryFileSystem, "write page").
			WithContext("path", dest).
			Retryable().
			Build()
	}
	w.notify(false)
	return false, nil
}

func (w *Writer) notify(skipped bool) {
	if w.OnWrite != nil {
		w.OnWrite(skipped)
	}
}

func fingerprint(content []byte) string {
	return mdfp.CalculateFingerprintFromParts("", string(content))
}

// RenderPages renders and writes every standalone page of the bound graph.
// The first failure cancels the remaining work.
func (s *Site) RenderPages(ctx context.Context, w *Writer) (WriteStats, error) {
	var written, unchanged atomic.Int64

	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(w.concurrency)
	for _, n := range s.g.Pages() {
		grp.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return s.renderOne(n, w, &written, &unchanged)
		})
	}
	err := grp.Wait()
	return WriteStats{Written: int(written.Load()), Unchanged: int(unchanged.Load())}, err
}

func (s *Site) renderOne(n *graph.Node, w *Writer, written, unchanged *atomic.Int64) error {
	page, err := s.RenderPage(n)
	if err != nil {
		return err
	}
	skipped, err := w.Write(n.Page(), page)
	if err != nil {
		return err
	}
	if skipped {
		unchanged.Add(1)
	} else {
		written.Add(1)
	}
	return nil
}
