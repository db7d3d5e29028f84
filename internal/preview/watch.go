package preview

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/symdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/symdoc/internal/logfields"
)

// watch rebuilds the site whenever one of the watched files changes. Parent
// directories are watched so editors that replace files by rename are seen.
func (s *Server) watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "create file watcher").Build()
	}
	defer func() { _ = watcher.Close() }()

	targets, err := watchTargets(s.opts.WatchPaths)
	if err != nil {
		return err
	}
	dirs := make(map[string]struct{})
	for p := range targets {
		dirs[filepath.Dir(p)] = struct{}{}
	}
	for d := range dirs {
		if err := watcher.Add(d); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "watch directory").WithContext("dir", d).Build()
		}
	}

	rebuildReq, trigger, stop := newDebouncer(s.opts.Debounce)
	defer stop()
	go s.rebuildWorker(ctx, rebuildReq)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if relevantEvent(ev, targets) {
				slog.Debug("Watched file changed", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
				trigger()
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("File watcher error", logfields.Error(werr))
		}
	}
}

func watchTargets(paths []string) (map[string]struct{}, error) {
	out := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		if p == "" || p == "-" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "resolve watch path").WithContext("path", p).Build()
		}
		out[abs] = struct{}{}
	}
	return out, nil
}

func relevantEvent(ev fsnotify.Event, targets map[string]struct{}) bool {
	if ev.Op == fsnotify.Chmod || shouldIgnoreEvent(ev.Name) {
		return false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	_, ok := targets[abs]
	return ok
}

// shouldIgnoreEvent filters editor swap and backup files.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)
	switch {
	case strings.HasSuffix(base, "~"),
		strings.HasSuffix(base, ".swp"),
		strings.HasSuffix(base, ".swx"),
		strings.HasPrefix(base, ".#"),
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#"),
		base == ".DS_Store":
		return true
	}
	return false
}

// newDebouncer returns a channel that receives one request after bursts of
// trigger calls settle for d.
func newDebouncer(d time.Duration) (<-chan struct{}, func(), func()) {
	req := make(chan struct{}, 1)
	var mu sync.Mutex
	var timer *time.Timer
	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, func() {
			select {
			case req <- struct{}{}:
			default:
			}
		})
	}
	stop := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}
	return req, trigger, stop
}

// rebuildWorker serializes rebuilds. Requests arriving during a build are
// coalesced into one follow-up build by the buffered request channel.
func (s *Server) rebuildWorker(ctx context.Context, req <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-req:
			start := time.Now()
			if err := s.Rebuild(ctx); err == nil {
				slog.Info("Rebuilt site", logfields.Duration(time.Since(start)))
			}
		}
	}
}
