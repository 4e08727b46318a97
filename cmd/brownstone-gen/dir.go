package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// watchDebounce coalesces bursts of events for one spec (editors often
// write, chmod and rename in quick succession).
const watchDebounce = 100 * time.Millisecond

// skipDir reports directories never searched for specs.
func skipDir(name string) bool {
	return name == "vendor" || name == "testdata" || (len(name) > 1 && strings.HasPrefix(name, "."))
}

// findSpecs returns every spec file under root in lexical order.
func findSpecs(root string) ([]string, error) {
	var specs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if isSpecFile(path) {
			specs = append(specs, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(specs)
	return specs, nil
}

// generateDir generates every spec under root with at most workers running
// at once. The first failure cancels generations not yet started.
func generateDir(ctx context.Context, root string, workers int, log *zap.Logger) error {
	specs, err := findSpecs(root)
	if err != nil {
		return err
	}
	if len(specs) == 0 {
		log.Warn("no spec files found", zap.String("dir", root))
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, spec := range specs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return generateFile(spec, outPathFor(spec), log)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	log.Debug("directory generated", zap.String("dir", root), zap.Int("specs", len(specs)))
	return nil
}

// watchDir regenerates specs under root as they change until ctx is done.
// Generation errors are logged, not returned, so one bad edit does not end
// the session.
func watchDir(ctx context.Context, root string, log *zap.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	if err := addTree(w, root); err != nil {
		return err
	}
	log.Info("watching", zap.String("dir", root))

	pending := map[string]struct{}{}
	timer := time.NewTimer(watchDebounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if st, err := os.Stat(ev.Name); err == nil && st.IsDir() && !skipDir(st.Name()) {
					if err := addTree(w, ev.Name); err != nil {
						log.Warn("watch add failed", zap.String("dir", ev.Name), zap.Error(err))
					}
					continue
				}
			}
			if !isSpecFile(ev.Name) || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			pending[ev.Name] = struct{}{}
			timer.Reset(watchDebounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", zap.Error(err))

		case <-timer.C:
			regenerate(pending, log)
			clear(pending)
		}
	}
}

func regenerate(specs map[string]struct{}, log *zap.Logger) {
	paths := make([]string, 0, len(specs))
	for p := range specs {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		if err := generateFile(p, outPathFor(p), log); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				log.Debug("spec removed before regeneration", zap.String("spec", p))
				continue
			}
			log.Error("generation failed", zap.String("spec", p), zap.Error(err))
		}
	}
}

// addTree watches root and every searchable directory below it.
func addTree(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}
