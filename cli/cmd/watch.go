package cmd

import (
	"context"
	"log/slog"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ardnew/ngen/log"
	"github.com/ardnew/ngen/pkg"
)

// Watch regenerates the output file whenever a manifest changes.
type Watch struct {
	Source `embed:""`

	Output   string        `help:"Output file."                                 required:"" short:"o" type:"path"`
	Debounce time.Duration `default:"200ms" help:"Quiet period before regenerating."`

	// done, if set, is called after each regeneration attempt.
	done func(error)
}

// Run executes the watch command. It returns when ctx is canceled.
func (w *Watch) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return pkg.ErrWatch.Wrap(err)
	}
	defer watcher.Close()

	files := make([]string, 0, len(w.Manifests))
	dirs := make([]string, 0, len(w.Manifests))

	for _, m := range w.Manifests {
		abs, err := filepath.Abs(m)
		if err != nil {
			return pkg.ErrWatch.Wrap(err)
		}

		files = append(files, abs)

		// Editors often replace files by renaming over them, which drops
		// a watch on the file itself. Watch the directory instead.
		if dir := filepath.Dir(abs); !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return pkg.ErrWatch.Wrapf("%s", dir).Wrap(err)
		}
	}

	w.regenerate(ctx)

	timer := time.NewTimer(w.Debounce)
	timer.Stop()

	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !w.relevant(files, ev) {
				continue
			}

			log.DebugContext(ctx, "manifest changed",
				slog.String("path", ev.Name),
				slog.String("op", ev.Op.String()),
			)

			timer.Reset(w.Debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			log.WarnContext(ctx, "watch error", slog.Any("error", pkg.ErrWatch.Wrap(err)))

		case <-timer.C:
			w.regenerate(ctx)
		}
	}
}

func (w *Watch) relevant(files []string, ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}

	name, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}

	return slices.Contains(files, name)
}

// regenerate rebuilds the output file. Failures are logged and the
// previous output is left in place.
func (w *Watch) regenerate(ctx context.Context) {
	err := w.generateTo(ctx)
	if err != nil {
		log.ErrorContext(ctx, "regenerate failed", slog.Any("error", err))
	} else {
		log.InfoContext(ctx, "regenerated build file", slog.String("path", w.Output))
	}

	if w.done != nil {
		w.done(err)
	}
}

func (w *Watch) generateTo(ctx context.Context) error {
	doc, err := w.generate(ctx)
	if err != nil {
		return err
	}

	return writeFile(ctx, w.Output, doc)
}
