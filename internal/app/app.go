// Package app implements the application layer for psync.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/psync/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/psync/internal/core/domain"
	"go.trai.ch/psync/internal/core/ports"
	"go.trai.ch/psync/internal/ui/style"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	locator      ports.ProjectLocator
	manifests    ports.ManifestStore
	walker       ports.SourceWalker
	watcher      ports.Watcher
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	locator ports.ProjectLocator,
	manifests ports.ManifestStore,
	walker ports.SourceWalker,
	watch ports.Watcher,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		locator:      locator,
		manifests:    manifests,
		walker:       walker,
		watcher:      watch,
		logger:       log,
	}
}

// Add tracks the given paths in their nearest project manifests. Directory
// arguments are expanded through the source walker; explicitly named files
// whose extension has no configured item kind are skipped with a warning.
func (a *App) Add(_ context.Context, paths []string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	for _, path := range a.expand(cfg, paths) {
		kind, ok := cfg.KindFor(path)
		if !ok {
			a.logger.Warn(fmt.Sprintf("skipping %s: no item kind for extension %q", path, filepath.Ext(path)))
			continue
		}
		if err := a.addFile(cfg, path, kind); err != nil {
			return err
		}
	}

	return nil
}

// Remove untracks the given files from their nearest project manifests.
// Removing a file that is not tracked is an error.
func (a *App) Remove(_ context.Context, paths []string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	for _, path := range paths {
		if err := a.removeFile(cfg, path); err != nil {
			return err
		}
	}

	return nil
}

// Move retracks a file under a new path. When both paths resolve to the same
// manifest the item element is renamed in place, keeping its metadata
// children; otherwise the item moves between manifests.
func (a *App) Move(_ context.Context, from, to string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	fromRef, err := a.locator.Locate(from, cfg.ProjectGlob)
	if err != nil {
		return err
	}
	toRef, err := a.locator.Locate(to, cfg.ProjectGlob)
	if err != nil {
		return err
	}

	if fromRef.Path == toRef.Path {
		return a.renameIn(fromRef, from, to)
	}

	// Cross-manifest move: drop the item from the old project, then track
	// the new path in its own project.
	fromManifest, err := a.manifests.Get(fromRef.Path)
	if err != nil {
		return err
	}
	fromInclude, err := includePath(fromRef, from)
	if err != nil {
		return err
	}
	if err := a.removeInclude(fromManifest, fromRef, fromInclude); err != nil {
		return err
	}

	kind, ok := cfg.KindFor(to)
	if !ok {
		a.logger.Warn(fmt.Sprintf("skipping %s: no item kind for extension %q", to, filepath.Ext(to)))
		return nil
	}
	return a.addTo(toRef, to, kind)
}

// Check reports whether path is tracked and by which manifest.
func (a *App) Check(_ context.Context, path string) (domain.ProjectRef, bool, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return domain.ProjectRef{}, false, err
	}

	ref, err := a.locator.Locate(path, cfg.ProjectGlob)
	if err != nil {
		return domain.ProjectRef{}, false, err
	}

	m, err := a.manifests.Get(ref.Path)
	if err != nil {
		return domain.ProjectRef{}, false, err
	}

	include, err := includePath(ref, path)
	if err != nil {
		return domain.ProjectRef{}, false, err
	}

	return ref, m.Contains(include), nil
}

// Listing is the result of List: the resolved manifest, its items in
// document order, and optionally the mapped files on disk the manifest does
// not reference.
type Listing struct {
	Project   domain.ProjectRef
	Items     []domain.Item
	Untracked []string
}

// ListOptions configuration for the List method.
type ListOptions struct {
	Untracked bool
}

// List enumerates the items of the manifest nearest to start.
func (a *App) List(_ context.Context, start string, opts ListOptions) (Listing, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return Listing{}, err
	}

	ref, err := a.locator.Locate(start, cfg.ProjectGlob)
	if err != nil {
		return Listing{}, err
	}

	m, err := a.manifests.Get(ref.Path)
	if err != nil {
		return Listing{}, err
	}

	listing := Listing{Project: ref, Items: m.Items()}

	if opts.Untracked {
		for path := range a.walker.WalkFiles(ref.Dir(), cfg.ExcludeDirs) {
			if _, ok := cfg.KindFor(path); !ok {
				continue
			}
			include, relErr := includePath(ref, path)
			if relErr != nil {
				continue
			}
			if m.Contains(include) {
				continue
			}
			listing.Untracked = append(listing.Untracked, include)
		}
	}

	return listing, nil
}

// Init writes a starter configuration file into the working directory.
func (a *App) Init(_ context.Context, cwd string) error {
	path, err := a.configLoader.Init(cwd)
	if err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("created %s", path))
	return nil
}

// Watch mirrors filesystem changes under root into the nearest manifests
// until the context is cancelled. Created files are tracked, removed or
// renamed-away files are untracked, and content writes are ignored.
func (a *App) Watch(ctx context.Context, root string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return zerr.Wrap(err, "failed to resolve watch root")
	}

	if err := a.watcher.Start(ctx, abs, cfg.ExcludeDirs); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWatchFailed.Error()), "root", abs)
	}

	a.logger.Info(fmt.Sprintf("watching %s (debounce %s)", abs, cfg.Watch.Debounce))

	// Batches apply one at a time: the debounce timer goroutine and the
	// shutdown flush both funnel through syncMu.
	var syncMu sync.Mutex
	debouncer := watcher.NewDebouncer(cfg.Watch.Debounce, func(events []ports.WatchEvent) {
		syncMu.Lock()
		defer syncMu.Unlock()
		a.syncBatch(cfg, events)
	})

	g, gctx := errgroup.WithContext(ctx)

	// Event pump: membership only changes on create, remove, and rename.
	g.Go(func() error {
		for event := range a.watcher.Events() {
			if event.Op == ports.OpWrite {
				continue
			}
			debouncer.Add(event)
		}
		return nil
	})

	// Shutdown: flush pending work, then release the watcher.
	g.Go(func() error {
		<-gctx.Done()
		debouncer.Flush()
		return a.watcher.Stop()
	})

	if err := g.Wait(); err != nil {
		return err
	}

	// Events pumped after the first flush may still be pending.
	debouncer.Flush()
	return nil
}

// syncBatch applies one debounced batch of events in path order. Failures
// are logged and do not stop the watch loop.
func (a *App) syncBatch(cfg *domain.Config, events []ports.WatchEvent) {
	slices.SortFunc(events, func(x, y ports.WatchEvent) int {
		return strings.Compare(x.Path, y.Path)
	})

	for _, event := range events {
		if err := a.syncEvent(cfg, event); err != nil {
			a.logger.Error(err)
		}
	}
}

// syncEvent maps a single filesystem event onto a manifest mutation. Paths
// outside any project and files that were never tracked are quietly skipped:
// under a watched tree those are routine, not failures.
func (a *App) syncEvent(cfg *domain.Config, event ports.WatchEvent) error {
	switch event.Op {
	case ports.OpCreate:
		info, err := os.Stat(event.Path)
		if err != nil || info.IsDir() {
			// Directories never appear in manifests; a file already gone
			// again is handled by its own remove event.
			return nil
		}
		kind, ok := cfg.KindFor(event.Path)
		if !ok {
			return nil
		}
		ref, err := a.locator.Locate(event.Path, cfg.ProjectGlob)
		if err != nil {
			return nil
		}
		return a.addTo(ref, event.Path, kind)

	case ports.OpRemove, ports.OpRename:
		ref, err := a.locator.Locate(event.Path, cfg.ProjectGlob)
		if err != nil {
			return nil
		}
		m, err := a.manifests.Get(ref.Path)
		if err != nil {
			return err
		}
		include, err := includePath(ref, event.Path)
		if err != nil {
			return err
		}
		if !m.Contains(include) {
			return nil
		}
		return a.removeInclude(m, ref, include)

	case ports.OpWrite:
	}

	return nil
}

// loadConfig resolves the effective configuration from the working directory.
func (a *App) loadConfig() (*domain.Config, error) {
	cfg, err := a.configLoader.Load(".")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return cfg, nil
}

// expand resolves directory arguments into the mapped files beneath them.
// Files named explicitly pass through unfiltered so the caller can warn
// about unmapped extensions.
func (a *App) expand(cfg *domain.Config, paths []string) []string {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			files = append(files, path)
			continue
		}
		for file := range a.walker.WalkFiles(path, cfg.ExcludeDirs) {
			if _, ok := cfg.KindFor(file); ok {
				files = append(files, file)
			}
		}
	}
	return files
}

// addFile tracks a single file in its nearest manifest.
func (a *App) addFile(cfg *domain.Config, path, kind string) error {
	ref, err := a.locator.Locate(path, cfg.ProjectGlob)
	if err != nil {
		return err
	}
	return a.addTo(ref, path, kind)
}

// addTo tracks a single file in the given manifest. Adding an item that is
// already present is a no-op.
func (a *App) addTo(ref domain.ProjectRef, path, kind string) error {
	m, err := a.manifests.Get(ref.Path)
	if err != nil {
		return err
	}

	include, err := includePath(ref, path)
	if err != nil {
		return err
	}

	if !m.Add(domain.Item{Kind: kind, Include: include}) {
		a.logger.Info(fmt.Sprintf("%s already tracked in %s", include, ref.Name))
		return nil
	}

	if err := a.manifests.Save(m); err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("%s %s → %s", style.Plus, include, ref.Name))
	return nil
}

// removeFile untracks a single file from its nearest manifest.
func (a *App) removeFile(cfg *domain.Config, path string) error {
	ref, err := a.locator.Locate(path, cfg.ProjectGlob)
	if err != nil {
		return err
	}

	m, err := a.manifests.Get(ref.Path)
	if err != nil {
		return err
	}

	include, err := includePath(ref, path)
	if err != nil {
		return err
	}

	return a.removeInclude(m, ref, include)
}

// removeInclude deletes an item from the manifest and saves it.
func (a *App) removeInclude(m ports.Manifest, ref domain.ProjectRef, include string) error {
	if err := m.Remove(include); err != nil {
		return err
	}

	if err := a.manifests.Save(m); err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("%s %s → %s", style.Minus, include, ref.Name))
	return nil
}

// renameIn rewrites the include of an item inside one manifest, preserving
// the element and its metadata children.
func (a *App) renameIn(ref domain.ProjectRef, from, to string) error {
	m, err := a.manifests.Get(ref.Path)
	if err != nil {
		return err
	}

	fromInclude, err := includePath(ref, from)
	if err != nil {
		return err
	}
	toInclude, err := includePath(ref, to)
	if err != nil {
		return err
	}

	if err := m.Rename(fromInclude, toInclude); err != nil {
		return err
	}

	if err := a.manifests.Save(m); err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("%s → %s in %s", fromInclude, toInclude, ref.Name))
	return nil
}

// includePath derives the manifest include for a source path: relative to
// the manifest's directory, in backslash convention.
func includePath(ref domain.ProjectRef, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", zerr.Wrap(err, "failed to resolve source path")
	}

	rel, err := filepath.Rel(ref.Dir(), abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", zerr.With(domain.ErrPathOutsideProject, "path", path)
	}

	return domain.ToInclude(rel), nil
}
