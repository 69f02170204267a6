package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// modelAliasYAML is the shape of the optional model_aliases.yaml override
// file: a flat map of requested-model-string to canonical CLI alias.
type modelAliasYAML struct {
	Aliases map[string]string `yaml:"aliases"`
}

// LoadModelAliasOverrides reads path and returns its alias map. A missing
// file is not an error — it returns an empty map, since override files
// are optional.
func LoadModelAliasOverrides(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	var doc modelAliasYAML
	if err := yaml.NewDecoder(file).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if doc.Aliases == nil {
		doc.Aliases = map[string]string{}
	}
	return doc.Aliases, nil
}

// AliasWatcher hot-reloads Config.ModelAliases whenever the override file
// named by Config.ModelAliasOverrideFile changes on disk, without requiring
// a process restart to pick up a corrected alias table.
type AliasWatcher struct {
	cfg     *Config
	watcher *fsnotify.Watcher
	mu      sync.Mutex
	stop    chan struct{}
}

// WatchModelAliasOverrides starts watching cfg.ModelAliasOverrideFile for
// changes. The watch is best-effort: if the file's directory cannot be
// watched (e.g. it doesn't exist yet), the returned error is non-nil and
// the caller may ignore it — the static table loaded at Load() time still
// applies.
func WatchModelAliasOverrides(cfg *Config) (*AliasWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	dir := "."
	if idx := strings.LastIndex(cfg.ModelAliasOverrideFile, "/"); idx >= 0 {
		dir = cfg.ModelAliasOverrideFile[:idx]
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	aw := &AliasWatcher{cfg: cfg, watcher: w, stop: make(chan struct{})}
	go aw.loop()
	return aw, nil
}

func (aw *AliasWatcher) loop() {
	for {
		select {
		case ev, ok := <-aw.watcher.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(ev.Name, aw.cfg.ModelAliasOverrideFile) && !strings.HasSuffix(aw.cfg.ModelAliasOverrideFile, ev.Name) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			aliases, err := LoadModelAliasOverrides(aw.cfg.ModelAliasOverrideFile)
			if err != nil {
				continue // keep the previously loaded table on a bad edit
			}
			aw.mu.Lock()
			base := defaultModelAliases()
			for k, v := range aliases {
				base[strings.ToLower(k)] = v
			}
			aw.cfg.ModelAliases = base
			aw.mu.Unlock()
		case _, ok := <-aw.watcher.Errors:
			if !ok {
				return
			}
		case <-aw.stop:
			return
		}
	}
}

// Close stops the watch.
func (aw *AliasWatcher) Close() error {
	close(aw.stop)
	return aw.watcher.Close()
}
