// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/AntonC9018/command-terminal/internal/config"
)

// reloadDebounce coalesces the write bursts editors produce when
// saving a file.
const reloadDebounce = 250 * time.Millisecond

// =============================================================================
// CONFIG WATCHER
// =============================================================================

// ConfigWatcher reloads the config file when it changes on disk and
// applies the settings that can change mid-session: the prompt and
// the error strictness. Capacity and persistence settings need a
// restart and are left alone.
type ConfigWatcher struct {
	path    string
	sess    *Session
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// watchConfig starts watching the config file's directory. Watching
// the directory rather than the file survives the rename-over-save
// pattern most editors use.
func watchConfig(path string, sess *Session) (*ConfigWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	cw := &ConfigWatcher{
		path:    path,
		sess:    sess,
		watcher: watcher,
		done:    make(chan struct{}),
	}
	go cw.loop()
	return cw, nil
}

func (cw *ConfigWatcher) loop() {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(cw.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
				fire = timer.C
			} else {
				timer.Reset(reloadDebounce)
			}

		case <-fire:
			timer = nil
			fire = nil
			cw.reload()

		case _, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}

		case <-cw.done:
			return
		}
	}
}

func (cw *ConfigWatcher) reload() {
	cfg, err := config.Load(cw.path)
	if err != nil {
		// A half-written or invalid file keeps the current settings.
		return
	}
	cw.sess.applyReload(cfg)
}

// Close stops the watcher.
func (cw *ConfigWatcher) Close() error {
	close(cw.done)
	return cw.watcher.Close()
}
