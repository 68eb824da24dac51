package main

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settle is how long the tree must be quiet before a reload.
const settle = 200 * time.Millisecond

// watch calls reload after changes below dir settle, until ctx is done.
// Hidden folders are not watched when skipHidden is set.
func watch(ctx context.Context, dir string, skipHidden bool, reload func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()
	if err = addTree(w, dir, skipHidden); err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	var (
		timer *time.Timer
		fire  = make(chan struct{}, 1)
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			// fsnotify is not recursive, so new folders need their own watches.
			if ev.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					if err := addTree(w, ev.Name, skipHidden); err != nil {
						log.Printf("watch: %s", err)
					}
				}
			}
			if timer == nil {
				timer = time.AfterFunc(settle, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(settle)
			}
		case <-fire:
			reload()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch: %s", err)
		}
	}
}

// addTree watches dir and the folders below it.
func addTree(w *fsnotify.Watcher, dir string, skipHidden bool) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if skipHidden && p != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.Add(p)
	})
}
