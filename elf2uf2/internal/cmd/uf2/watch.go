// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uf2

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/golang/glog"

	"github.com/embeddedgo/elf2uf2/elf2uf2/internal/util"
)

// The linker writes the ELF file in many chunks. Wait for a quiet period
// before converting it.
const settleTime = 200 * time.Millisecond

// watchFile calls run once and then every time the file name is rewritten.
// It watches the directory because the linker may replace the file.
func watchFile(name string, run func()) {
	watcher, err := fsnotify.NewWatcher()
	util.FatalErr("watch", err)
	defer watcher.Close()
	util.FatalErr("watch", watcher.Add(filepath.Dir(name)))
	name = filepath.Clean(name)

	run()
	timer := time.NewTimer(settleTime)
	timer.Stop()
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				glog.Warning("watcher.Events closed")
				return
			}
			glog.V(1).Infof("watcher event: %v", event)
			if filepath.Clean(event.Name) == name &&
				event.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				timer.Reset(settleTime)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				glog.Warning("watcher.Errors closed")
				return
			}
			glog.Warning("watcher error: ", err)
		case <-timer.C:
			run()
		}
	}
}
