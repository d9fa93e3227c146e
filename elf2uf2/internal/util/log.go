// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"flag"

	"github.com/golang/glog"
)

// SetupLog directs the glog output to stderr. Verbose enables the V(1)
// diagnostic messages.
func SetupLog(verbose bool) glog.Verbose {
	flag.Set("logtostderr", "true")
	if verbose {
		flag.Set("v", "1")
	}
	return glog.V(1)
}
