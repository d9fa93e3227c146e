// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/golang/glog"
)

func Warn(f string, args ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", args...)
}

func Fatal(f string, args ...any) {
	glog.Flush()
	fmt.Fprintf(os.Stderr, f+"\n", args...)
	os.Exit(1)
}

// FatalErr prints an error description and exits the program if the
// err != nil.
func FatalErr(what string, err error) {
	if err == nil {
		return
	}
	s := err.Error() + "\n"
	if what != "" {
		s = what + ": " + s
	}
	glog.Flush()
	os.Stderr.WriteString(s)
	os.Exit(1)
}

// DirName returns the last element of the path to the current working
// directory.
func DirName() string {
	dir, err := os.Getwd()
	FatalErr("", err)
	dir = filepath.Base(dir)
	if dir == "/" || dir == "." {
		dir = ""
	}
	return dir
}

// Module returns the last element of the module path of the Go module in
// the current directory. Embedded Go builds name the ELF file this way.
func Module() string {
	out, err := exec.Command("go", "env", "GOMOD").Output()
	FatalErr("", err)
	gomod := filepath.Clean(string(bytes.TrimRightFunc(out, unicode.IsSpace)))
	if gomod == "" || gomod == os.DevNull {
		Fatal("go.mod file not found in current directory or any parent directory")
	}
	f, err := os.Open(gomod)
	FatalErr("", err)
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fs := bytes.Fields(sc.Bytes())
		if len(fs) >= 2 && string(fs[0]) == "module" {
			return filepath.Base(string(fs[1]))
		}
	}
	if err := sc.Err(); err != nil {
		FatalErr("", err)
	}
	Fatal("there is no module directive in " + gomod)
	return ""
}

// InOutFiles infers the name of the input and output files from the name of the
// current working directory if the inName is an empty strings.
func InOutFiles(inName, inSuffix, outName, outSuffix string) (string, string) {
	if inName == "" {
		fs, err := os.Stat("go.mod")
		if err != nil || !fs.Mode().IsRegular() {
			inName = DirName()
		} else {
			inName = Module()
		}
		inName += inSuffix
	}
	if outName == "" {
		outName = strings.TrimSuffix(inName, inSuffix) + outSuffix
	}
	return inName, outName
}
