// Copyright (C) 2026 the Badgeware Backup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Package picotool wraps the external flashing tool that performs the actual
// USB bootloader protocol exchange. Every operation is a blocking subprocess
// run through log.Cmd, so execs are logged and can be hijacked by testlog.
//
// The USB protocol, flash erase/program semantics and the UF2 container
// format all live in the tool; this package only builds command lines and
// classifies failures.
package picotool

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/frozenfoxx/badgeware-backup/pkg/log"

	"github.com/google/shlex"
)

const (
	//overrides the tool binary name/path
	EnvTool = "BWBACKUP_PICOTOOL"
	//extra args appended to every invocation, shell-style quoting
	EnvToolArgs = "BWBACKUP_PICOTOOL_ARGS"

	defaultTool = "picotool"
)

//Swappable for tests, like log.Cmd.
var LookPath = exec.LookPath

//Tool is a located flashing tool binary plus any user-supplied extra args.
type Tool struct {
	path  string
	extra []string
}

//Find locates the flashing tool, honoring EnvTool/EnvToolArgs. Fails with
//ToolNotFoundError when the binary is absent.
func Find() (*Tool, error) {
	name := os.Getenv(EnvTool)
	if name == "" {
		name = defaultTool
	}
	path, err := LookPath(name)
	if err != nil {
		return nil, &ToolNotFoundError{Name: name}
	}
	var extra []string
	if v := os.Getenv(EnvToolArgs); v != "" {
		extra, err = shlex.Split(v)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", EnvToolArgs, err)
		}
	}
	return &Tool{path: path, extra: extra}, nil
}

//Path of the located binary.
func (t *Tool) Path() string { return t.path }

func (t *Tool) run(args ...string) (string, error) {
	all := append(append([]string{}, args...), t.extra...)
	cmd := exec.Command(t.path, all...)
	out, ok := log.Cmd(cmd)
	if !ok {
		return out, &ExternalToolError{Args: cmd.Args, Output: strings.TrimSpace(out)}
	}
	return out, nil
}

//Probe returns nil iff a supported device is present in bootloader mode.
//Used as the precondition check before any destructive operation. Note the
//check races with the operation itself - a disconnect in between surfaces as
//an ExternalToolError from that operation instead.
func (t *Tool) Probe() error {
	if _, err := t.run("info"); err != nil {
		return &DeviceNotFoundError{Cause: err}
	}
	return nil
}

//Describe returns the tool's human-readable device identification. Callers
//treat failure as non-fatal; it only affects diagnostic output.
func (t *Tool) Describe() (string, error) {
	return t.run("info")
}

func hexAddr(a uint32) string { return fmt.Sprintf("0x%08x", a) }

//SaveRange dumps the address range [start, end) to outPath as a raw image.
func (t *Tool) SaveRange(start, end uint32, outPath string) error {
	_, err := t.run("save", "-r", hexAddr(start), hexAddr(end), outPath)
	return err
}

//SaveAll dumps the entire addressable image to outPath in the tool's
//self-describing container format.
func (t *Tool) SaveAll(outPath string) error {
	_, err := t.run("save", "-a", outPath)
	return err
}

//Load writes a container-format file; addressing is encoded in the file.
func (t *Tool) Load(inPath string) error {
	_, err := t.run("load", inPath)
	return err
}

//LoadRaw writes raw bytes starting at the given flash address.
func (t *Tool) LoadRaw(inPath string, start uint32) error {
	_, err := t.run("load", "-o", hexAddr(start), inPath)
	return err
}

//Reboot resets the device out of bootloader mode.
func (t *Tool) Reboot() error {
	_, err := t.run("reboot")
	return err
}
