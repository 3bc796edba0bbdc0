// Copyright (C) 2026 the Badgeware Backup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package backup

import (
	"errors"
	"os"
	"os/exec"
	fp "path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/frozenfoxx/badgeware-backup/pkg/board"
	"github.com/frozenfoxx/badgeware-backup/pkg/log/testlog"
	"github.com/frozenfoxx/badgeware-backup/pkg/picotool"
)

const toolPath = "/usr/bin/picotool"

var tstTime = time.Date(2026, 8, 25, 10, 30, 0, 0, time.UTC)

func setup(t *testing.T, lookPathErr error) *testlog.TstLog {
	t.Helper()
	tlog := testlog.NewTestLog(t, true, false)
	t.Cleanup(tlog.Freeze)
	prevLp := picotool.LookPath
	picotool.LookPath = func(string) (string, error) {
		if lookPathErr != nil {
			return "", lookPathErr
		}
		return toolPath, nil
	}
	prevNow := now
	now = func() time.Time { return tstTime }
	t.Cleanup(func() {
		picotool.LookPath = prevLp
		now = prevNow
	})
	return tlog
}

func TestDefaultName(t *testing.T) {
	for _, td := range []struct {
		raw  bool
		want string
	}{
		{raw: false, want: "badger-backup-20260825-103000.uf2"},
		{raw: true, want: "badger-backup-20260825-103000.bin"},
	} {
		got := DefaultName(board.Badger, td.raw, tstTime)
		if got != td.want {
			t.Errorf("raw=%t: got %s want %s", td.raw, got, td.want)
		}
	}
}

func TestExplicitFilenameVerbatim(t *testing.T) {
	setup(t, nil)
	dir := t.TempDir()
	for _, raw := range []bool{false, true} {
		o := &Opts{Board: "tufty", Raw: raw, Dir: dir, Filename: "golden.img"}
		prof, err := board.Resolve(o.Board)
		if err != nil {
			t.Fatal(err)
		}
		path, generated := outputPath(o, prof)
		if generated {
			t.Error("explicit filename flagged as generated")
		}
		if path != fp.Join(dir, "golden.img") {
			t.Errorf("raw=%t: got %s", raw, path)
		}
	}
}

func TestUniquePath(t *testing.T) {
	dir := t.TempDir()
	path := fp.Join(dir, "tufty-backup-20260825-103000.uf2")
	if got := uniquePath(path); got != path {
		t.Errorf("fresh path altered: %s", got)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	want := fp.Join(dir, "tufty-backup-20260825-103000-1.uf2")
	if got := uniquePath(path); got != want {
		t.Errorf("got %s want %s", got, want)
	}
}

func TestRunToolMissing(t *testing.T) {
	setup(t, exec.ErrNotFound)
	_, err := Run(&Opts{Board: "tufty", Dir: t.TempDir()})
	tnf := &picotool.ToolNotFoundError{}
	if !errors.As(err, &tnf) {
		t.Fatalf("want ToolNotFoundError, got %v", err)
	}
}

func TestRunUnknownBoard(t *testing.T) {
	setup(t, nil)
	_, err := Run(&Opts{Board: "pico", Dir: t.TempDir()})
	ube := &board.UnknownBoardError{}
	if !errors.As(err, &ube) {
		t.Fatalf("want UnknownBoardError, got %v", err)
	}
}

func TestRunDeviceMissing(t *testing.T) {
	tlog := setup(t, nil)
	dir := t.TempDir()
	outPath := fp.Join(dir, "tufty-backup-20260825-103000.uf2")
	m := testlog.CmdMap{
		testlog.CmdKey(toolPath, "info"):              {NoRun: true, Result: testlog.Result{Success: false}},
		testlog.CmdKey(toolPath, "save", "-a", outPath): {NoRun: true, Result: testlog.Result{Success: true}},
	}
	tlog.UseMappedCmdHijacker(m)
	_, err := Run(&Opts{Board: "tufty", Dir: dir})
	dnf := &picotool.DeviceNotFoundError{}
	if !errors.As(err, &dnf) {
		t.Fatalf("want DeviceNotFoundError, got %v", err)
	}
	if n := m[testlog.CmdKey(toolPath, "save", "-a", outPath)].RunCount; n != 0 {
		t.Errorf("dump ran %d times despite missing device", n)
	}
}

func TestRunContainerBackup(t *testing.T) {
	tlog := setup(t, nil)
	dir := t.TempDir()
	outPath := fp.Join(dir, "badger-backup-20260825-103000.uf2")
	info := testlog.HijackerData{NoRun: true, Result: testlog.Result{Res: "Badger 2350 rev B\nflash size: 16MB", Success: true}}
	m := testlog.CmdMap{
		testlog.CmdKey(toolPath, "info"): info,
		testlog.CmdKey(toolPath, "save", "-a", outPath): {
			Fn: func(cmd *exec.Cmd) testlog.Result {
				if err := os.WriteFile(outPath, make([]byte, 1024), 0644); err != nil {
					t.Fatal(err)
				}
				return testlog.Result{Success: true}
			},
		},
	}
	tlog.UseMappedCmdHijacker(m)
	res, err := Run(&Opts{Board: "Badger", Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	if res.Path != outPath {
		t.Errorf("path %s want %s", res.Path, outPath)
	}
	if res.SizeBytes != 1024 {
		t.Errorf("size %d", res.SizeBytes)
	}
	tlog.MustContain("--board badger " + outPath)
	tlog.MustContain("Badger 2350 rev B")
}

func TestRunRawBackup(t *testing.T) {
	tlog := setup(t, nil)
	dir := t.TempDir()
	outPath := fp.Join(dir, "tufty-backup-20260825-103000.bin")
	m := testlog.CmdMap{
		testlog.CmdKey(toolPath, "info"): {NoRun: true, Result: testlog.Result{Res: "RP2350", Success: true}},
		testlog.CmdKey(toolPath, "save", "-r", "0x10000000", "0x11000000", outPath): {
			NoRun: true, Result: testlog.Result{Success: true},
		},
	}
	tlog.UseMappedCmdHijacker(m)
	res, err := Run(&Opts{Board: "tufty", Raw: true, Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	if res.Path != outPath {
		t.Errorf("path %s", res.Path)
	}
	//tool hijacked away, so no file; size is best-effort only
	if res.SizeBytes != 0 {
		t.Errorf("size %d", res.SizeBytes)
	}
	k := testlog.CmdKey(toolPath, "save", "-r", "0x10000000", "0x11000000", outPath)
	if m[k].RunCount != 1 {
		t.Errorf("range dump ran %d times", m[k].RunCount)
	}
}

func TestRunCompressedBackup(t *testing.T) {
	tlog := setup(t, nil)
	dir := t.TempDir()
	outPath := fp.Join(dir, "tufty-backup-20260825-103000.bin")
	m := testlog.CmdMap{
		testlog.CmdKey(toolPath, "info"): {NoRun: true, Result: testlog.Result{Res: "RP2350", Success: true}},
		testlog.CmdKey(toolPath, "save", "-r", "0x10000000", "0x11000000", outPath): {
			Fn: func(cmd *exec.Cmd) testlog.Result {
				if err := os.WriteFile(outPath, make([]byte, 4096), 0644); err != nil {
					t.Fatal(err)
				}
				return testlog.Result{Success: true}
			},
		},
	}
	tlog.UseMappedCmdHijacker(m)
	res, err := Run(&Opts{Board: "tufty", Raw: true, Compress: true, Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(res.Path, ".bin.xz") {
		t.Errorf("path %s", res.Path)
	}
	if _, err := os.Stat(outPath); !os.IsNotExist(err) {
		t.Error("uncompressed dump left behind")
	}
	if res.SizeBytes <= 0 {
		t.Errorf("size %d", res.SizeBytes)
	}
}

//an absolute explicit filename bypasses -dir entirely; -dir must not be
//created as a side effect
func TestRunAbsoluteFilenameSkipsDir(t *testing.T) {
	tlog := setup(t, nil)
	unusedDir := fp.Join(t.TempDir(), "unused")
	outPath := fp.Join(t.TempDir(), "golden.uf2")
	m := testlog.CmdMap{
		testlog.CmdKey(toolPath, "info"):                {NoRun: true, Result: testlog.Result{Res: "RP2350", Success: true}},
		testlog.CmdKey(toolPath, "save", "-a", outPath): {NoRun: true, Result: testlog.Result{Success: true}},
	}
	tlog.UseMappedCmdHijacker(m)
	res, err := Run(&Opts{Board: "tufty", Dir: unusedDir, Filename: outPath})
	if err != nil {
		t.Fatal(err)
	}
	if res.Path != outPath {
		t.Errorf("path %s want %s", res.Path, outPath)
	}
	if _, err := os.Stat(unusedDir); !os.IsNotExist(err) {
		t.Errorf("%s created despite absolute output path", unusedDir)
	}
}

func TestRunToolFailureSurfaced(t *testing.T) {
	tlog := setup(t, nil)
	dir := t.TempDir()
	outPath := fp.Join(dir, "tufty-backup-20260825-103000.uf2")
	const toolSays = "ERROR: USB transfer failed"
	m := testlog.CmdMap{
		testlog.CmdKey(toolPath, "info"):              {NoRun: true, Result: testlog.Result{Res: "RP2350", Success: true}},
		testlog.CmdKey(toolPath, "save", "-a", outPath): {NoRun: true, Result: testlog.Result{Res: toolSays, Success: false}},
	}
	tlog.UseMappedCmdHijacker(m)
	_, err := Run(&Opts{Board: "tufty", Dir: dir})
	ete := &picotool.ExternalToolError{}
	if !errors.As(err, &ete) {
		t.Fatalf("want ExternalToolError, got %v", err)
	}
	if !strings.Contains(err.Error(), toolSays) {
		t.Errorf("tool output not passed through: %s", err)
	}
}
