// Copyright (C) 2026 the Badgeware Backup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package testlog

import (
	"os/exec"
	"testing"

	"github.com/frozenfoxx/badgeware-backup/pkg/log"
)

func TestUseMappedCmdHijacker(t *testing.T) {
	m := make(CmdMap)
	tlog := NewTestLog(t, true, false)
	defer tlog.Freeze()
	tlog.UseMappedCmdHijacker(m)

	tru := exec.Command("true")
	res, success := log.Cmd(tru)
	if !success {
		t.Log(res)
		t.Errorf("failed")
	}
	if m[CmdKey(tru.Args...)].RunCount != 1 {
		t.Errorf("bad count - %#v", m)
	}

	//canned result, command does not run
	b := exec.Command("badcommand", "blah")
	m[CmdKey(b.Args...)] = HijackerData{
		Result: Result{Success: true, Res: "fake output"},
		NoRun:  true,
	}
	res, success = log.Cmd(b)
	if !success || res != "fake output" {
		t.Errorf("bad result %t %q", success, res)
	}
	if m[CmdKey(b.Args...)].RunCount != 1 {
		t.Errorf("bad count - %#v", m)
	}

	//Fn result
	f := exec.Command("fncommand")
	m[CmdKey(f.Args...)] = HijackerData{
		Fn: func(cmd *exec.Cmd) Result {
			return Result{Success: false, Res: "fn says no"}
		},
	}
	res, success = log.Cmd(f)
	if success || res != "fn says no" {
		t.Errorf("bad result %t %q", success, res)
	}
}

func TestCounts(t *testing.T) {
	tlog := NewTestLog(t, true, false)
	log.Msgf("one")
	log.Logf("two")
	log.Logf("three")
	tlog.Freeze()
	if tlog.MsgCount != 1 || tlog.LogCount != 2 {
		t.Errorf("counts %d/%d", tlog.MsgCount, tlog.LogCount)
	}
	tlog.LinesMustMatch(FilterMsg(), []string{"MSG:one"})
}

func TestFatalCounted(t *testing.T) {
	tlog := NewTestLog(t, true, false)
	tlog.FatalIsNotErr = true
	log.Fatalf("boom %d", 7)
	tlog.Freeze()
	if tlog.FatalCount != 1 {
		t.Errorf("FatalCount %d", tlog.FatalCount)
	}
}
