// Copyright (C) 2026 the Badgeware Backup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package testlog

import (
	"fmt"
	"os/exec"

	"github.com/frozenfoxx/badgeware-backup/pkg/log"
)

//represents a Cmd in CmdMap
type Key string

//generates key for given command
func CmdKey(args ...string) Key {
	k := ""
	for _, arg := range args {
		k += fmt.Sprintf("%s|", arg)
	}
	return Key(k)
}

//execution result
type Result struct {
	Res     string
	Success bool
}

//data for use with UseMappedCmdHijacker
type HijackerData struct {
	Result   Result                      //if NoRun is false and Fn is nil, this is updated with result on each run
	RunCount int                         //number of times the command has been invoked
	NoRun    bool                        //if true, returns already-stored Result without running
	Fn       func(cmd *exec.Cmd) Result //if set, called in place of running; Result stored
}

//map passed to UseMappedCmdHijacker
type CmdMap map[Key]HijackerData

//Using a map of commands, either record results or replay given results.
//Commands absent from the map run for real. Limitation: not able to return
//different results for different exec's of a given command.
func (tlog *TstLog) UseMappedCmdHijacker(m CmdMap) {
	log.Cmd = func(cmd *exec.Cmd) (res string, success bool) {
		tlog.t.Helper()
		key := CmdKey(cmd.Args...)
		log.Logf("Running %v...", cmd.Args)
		data := m[key]
		data.RunCount++
		switch {
		case data.Fn != nil:
			data.Result = data.Fn(cmd)
			res, success = data.Result.Res, data.Result.Success
		case data.NoRun:
			res, success = data.Result.Res, data.Result.Success
		default:
			out, err := cmd.CombinedOutput()
			res = string(out)
			if err == nil {
				success = true
			} else {
				log.Logf("Running %v: error %s\noutput:\n%s\n", cmd.Args, err, string(out))
			}
			data.Result.Res, data.Result.Success = res, success
		}
		//update
		m[key] = data
		return
	}
}
