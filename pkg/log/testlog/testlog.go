// Copyright (C) 2026 the Badgeware Backup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Package testlog hijacks the output of pkg/log, and can hijack log.Cmd(). By
// default this output prints through testing functions but it can be stored
// in a buffer as well - for example, for analysis as part of the test.
//
// Cmd() hijacking (via UseMappedCmdHijacker) is used to test code paths that
// would otherwise require a flashing tool and a device in bootloader mode.
package testlog

import (
	"bytes"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/frozenfoxx/badgeware-backup/pkg/log"
	"github.com/frozenfoxx/badgeware-backup/pkg/log/flags"
)

//Conforms to log.StackableLogger. Constructed via NewTestLog().
type TstLog struct {
	t             *testing.T    //log here if Buf is nil
	Buf           *bytes.Buffer //if non-nil, Msgf()/Logf() output goes here
	MsgCount      int           //counts number of calls to log.Msgf()
	LogCount      int           //counts number of calls to log.Logf()
	FatalCount    int           //counts number of calls to log.Fatalf()
	FatalIsNotErr bool          //if true, do not call t.Errorf() for Fatalf()
	freeze        bool          //do not write any more to Buf
	stderr        bool          //also immediately write to stderr
	mu            sync.Mutex
}

//Returns a new TstLog. If bufferLog is true, logging goes to a buffer rather
//than passing directly to t.Log()/t.Error(). Do not share one TstLog between
//tests - create a new one each time.
func NewTestLog(t *testing.T, bufferLog, stderr bool) (tlog *TstLog) {
	tlog = &TstLog{
		t:      t,
		stderr: stderr,
	}
	if bufferLog {
		tlog.Buf = new(bytes.Buffer)
	}
	log.NewLogStack(tlog)
	log.SetFatalAction(log.FailAction{Terminator: func() {}})
	log.Cmd = log.DefaultCmd
	return
}

var _ log.StackableLogger = (*TstLog)(nil)

const stampMilli = "15:04:05.000" //like time.StampMilli, but leaves off date

func (tlog *TstLog) AddEntry(e log.LogEntry) {
	tlog.mu.Lock()
	defer tlog.mu.Unlock()
	if tlog.freeze {
		return
	}
	switch e.Flags {
	case flags.EndUser:
		tlog.MsgCount++
		e.Msg = "MSG:" + e.Msg
	case flags.Fatal:
		tlog.FatalCount++
		e.Msg = ">>FATAL()<< " + e.Msg
		if !tlog.FatalIsNotErr {
			tlog.t.Errorf("@%s: "+e.Msg, e.Time.Format(stampMilli), e.Args)
			return
		}
	default:
		tlog.LogCount++
		e.Msg = "LOG:" + e.Msg
	}
	f := "@" + e.Time.Format(stampMilli) + ": " + e.Msg + "\n"
	if tlog.stderr {
		fmt.Fprintf(os.Stderr, f, e.Args...)
	}
	if tlog.Buf != nil {
		fmt.Fprintf(tlog.Buf, e.Msg+"\n", e.Args...)
	} else {
		tlog.t.Logf(f, e.Args...)
	}
}

const TstLogIdent = "tstLog"

func (*TstLog) Ident() string                      { return TstLogIdent }
func (tl *TstLog) Next() log.StackableLogger       { return nil }
func (*TstLog) Finalize()                          {}
func (tl *TstLog) ForwardTo(_ log.StackableLogger) {}

//call at end of test (or before inspecting Buf) to restore log defaults and
//prevent further writes
func (tlog *TstLog) Freeze() {
	tlog.mu.Lock()
	freeze := tlog.freeze
	tlog.mu.Unlock()
	if freeze {
		return
	}
	log.DefaultLogStack()
	log.SetFatalAction(log.DefaultFatal)
	log.Cmd = log.DefaultCmd

	tlog.mu.Lock()
	defer tlog.mu.Unlock()
	tlog.freeze = true
}

// just calls testing.T.Errorf
func (tlog *TstLog) TstErrf(f string, va ...interface{}) { tlog.t.Errorf(f, va...) }

//just calls testing.T.Logf
func (tlog *TstLog) TstLogf(f string, va ...interface{}) { tlog.t.Logf(f, va...) }
