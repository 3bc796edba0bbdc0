// Copyright (C) 2026 the Badgeware Backup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package log_test

import (
	"strings"
	"testing"

	"github.com/frozenfoxx/badgeware-backup/pkg/log"
	"github.com/frozenfoxx/badgeware-backup/pkg/log/flags"
)

func TestMemLogRetainsEntries(t *testing.T) {
	log.DefaultLogStack()
	defer log.DefaultLogStack()
	log.Msgf("user message %d", 1)
	log.Logf("technical detail")
	entries := log.StoredEntries()
	if len(entries) != 2 {
		t.Fatalf("got %d entries", len(entries))
	}
	if entries[0].Flags != flags.EndUser {
		t.Errorf("first entry flags %v", entries[0].Flags)
	}
	if !strings.Contains(entries[0].String(), "user message 1") {
		t.Errorf("entry String() = %q", entries[0].String())
	}
	if !strings.HasPrefix(entries[0].String(), "-- ") {
		t.Errorf("end-user divider missing: %q", entries[0].String())
	}
	if !strings.HasPrefix(entries[1].String(), "*- ") {
		t.Errorf("technical divider missing: %q", entries[1].String())
	}
}

func TestNoDuplicateLoggers(t *testing.T) {
	log.DefaultLogStack()
	defer log.DefaultLogStack()
	if err := log.AddMemLog(); err == nil {
		t.Error("duplicate memLog accepted")
	}
}

func TestFlushMemLog(t *testing.T) {
	log.DefaultLogStack()
	defer log.DefaultLogStack()
	log.AddConsoleLog(flags.EndUser)
	log.FlushMemLog()
	if log.InStack(log.MemLogIdent) {
		t.Error("memLog still in stack")
	}
	if !log.InStack(log.ConsoleLogIdent) {
		t.Error("consoleLog missing from stack")
	}
}
