// Copyright (C) 2026 the Badgeware Backup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package testlog

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"
)

//a function that returns true if 'in' should be included in entries compared
type LineFilterer func(in string) (match bool)

//filter passing only calls to Msgf()
func FilterMsg() LineFilterer { return FilterPfx("MSG:") }

//filter passing only calls to Logf()
func FilterLog() LineFilterer { return FilterPfx("LOG:") }

//filter passing only lines with given prefix (note MSG:/LOG: added by Msgf/Logf)
func FilterPfx(pfx string) LineFilterer {
	return func(in string) bool { return strings.HasPrefix(in, pfx) }
}

//filter passing only calls to Logf, with given prefix
func FilterLogPfx(pfx string) LineFilterer { return FilterPfx("LOG:" + pfx) }

//filter passing only calls to Msgf, with given prefix
func FilterMsgPfx(pfx string) LineFilterer { return FilterPfx("MSG:" + pfx) }

//filter with given regex
func FilterRe(re string) LineFilterer {
	rx, err := regexp.Compile(re)
	if err != nil {
		panic(err)
	}
	return func(in string) bool {
		return rx.MatchString(in)
	}
}

//Filter buffered log using lf as test. Return matches. Freezes the log; the
//buffer itself is left intact so several filters can run against one test.
//Assumes each entry is a single line.
func (tlog *TstLog) Filter(lf LineFilterer) []string {
	tlog.Freeze()
	tlog.mu.Lock()
	defer tlog.mu.Unlock()
	if tlog.Buf == nil {
		tlog.t.Error("nil buffer")
		return nil
	}
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(tlog.Buf.Bytes()))
	for scanner.Scan() {
		if lf(scanner.Text()) {
			lines = append(lines, scanner.Text())
		}
	}
	return lines
}

//Filters log buffer, comparing remaining lines to want. Assumes each entry is
//a single line.
func (tlog *TstLog) LinesMustMatch(lf LineFilterer, want []string) {
	tlog.t.Helper()
	filtered := tlog.Filter(lf)
	if len(filtered) != len(want) {
		tlog.t.Errorf("len mismatch - got %d want %d\ngot: %#v", len(filtered), len(want), filtered)
		return
	}
	for i, l := range filtered {
		if l != want[i] {
			tlog.t.Errorf("\n got %s\nwant %s", l, want[i])
		}
	}
}

//Fails the test unless at least one buffered line contains substr.
func (tlog *TstLog) MustContain(substr string) {
	tlog.t.Helper()
	lines := tlog.Filter(func(in string) bool { return strings.Contains(in, substr) })
	if len(lines) == 0 {
		tlog.t.Errorf("no log line contains %q", substr)
	}
}
