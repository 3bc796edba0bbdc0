// Copyright (C) 2026 the Badgeware Backup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package flags

import (
	"testing"
)

func TestString(t *testing.T) {
	for i, td := range []struct {
		f    Flag
		want string
	}{
		{f: EndUser | Fatal, want: "user|fatal"},
		{f: EndUser, want: "user"},
		{f: NA, want: ""},
		{f: Flag(0x1), want: "user"},
		{f: Flag(0x2), want: "fatal"},
		{f: Flag(0x30), want: "0x30"},
		{f: Flag(0x31), want: "user|0x30"},
	} {
		s := td.f.String()
		if s != td.want {
			t.Errorf("%d 0x%x: want %s, got %s", i, int(td.f), td.want, s)
		}
	}
}
