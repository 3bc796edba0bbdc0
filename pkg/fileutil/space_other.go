// Copyright (C) 2026 the Badgeware Backup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

//go:build !linux

package fileutil

import (
	"errors"
)

//Free-space probing is only implemented for linux; callers treat an error as
//"unknown" and continue.
func AvailableBytes(path string) (uint64, error) {
	return 0, errors.New("free space probing unsupported on this platform")
}
