// Copyright (C) 2026 the Badgeware Backup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

//Package fileutil contains various utility functions useful for dealing with
//files and dirs.
package fileutil

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/frozenfoxx/badgeware-backup/pkg/log"
)

var (
	xzId = [6]byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00} // fd 37 7a 58 5a 00 -> xz archive
)

//return n bytes from beginning of file
func ReadHeader(fname string, n int64) (head []byte, err error) {
	f, err := os.Open(fname)
	if err != nil {
		return
	}
	defer f.Close()
	head, err = io.ReadAll(io.LimitReader(f, n))
	if int64(len(head)) < n {
		return nil, io.ErrUnexpectedEOF
	}
	return
}

//checks for XZ header
func IsXZ(fname string) bool {
	head, err := ReadHeader(fname, int64(len(xzId)))
	if err != nil {
		return false
	}
	return bytes.Equal(head, xzId[:])
}

const oneM = 1024.0 * 1024.0

//Converts a size in bytes to megabytes; returns string with suffix 'MB'.
func ToMegs(size int64) string {
	return fmt.Sprintf("%.2fMB", float64(size)/oneM)
}

//Returns true if given path exists and is a regular file.
func IsRegular(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

//Logs a warning if the filesystem containing dir has less than want bytes
//available. Never fatal - capacity probing is best-effort.
func WarnIfLowSpace(dir string, want uint64) {
	avail, err := AvailableBytes(dir)
	if err != nil {
		log.Logf("cannot determine free space in %s: %s", dir, err)
		return
	}
	if avail < want {
		log.Msgf("warning: only %s free in %s, flash dump needs up to %s",
			ToMegs(int64(avail)), dir, ToMegs(int64(want)))
	}
}
