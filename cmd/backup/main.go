// Copyright (C) 2026 the Badgeware Backup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Command backup dumps the entire flash contents of an RP2350-based badge
// board (Tufty, Blinky, Badger) in USB bootloader mode to a file, via the
// external picotool binary.
//
//	backup [-board tufty|blinky|badger] [-raw] [-compress] [-dir backups] [filename]
package main

import (
	"fmt"

	"github.com/frozenfoxx/badgeware-backup/pkg/backup"
	"github.com/frozenfoxx/badgeware-backup/pkg/log"
	"github.com/frozenfoxx/badgeware-backup/pkg/log/flags"
)

//in any binary with main.buildId string, it is set at compile time to $BUILD_INFO
var buildId string

func main() {
	log.AddConsoleLog(flags.NA)
	log.FlushMemLog()

	opts := backup.HandleArgs()
	if opts.Version {
		fmt.Printf("build %s\n", buildId)
		return
	}
	if _, err := backup.Run(opts); err != nil {
		log.Fatalf("backup failed: %s", err)
	}
}
