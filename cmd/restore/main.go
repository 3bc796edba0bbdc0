// Copyright (C) 2026 the Badgeware Backup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Command restore writes a backup image into the flash of an RP2350-based
// badge board in USB bootloader mode, via the external picotool binary.
//
//	restore [-board tufty|blinky|badger] [-no-reboot] [-dir backups] <backupFile>
//	restore -list [-dir backups]
//
// Restoring overwrites the device's flash; back up first.
package main

import (
	"fmt"

	"github.com/frozenfoxx/badgeware-backup/pkg/catalog"
	"github.com/frozenfoxx/badgeware-backup/pkg/log"
	"github.com/frozenfoxx/badgeware-backup/pkg/log/flags"
	"github.com/frozenfoxx/badgeware-backup/pkg/restore"
)

//in any binary with main.buildId string, it is set at compile time to $BUILD_INFO
var buildId string

func main() {
	log.AddConsoleLog(flags.NA)
	log.FlushMemLog()

	opts := restore.HandleArgs()
	if opts.Version {
		fmt.Printf("build %s\n", buildId)
		return
	}
	if opts.List {
		if err := catalog.Print(opts.Dir); err != nil {
			log.Fatalf("listing %s: %s", opts.Dir, err)
		}
		return
	}
	if _, err := restore.Run(opts); err != nil {
		log.Fatalf("restore failed: %s", err)
	}
}
