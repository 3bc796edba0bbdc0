// Copyright (C) 2026 the Badgeware Backup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Badgeware-backup duplicates and restores the flash contents of RP2350-based
// badge boards over USB while they are in BOOTSEL mode. The USB protocol and
// UF2 handling are delegated to the external picotool binary; this module
// provides the backup/restore orchestration, a board registry, a backup
// catalog and an operation history.
//
// See cmd/backup and cmd/restore for the two command-line entry points.
package badgeware
