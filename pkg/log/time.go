// Copyright (C) 2026 the Badgeware Backup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package log

//Format: yyyymmdd_hhmm
const DefaultTimestampLayout = "20060102_1504"

var TimestampLayout = DefaultTimestampLayout
