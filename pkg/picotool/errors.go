// Copyright (C) 2026 the Badgeware Backup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package picotool

import (
	"fmt"
	"strings"
)

//The flashing tool binary is not installed or not on PATH.
type ToolNotFoundError struct {
	Name string
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("%s not found in PATH - install picotool, or point %s at it", e.Name, EnvTool)
}

//No device answered the probe. The message includes the bootloader-entry
//gesture since the precondition cannot be fixed programmatically.
type DeviceNotFoundError struct {
	Cause error
}

func (e *DeviceNotFoundError) Error() string {
	return "no device in BOOTSEL mode - hold the BOOTSEL button while connecting USB (or while pressing RESET), then retry"
}

func (e *DeviceNotFoundError) Unwrap() error { return e.Cause }

//A tool invocation exited non-zero. Output is passed through verbatim; this
//program does not interpret or retry tool failures.
type ExternalToolError struct {
	Args   []string
	Output string
}

func (e *ExternalToolError) Error() string {
	msg := fmt.Sprintf("%s failed", strings.Join(e.Args, " "))
	if e.Output != "" {
		msg += ":\n" + e.Output
	}
	return msg
}
