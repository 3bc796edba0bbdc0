// Copyright (C) 2026 the Badgeware Backup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Package board contains data on the supported RP2350 boards.
//
// All boards of the current hardware generation share one flash layout; the
// profiles differ only in display hardware and label strings. A single static
// table suffices - boards are plain immutable values, not subtypes.
package board

import (
	"fmt"
	"strings"
)

//board identifier, as accepted on the command line
type Id string

const (
	Tufty  Id = "tufty"
	Blinky Id = "blinky"
	Badger Id = "badger"
)

//flash geometry shared by all supported boards
const (
	FlashStart uint32 = 0x10000000
	FlashEnd   uint32 = 0x11000000
)

//Profile describes a particular supported board.
type Profile struct {
	Id         Id
	Name       string //display name, for messages
	Screen     string //display hardware, informational only
	FlashStart uint32 //first flash address
	FlashEnd   uint32 //one past the last flash address
}

//FlashSize returns the size of the board's flash region in bytes.
func (p *Profile) FlashSize() uint32 { return p.FlashEnd - p.FlashStart }

//in the order flags/help text should list them
var registry = []Profile{
	{Id: Tufty, Name: "Tufty 2350", Screen: "320x240 IPS LCD", FlashStart: FlashStart, FlashEnd: FlashEnd},
	{Id: Blinky, Name: "Blinky 2350", Screen: "LED matrix", FlashStart: FlashStart, FlashEnd: FlashEnd},
	{Id: Badger, Name: "Badger 2350", Screen: "296x128 e-ink", FlashStart: FlashStart, FlashEnd: FlashEnd},
}

//Supported returns the ids of all supported boards.
func Supported() []string {
	var ids []string
	for i := range registry {
		ids = append(ids, string(registry[i].Id))
	}
	return ids
}

//Returned by Resolve for ids not in the registry. The message enumerates the
//supported set so the user can self-correct.
type UnknownBoardError struct {
	Id string
}

func (e *UnknownBoardError) Error() string {
	return fmt.Sprintf("unknown board %q - supported boards: %s", e.Id, strings.Join(Supported(), ", "))
}

//Resolve maps a board id to its profile. The id is lowercased before lookup.
//Pure function over static data; no side effects.
func Resolve(id string) (*Profile, error) {
	norm := strings.ToLower(strings.TrimSpace(id))
	for i := range registry {
		if string(registry[i].Id) == norm {
			return &registry[i], nil
		}
	}
	return nil, &UnknownBoardError{Id: id}
}
