// Copyright (C) 2026 the Badgeware Backup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Package restore writes a backup image back into a board's flash. This is
// destructive and irreversible; no automatic backup-before-restore is taken
// and no verification pass runs after writing.
package restore

import (
	"flag"
	"fmt"
	"os"
	fp "path/filepath"
	"strings"

	"github.com/frozenfoxx/badgeware-backup/pkg/backup"
	"github.com/frozenfoxx/badgeware-backup/pkg/board"
	"github.com/frozenfoxx/badgeware-backup/pkg/fileutil"
	"github.com/frozenfoxx/badgeware-backup/pkg/history"
	"github.com/frozenfoxx/badgeware-backup/pkg/log"
	"github.com/frozenfoxx/badgeware-backup/pkg/picotool"
)

//A required command-line argument was not supplied.
type MissingArgumentError struct {
	Name string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("missing required argument <%s> (or use -list to see existing backups)", e.Name)
}

//The backup file to restore does not exist or is not a regular file.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("backup file %s does not exist", e.Path)
}

//Format of a backup file's contents.
type Format int

const (
	//self-describing container; carries its own addressing
	FormatContainer Format = iota
	//address-less byte dump, loaded at the board's flash start
	FormatRaw
)

func (f Format) String() string {
	if f == FormatContainer {
		return "uf2 container"
	}
	return "raw image"
}

//DetectFormat infers the format from the file extension, case-insensitively.
//A trailing .xz (compressed backup) is ignored. Unrecognized extensions are
//not rejected - they degrade to raw-mode best-effort, with known=false so the
//caller can warn.
func DetectFormat(path string) (f Format, known bool) {
	name := strings.ToLower(path)
	name = strings.TrimSuffix(name, ".xz")
	switch fp.Ext(name) {
	case ".uf2":
		return FormatContainer, true
	case ".bin":
		return FormatRaw, true
	}
	return FormatRaw, false
}

//Opts holds parsed command-line input for one restore run.
type Opts struct {
	Board    string
	List     bool
	NoReboot bool
	Dir      string
	File     string
	Version  bool
}

//HandleArgs parses flags and the positional backup file path.
func HandleArgs() *Opts {
	o := new(Opts)
	flag.StringVar(&o.Board, "board", string(board.Tufty),
		"target board, one of: "+strings.Join(board.Supported(), ", "))
	flag.BoolVar(&o.List, "list", false, "list existing backups and exit")
	flag.BoolVar(&o.NoReboot, "no-reboot", false, "leave the device in bootloader mode afterward")
	flag.StringVar(&o.Dir, "dir", backup.DefaultDir, "backup directory, used by -list")
	flag.BoolVar(&o.Version, "v", false, "print version and exit")
	flag.Parse()
	o.File = flag.Arg(0)
	return o
}

//Result reports a completed restore.
type Result struct {
	Path   string
	Format Format
}

//Run performs one restore. A reboot failure after a successful flash write is
//reported but does not fail the operation - the write is the success
//criterion.
func Run(o *Opts) (*Result, error) {
	tool, err := picotool.Find()
	if err != nil {
		return nil, err
	}
	prof, err := board.Resolve(o.Board)
	if err != nil {
		return nil, err
	}
	if o.File == "" {
		return nil, &MissingArgumentError{Name: "backupFile"}
	}
	if !fileutil.IsRegular(o.File) {
		return nil, &FileNotFoundError{Path: o.File}
	}
	format, known := DetectFormat(o.File)
	if !known {
		log.Msgf("warning: unrecognized extension on %s - treating as raw image", o.File)
	}
	if err := tool.Probe(); err != nil {
		return nil, err
	}
	loadPath := o.File
	if fileutil.IsXZ(o.File) {
		log.Logf("decompressing %s...", o.File)
		tmp, err := fileutil.XZDecompressTemp(o.File)
		if err != nil {
			return nil, err
		}
		defer os.Remove(tmp)
		loadPath = tmp
	}
	log.Msgf("writing %s to %s as %s...", o.File, prof.Name, format)
	if format == FormatContainer {
		err = tool.Load(loadPath)
	} else {
		err = tool.LoadRaw(loadPath, prof.FlashStart)
	}
	if err != nil {
		return nil, err
	}
	log.Msgf("flash write complete")
	if o.NoReboot {
		log.Logf("skipping reboot per -no-reboot")
	} else if err := tool.Reboot(); err != nil {
		log.Msgf("reboot failed (flash write already succeeded): %s", err)
	}
	//ledger lives next to the restored file; -dir only matters for -list
	history.Note(fp.Dir(o.File), history.Record{
		Kind:  history.KindRestore,
		Board: string(prof.Id),
		Path:  o.File,
	})
	return &Result{Path: o.File, Format: format}, nil
}
