// Copyright (C) 2026 the Badgeware Backup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Package backup dumps a board's flash contents to a file. The pipeline is a
// chain of hard preconditions (tool present, board known, device reachable)
// followed by one dump via the external tool; the first failure aborts the
// whole operation.
package backup

import (
	"flag"
	"fmt"
	"os"
	fp "path/filepath"
	"strings"
	"time"

	"github.com/frozenfoxx/badgeware-backup/pkg/board"
	"github.com/frozenfoxx/badgeware-backup/pkg/fileutil"
	"github.com/frozenfoxx/badgeware-backup/pkg/history"
	"github.com/frozenfoxx/badgeware-backup/pkg/log"
	"github.com/frozenfoxx/badgeware-backup/pkg/picotool"
)

//default backup directory, relative to the working dir
const DefaultDir = "backups"

//timestamp used in generated filenames
const stampLayout = "20060102-150405"

//swappable for deterministic names in tests
var now = time.Now

//Opts holds parsed command-line input for one backup run.
type Opts struct {
	Board    string
	Raw      bool
	Compress bool
	Dir      string
	Filename string //optional; used verbatim when set
	Version  bool
}

//HandleArgs parses flags and the optional positional filename.
func HandleArgs() *Opts {
	o := new(Opts)
	flag.StringVar(&o.Board, "board", string(board.Tufty),
		"target board, one of: "+strings.Join(board.Supported(), ", "))
	flag.BoolVar(&o.Raw, "raw", false,
		"raw binary dump of the flash range instead of a self-describing .uf2")
	flag.BoolVar(&o.Compress, "compress", false, "xz-compress the backup after dumping")
	flag.StringVar(&o.Dir, "dir", DefaultDir, "directory for backups, created if absent")
	flag.BoolVar(&o.Version, "v", false, "print version and exit")
	flag.Parse()
	o.Filename = flag.Arg(0)
	return o
}

//Result reports a completed backup.
type Result struct {
	Path      string
	SizeBytes int64
}

//DefaultName generates a backup filename for the given board and mode.
//Extension policy applies to generated names only; explicit filenames are
//never rewritten.
func DefaultName(id board.Id, raw bool, t time.Time) string {
	ext := "uf2"
	if raw {
		ext = "bin"
	}
	return fmt.Sprintf("%s-backup-%s.%s", id, t.Format(stampLayout), ext)
}

//Two backups within one second would otherwise silently overwrite; suffix the
//generated name instead.
func uniquePath(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}
	ext := fp.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for i := 1; ; i++ {
		cand := fmt.Sprintf("%s-%d%s", base, i, ext)
		if _, err := os.Stat(cand); os.IsNotExist(err) {
			return cand
		}
	}
}

func outputPath(o *Opts, prof *board.Profile) (path string, generated bool) {
	if o.Filename != "" {
		if fp.IsAbs(o.Filename) {
			return o.Filename, false
		}
		return fp.Join(o.Dir, o.Filename), false
	}
	return fp.Join(o.Dir, DefaultName(prof.Id, o.Raw, now())), true
}

//Run performs one backup. Device flash is read-only in this path.
func Run(o *Opts) (*Result, error) {
	tool, err := picotool.Find()
	if err != nil {
		return nil, err
	}
	prof, err := board.Resolve(o.Board)
	if err != nil {
		return nil, err
	}
	path, generated := outputPath(o, prof)
	//an absolute explicit filename may land outside o.Dir; only create the
	//dir that will actually hold the output
	outDir := fp.Dir(path)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", outDir, err)
	}
	if generated {
		path = uniquePath(path)
	}
	fileutil.WarnIfLowSpace(outDir, uint64(prof.FlashSize()))
	if err := tool.Probe(); err != nil {
		return nil, err
	}
	describe(tool, prof)
	if o.Raw {
		log.Msgf("dumping flash 0x%08x-0x%08x to %s...", prof.FlashStart, prof.FlashEnd, path)
		err = tool.SaveRange(prof.FlashStart, prof.FlashEnd, path)
	} else {
		log.Msgf("dumping program image to %s...", path)
		err = tool.SaveAll(path)
	}
	if err != nil {
		return nil, err
	}
	if o.Compress {
		path, err = fileutil.XZCompress(path)
		if err != nil {
			return nil, err
		}
	}
	res := &Result{Path: path}
	//size is for the success report only, not a correctness check
	if fi, err := os.Stat(path); err == nil {
		res.SizeBytes = fi.Size()
		log.Msgf("wrote %s (%s)", path, fileutil.ToMegs(fi.Size()))
	} else {
		log.Msgf("wrote %s (size unknown: %s)", path, err)
	}
	log.Msgf("to restore: restore --board %s %s", prof.Id, path)
	history.Note(outDir, history.Record{
		Kind:      history.KindBackup,
		Board:     string(prof.Id),
		Path:      path,
		SizeBytes: res.SizeBytes,
	})
	return res, nil
}

//best-effort device identification; failure only affects diagnostic output
func describe(tool *picotool.Tool, prof *board.Profile) {
	out, err := tool.Describe()
	if err != nil {
		log.Logf("device identification unavailable: %s", err)
		return
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) > 0 && lines[0] != "" {
		log.Msgf("device: %s (backing up as %s)", strings.TrimSpace(lines[0]), prof.Name)
	}
	log.Logf("device identification:\n%s", out)
}
