// Copyright (C) 2026 the Badgeware Backup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Package catalog lists existing backup files for user inspection. Pure read
// operation; no mutation.
package catalog

import (
	"os"
	fp "path/filepath"
	"sort"
	"strings"

	"github.com/frozenfoxx/badgeware-backup/pkg/fileutil"
	"github.com/frozenfoxx/badgeware-backup/pkg/history"
	"github.com/frozenfoxx/badgeware-backup/pkg/log"
)

//Entry is one backup file on disk.
type Entry struct {
	Path      string
	SizeBytes int64
}

//extensions recognized as backups; xz variants are compressed backups
var backupExts = []string{".uf2", ".bin", ".uf2.xz", ".bin.xz"}

func isBackupName(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range backupExts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

//List returns backup files in dir sorted by size descending. Ties keep
//enumeration order, which is not guaranteed stable. A missing dir yields an
//empty result, not an error - the user just hasn't backed up yet.
func List(dir string) ([]Entry, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var entries []Entry
	for _, de := range des {
		if de.IsDir() || !isBackupName(de.Name()) {
			continue
		}
		fi, err := de.Info()
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			Path:      fp.Join(dir, de.Name()),
			SizeBytes: fi.Size(),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].SizeBytes > entries[j].SizeBytes
	})
	return entries, nil
}

//Print writes the catalog (and the most recent ledger entry, if any) through
//the log for user inspection.
func Print(dir string) error {
	entries, err := List(dir)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		log.Msgf("no backups found in %s - run backup first", dir)
		return nil
	}
	log.Msgf("backups in %s:", dir)
	for _, e := range entries {
		log.Msgf("  %9s  %s", fileutil.ToMegs(e.SizeBytes), e.Path)
	}
	printLatest(dir)
	return nil
}

//best-effort; the ledger may not exist yet
func printLatest(dir string) {
	if _, err := os.Stat(fp.Join(dir, history.DbName)); err != nil {
		return
	}
	l, err := history.Open(dir)
	if err != nil {
		log.Logf("history: %s", err)
		return
	}
	defer l.Close()
	last, ok, err := l.Latest()
	if err != nil {
		log.Logf("history: %s", err)
		return
	}
	if ok {
		log.Msgf("last operation: %s of %s (%s) at %s",
			last.Kind, last.Path, last.Board, last.Time.Format("2006-01-02 15:04:05"))
	}
}
