// Copyright (C) 2026 the Badgeware Backup Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Package history records details about backup/restore operations performed,
// in a small embedded db under the backup dir. Recording is best-effort:
// callers use Note(), which logs failures but never propagates them - the
// flash operation's outcome is what decides a pipeline's exit status.
package history

import (
	"encoding/json"
	fp "path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/frozenfoxx/badgeware-backup/pkg/log"

	"github.com/google/uuid"
	"github.com/prologic/bitcask"
)

type Kind string

const (
	KindBackup  Kind = "backup"
	KindRestore Kind = "restore"
)

//name of the db dir inside the backup dir
const DbName = ".history"

//Record describes one completed operation.
type Record struct {
	Id        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Board     string    `json:"board"`
	Path      string    `json:"path"`
	SizeBytes int64     `json:"size,omitempty"`
	Time      time.Time `json:"time"`
}

//Ledger is an open history db. All entries stored as json, one per key.
type Ledger struct {
	bc *bitcask.Bitcask
	sync.Mutex
}

//Open opens (creating if needed) the ledger under dir.
func Open(dir string) (*Ledger, error) {
	bc, err := bitcask.Open(fp.Join(dir, DbName))
	if err != nil {
		return nil, err
	}
	return &Ledger{bc: bc}, nil
}

func (l *Ledger) Close() error {
	l.Lock()
	defer l.Unlock()
	return l.bc.Close()
}

//Append stores a record, assigning an id and timestamp if unset.
func (l *Ledger) Append(r Record) error {
	if r.Id == "" {
		r.Id = uuid.New().String()
	}
	if r.Time.IsZero() {
		r.Time = time.Now()
	}
	v, err := json.Marshal(&r)
	if err != nil {
		return err
	}
	l.Lock()
	defer l.Unlock()
	return l.bc.Put([]byte(r.Id), v)
}

//Records returns all records, oldest first. Entries that fail to decode are
//skipped.
func (l *Ledger) Records() ([]Record, error) {
	l.Lock()
	defer l.Unlock()
	var recs []Record
	for k := range l.bc.Keys() {
		v, err := l.bc.Get(k)
		if err != nil {
			return nil, err
		}
		var r Record
		if err := json.Unmarshal(v, &r); err != nil {
			continue
		}
		recs = append(recs, r)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Time.Before(recs[j].Time) })
	return recs, nil
}

//Latest returns the most recent record, if any.
func (l *Ledger) Latest() (Record, bool, error) {
	recs, err := l.Records()
	if err != nil || len(recs) == 0 {
		return Record{}, false, err
	}
	return recs[len(recs)-1], true, nil
}

//Note appends a record to the ledger under dir, logging (not returning) any
//failure.
func Note(dir string, r Record) {
	l, err := Open(dir)
	if err != nil {
		log.Logf("history: %s", err)
		return
	}
	defer l.Close()
	if err := l.Append(r); err != nil {
		log.Logf("history: %s", err)
	}
}
