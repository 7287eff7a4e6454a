// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package logging

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"iter"
	"time"

	"github.com/cosnicolaou/timezone/rules"
)

type logEntry struct {
	Time     time.Time `json:"time"`
	Level    string    `json:"level"`
	Msg      string    `json:"msg"`
	Mod      string    `json:"mod"`
	Zone     string    `json:"zone"`
	Domain   string    `json:"domain"`
	Year     int       `json:"year"`
	DSTUTC   int64     `json:"dst-utc"`
	STDUTC   int64     `json:"std-utc"`
	DSTLocal int64     `json:"dst-local"`
	STDLocal int64     `json:"std-local"`
	Store    string    `json:"store"`
	Bytes    int       `json:"bytes"`
	DST      string    `json:"dst"`
	STD      string    `json:"std"`
	Err      string    `json:"err"`
}

// Entry represents a single parsed log line.
type Entry struct {
	logEntry

	DSTUTC   rules.Instant
	STDUTC   rules.Instant
	DSTLocal rules.Instant
	STDLocal rules.Instant
	Err      error
	LogEntry string // Original log line
}

func ParseLogLine(line string) (Entry, error) {
	var le Entry
	le.LogEntry = line
	if err := json.Unmarshal([]byte(line), &le.logEntry); err != nil {
		return le, err
	}
	le.DSTUTC = rules.Instant(le.logEntry.DSTUTC)
	le.STDUTC = rules.Instant(le.logEntry.STDUTC)
	le.DSTLocal = rules.Instant(le.logEntry.DSTLocal)
	le.STDLocal = rules.Instant(le.logEntry.STDLocal)
	if e := le.logEntry.Err; e != "" {
		le.Err = errors.New(e)
	}
	return le, nil
}

type Scanner struct {
	sc  *bufio.Scanner
	err error
}

func NewScanner(rd io.Reader) *Scanner {
	return &Scanner{sc: bufio.NewScanner(rd)}
}

// Entries returns an iterator over the Scanner's log entries. Note
// that the iterator will stop if an error is encountered and that the
// Scanner's Err method should be checked after the iterator has completed.
func (ls *Scanner) Entries() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for {
			if !ls.sc.Scan() {
				ls.err = ls.sc.Err()
				return
			}
			line := ls.sc.Text()
			if len(line) == 0 {
				continue
			}
			le, err := ParseLogLine(line)
			if err != nil {
				ls.err = err
				return
			}
			if !yield(le) {
				return
			}
		}
	}
}

func (ls *Scanner) Err() error {
	return ls.err
}
