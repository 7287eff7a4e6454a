// Copyright 2025 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package rulestore_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/cosnicolaou/timezone/internal/logging"
	"github.com/cosnicolaou/timezone/rules"
	"github.com/cosnicolaou/timezone/rulestore"
	"github.com/cosnicolaou/timezone/zone"
)

var (
	usEDT   = rules.Rule{Abbrev: "EDT", Week: rules.Second, DOW: rules.Sunday, Month: rules.March, Hour: 2, Offset: -240}
	usEST   = rules.Rule{Abbrev: "EST", Week: rules.First, DOW: rules.Sunday, Month: rules.November, Hour: 2, Offset: -300}
	ausAEDT = rules.Rule{Abbrev: "AEDT", Week: rules.First, DOW: rules.Sunday, Month: rules.October, Hour: 2, Offset: 660}
	ausAEST = rules.Rule{Abbrev: "AEST", Week: rules.First, DOW: rules.Sunday, Month: rules.April, Hour: 3, Offset: 600}
)

func TestRecord(t *testing.T) {
	buf, err := rulestore.MarshalRule(usEDT)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{'E', 'D', 'T', 0, 0, 0, 2, 1, 3, 2, 0x10, 0xff}
	if got := buf; !bytes.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := len(buf), rulestore.RecordSize; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	r, err := rulestore.UnmarshalRule(buf)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := r, usEDT; got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	for _, r := range []rules.Rule{
		{Abbrev: "TOOLONG"},
		{Abbrev: "A\x00B"},
		{Hour: -1},
		{Hour: 256},
		{Offset: 40000},
	} {
		if _, err := rulestore.MarshalRule(r); err == nil {
			t.Errorf("%v: expected an error", r)
		}
	}

	if _, err := rulestore.UnmarshalRule(buf[:rulestore.RecordSize-1]); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("unexpected or missing error: %v", err)
	}
}

func TestRecordPair(t *testing.T) {
	for _, tc := range []struct {
		dst, std rules.Rule
	}{
		{usEDT, usEST},
		{ausAEDT, ausAEST},
		{rules.Rule{Abbrev: "ABCDE", Week: rules.Last, DOW: rules.Saturday, Month: rules.December, Hour: 23, Offset: 1440},
			rules.Rule{Week: rules.Fourth, DOW: rules.Monday, Month: rules.January, Offset: -1440}},
	} {
		buf, err := rulestore.MarshalRules(tc.dst, tc.std)
		if err != nil {
			t.Fatal(err)
		}
		if got, want := len(buf), rulestore.PairSize; got != want {
			t.Errorf("got %v, want %v", got, want)
		}
		dst, std, err := rulestore.UnmarshalRules(buf)
		if err != nil {
			t.Fatal(err)
		}
		if got, want := dst, tc.dst; got != want {
			t.Errorf("got %v, want %v", got, want)
		}
		if got, want := std, tc.std; got != want {
			t.Errorf("got %v, want %v", got, want)
		}
		if _, _, err := rulestore.UnmarshalRules(buf[:rulestore.PairSize-1]); !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Errorf("unexpected or missing error: %v", err)
		}
	}
	if _, err := rulestore.MarshalRules(rules.Rule{Abbrev: "TOOLONG"}, usEST); err == nil {
		t.Errorf("expected an error")
	}
	if _, err := rulestore.MarshalRules(usEDT, rules.Rule{Abbrev: "TOOLONG"}); err == nil {
		t.Errorf("expected an error")
	}
}

func testStore(t *testing.T, store rulestore.Store) {
	t.Helper()
	ctx := context.Background()
	if _, _, err := rulestore.ReadRules(ctx, store); !errors.Is(err, rulestore.ErrNotFound) {
		t.Fatalf("unexpected or missing error: %v", err)
	}
	if err := rulestore.WriteRules(ctx, store, usEDT, usEST); err != nil {
		t.Fatal(err)
	}
	dst, std, err := rulestore.ReadRules(ctx, store)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := dst, usEDT; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := std, usEST; got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	// Overwrite with a different zone.
	if err := rulestore.SaveZone(ctx, store, zone.New(ausAEDT, ausAEST)); err != nil {
		t.Fatal(err)
	}
	z, err := rulestore.LoadZone(ctx, store, zone.WithName("aus-eastern"))
	if err != nil {
		t.Fatal(err)
	}
	dst, std = z.Rules()
	if got, want := dst, ausAEDT; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := std, ausAEST; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := z.Name(), "aus-eastern"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestMemory(t *testing.T) {
	mem := rulestore.NewMemory(64)
	lo := mem.Region(0, rulestore.PairSize)
	hi := mem.Region(32, rulestore.PairSize)
	testStore(t, lo)
	testStore(t, hi)

	// The two regions must not overlap and the memory between them
	// must remain erased.
	contents := make([]byte, mem.Size())
	if _, err := mem.ReadAt(contents, 0); err != nil {
		t.Fatal(err)
	}
	for i := rulestore.PairSize; i < 32; i++ {
		if contents[i] != rulestore.Erased {
			t.Errorf("%v: got %#x, want %#x", i, contents[i], rulestore.Erased)
		}
	}

	if err := mem.Region(60, 8).Save(context.Background(), make([]byte, 8)); err == nil {
		t.Errorf("expected an error")
	}
	if err := mem.Region(0, 4).Save(context.Background(), make([]byte, 8)); err == nil {
		t.Errorf("expected an error")
	}
	if got, want := lo.String(), "region[0x0:0x18]"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFile(t *testing.T) {
	tmpDir := t.TempDir()
	filename := filepath.Join(tmpDir, "rules.bin")
	testStore(t, rulestore.NewFile(filename))
	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := len(data), rulestore.PairSize; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := rulestore.NewFile(filename).String(), "file:"+filename; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFileRegion(t *testing.T) {
	tmpDir := t.TempDir()
	f, err := os.Create(filepath.Join(tmpDir, "eeprom.bin"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	testStore(t, rulestore.NewRegion(f, 100, rulestore.PairSize))
	fi, err := f.Stat()
	if err != nil {
		t.Fatal(err)
	}
	if got, want := fi.Size(), int64(100+rulestore.PairSize); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestStoreLogging(t *testing.T) {
	out := &bytes.Buffer{}
	ctx := logging.ContextWithLogger(context.Background(), slog.New(slog.NewJSONHandler(out, nil)))
	mem := rulestore.NewMemory(rulestore.PairSize)
	if err := rulestore.WriteRules(ctx, mem.Region(0, rulestore.PairSize), usEDT, usEST); err != nil {
		t.Fatal(err)
	}
	if _, _, err := rulestore.ReadRules(ctx, rulestore.NewFile(filepath.Join(t.TempDir(), "missing"))); err == nil {
		t.Fatal("expected an error")
	}
	var logs []logging.Entry
	sc := logging.NewScanner(out)
	for le := range sc.Entries() {
		logs = append(logs, le)
	}
	if err := sc.Err(); err != nil {
		t.Fatal(err)
	}
	if got, want := len(logs), 2; got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
	if got, want := logs[0].Msg, logging.LogSave; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := logs[0].Store, "region[0x0:0x18]"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := logs[0].DST, usEDT.Compact(); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := logs[1].Msg, logging.LogLoad; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if logs[1].Err == nil {
		t.Errorf("expected an error to be logged")
	}
}
