// Copyright 2024 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package logging

import (
	"cmp"
	"iter"
	"slices"
	"sync"

	"cloudeng.io/algo/container/list"
	"github.com/cosnicolaou/timezone/rules"
)

// RefreshRecorder records the most recent cache refreshes and maintains
// per-zone totals across all of the refreshes it has seen.
type RefreshRecorder struct {
	mu     sync.Mutex
	max    int
	n      int
	recent *list.Double[*RefreshRecord]
	byZone map[string]*ZoneSummary
}

// RefreshRecord represents a single recalculation of a zone's transitions.
type RefreshRecord struct {
	Zone     string
	Domain   string
	Year     int
	DSTUTC   rules.Instant
	STDUTC   rules.Instant
	DSTLocal rules.Instant
	STDLocal rules.Instant

	listID list.DoubleID[*RefreshRecord]
}

// ZoneSummary summarizes the refreshes seen for a single zone.
type ZoneSummary struct {
	Zone      string
	UTC       int
	Local     int
	FirstYear int
	LastYear  int
}

// NewRefreshRecorder returns a recorder that retains at most size of the
// most recent refreshes.
func NewRefreshRecorder(size int) *RefreshRecorder {
	return &RefreshRecorder{
		max:    size,
		recent: list.NewDouble[*RefreshRecord](),
		byZone: map[string]*ZoneSummary{},
	}
}

// RecordFromEntry returns the RefreshRecord for the supplied log entry
// and false if the entry is not a refresh.
func RecordFromEntry(le Entry) (*RefreshRecord, bool) {
	if le.Msg != LogRefresh {
		return nil, false
	}
	return &RefreshRecord{
		Zone:     le.Zone,
		Domain:   le.Domain,
		Year:     le.Year,
		DSTUTC:   le.DSTUTC,
		STDUTC:   le.STDUTC,
		DSTLocal: le.DSTLocal,
		STDLocal: le.STDLocal,
	}, true
}

func (r *RefreshRecorder) Add(rr *RefreshRecord) {
	if rr == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	zs, ok := r.byZone[rr.Zone]
	if !ok {
		zs = &ZoneSummary{Zone: rr.Zone, FirstYear: rr.Year, LastYear: rr.Year}
		r.byZone[rr.Zone] = zs
	}
	if rr.Domain == DomainLocal {
		zs.Local++
	} else {
		zs.UTC++
	}
	zs.FirstYear = min(zs.FirstYear, rr.Year)
	zs.LastYear = max(zs.LastYear, rr.Year)
	if r.max <= 0 {
		return
	}
	rr.listID = r.recent.Append(rr)
	r.n++
	for r.n > r.max {
		for oldest := range r.recent.Forward() {
			r.recent.RemoveItem(oldest.listID)
			break
		}
		r.n--
	}
}

// Recent returns the most recent refreshes, oldest first.
func (r *RefreshRecorder) Recent() iter.Seq[*RefreshRecord] {
	return func(yield func(*RefreshRecord) bool) {
		r.mu.Lock()
		defer r.mu.Unlock()
		for rr := range r.recent.Forward() {
			if !yield(rr) {
				return
			}
		}
	}
}

// Zones returns the per-zone summaries sorted by zone name.
func (r *RefreshRecorder) Zones() []ZoneSummary {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ZoneSummary, 0, len(r.byZone))
	for _, zs := range r.byZone {
		out = append(out, *zs)
	}
	slices.SortFunc(out, func(a, b ZoneSummary) int {
		return cmp.Compare(a.Zone, b.Zone)
	})
	return out
}
