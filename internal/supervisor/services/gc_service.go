// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

package services

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// ValueLogGCer matches *badger.DB's garbage collection method.
type ValueLogGCer interface {
	RunValueLogGC(discardRatio float64) error
}

// BadgerGCService runs periodic value-log garbage collection on a BadgerDB
// instance. Badger does not reclaim value-log space on its own; a
// supervised loop keeps the preferences database from growing unbounded.
type BadgerGCService struct {
	db       ValueLogGCer
	interval time.Duration
	name     string
}

// gcDiscardRatio is the fraction of a value-log file that must be garbage
// before it is rewritten. 0.5 is the value recommended by the Badger docs.
const gcDiscardRatio = 0.5

// NewBadgerGCService creates a garbage collection loop with the given
// interval between runs.
func NewBadgerGCService(db ValueLogGCer, interval time.Duration) *BadgerGCService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &BadgerGCService{
		db:       db,
		interval: interval,
		name:     "badger-gc",
	}
}

// Serve implements suture.Service. One GC pass may rewrite at most one
// value-log file, so each tick loops until badger reports nothing left to
// collect. ErrNoRewrite is the normal idle result, not a failure.
func (s *BadgerGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			for {
				err := s.db.RunValueLogGC(gcDiscardRatio)
				if errors.Is(err, badger.ErrNoRewrite) {
					break
				}
				if err != nil {
					return err
				}
			}
		}
	}
}

// String implements fmt.Stringer for supervisor log messages.
func (s *BadgerGCService) String() string {
	return s.name
}
