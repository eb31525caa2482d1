// Package kvstore keeps the registries' collections in memory and writes every
// mutated collection back to a core.Store in full.
package kvstore

import (
	"context"
	"sync"

	"github.com/trezcool/missingwork/core"
	"github.com/trezcool/missingwork/core/assignment"
	"github.com/trezcool/missingwork/core/grade"
	"github.com/trezcool/missingwork/core/profile"
	"github.com/trezcool/missingwork/core/student"
)

type (
	DB struct {
		store core.Store
		log   core.Logger

		grades      *table[grade.Grade]
		students    *table[student.Student]
		assignments *table[assignment.Assignment]
		profile     *profileTable
	}

	table[T any] struct {
		name  string
		rows  []T
		mutex sync.RWMutex
	}

	profileTable struct {
		p     *profile.Profile // nil until setup is complete
		mutex sync.RWMutex
	}
)

// Open loads every collection from store.
func Open(ctx context.Context, store core.Store, log core.Logger) (*DB, error) {
	db := &DB{
		store:       store,
		log:         log,
		grades:      &table[grade.Grade]{name: core.GradesKey},
		students:    &table[student.Student]{name: core.StudentsKey},
		assignments: &table[assignment.Assignment]{name: core.AssignmentsKey},
		profile:     &profileTable{},
	}
	if err := loadTable(ctx, db, db.grades); err != nil {
		return nil, err
	}
	if err := loadTable(ctx, db, db.students); err != nil {
		return nil, err
	}
	if err := loadTable(ctx, db, db.assignments); err != nil {
		return nil, err
	}
	if err := db.loadProfile(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

func loadTable[T any](ctx context.Context, db *DB, tbl *table[T]) error {
	var rows []T
	if err := Load(ctx, db.store, db.log, tbl.name, &rows); err != nil {
		return err
	}
	tbl.rows = rows
	return nil
}

// save persists the table, the caller holds its write lock.
func (t *table[T]) save(ctx context.Context, db *DB) error {
	rows := t.rows
	if rows == nil {
		rows = []T{}
	}
	return Save(ctx, db.store, db.log, t.name, rows)
}

// query returns a copy of the rows, the caller holds a lock.
func (t *table[T]) query() []T {
	return append(make([]T, 0, len(t.rows)), t.rows...)
}

func (t *table[T]) index(match func(T) bool) int {
	for i, r := range t.rows {
		if match(r) {
			return i
		}
	}
	return -1
}

// remove deletes the rows matching and reports whether any did, the caller holds the write lock.
func (t *table[T]) remove(match func(T) bool) bool {
	kept := t.rows[:0]
	for _, r := range t.rows {
		if !match(r) {
			kept = append(kept, r)
		}
	}
	removed := len(kept) != len(t.rows)
	t.rows = kept
	return removed
}
