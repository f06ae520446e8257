// Package repository persists roster records through gorm. Every operation
// takes a context and runs against the store handed to it, which is either
// the root connection or an open transaction.
package repository

import (
	"context"
	"errors"

	"roster-api/packages/core/audit"
	apperrors "roster-api/packages/core/errors"

	"gorm.io/gorm"
)

// Store groups the roster repositories around one gorm handle.
type Store struct {
	db      *gorm.DB
	stamper *audit.Stamper
}

func NewStore(db *gorm.DB, stamper *audit.Stamper) *Store {
	if stamper == nil {
		stamper = audit.NewStamper(nil)
	}
	return &Store{db: db, stamper: stamper}
}

func (s *Store) Stamper() *audit.Stamper {
	return s.stamper
}

func (s *Store) Players() PlayerRepository {
	return &playerRepository{db: s.db, stamper: s.stamper}
}

func (s *Store) TeamAssignments() TeamAssignmentRepository {
	return &teamAssignmentRepository{db: s.db, stamper: s.stamper}
}

func (s *Store) Statistics() StatisticRepository {
	return &statisticRepository{db: s.db, stamper: s.stamper}
}

// Transaction runs fn as one unit of work. The store passed to fn is bound to
// the transaction; returning an error rolls everything back. Domain errors
// returned by fn come back unchanged.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx, stamper: s.stamper})
	})
	if err == nil {
		return nil
	}

	var domainErr *apperrors.Error
	if errors.As(err, &domainErr) {
		return err
	}
	return apperrors.Persistence("transaction", "unit of work", nil, err)
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// SQLite extended result codes for unique and primary key violations.
const (
	sqliteConstraintPrimaryKey = 1555
	sqliteConstraintUnique     = 2067
)

// uniqueViolation reports whether err comes from a unique index. Postgres
// errors arrive translated to gorm.ErrDuplicatedKey; the pure-Go SQLite driver
// exposes its result code instead.
func uniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var coded interface{ Code() int }
	if errors.As(err, &coded) {
		code := coded.Code()
		return code == sqliteConstraintUnique || code == sqliteConstraintPrimaryKey
	}
	return false
}
