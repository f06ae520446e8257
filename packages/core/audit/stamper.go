// Package audit applies creation and modification provenance to roster records.
package audit

import (
	"strings"
	"time"

	"roster-api/packages/core/models"

	"github.com/jonboulle/clockwork"
)

// State is the persistence state of a record about to be written.
type State int

const (
	StateAdded State = iota + 1
	StateModified
)

type Stamper struct {
	clock clockwork.Clock
}

func NewStamper(clock clockwork.Clock) *Stamper {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Stamper{clock: clock}
}

// Now returns the stamper's current UTC time.
func (s *Stamper) Now() time.Time {
	return s.clock.Now().UTC()
}

// Stamp mutates the audit block of record for the given state.
// Added records get CreatedAt, and CreatedBy when it is still blank.
// Modified records always get ModifiedAt and ModifiedBy.
func (s *Stamper) Stamp(record models.Auditable, state State, actor string) {
	info := record.AuditInfo()
	now := s.Now()

	switch state {
	case StateAdded:
		info.CreatedAt = now
		if strings.TrimSpace(info.CreatedBy) == "" {
			info.CreatedBy = actor
		}
	case StateModified:
		info.ModifiedAt = &now
		modifiedBy := actor
		info.ModifiedBy = &modifiedBy
	}
}
