package models

import "time"

// Audit is the provenance block embedded in every roster record.
type Audit struct {
	CreatedAt  time.Time  `gorm:"not null;autoCreateTime:false" json:"created_at"`
	CreatedBy  string     `gorm:"size:450;not null" json:"created_by"`
	ModifiedAt *time.Time `json:"modified_at"`
	ModifiedBy *string    `gorm:"size:450" json:"modified_by"`
}

// AuditInfo exposes the audit block of the record embedding it.
func (a *Audit) AuditInfo() *Audit {
	return a
}

// Auditable is implemented by every model embedding Audit.
type Auditable interface {
	AuditInfo() *Audit
}
