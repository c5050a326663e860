// Package historyrepo provides data transfer objects and mapping functions
// for the append-only purchase status history.
package historyrepo

import (
	"time"

	"purchases/internal/core/domain/model/history"
	"purchases/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// StatusRecordDTO represents a single status history row. Seq is a database
// assigned sequence that preserves insertion order; the record keeps its own
// uuid for external identity. PurchaseID carries no foreign key: the history
// accepts records for ids it has never seen.
type StatusRecordDTO struct {
	Seq        int64     `gorm:"primaryKey;autoIncrement"`
	ID         uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	PurchaseID uuid.UUID `gorm:"type:uuid;index"`
	Status     string    `gorm:"type:varchar(32)"`
	StatusDate time.Time
}

// TableName specifies the database table name for status history records.
func (StatusRecordDTO) TableName() string {
	return "purchase_status_history"
}

// fromDomain converts a status record to its database representation.
// Seq is left zero so the database assigns the next sequence value.
func fromDomain(record history.StatusRecord) StatusRecordDTO {
	return StatusRecordDTO{
		ID:         record.ID().Bytes(),
		PurchaseID: record.PurchaseID().Bytes(),
		Status:     record.Status(),
		StatusDate: record.StatusDate(),
	}
}

// toDomain converts a database DTO to a status record.
func toDomain(dto StatusRecordDTO) (history.StatusRecord, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return history.StatusRecord{}, err
	}

	purchaseID, err := kernel.UUIDFromBytes(dto.PurchaseID[:])
	if err != nil {
		return history.StatusRecord{}, err
	}

	return history.RestoreStatusRecord(id, purchaseID, dto.Status, dto.StatusDate)
}
