package historyrepo

import (
	"context"

	"purchases/internal/core/domain/model/history"
	"purchases/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormHistoryRepository implements HistoryRepository using GORM.
// The history is append-only; records are never updated or deleted.
type GormHistoryRepository struct {
	db *gorm.DB
}

// NewGormHistoryRepository creates a new GORM history repository.
func NewGormHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	return &GormHistoryRepository{db: db}
}

// Append inserts a status record. The referenced purchase id is not checked
// for existence.
func (r *GormHistoryRepository) Append(ctx context.Context, record history.StatusRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByPurchaseID retrieves all records for a purchase in insertion order.
// An unknown purchase id yields an empty slice, not an error.
func (r *GormHistoryRepository) GetByPurchaseID(ctx context.Context, purchaseID kernel.UUID) ([]history.StatusRecord, error) {
	if err := purchaseID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StatusRecordDTO
	err := r.db.WithContext(ctx).
		Order("seq").
		Find(&dtos, "purchase_id = ?", purchaseID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	records := make([]history.StatusRecord, 0, len(dtos))
	for _, dto := range dtos {
		record, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		records = append(records, record)
	}

	return records, nil
}
