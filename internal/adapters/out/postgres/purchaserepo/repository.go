package purchaserepo

import (
	"context"
	"errors"

	"purchases/internal/core/domain/model/kernel"
	"purchases/internal/core/domain/model/purchase"
	"purchases/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPurchaseRepository implements PurchaseRepository using GORM.
type GormPurchaseRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPurchaseRepository creates a new GORM purchase repository.
func NewGormPurchaseRepository(db *gorm.DB, tracker aggregateTracker) *GormPurchaseRepository {
	return &GormPurchaseRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new purchase with its line items to the database.
func (r *GormPurchaseRepository) Add(ctx context.Context, aggregate *purchase.Purchase) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the mutable state of an existing purchase. The write carries
// the aggregate's version in its predicate: when another transaction bumped
// the row's version first, zero rows match and the update is rejected with a
// version conflict instead of silently overwriting. Line items are immutable
// and never rewritten.
func (r *GormPurchaseRepository) Update(ctx context.Context, aggregate *purchase.Purchase) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&PurchaseDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"status":         dto.Status,
			"delivery_group": dto.DeliveryGroup,
			"version":        dto.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&PurchaseDTO{}).
			Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("Pedido não encontrado", aggregate.ID().String())
		}
		return errs.NewVersionConflictError(aggregate.ID().String(), dto.Version)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a purchase by ID, line items included.
func (r *GormPurchaseRepository) Get(ctx context.Context, id kernel.UUID) (*purchase.Purchase, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PurchaseDTO
	err := r.db.WithContext(ctx).
		Preload("Items", itemOrder).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("Pedido não encontrado", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllPaidOrderedByZipCode retrieves every purchase in Paid status ordered
// ascending by zip code. Dispatch relies on this ordering to form contiguous
// delivery groups per zip code prefix.
func (r *GormPurchaseRepository) GetAllPaidOrderedByZipCode(ctx context.Context) ([]*purchase.Purchase, error) {
	var dtos []PurchaseDTO
	err := r.db.WithContext(ctx).
		Preload("Items", itemOrder).
		Order("zip_code").
		Find(&dtos, "status = ?", int(purchase.Paid)).Error
	if err != nil {
		return nil, err
	}

	purchases := make([]*purchase.Purchase, 0, len(dtos))
	for _, dto := range dtos {
		p, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		purchases = append(purchases, p)
	}

	return purchases, nil
}

// itemOrder restores the original line item order on preload.
func itemOrder(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}
