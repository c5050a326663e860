// Package purchaserepo provides data transfer objects and mapping functions
// for purchase persistence. It implements the repository pattern for the
// purchase aggregate, converting between domain entities and their relational
// representation.
package purchaserepo

import (
	"purchases/internal/core/domain/model/kernel"
	"purchases/internal/core/domain/model/purchase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseDTO represents the database structure for persisting purchase
// aggregates. Indexed by status and zip code to serve the dispatch scan,
// which reads all paid purchases ordered by zip code.
type PurchaseDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	TaxID         string    `gorm:"type:varchar(14);index"`
	CustomerName  string
	ZipCode       string `gorm:"type:varchar(9);index:idx_purchases_status_zip,priority:2"`
	Address       string
	DeliveryGroup *string         `gorm:"type:varchar(17);index"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(14,2)"`
	Status        int             `gorm:"index:idx_purchases_status_zip,priority:1"`
	Version       int64
	Items         []ItemDTO `gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for purchase entities.
func (PurchaseDTO) TableName() string {
	return "purchases"
}

// ItemDTO represents a purchase line item row. Items are written once with
// the purchase and never updated; Position preserves the original item order
// when the aggregate is reloaded.
type ItemDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	PurchaseID uuid.UUID `gorm:"type:uuid;index"`
	ProductID  uuid.UUID `gorm:"type:uuid"`
	Quantity   int
	UnitPrice  decimal.Decimal `gorm:"type:numeric(14,2)"`
	Position   int
}

// TableName specifies the database table name for purchase line items.
func (ItemDTO) TableName() string {
	return "purchase_items"
}

// fromDomain converts a purchase domain aggregate to its database
// representation, line items included.
func fromDomain(aggregate *purchase.Purchase) PurchaseDTO {
	items := aggregate.Items()
	itemDTOs := make([]ItemDTO, 0, len(items))
	for i, item := range items {
		itemDTOs = append(itemDTOs, ItemDTO{
			ID:         uuid.New(),
			PurchaseID: aggregate.ID().Bytes(),
			ProductID:  item.ProductID().Bytes(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice(),
			Position:   i,
		})
	}

	return PurchaseDTO{
		ID:            aggregate.ID().Bytes(),
		TaxID:         aggregate.TaxID().String(),
		CustomerName:  aggregate.CustomerName(),
		ZipCode:       aggregate.ZipCode().String(),
		Address:       aggregate.Address(),
		DeliveryGroup: aggregate.DeliveryGroup(),
		TotalAmount:   aggregate.TotalAmount(),
		Status:        int(aggregate.Status()),
		Version:       aggregate.Version(),
		Items:         itemDTOs,
	}
}

// toDomain converts a database DTO to a purchase domain aggregate.
// Reconstructs the complete aggregate, stored total and version included,
// using RestorePurchase.
func toDomain(dto PurchaseDTO) (*purchase.Purchase, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	taxID, err := kernel.NewTaxID(dto.TaxID)
	if err != nil {
		return nil, err
	}

	zipCode, err := kernel.NewZipCode(dto.ZipCode)
	if err != nil {
		return nil, err
	}

	items := make([]purchase.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, productErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if productErr != nil {
			return nil, productErr
		}

		item, itemErr := purchase.NewItem(productID, itemDTO.Quantity, itemDTO.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return purchase.RestorePurchase(
		id,
		taxID,
		dto.CustomerName,
		zipCode,
		dto.Address,
		dto.DeliveryGroup,
		dto.TotalAmount,
		purchase.Status(dto.Status),
		items,
		dto.Version,
	)
}
