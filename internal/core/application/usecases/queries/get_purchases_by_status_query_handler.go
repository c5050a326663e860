package queries

import (
	"context"

	"purchases/internal/core/domain/model/kernel"
	"purchases/internal/core/domain/model/purchase"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPurchasesByStatusQueryHandler reads purchase projections filtered by
// lifecycle status. Results are sorted by id for consistent output and carry
// their line items.
type GetPurchasesByStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetPurchasesByStatusQueryHandler creates a handler for status-filtered
// purchase listings.
func NewGetPurchasesByStatusQueryHandler(db *gorm.DB) GetPurchasesByStatusQueryHandler {
	return GetPurchasesByStatusQueryHandler{db: db}
}

// Handle executes the listing. No purchases in the status yields an empty
// slice, not an error.
func (h GetPurchasesByStatusQueryHandler) Handle(
	ctx context.Context, query GetPurchasesByStatusQuery,
) ([]PurchaseResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tax_id,
			customer_name,
			zip_code,
			address,
			delivery_group,
			total_amount,
			status
		FROM purchases
		WHERE status = ?
		ORDER BY id
	`, int(query.Status())).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	purchases := make([]PurchaseResponse, 0)
	for rows.Next() {
		var (
			response      PurchaseResponse
			id            uuid.UUID
			deliveryGroup *string
			status        int
		)

		err = rows.Scan(
			&id,
			&response.TaxID,
			&response.CustomerName,
			&response.ZipCode,
			&response.Address,
			&deliveryGroup,
			&response.TotalAmount,
			&status,
		)
		if err != nil {
			return nil, err
		}

		purchaseID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		response.ID = purchaseID
		response.DeliveryGroup = deliveryGroup
		response.Status = purchase.Status(status).String()
		purchases = append(purchases, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	for i := range purchases {
		items, itemsErr := loadItems(ctx, h.db, purchases[i].ID)
		if itemsErr != nil {
			return nil, itemsErr
		}
		purchases[i].Items = items
	}

	return purchases, nil
}
