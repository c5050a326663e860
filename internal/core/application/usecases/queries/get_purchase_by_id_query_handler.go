package queries

import (
	"context"
	"database/sql"
	"errors"

	"purchases/internal/core/domain/model/kernel"
	"purchases/internal/core/domain/model/purchase"
	"purchases/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const purchaseNotFoundMessage = "Pedido não encontrado"

// GetPurchaseByIDQueryHandler reads a single purchase projection from the
// database.
type GetPurchaseByIDQueryHandler struct {
	db *gorm.DB
}

// NewGetPurchaseByIDQueryHandler creates a handler for single purchase
// lookups. Requires a GORM database connection for query execution.
func NewGetPurchaseByIDQueryHandler(db *gorm.DB) GetPurchaseByIDQueryHandler {
	return GetPurchaseByIDQueryHandler{db: db}
}

// Handle executes the lookup. An unknown id maps to a not-found error.
func (h GetPurchaseByIDQueryHandler) Handle(
	ctx context.Context, query GetPurchaseByIDQuery,
) (PurchaseResponse, error) {
	if err := query.Validate(); err != nil {
		return PurchaseResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
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
		WHERE id = ?
	`, query.PurchaseID().Bytes()).Row()

	response, err := scanPurchaseRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return PurchaseResponse{}, errs.NewObjectNotFoundError(
			purchaseNotFoundMessage, query.PurchaseID().String())
	}
	if err != nil {
		return PurchaseResponse{}, err
	}

	items, err := loadItems(ctx, h.db, query.PurchaseID())
	if err != nil {
		return PurchaseResponse{}, err
	}
	response.Items = items

	return response, nil
}

// scanPurchaseRow maps one purchases row onto the read model.
func scanPurchaseRow(row *sql.Row) (PurchaseResponse, error) {
	var (
		response      PurchaseResponse
		id            uuid.UUID
		deliveryGroup sql.NullString
		totalAmount   decimal.Decimal
		status        int
	)

	err := row.Scan(
		&id,
		&response.TaxID,
		&response.CustomerName,
		&response.ZipCode,
		&response.Address,
		&deliveryGroup,
		&totalAmount,
		&status,
	)
	if err != nil {
		return PurchaseResponse{}, err
	}

	purchaseID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return PurchaseResponse{}, err
	}

	response.ID = purchaseID
	response.TotalAmount = totalAmount
	response.Status = purchase.Status(status).String()
	if deliveryGroup.Valid {
		response.DeliveryGroup = &deliveryGroup.String
	}

	return response, nil
}

// loadItems reads a purchase's line items in their original order.
func loadItems(ctx context.Context, db *gorm.DB, purchaseID kernel.UUID) ([]PurchaseItemResponse, error) {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			product_id,
			quantity,
			unit_price
		FROM purchase_items
		WHERE purchase_id = ?
		ORDER BY position
	`, purchaseID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]PurchaseItemResponse, 0)
	for rows.Next() {
		var (
			item      PurchaseItemResponse
			productID uuid.UUID
		)

		if err = rows.Scan(&productID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromBytes(productID[:])
		if idErr != nil {
			return nil, idErr
		}
		item.ProductID = id

		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
