package queries

import (
	"context"

	"purchases/internal/core/domain/model/kernel"
	"purchases/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const historyNotFoundMessage = "Histórico de compra não encontrado"

// GetPurchaseHistoryQueryHandler reads the status history rows of a
// purchase. Unlike the repository, the query treats an empty history as a
// not-found condition: a purchase with no recorded rows has never crossed
// the logistics side.
type GetPurchaseHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetPurchaseHistoryQueryHandler creates a handler for history lookups.
func NewGetPurchaseHistoryQueryHandler(db *gorm.DB) GetPurchaseHistoryQueryHandler {
	return GetPurchaseHistoryQueryHandler{db: db}
}

// Handle executes the history lookup. Rows come back in insertion order;
// zero rows map to a not-found error.
func (h GetPurchaseHistoryQueryHandler) Handle(
	ctx context.Context, query GetPurchaseHistoryQuery,
) ([]StatusRecordResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			purchase_id,
			status,
			status_date
		FROM purchase_status_history
		WHERE purchase_id = ?
		ORDER BY seq
	`, query.PurchaseID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]StatusRecordResponse, 0)
	for rows.Next() {
		var (
			record     StatusRecordResponse
			purchaseID uuid.UUID
		)

		if err = rows.Scan(&purchaseID, &record.Status, &record.StatusDate); err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromBytes(purchaseID[:])
		if idErr != nil {
			return nil, idErr
		}
		record.PurchaseID = id

		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, errs.NewObjectNotFoundError(historyNotFoundMessage, query.PurchaseID().String())
	}

	return records, nil
}
