package http

import (
	"time"

	"purchases/internal/core/application/usecases/queries"
	"purchases/internal/core/domain/model/purchase"

	"github.com/shopspring/decimal"
)

// CreatePurchaseRequest is the inbound payload for purchase creation.
// Prices never come from the caller; items only name products and amounts.
type CreatePurchaseRequest struct {
	TaxID string              `json:"cpf"   validate:"required"`
	Items []ItemRequestRecord `json:"items" validate:"required,min=1,dive"`
}

// ItemRequestRecord is one requested line item.
type ItemRequestRecord struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity"  validate:"required,gt=0"`
}

// PurchaseResponse is the outbound representation of a purchase.
type PurchaseResponse struct {
	ID            string          `json:"id"`
	TaxID         string          `json:"cpf"`
	CustomerName  string          `json:"customerName"`
	ZipCode       string          `json:"zipCode"`
	Address       string          `json:"address"`
	DeliveryGroup *string         `json:"deliveryGroup,omitempty"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Status        string          `json:"status"`
	Items         []ItemResponse  `json:"items,omitempty"`
}

// ItemResponse is one line item of a purchase response.
type ItemResponse struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// StatusRecordResponse is one status history row.
type StatusRecordResponse struct {
	PurchaseID string    `json:"purchaseId"`
	Status     string    `json:"status"`
	StatusDate time.Time `json:"statusDate"`
}

// StandardError is the envelope returned on every failed request.
type StandardError struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}

// ValidateError extends the envelope with per-field validation messages.
type ValidateError struct {
	StandardError
	Messages []ValidateMessage `json:"messages"`
}

// ValidateMessage names one invalid field.
type ValidateMessage struct {
	Entity  string `json:"entity"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// purchaseFromAggregate maps a domain purchase onto the response DTO.
func purchaseFromAggregate(aggregate *purchase.Purchase) PurchaseResponse {
	items := make([]ItemResponse, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemResponse{
			ProductID: item.ProductID().String(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
		})
	}

	return PurchaseResponse{
		ID:            aggregate.ID().String(),
		TaxID:         aggregate.TaxID().String(),
		CustomerName:  aggregate.CustomerName(),
		ZipCode:       aggregate.ZipCode().String(),
		Address:       aggregate.Address(),
		DeliveryGroup: aggregate.DeliveryGroup(),
		TotalAmount:   aggregate.TotalAmount(),
		Status:        aggregate.Status().String(),
		Items:         items,
	}
}

// purchaseFromProjection maps a query read model onto the response DTO.
func purchaseFromProjection(projection queries.PurchaseResponse) PurchaseResponse {
	items := make([]ItemResponse, 0, len(projection.Items))
	for _, item := range projection.Items {
		items = append(items, ItemResponse{
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	return PurchaseResponse{
		ID:            projection.ID.String(),
		TaxID:         projection.TaxID,
		CustomerName:  projection.CustomerName,
		ZipCode:       projection.ZipCode,
		Address:       projection.Address,
		DeliveryGroup: projection.DeliveryGroup,
		TotalAmount:   projection.TotalAmount,
		Status:        projection.Status,
		Items:         items,
	}
}
