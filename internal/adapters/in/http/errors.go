package http

import (
	"errors"
	"net/http"
	"time"

	"purchases/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Caller-facing error categories. Individual errors carry the precise
// message; the category tells the caller what class of failure occurred.
const (
	errorNotFound      = "Entidade não encontrada."
	errorDataIntegrity = "Violação da integridade dos dados."
	errorValidation    = "A entidade não é válida."
	errorInternal      = "Erro interno do servidor."
)

// writeError maps an application error onto the standard envelope.
// Not-found errors become 404, integrity violations, version conflicts and
// invalid values become 400, everything else 500.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	category := errorInternal

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
		category = errorNotFound
	case errors.Is(err, errs.ErrDataIntegrityViolation),
		errors.Is(err, errs.ErrVersionConflict):
		status = http.StatusBadRequest
		category = errorDataIntegrity
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired):
		status = http.StatusBadRequest
		category = errorValidation
	}

	return ctx.JSON(status, StandardError{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     category,
		Message:   err.Error(),
		Path:      ctx.Request().URL.Path,
	})
}

// writeBindError reports a request body that could not be parsed at all.
func writeBindError(ctx echo.Context) error {
	return ctx.JSON(http.StatusBadRequest, StandardError{
		Timestamp: time.Now().UTC(),
		Status:    http.StatusBadRequest,
		Error:     errorValidation,
		Message:   "corpo da requisição inválido",
		Path:      ctx.Request().URL.Path,
	})
}

// writeValidationError reports field-level validation failures with one
// message per invalid field.
func writeValidationError(ctx echo.Context, entity string, err error) error {
	envelope := ValidateError{
		StandardError: StandardError{
			Timestamp: time.Now().UTC(),
			Status:    http.StatusBadRequest,
			Error:     errorValidation,
			Message:   "a entidade possui campos inválidos",
			Path:      ctx.Request().URL.Path,
		},
	}

	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		for _, fieldError := range fieldErrors {
			envelope.Messages = append(envelope.Messages, ValidateMessage{
				Entity:  entity,
				Field:   fieldError.Field(),
				Message: validationMessage(fieldError),
			})
		}
	}

	return ctx.JSON(http.StatusBadRequest, envelope)
}

func validationMessage(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return "campo obrigatório"
	case "min":
		return "a lista deve ter ao menos um item"
	case "gt":
		return "o valor deve ser maior que zero"
	case "uuid":
		return "identificador inválido"
	default:
		return "valor inválido"
	}
}
