package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/severnmarket/go-backend/pkg/e"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	// CorrectAmount заполняется только при расхождении суммы заказа.
	CorrectAmount string `json:"correct_amount,omitempty"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrQuantityMustBePositive):
		return http.StatusBadRequest, e.ErrQuantityMustBePositive.Error()
	case errors.Is(err, e.ErrRecipientRequired):
		return http.StatusBadRequest, e.ErrRecipientRequired.Error()
	case errors.Is(err, e.ErrInvalidAmount):
		return http.StatusBadRequest, e.ErrInvalidAmount.Error()
	case errors.Is(err, e.ErrAmountPrecision):
		return http.StatusBadRequest, e.ErrAmountPrecision.Error()
	case errors.Is(err, e.ErrInvalidStatus):
		return http.StatusBadRequest, e.ErrInvalidStatus.Error()
	case errors.Is(err, e.ErrEmptyCart):
		return http.StatusBadRequest, e.ErrEmptyCart.Error()
	case errors.Is(err, e.ErrPasswordTooShort):
		return http.StatusBadRequest, e.ErrPasswordTooShort.Error()
	case errors.Is(err, e.ErrEmailRequired):
		return http.StatusBadRequest, e.ErrEmailRequired.Error()
	case errors.Is(err, e.ErrUnauthorized):
		return http.StatusUnauthorized, e.ErrUnauthorized.Error()
	case errors.Is(err, e.ErrForbidden):
		return http.StatusForbidden, e.ErrForbidden.Error()
	case errors.Is(err, e.ErrProductUnavailable):
		return http.StatusNotFound, e.ErrProductUnavailable.Error()
	case errors.Is(err, e.ErrOrderNotFound):
		return http.StatusNotFound, e.ErrOrderNotFound.Error()
	case errors.Is(err, e.ErrCartNotFound):
		return http.StatusNotFound, e.ErrCartNotFound.Error()
	case errors.Is(err, e.ErrCartItemNotFound):
		return http.StatusNotFound, e.ErrCartItemNotFound.Error()
	case errors.Is(err, e.ErrTokenNotFound):
		return http.StatusNotFound, e.ErrTokenNotFound.Error()
	case errors.Is(err, e.ErrInsufficientInventory):
		return http.StatusConflict, e.ErrInsufficientInventory.Error()
	case errors.Is(err, e.ErrIllegalTransition):
		return http.StatusConflict, e.ErrIllegalTransition.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	var mismatch *e.AmountMismatchError
	if errors.As(err, &mismatch) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(&ErrorResponse{
			Code:          http.StatusConflict,
			Message:       "declared amount mismatch",
			CorrectAmount: formatCents(mismatch.CorrectAmount),
		})
		return
	}

	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// parseAmountToCents converts a string like "599.99" or "600" to int64 cents.
// Returns error if:
// - invalid format
// - more than 2 decimal places
// - negative value
// - exceeds reasonable limit (e.g. 10^9 rubles)
func parseAmountToCents(s string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, e.ErrInvalidAmount
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, e.ErrInvalidAmount
	}

	if d.LessThan(decimal.Zero) {
		return 0, e.ErrInvalidAmount
	}

	maxAmount := decimal.NewFromInt(1_000_000_000)
	if d.GreaterThan(maxAmount) {
		return 0, e.ErrInvalidAmount
	}

	if d.Exponent() < -2 {
		return 0, e.ErrAmountPrecision
	}

	cents := d.Mul(decimal.NewFromInt(100)).Round(0)

	return cents.IntPart(), nil
}

// formatCents возвращает сумму в копейках как строку рублей с двумя знаками.
func formatCents(cents int64) string {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2)
}

// parseIDParam читает числовой параметр пути.
func parseIDParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, e.ErrStatusBadRequest
	}

	return id, nil
}

func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return e.ErrStatusBadRequest
	}

	return nil
}
