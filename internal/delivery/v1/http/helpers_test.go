package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/severnmarket/go-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmountToCents(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr error
	}{
		{"599.99", 59999, nil},
		{"600", 60000, nil},
		{"0", 0, nil},
		{"0.01", 1, nil},
		{"1000000000", 100_000_000_000, nil},
		{"", 0, e.ErrInvalidAmount},
		{"  ", 0, e.ErrInvalidAmount},
		{"abc", 0, e.ErrInvalidAmount},
		{"-1", 0, e.ErrInvalidAmount},
		{"1000000001", 0, e.ErrInvalidAmount},
		{"1.999", 0, e.ErrAmountPrecision},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAmountToCents(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "599.99", formatCents(59999))
	assert.Equal(t, "600.00", formatCents(60000))
	assert.Equal(t, "0.01", formatCents(1))
	assert.Equal(t, "0.00", formatCents(0))
}

func TestToHTTPResponse(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{e.ErrQuantityMustBePositive, http.StatusBadRequest},
		{e.ErrEmptyCart, http.StatusBadRequest},
		{e.ErrInvalidStatus, http.StatusBadRequest},
		{e.ErrUnauthorized, http.StatusUnauthorized},
		{e.ErrForbidden, http.StatusForbidden},
		{e.ErrOrderNotFound, http.StatusNotFound},
		{e.ErrProductUnavailable, http.StatusNotFound},
		{e.ErrCartItemNotFound, http.StatusNotFound},
		{e.ErrInsufficientInventory, http.StatusConflict},
		{e.ErrIllegalTransition, http.StatusConflict},
		{errors.New("something unexpected"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			code, _ := ToHTTPResponse(tt.err)
			assert.Equal(t, tt.code, code)
		})
	}

	t.Run("wrapped sentinel keeps its status", func(t *testing.T) {
		code, _ := ToHTTPResponse(e.Wrap("OrderUseCase.SetStatus", e.ErrIllegalTransition))
		assert.Equal(t, http.StatusConflict, code)
	})
}

func TestWriteError_AmountMismatch(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, e.Wrap("op", &e.AmountMismatchError{CorrectAmount: 59999}))

	assert.Equal(t, http.StatusConflict, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusConflict, body.Code)
	assert.Equal(t, "599.99", body.CorrectAmount)
}
