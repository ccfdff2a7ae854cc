package http

import (
	"net/http"

	"github.com/severnmarket/go-backend/internal/usecase"
	"github.com/severnmarket/go-backend/pkg/logger"
)

type CartHandler struct {
	cartUsecase usecase.CartUC
	logger      logger.Logger
}

func NewCartHandler(cartUsecase usecase.CartUC, logger logger.Logger) *CartHandler {
	return &CartHandler{cartUsecase: cartUsecase, logger: logger}
}

// getCart возвращает ценёную витрину корзины текущего участника.
func (h *CartHandler) getCart(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.cartUsecase.GetCart(r.Context(), identity.MemberID)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newCartResponse(res))
}

// addItem добавляет товар в корзину или увеличивает количество имеющейся позиции.
func (h *CartHandler) addItem(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	var body addItemRequest
	if err := decodeBody(r, &body); err != nil {
		WriteError(w, err)
		return
	}

	err = h.cartUsecase.AddItem(r.Context(), usecase.NewAddItemReq(identity.MemberID, body.ProductID, body.Quantity))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusNoContent, nil)
}

// setQuantity перезаписывает количество позиции.
func (h *CartHandler) setQuantity(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	productID, err := parseIDParam(r, "productID")
	if err != nil {
		WriteError(w, err)
		return
	}

	var body setQuantityRequest
	if err := decodeBody(r, &body); err != nil {
		WriteError(w, err)
		return
	}

	err = h.cartUsecase.SetQuantity(r.Context(), usecase.NewSetQuantityReq(identity.MemberID, productID, body.Quantity))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusNoContent, nil)
}

// removeItem удаляет позицию. Повторное удаление отвечает тем же 204.
func (h *CartHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	productID, err := parseIDParam(r, "productID")
	if err != nil {
		WriteError(w, err)
		return
	}

	err = h.cartUsecase.RemoveItem(r.Context(), usecase.NewRemoveItemReq(identity.MemberID, productID))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusNoContent, nil)
}

// mergeGuestCart переносит строки анонимной корзины в корзину участника.
func (h *CartHandler) mergeGuestCart(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	var body mergeCartRequest
	if err := decodeBody(r, &body); err != nil {
		WriteError(w, err)
		return
	}

	lines := make([]usecase.GuestLine, 0, len(body.Lines))
	for _, line := range body.Lines {
		lines = append(lines, usecase.GuestLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	err = h.cartUsecase.MergeGuestCart(r.Context(), &usecase.MergeGuestCartReq{
		MemberID: identity.MemberID,
		Lines:    lines,
	})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusNoContent, nil)
}

// checkCart предварительно проверяет корзину перед оформлением.
func (h *CartHandler) checkCart(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.cartUsecase.CheckCart(r.Context(), identity.MemberID)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, &checkCartResponse{
		Valid:      len(res.Violations) == 0,
		Violations: res.Violations,
	})
}
