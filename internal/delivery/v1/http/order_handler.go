package http

import (
	"net/http"

	"github.com/severnmarket/go-backend/internal/domain"
	"github.com/severnmarket/go-backend/internal/usecase"
	"github.com/severnmarket/go-backend/pkg/logger"
)

type OrderHandler struct {
	orderUsecase usecase.OrderUC
	logger       logger.Logger
}

func NewOrderHandler(orderUsecase usecase.OrderUC, logger logger.Logger) *OrderHandler {
	return &OrderHandler{orderUsecase: orderUsecase, logger: logger}
}

// createOrder оформляет заказ из текущей корзины. Заявленная клиентом сумма
// сверяется с пересчитанной на сервере; расхождение отвечает 409 с
// корректной суммой.
func (h *OrderHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	var body createOrderRequest
	if err := decodeBody(r, &body); err != nil {
		WriteError(w, err)
		return
	}

	declaredTotal, err := parseAmountToCents(body.DeclaredTotal)
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.orderUsecase.CreateOrder(r.Context(), &usecase.CreateOrderReq{
		MemberID:         identity.MemberID,
		RecipientName:    body.RecipientName,
		RecipientPhone:   body.RecipientPhone,
		RecipientAddress: body.RecipientAddress,
		Notes:            body.Notes,
		DeclaredTotal:    declaredTotal,
	})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, &createOrderResponse{OrderID: res.OrderID})
}

// getOrder возвращает витрину заказа с позициями и хронологией.
func (h *OrderHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	orderID, err := parseIDParam(r, "orderID")
	if err != nil {
		WriteError(w, err)
		return
	}

	view, err := h.orderUsecase.GetOrder(r.Context(), &usecase.GetOrderReq{
		OrderID:  orderID,
		MemberID: identity.MemberID,
		Role:     identity.Role,
	})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newOrderResponse(view))
}

// listOrders возвращает заказы участника; администратору — все заказы.
func (h *OrderHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	views, err := h.orderUsecase.ListOrders(r.Context(), &usecase.ListOrdersReq{
		MemberID: identity.MemberID,
		Role:     identity.Role,
	})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	res := make([]*orderResponse, 0, len(views))
	for _, view := range views {
		res = append(res, newOrderResponse(view))
	}

	WriteSuccess(w, http.StatusOK, res)
}

// setStatus переводит заказ в новый статус. Участнику доступна только отмена
// собственного заказа, администратору — любой допустимый переход.
func (h *OrderHandler) setStatus(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	orderID, err := parseIDParam(r, "orderID")
	if err != nil {
		WriteError(w, err)
		return
	}

	var body setStatusRequest
	if err := decodeBody(r, &body); err != nil {
		WriteError(w, err)
		return
	}

	err = h.orderUsecase.SetStatus(r.Context(), &usecase.SetStatusReq{
		OrderID:  orderID,
		MemberID: identity.MemberID,
		Role:     identity.Role,
		Status:   domain.OrderStatus(body.Status),
	})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusNoContent, nil)
}
