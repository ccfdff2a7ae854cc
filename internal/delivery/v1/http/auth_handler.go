package http

import (
	"net/http"

	"github.com/severnmarket/go-backend/internal/usecase"
	"github.com/severnmarket/go-backend/pkg/logger"
)

type AuthHandler struct {
	authUsecase usecase.AuthUC
	logger      logger.Logger
}

func NewAuthHandler(authUsecase usecase.AuthUC, logger logger.Logger) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase, logger: logger}
}

// requestPasswordReset выпускает одноразовый токен сброса. Ответ одинаков
// для известного и неизвестного email.
func (h *AuthHandler) requestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var body passwordResetRequest
	if err := decodeBody(r, &body); err != nil {
		WriteError(w, err)
		return
	}

	err := h.authUsecase.RequestPasswordReset(r.Context(), &usecase.RequestPasswordResetReq{Email: body.Email})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusAccepted, nil)
}

// confirmPasswordReset одноразово потребляет токен и устанавливает новый пароль.
func (h *AuthHandler) confirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	var body passwordResetConfirmRequest
	if err := decodeBody(r, &body); err != nil {
		WriteError(w, err)
		return
	}

	err := h.authUsecase.ConfirmPasswordReset(r.Context(), &usecase.ConfirmPasswordResetReq{
		Token:       body.Token,
		NewPassword: body.NewPassword,
	})
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusNoContent, nil)
}
