package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jimlawless/whereami"
	"github.com/severnmarket/go-backend/internal/cfg"
	"github.com/severnmarket/go-backend/internal/domain"
	"github.com/severnmarket/go-backend/internal/usecase"
	"github.com/severnmarket/go-backend/pkg/e"
)

// Client — HTTP-клиент внешнего сервиса токенов доступа.
type Client struct {
	httpClient *http.Client
	addr       string
}

func NewClient(cfg *cfg.AuthCfg) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		addr:       cfg.Addr,
	}
}

type validateResponse struct {
	MemberID int64  `json:"member_id"`
	Role     string `json:"role"`
}

// Validate проверяет токен доступа во внешнем сервисе и возвращает личность.
// Любой невалидный или отклонённый токен даёт e.ErrUnauthorized.
func (c *Client) Validate(ctx context.Context, token string) (*usecase.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.addr+"/internal/validate", nil)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrUnauthorized)
	default:
		return nil, e.Wrap(whereami.WhereAmI(), fmt.Errorf("auth service returned %d", resp.StatusCode))
	}

	var body validateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &usecase.Identity{
		MemberID: body.MemberID,
		Role:     domain.Role(body.Role),
	}, nil
}
