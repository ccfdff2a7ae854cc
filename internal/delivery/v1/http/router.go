package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/severnmarket/go-backend/internal/usecase"
	"github.com/severnmarket/go-backend/pkg/logger"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(cartUC usecase.CartUC, orderUC usecase.OrderUC, authUC usecase.AuthUC, issuer usecase.TokenIssuer) {
	r.router.Route("/api/v1", func(v1 chi.Router) {
		authHandler := NewAuthHandler(authUC, r.logger)
		registerAuthRoutes(v1, authHandler)

		v1.Group(func(private chi.Router) {
			private.Use(authenticate(issuer, r.logger))

			cartHandler := NewCartHandler(cartUC, r.logger)
			registerCartRoutes(private, cartHandler)

			orderHandler := NewOrderHandler(orderUC, r.logger)
			registerOrderRoutes(private, orderHandler)
		})
	})
}

func registerAuthRoutes(router chi.Router, authHandler *AuthHandler) {
	router.Route("/auth", func(auth chi.Router) {
		auth.Post("/password-reset", authHandler.requestPasswordReset)
		auth.Post("/password-reset/confirm", authHandler.confirmPasswordReset)
	})
}

func registerCartRoutes(router chi.Router, cartHandler *CartHandler) {
	router.Route("/cart", func(cart chi.Router) {
		cart.Get("/", cartHandler.getCart)
		cart.Get("/check", cartHandler.checkCart)
		cart.Post("/merge", cartHandler.mergeGuestCart)
		cart.Post("/items", cartHandler.addItem)
		cart.Patch("/items/{productID}", cartHandler.setQuantity)
		cart.Delete("/items/{productID}", cartHandler.removeItem)
	})
}

func registerOrderRoutes(router chi.Router, orderHandler *OrderHandler) {
	router.Route("/orders", func(orders chi.Router) {
		orders.Post("/", orderHandler.createOrder)
		orders.Get("/", orderHandler.listOrders)
		orders.Get("/{orderID}", orderHandler.getOrder)
		orders.Patch("/{orderID}/status", orderHandler.setStatus)
	})
}
