package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	custommiddleware "github.com/mmeshcher/bakkerij/internal/middleware"
)

// SetupRouter настраивает HTTP-маршруты и middleware сайта пекарни.
// Статические файлы раздаются из staticDir, если он задан.
func (h *Handler) SetupRouter(staticDir string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))

	if staticDir != "" {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	}

	r.Group(func(r chi.Router) {
		r.Use(h.sessions.Middleware)

		r.Get("/", h.Home)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Get("/count", h.GetCartCount)
			r.Post("/add/{id}", h.AddToCart)
			r.Post("/update/{id}", h.UpdateCartItem)
			r.Delete("/remove/{id}", h.RemoveFromCart)
		})

		r.Get("/products", h.GetProducts)
		r.Get("/products/{category}", h.GetProductsByCategory)
		r.Get("/product/details/{id}", h.GetProductDetails)

		r.Get("/pickup", h.GetPickup)
		r.Post("/pickup/confirm", h.ConfirmPickup)
		r.Get("/payment", h.GetPayment)
		r.Get("/payment/success", h.GetPaymentSuccess)
		r.Get("/payment/failed", h.GetPaymentFailed)

		r.Get("/account", h.GetAccount)
		r.Post("/account/password", h.ChangePassword)
		r.Post("/account/address", h.UpdateAddress)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Post("/order/repeat/{orderNumber}", h.RepeatOrder)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}
