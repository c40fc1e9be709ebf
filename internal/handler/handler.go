// Package handler содержит HTTP-обработчики сайта пекарни.
package handler

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/bakkerij/internal/middleware"
	"github.com/mmeshcher/bakkerij/internal/model"
)

// Service определяет контракт бизнес-логики, используемой HTTP-обработчиками.
type Service interface {
	Products() []*model.Product
	ProductByID(id int) (*model.Product, bool)
	ProductsByCategory(category string) []*model.Product
	Categories() []string

	AddToCart(sessionID string, productID, quantity int)
	UpdateCartItem(sessionID string, productID, quantity int)
	RemoveFromCart(sessionID string, productID int)
	CartCount(sessionID string) int
	CartView(sessionID string) model.CartView
	CartModal(productID, quantity int, lang string) model.CartModal

	PlaceOrder(sessionID string) (model.Order, bool, error)
	OrderHistory(username string) []model.Order
	RepeatOrder(sessionID string, number int) error

	Login(sessionID, firstName, password string) bool
	Logout(sessionID string)
	Username(sessionID string) (string, bool)
	IsLoggedIn(sessionID string) bool
	ChangePassword(sessionID, newPassword, confirmPassword string) error
	UpdateAddress(username string, address model.Address)
	Address(username string) (model.Address, bool)
	SavePickupDetails(sessionID, date, time string)
	PickupDetails(sessionID string) (model.PickupDetails, bool)
	SaveLastPaymentMethod(sessionID, method string)
	LastPaymentMethod(sessionID string) string
}

// Handler реализует HTTP-обработчики сайта пекарни.
type Handler struct {
	service  Service
	logger   *zap.Logger
	sessions *middleware.SessionMiddleware
	pages    *pageRenderer
	version  string
	now      func() time.Time
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(s Service, logger *zap.Logger, sessions *middleware.SessionMiddleware, version string) *Handler {
	return &Handler{
		service:  s,
		logger:   logger,
		sessions: sessions,
		pages:    mustParsePages(),
		version:  version,
		now:      time.Now,
	}
}

func sessionID(r *http.Request) string {
	id, _ := middleware.GetSessionIDFromContext(r.Context())
	return id
}

// language возвращает язык запроса из параметра lang. Неподдерживаемые значения заменяются языком по умолчанию.
func language(r *http.Request) string {
	lang := r.FormValue("lang")
	for _, l := range model.SupportedLanguages {
		if l == lang {
			return lang
		}
	}
	return model.DefaultLanguage
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
