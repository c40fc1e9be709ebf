package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mmeshcher/bakkerij/internal/model"
	"github.com/mmeshcher/bakkerij/internal/repository"
)

type productsContent struct {
	Category   string
	Categories []string
	Products   []*model.Product
}

type productResponse struct {
	ID            int             `json:"id"`
	NameNl        string          `json:"nameNl"`
	NameFr        string          `json:"nameFr"`
	NameEn        string          `json:"nameEn"`
	NameDe        string          `json:"nameDe"`
	NameEs        string          `json:"nameEs"`
	NameZh        string          `json:"nameZh"`
	DescriptionNl string          `json:"descriptionNl"`
	DescriptionFr string          `json:"descriptionFr"`
	DescriptionEn string          `json:"descriptionEn"`
	DescriptionDe string          `json:"descriptionDe"`
	DescriptionEs string          `json:"descriptionEs"`
	DescriptionZh string          `json:"descriptionZh"`
	Price         decimal.Decimal `json:"price"`
	Image         string          `json:"image"`
	Category      string          `json:"category"`
}

func newProductResponse(p *model.Product) productResponse {
	return productResponse{
		ID:            p.ID,
		NameNl:        p.Names.NL,
		NameFr:        p.Names.FR,
		NameEn:        p.Names.EN,
		NameDe:        p.Names.DE,
		NameEs:        p.Names.ES,
		NameZh:        p.Names.ZH,
		DescriptionNl: p.Description.NL,
		DescriptionFr: p.Description.FR,
		DescriptionEn: p.Description.EN,
		DescriptionDe: p.Description.DE,
		DescriptionEs: p.Description.ES,
		DescriptionZh: p.Description.ZH,
		Price:         p.Price,
		Image:         p.Image,
		Category:      p.Category,
	}
}

// GetProducts отображает весь каталог.
func (h *Handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "products", productsContent{
		Category:   repository.CategoryAll,
		Categories: h.service.Categories(),
		Products:   h.service.Products(),
	})
}

// GetProductsByCategory возвращает фрагмент сетки товаров выбранной категории.
func (h *Handler) GetProductsByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	h.renderTemplate(w, r, http.StatusOK, "products", "products-area", productsContent{
		Category:   category,
		Categories: h.service.Categories(),
		Products:   h.service.ProductsByCategory(category),
	})
}

// GetProductDetails возвращает описание товара в формате JSON.
func (h *Handler) GetProductDetails(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(r)
	if !ok {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	product, ok := h.service.ProductByID(productID)
	if !ok {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(newProductResponse(product)); err != nil {
		h.logger.Error("encode product error", zap.Error(err), zap.Int("product", productID))
	}
}
