package repository

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"

	"github.com/mmeshcher/bakkerij/internal/model"
)

// productRecord — запись товара в JSON-файле каталога.
type productRecord struct {
	ID            *int             `json:"id"`
	NameNl        string           `json:"nameNl"`
	NameFr        string           `json:"nameFr"`
	NameEn        string           `json:"nameEn"`
	NameDe        string           `json:"nameDe"`
	NameEs        string           `json:"nameEs"`
	NameZh        string           `json:"nameZh"`
	DescriptionNl string           `json:"descriptionNl"`
	DescriptionFr string           `json:"descriptionFr"`
	DescriptionEn string           `json:"descriptionEn"`
	DescriptionDe string           `json:"descriptionDe"`
	DescriptionEs string           `json:"descriptionEs"`
	DescriptionZh string           `json:"descriptionZh"`
	Price         *decimal.Decimal `json:"price"`
	Image         string           `json:"image"`
	Category      string           `json:"category"`
}

func (r productRecord) toProduct(key string) (*model.Product, error) {
	if r.ID == nil {
		return nil, fmt.Errorf("product %q: missing id", key)
	}
	if r.Price == nil {
		return nil, fmt.Errorf("product %q: missing price", key)
	}
	if r.Price.IsNegative() {
		return nil, fmt.Errorf("product %q: negative price %s", key, r.Price)
	}

	return &model.Product{
		ID: *r.ID,
		Names: model.LocalizedText{
			NL: r.NameNl, FR: r.NameFr, EN: r.NameEn,
			DE: r.NameDe, ES: r.NameEs, ZH: r.NameZh,
		},
		Description: model.LocalizedText{
			NL: r.DescriptionNl, FR: r.DescriptionFr, EN: r.DescriptionEn,
			DE: r.DescriptionDe, ES: r.DescriptionEs, ZH: r.DescriptionZh,
		},
		Price:    *r.Price,
		Image:    r.Image,
		Category: r.Category,
	}, nil
}

// DecodeCatalog разбирает каталог в формате {"ключ": {товар}}. Ключи не используются.
func DecodeCatalog(r io.Reader) ([]*model.Product, error) {
	var records map[string]productRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	products := make([]*model.Product, 0, len(records))
	for key, rec := range records {
		p, err := rec.toProduct(key)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, nil
}

// LoadCatalogFile читает товары из JSON-файла.
func LoadCatalogFile(path string) ([]*model.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()

	return DecodeCatalog(f)
}
