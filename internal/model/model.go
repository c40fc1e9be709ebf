// Package model содержит доменные сущности пекарни.
package model

import "github.com/shopspring/decimal"

// DefaultLanguage используется, если язык не указан или не поддерживается.
const DefaultLanguage = "nl"

// SupportedLanguages перечисляет языки интерфейса и каталога.
var SupportedLanguages = []string{"nl", "fr", "en", "de", "es", "zh"}

// LocalizedText хранит один текст на всех поддерживаемых языках.
type LocalizedText struct {
	NL string `json:"nl"`
	FR string `json:"fr"`
	EN string `json:"en"`
	DE string `json:"de"`
	ES string `json:"es"`
	ZH string `json:"zh"`
}

// Get возвращает текст на языке lang. Для неизвестного языка возвращается голландский вариант.
func (t LocalizedText) Get(lang string) string {
	switch lang {
	case "fr":
		return t.FR
	case "en":
		return t.EN
	case "de":
		return t.DE
	case "es":
		return t.ES
	case "zh":
		return t.ZH
	default:
		return t.NL
	}
}

// Product описывает товар каталога. Создаётся один раз при загрузке каталога и не изменяется.
type Product struct {
	ID          int             `json:"id"`
	Names       LocalizedText   `json:"names"`
	Description LocalizedText   `json:"descriptions"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
}

// Name возвращает название товара на языке lang.
func (p *Product) Name(lang string) string {
	return p.Names.Get(lang)
}

// DescriptionFor возвращает описание товара на языке lang.
func (p *Product) DescriptionFor(lang string) string {
	return p.Description.Get(lang)
}

// Address описывает почтовый адрес пользователя. Поля не проверяются.
type Address struct {
	Street  string
	Postal  string
	City    string
	Country string
}

// PickupDetails содержит выбранные дату и время самовывоза.
type PickupDetails struct {
	Date string
	Time string
}

// CartLine описывает строку корзины, сопоставленную с товаром каталога.
type CartLine struct {
	Product  *Product
	Quantity int
	Subtotal decimal.Decimal
}

// CartView содержит строки корзины, найденные в каталоге, и их общую сумму.
type CartView struct {
	Lines []CartLine
	Total decimal.Decimal
}

// IsEmpty сообщает, что в представлении корзины нет строк.
func (v CartView) IsEmpty() bool {
	return len(v.Lines) == 0
}

// CartModalType определяет вид уведомления о корзине.
type CartModalType string

const (
	CartModalAdd    CartModalType = "add"
	CartModalRepeat CartModalType = "repeat"
)

// CartModal — содержимое события showCartModal для фронтенда.
type CartModal struct {
	Lang        string           `json:"lang"`
	Type        CartModalType    `json:"type"`
	ProductName string           `json:"productName,omitempty"`
	Quantity    int              `json:"quantity,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
}
