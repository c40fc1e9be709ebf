package handler

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mmeshcher/bakkerij/internal/model"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageNames = []string{
	"index",
	"products",
	"cart",
	"account",
	"pickup",
	"payment",
	"payment-success",
	"payment-failed",
}

// pageData — общие данные всех страниц. Content содержит данные конкретной страницы.
type pageData struct {
	Lang      string
	Languages []string
	Page      string
	CartCount int
	Version   string
	Content   any
}

type pageRenderer struct {
	pages map[string]*template.Template
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"t": translate,
		"money": func(d decimal.Decimal) string {
			return "€ " + d.StringFixed(2)
		},
		"name": func(p *model.Product, lang string) string {
			return p.Name(lang)
		},
		"description": func(p *model.Product, lang string) string {
			return p.DescriptionFor(lang)
		},
	}
}

func parsePages() (*pageRenderer, error) {
	base, err := template.New("base").Funcs(templateFuncs()).
		ParseFS(templatesFS, "templates/layout.html", "templates/partials.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", name, err)
		}
		if _, err := t.ParseFS(templatesFS, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		pages[name] = t
	}

	return &pageRenderer{pages: pages}, nil
}

func mustParsePages() *pageRenderer {
	p, err := parsePages()
	if err != nil {
		panic(err)
	}
	return p
}

func (p *pageRenderer) execute(w http.ResponseWriter, status int, page, name string, data pageData) error {
	t, ok := p.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("execute %s/%s: %w", page, name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

func (h *Handler) pageData(r *http.Request, page string, content any) pageData {
	return pageData{
		Lang:      language(r),
		Languages: model.SupportedLanguages,
		Page:      page,
		CartCount: h.service.CartCount(sessionID(r)),
		Version:   h.version,
		Content:   content,
	}
}

// renderPage отдаёт фрагмент content для htmx-запросов и полную страницу для остальных.
func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, page string, content any) {
	name := "layout"
	if isHTMX(r) {
		name = "content"
	}
	h.renderTemplate(w, r, http.StatusOK, page, name, content)
}

func (h *Handler) renderTemplate(w http.ResponseWriter, r *http.Request, status int, page, name string, content any) {
	if err := h.pages.execute(w, status, page, name, h.pageData(r, page, content)); err != nil {
		h.logger.Error("render template error", zap.Error(err), zap.String("page", page), zap.String("template", name))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// renderMessage отдаёт короткое сообщение формы с заданным статусом.
func (h *Handler) renderMessage(w http.ResponseWriter, r *http.Request, status int, kind, key string) {
	var buf bytes.Buffer
	data := struct{ Kind, Text string }{Kind: kind, Text: translate(language(r), key)}
	if err := h.pages.pages["index"].ExecuteTemplate(&buf, "message", data); err != nil {
		h.logger.Error("render message error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) writeCartCount(w http.ResponseWriter, sessionID string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if count := h.service.CartCount(sessionID); count > 0 {
		fmt.Fprintf(w, `<span class="cart-count">%d</span>`, count)
	}
}

// triggerCartModal добавляет событие showCartModal в заголовок HX-Trigger.
func (h *Handler) triggerCartModal(w http.ResponseWriter, modal model.CartModal) {
	payload, err := json.Marshal(map[string]model.CartModal{"showCartModal": modal})
	if err != nil {
		h.logger.Error("marshal cart modal error", zap.Error(err))
		return
	}
	w.Header().Set("HX-Trigger", string(payload))
}
