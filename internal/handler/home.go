package handler

import "net/http"

// Home отображает главную страницу.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "index", nil)
}
