package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Pinger はデータベース疎通確認のインターフェース。*sql.DBが実装する。
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PageHandler は静的ページとヘルスチェックのHTTPハンドラー。
type PageHandler struct {
	renderer Renderer
	config   Config
	db       Pinger
}

// NewPageHandler はPageHandlerを生成する。
func NewPageHandler(renderer Renderer, config Config, db Pinger) *PageHandler {
	return &PageHandler{
		renderer: renderer,
		config:   config,
		db:       db,
	}
}

// About は紹介ページを表示する。
// GET /about
func (h *PageHandler) About(w http.ResponseWriter, r *http.Request) {
	data := h.config.viewData(w, r, "About")
	if err := h.renderer.Render(w, "about.html", data); err != nil {
		slog.Error("failed to render about page", slog.String("error", err.Error()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// Contact は連絡先ページを表示する。
// GET /contact
func (h *PageHandler) Contact(w http.ResponseWriter, r *http.Request) {
	data := h.config.viewData(w, r, "Contact")
	if err := h.renderer.Render(w, "contact.html", data); err != nil {
		slog.Error("failed to render contact page", slog.String("error", err.Error()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// Health はデータベース疎通を確認してサーバーの状態を返す。
// GET /health
func (h *PageHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		slog.Error("health check failed", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("unhealthy"))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
