package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hitoshi/kiroku/internal/model"
	"github.com/hitoshi/kiroku/internal/view"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	Register(ctx context.Context, email, password, name string) (*model.User, *model.Session, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, *model.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

// AuthHandler は登録・ログイン・ログアウトのHTTPハンドラー。
type AuthHandler struct {
	service  AuthServiceInterface
	renderer Renderer
	config   Config
	metrics  MetricsRecorder
}

// NewAuthHandler はAuthHandlerを生成する。metricsはnil可。
func NewAuthHandler(service AuthServiceInterface, renderer Renderer, config Config, metrics MetricsRecorder) *AuthHandler {
	return &AuthHandler{
		service:  service,
		renderer: renderer,
		config:   config,
		metrics:  metrics,
	}
}

// ShowRegister は新規登録フォームを表示する。
// GET /register
func (h *AuthHandler) ShowRegister(w http.ResponseWriter, r *http.Request) {
	data := h.config.viewData(w, r, "Register")
	if err := h.renderer.Render(w, "register.html", data); err != nil {
		slog.Error("failed to render register page", slog.String("error", err.Error()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// Register は新規ユーザーを登録する。
// 成功時はセッションを発行してホームへリダイレクトする（登録は暗黙の認証を伴う）。
// メールアドレスが登録済みの場合はフラッシュメッセージ付きでログインページへリダイレクトする。
// POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	name := r.PostFormValue("name")

	if email == "" || password == "" || name == "" {
		data := h.config.viewData(w, r, "Register")
		data.Flash = "すべての項目を入力してください。"
		data.Form["email"] = email
		data.Form["name"] = name
		h.render(w, "register.html", data)
		return
	}

	_, session, err := h.service.Register(r.Context(), email, password, name)
	if err != nil {
		if appErr := asAppError(err); appErr != nil && appErr.Code == model.ErrCodeAlreadyRegistered {
			h.config.flashAndRedirect(w, r, appErr.Message, "/login")
			return
		}
		slog.Error("registration failed", slog.String("error", err.Error()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordRegistration()
	}

	h.config.setSessionCookie(w, session.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ShowLogin はログインフォームを表示する。
// GET /login
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	data := h.config.viewData(w, r, "Log In")
	if err := h.renderer.Render(w, "login.html", data); err != nil {
		slog.Error("failed to render login page", slog.String("error", err.Error()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// Login はメールアドレスとパスワードで認証し、セッションを発行する。
// 未登録メールアドレス・パスワード不一致の場合はメッセージ付きでフォームを再表示する。
// POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	_, session, err := h.service.Authenticate(r.Context(), email, password)
	if err != nil {
		if appErr := asAppError(err); appErr != nil {
			if h.metrics != nil {
				h.metrics.RecordLoginFailure()
			}
			data := h.config.viewData(w, r, "Log In")
			data.Flash = appErr.Message
			data.Form["email"] = email
			h.render(w, "login.html", data)
			return
		}
		slog.Error("login failed", slog.String("error", err.Error()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordLogin()
	}

	h.config.setSessionCookie(w, session.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout はセッションを破棄してホームへリダイレクトする。
// 認証必須の制約はルート側のRequireLoginミドルウェアが強制する。
// GET /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookieName)
	if err == nil && cookie.Value != "" {
		if logoutErr := h.service.Logout(r.Context(), cookie.Value); logoutErr != nil {
			slog.Error("failed to logout", slog.String("error", logoutErr.Error()))
			// ログアウト失敗してもCookieはクリアする
		}
	}

	h.config.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// render はテンプレートをレンダリングし、失敗時は500を返す。
func (h *AuthHandler) render(w http.ResponseWriter, page string, data view.Data) {
	if err := h.renderer.Render(w, page, data); err != nil {
		slog.Error("failed to render page",
			slog.String("page", page),
			slog.String("error", err.Error()),
		)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
