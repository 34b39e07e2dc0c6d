// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"errors"
	"net/http"

	"github.com/hitoshi/kiroku/internal/middleware"
	"github.com/hitoshi/kiroku/internal/model"
	"github.com/hitoshi/kiroku/internal/view"
)

const sessionCookieName = "session_id"

// Renderer はHTMLページのレンダリングインターフェース。
// view.Rendererが実装する。
type Renderer interface {
	Render(w http.ResponseWriter, page string, data view.Data) error
}

// Config はハンドラー共通の設定。
type Config struct {
	// AdminEmail は管理者アカウントのメールアドレス。
	// 管理者判定はこの値との同一性比較のみで行う。
	AdminEmail string

	// SessionSecret はフラッシュメッセージCookieの署名に使用する。
	SessionSecret string

	CookieDomain  string
	CookieSecure  bool
	SessionMaxAge int // セッションCookieの有効期間（秒）
}

// MetricsRecorder はハンドラーが記録するドメインメトリクスのインターフェース。
// metrics.Collectorの部分集合として定義する。
type MetricsRecorder interface {
	RecordRegistration()
	RecordLogin()
	RecordLoginFailure()
	RecordPostCreated()
	RecordPostDeleted()
	RecordComment()
}

// viewData はリクエストから共通のレンダリングデータを組み立てる。
// フラッシュメッセージはここで取り出され、Cookieから消える。
func (c Config) viewData(w http.ResponseWriter, r *http.Request, title string) view.Data {
	data := view.Data{
		Title:     title,
		Flash:     view.PopFlash(w, r, c.SessionSecret),
		CSRFToken: middleware.CSRFTokenFromContext(r.Context()),
		Form:      map[string]string{},
	}

	if user, ok := middleware.UserFromContext(r.Context()); ok {
		data.CurrentUser = user
		data.IsAdmin = user.Email == c.AdminEmail
	}

	return data
}

// setSessionCookie はセッションIDをHTTP Only Cookieとして設定する。
func (c Config) setSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Path:     "/",
		Domain:   c.CookieDomain,
		MaxAge:   c.SessionMaxAge,
		HttpOnly: true,
		Secure:   c.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie はセッションCookieを削除する。
func (c Config) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   c.CookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// flashAndRedirect はフラッシュメッセージを設定してリダイレクトする。
func (c Config) flashAndRedirect(w http.ResponseWriter, r *http.Request, message, path string) {
	view.SetFlash(w, c.SessionSecret, message, c.CookieSecure)
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// asAppError はエラーを*model.AppErrorとして取り出す。該当しない場合はnil。
func asAppError(err error) *model.AppError {
	var appErr *model.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}
