package middleware

import (
	"log/slog"
	"net/http"
)

// NewRequireLoginMiddleware は認証済みセッションを必須とするミドルウェアを返す。
// 未認証リクエストはログインページへリダイレクトする。
// IdentityMiddlewareの後に配置すること。
func NewRequireLoginMiddleware(loginPath string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := UserFromContext(r.Context()); !ok {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// NewRequireAdminMiddleware は管理者のみ通過できるミドルウェアを返す。
// 現在のユーザーが認証済みかつ設定された管理者メールアドレスと一致する場合のみ
// ラップしたハンドラーを実行する。それ以外は403 Forbiddenで拒否する。
// ロールシステムは持たない。特権を持つのは常に1アカウントだけであり、
// 判定は単純な同一性比較のみ。
func NewRequireAdminMiddleware(adminEmail string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || user.Email != adminEmail {
				slog.Warn("admin check failed",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				)
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
