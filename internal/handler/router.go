package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/kiroku/internal/middleware"
	"github.com/hitoshi/kiroku/internal/view"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Resolver    middleware.UserResolver
	CSRF        middleware.CSRFConfig
	HTTPMetrics middleware.HTTPRecorder
	Logger      *slog.Logger

	// サービス
	AuthService AuthServiceInterface
	BlogService BlogServiceInterface

	// レンダリング・共通設定
	Renderer Renderer
	Config   Config

	// 運用
	HealthChecker  Pinger
	Metrics        MetricsRecorder
	MetricsHandler http.Handler
}

// NewRouter は全ルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → Metrics → Identity → Logging → CSRF
//
// Identityは拒否しない。未ログインのリクエストは匿名のまま通過し、
// 認可はRequireLogin/RequireAdminがルート単位で強制する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	if deps.HTTPMetrics != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.HTTPMetrics))
	}
	r.Use(middleware.NewIdentityMiddleware(deps.Resolver))
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	r.Use(middleware.NewCSRFMiddleware(deps.CSRF))

	authHandler := NewAuthHandler(deps.AuthService, deps.Renderer, deps.Config, deps.Metrics)
	postHandler := NewPostHandler(deps.BlogService, deps.Renderer, deps.Config, deps.Metrics)
	pageHandler := NewPageHandler(deps.Renderer, deps.Config, deps.HealthChecker)

	// --- 公開ルート ---

	r.Handle("/static/*", view.StaticHandler())

	r.Get("/", postHandler.Home)
	r.Get("/about", pageHandler.About)
	r.Get("/contact", pageHandler.Contact)
	r.Get("/health", pageHandler.Health)

	r.Get("/post/{postID}", postHandler.ShowPost)
	r.Post("/post/{postID}", postHandler.AddComment)

	r.Get("/register", authHandler.ShowRegister)
	r.Post("/register", authHandler.Register)
	r.Get("/login", authHandler.ShowLogin)
	r.Post("/login", authHandler.Login)

	// --- ログインが必要なルート ---

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewRequireLoginMiddleware("/login"))

		r.Get("/logout", authHandler.Logout)
	})

	// --- 管理者専用ルート ---

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewRequireAdminMiddleware(deps.Config.AdminEmail))

		r.Get("/new-post", postHandler.NewPostForm)
		r.Post("/new-post", postHandler.CreatePost)
		r.Get("/edit-post/{postID}", postHandler.EditPostForm)
		r.Post("/edit-post/{postID}", postHandler.UpdatePost)
		r.Get("/delete/{postID}", postHandler.DeletePost)
	})

	// --- 運用ルート ---

	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	return r
}
