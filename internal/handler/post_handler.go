package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/kiroku/internal/middleware"
	"github.com/hitoshi/kiroku/internal/model"
	"github.com/hitoshi/kiroku/internal/view"
)

// BlogServiceInterface は記事ハンドラーが必要とするサービスインターフェース。
type BlogServiceInterface interface {
	ListPosts(ctx context.Context) ([]*model.Post, error)
	GetPost(ctx context.Context, id string) (*model.Post, error)
	CreatePost(ctx context.Context, authorID string, input model.PostInput) (*model.Post, error)
	UpdatePost(ctx context.Context, id string, input model.PostInput) (*model.Post, error)
	DeletePost(ctx context.Context, id string) error
	AddComment(ctx context.Context, postID, authorID, body string) (*model.Comment, error)
	ListComments(ctx context.Context, postID string) ([]*model.Comment, error)
}

// PostHandler は記事とコメントのHTTPハンドラー。
type PostHandler struct {
	service  BlogServiceInterface
	renderer Renderer
	config   Config
	metrics  MetricsRecorder
}

// NewPostHandler はPostHandlerを生成する。metricsはnil可。
func NewPostHandler(service BlogServiceInterface, renderer Renderer, config Config, metrics MetricsRecorder) *PostHandler {
	return &PostHandler{
		service:  service,
		renderer: renderer,
		config:   config,
		metrics:  metrics,
	}
}

// Home は全記事を投稿順で一覧表示する。
// GET /
func (h *PostHandler) Home(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListPosts(r.Context())
	if err != nil {
		slog.Error("failed to list posts", slog.String("error", err.Error()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	data := h.config.viewData(w, r, "Home")
	data.Posts = posts
	h.render(w, "home.html", data)
}

// ShowPost は記事の詳細とコメント一覧を表示する。
// 存在しないIDの場合は404を返す。
// GET /post/{postID}
func (h *PostHandler) ShowPost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")

	post, err := h.service.GetPost(r.Context(), postID)
	if err != nil {
		h.handleError(w, r, err, "failed to get post")
		return
	}

	comments, err := h.service.ListComments(r.Context(), postID)
	if err != nil {
		slog.Error("failed to list comments",
			slog.String("post_id", postID),
			slog.String("error", err.Error()),
		)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	data := h.config.viewData(w, r, post.Title)
	data.Post = post
	data.Comments = comments
	h.render(w, "post.html", data)
}

// AddComment は記事にコメントを投稿する。
// 未ログインの場合はサービスを呼ばずにログインページへリダイレクトする。
// POST /post/{postID}
func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		appErr := model.NewRequiresAuthError()
		h.config.flashAndRedirect(w, r, appErr.Message, "/login")
		return
	}

	body := r.PostFormValue("body")
	if body == "" {
		h.config.flashAndRedirect(w, r, "コメントを入力してください。", "/post/"+postID)
		return
	}

	if _, err := h.service.AddComment(r.Context(), postID, user.ID, body); err != nil {
		h.handleError(w, r, err, "failed to add comment")
		return
	}

	if h.metrics != nil {
		h.metrics.RecordComment()
	}

	http.Redirect(w, r, "/post/"+postID, http.StatusSeeOther)
}

// NewPostForm は新規記事フォームを表示する。管理者専用。
// GET /new-post
func (h *PostHandler) NewPostForm(w http.ResponseWriter, r *http.Request) {
	data := h.config.viewData(w, r, "New Post")
	h.render(w, "post_form.html", data)
}

// CreatePost は新規記事を作成する。管理者専用。
// 投稿日はこの時点のものが記録され、以後の編集でも変わらない。
// POST /new-post
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		// RequireAdminミドルウェアを通過していれば到達しない
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	input := postInputFromForm(r)
	if input.Title == "" || input.Body == "" {
		data := h.config.viewData(w, r, "New Post")
		data.Flash = "タイトルと本文は必須です。"
		data.Form = formValues(input)
		h.render(w, "post_form.html", data)
		return
	}

	if _, err := h.service.CreatePost(r.Context(), user.ID, input); err != nil {
		if appErr := asAppError(err); appErr != nil && appErr.Code == model.ErrCodeDuplicateTitle {
			data := h.config.viewData(w, r, "New Post")
			data.Flash = appErr.Message
			data.Form = formValues(input)
			h.render(w, "post_form.html", data)
			return
		}
		slog.Error("failed to create post", slog.String("error", err.Error()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordPostCreated()
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// EditPostForm は既存記事の編集フォームを表示する。管理者専用。
// GET /edit-post/{postID}
func (h *PostHandler) EditPostForm(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")

	post, err := h.service.GetPost(r.Context(), postID)
	if err != nil {
		h.handleError(w, r, err, "failed to get post")
		return
	}

	data := h.config.viewData(w, r, "Edit Post")
	data.IsEdit = true
	data.Post = post
	data.Form = map[string]string{
		"title":    post.Title,
		"subtitle": post.Subtitle,
		"body":     post.Body,
		"img_url":  post.ImgURL,
	}
	h.render(w, "post_form.html", data)
}

// UpdatePost は既存記事を更新する。管理者専用。
// 投稿日と著者は変更されない。
// POST /edit-post/{postID}
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")

	input := postInputFromForm(r)
	if input.Title == "" || input.Body == "" {
		data := h.config.viewData(w, r, "Edit Post")
		data.IsEdit = true
		data.Post = &model.Post{ID: postID}
		data.Flash = "タイトルと本文は必須です。"
		data.Form = formValues(input)
		h.render(w, "post_form.html", data)
		return
	}

	post, err := h.service.UpdatePost(r.Context(), postID, input)
	if err != nil {
		if appErr := asAppError(err); appErr != nil && appErr.Code == model.ErrCodeDuplicateTitle {
			data := h.config.viewData(w, r, "Edit Post")
			data.IsEdit = true
			data.Post = &model.Post{ID: postID}
			data.Flash = appErr.Message
			data.Form = formValues(input)
			h.render(w, "post_form.html", data)
			return
		}
		h.handleError(w, r, err, "failed to update post")
		return
	}

	http.Redirect(w, r, "/post/"+post.ID, http.StatusSeeOther)
}

// DeletePost は記事を削除する。管理者専用。
// 記事に付いたコメントも同時に削除される。
// GET /delete/{postID}
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")

	if err := h.service.DeletePost(r.Context(), postID); err != nil {
		h.handleError(w, r, err, "failed to delete post")
		return
	}

	if h.metrics != nil {
		h.metrics.RecordPostDeleted()
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleError はAppErrorに応じたHTTPレスポンスを返す。
// POST_NOT_FOUNDは404、それ以外の未分類エラーは500。
func (h *PostHandler) handleError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	if appErr := asAppError(err); appErr != nil && appErr.Code == model.ErrCodePostNotFound {
		http.NotFound(w, r)
		return
	}
	slog.Error(msg, slog.String("error", err.Error()))
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// render はテンプレートをレンダリングし、失敗時は500を返す。
func (h *PostHandler) render(w http.ResponseWriter, page string, data view.Data) {
	if err := h.renderer.Render(w, page, data); err != nil {
		slog.Error("failed to render page",
			slog.String("page", page),
			slog.String("error", err.Error()),
		)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func postInputFromForm(r *http.Request) model.PostInput {
	return model.PostInput{
		Title:    r.PostFormValue("title"),
		Subtitle: r.PostFormValue("subtitle"),
		Body:     r.PostFormValue("body"),
		ImgURL:   r.PostFormValue("img_url"),
	}
}

func formValues(input model.PostInput) map[string]string {
	return map[string]string{
		"title":    input.Title,
		"subtitle": input.Subtitle,
		"body":     input.Body,
		"img_url":  input.ImgURL,
	}
}
