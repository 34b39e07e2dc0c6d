package blog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hitoshi/kiroku/internal/model"
)

// --- モック定義 ---

type mockPostRepo struct {
	listFn       func(ctx context.Context) ([]*model.Post, error)
	findByIDFn   func(ctx context.Context, id string) (*model.Post, error)
	createFn     func(ctx context.Context, post *model.Post) error
	updateFn     func(ctx context.Context, post *model.Post) error
	deleteByIDFn func(ctx context.Context, id string) error
}

func (m *mockPostRepo) List(ctx context.Context) ([]*model.Post, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockPostRepo) FindByID(ctx context.Context, id string) (*model.Post, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockPostRepo) Create(ctx context.Context, post *model.Post) error {
	if m.createFn != nil {
		return m.createFn(ctx, post)
	}
	return nil
}

func (m *mockPostRepo) Update(ctx context.Context, post *model.Post) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, post)
	}
	return nil
}

func (m *mockPostRepo) DeleteByID(ctx context.Context, id string) error {
	if m.deleteByIDFn != nil {
		return m.deleteByIDFn(ctx, id)
	}
	return nil
}

type mockCommentRepo struct {
	createFn       func(ctx context.Context, comment *model.Comment) error
	listByPostIDFn func(ctx context.Context, postID string) ([]*model.Comment, error)
}

func (m *mockCommentRepo) Create(ctx context.Context, comment *model.Comment) error {
	if m.createFn != nil {
		return m.createFn(ctx, comment)
	}
	return nil
}

func (m *mockCommentRepo) ListByPostID(ctx context.Context, postID string) ([]*model.Comment, error) {
	if m.listByPostIDFn != nil {
		return m.listByPostIDFn(ctx, postID)
	}
	return nil, nil
}

// --- テスト ---

func TestService_CreatePost_StampsDateAndAuthor(t *testing.T) {
	var created *model.Post
	postRepo := &mockPostRepo{
		createFn: func(_ context.Context, post *model.Post) error {
			created = post
			return nil
		},
	}
	svc := NewService(postRepo, &mockCommentRepo{})
	svc.now = func() time.Time {
		return time.Date(2025, time.August, 31, 10, 0, 0, 0, time.UTC)
	}

	post, err := svc.CreatePost(context.Background(), "admin-1", model.PostInput{
		Title:    "First Post",
		Subtitle: "A beginning",
		Body:     "Hello, world.",
		ImgURL:   "https://example.com/a.png",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created == nil {
		t.Fatal("expected post to be persisted")
	}
	if post.ID == "" {
		t.Error("expected non-empty post ID")
	}
	if post.Date != "August 31, 2025" {
		t.Errorf("date = %q, want %q", post.Date, "August 31, 2025")
	}
	if post.AuthorID != "admin-1" {
		t.Errorf("author ID = %q, want %q", post.AuthorID, "admin-1")
	}
	if post.Title != "First Post" || post.Subtitle != "A beginning" ||
		post.Body != "Hello, world." || post.ImgURL != "https://example.com/a.png" {
		t.Errorf("post fields do not match input: %+v", post)
	}
}

func TestService_GetPost_NotFound(t *testing.T) {
	svc := NewService(&mockPostRepo{}, &mockCommentRepo{})

	_, err := svc.GetPost(context.Background(), "missing-id")
	if err == nil {
		t.Fatal("expected error for missing post")
	}

	var appErr *model.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *model.AppError, got %T", err)
	}
	if appErr.Code != model.ErrCodePostNotFound {
		t.Errorf("code = %q, want %q", appErr.Code, model.ErrCodePostNotFound)
	}
}

func TestService_UpdatePost_PreservesAuthorAndDate(t *testing.T) {
	existing := &model.Post{
		ID:       "post-1",
		Title:    "Old Title",
		Subtitle: "Old Subtitle",
		Date:     "January 1, 2024",
		Body:     "Old body",
		AuthorID: "admin-1",
	}

	var updated *model.Post
	postRepo := &mockPostRepo{
		findByIDFn: func(_ context.Context, id string) (*model.Post, error) {
			if id == "post-1" {
				return existing, nil
			}
			return nil, nil
		},
		updateFn: func(_ context.Context, post *model.Post) error {
			updated = post
			return nil
		},
	}
	svc := NewService(postRepo, &mockCommentRepo{})

	post, err := svc.UpdatePost(context.Background(), "post-1", model.PostInput{
		Title:    "New Title",
		Subtitle: "New Subtitle",
		Body:     "New body",
		ImgURL:   "https://example.com/new.png",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated == nil {
		t.Fatal("expected post to be updated")
	}
	if post.Title != "New Title" || post.Body != "New body" {
		t.Errorf("content fields should be overwritten: %+v", post)
	}
	// 投稿日と著者は編集でリセットされない
	if post.Date != "January 1, 2024" {
		t.Errorf("date = %q, want original %q", post.Date, "January 1, 2024")
	}
	if post.AuthorID != "admin-1" {
		t.Errorf("author ID = %q, want original %q", post.AuthorID, "admin-1")
	}
}

func TestService_UpdatePost_NotFound(t *testing.T) {
	svc := NewService(&mockPostRepo{}, &mockCommentRepo{})

	_, err := svc.UpdatePost(context.Background(), "missing-id", model.PostInput{Title: "X", Body: "Y"})
	if err == nil {
		t.Fatal("expected error for missing post")
	}

	var appErr *model.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *model.AppError, got %T", err)
	}
	if appErr.Code != model.ErrCodePostNotFound {
		t.Errorf("code = %q, want %q", appErr.Code, model.ErrCodePostNotFound)
	}
}

func TestService_DeletePost_NotFound(t *testing.T) {
	postRepo := &mockPostRepo{
		deleteByIDFn: func(_ context.Context, id string) error {
			return model.NewPostNotFoundError(id)
		},
	}
	svc := NewService(postRepo, &mockCommentRepo{})

	err := svc.DeletePost(context.Background(), "missing-id")
	if err == nil {
		t.Fatal("expected error for missing post")
	}

	var appErr *model.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *model.AppError, got %T", err)
	}
	if appErr.Code != model.ErrCodePostNotFound {
		t.Errorf("code = %q, want %q", appErr.Code, model.ErrCodePostNotFound)
	}
}

func TestService_AddComment_ValidatesPostExists(t *testing.T) {
	commentCreated := false
	commentRepo := &mockCommentRepo{
		createFn: func(_ context.Context, _ *model.Comment) error {
			commentCreated = true
			return nil
		},
	}
	svc := NewService(&mockPostRepo{}, commentRepo)

	_, err := svc.AddComment(context.Background(), "missing-post", "user-1", "nice post")
	if err == nil {
		t.Fatal("expected error for comment on missing post")
	}

	var appErr *model.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *model.AppError, got %T", err)
	}
	if appErr.Code != model.ErrCodePostNotFound {
		t.Errorf("code = %q, want %q", appErr.Code, model.ErrCodePostNotFound)
	}
	if commentCreated {
		t.Error("comment must not be created when the post does not exist")
	}
}

func TestService_AddComment_Success(t *testing.T) {
	var created *model.Comment
	postRepo := &mockPostRepo{
		findByIDFn: func(_ context.Context, id string) (*model.Post, error) {
			return &model.Post{ID: id, Title: "A Post"}, nil
		},
	}
	commentRepo := &mockCommentRepo{
		createFn: func(_ context.Context, comment *model.Comment) error {
			created = comment
			return nil
		},
	}
	svc := NewService(postRepo, commentRepo)

	comment, err := svc.AddComment(context.Background(), "post-1", "user-1", "great read")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created == nil {
		t.Fatal("expected comment to be persisted")
	}
	if comment.PostID != "post-1" {
		t.Errorf("post ID = %q, want %q", comment.PostID, "post-1")
	}
	if comment.AuthorID != "user-1" {
		t.Errorf("author ID = %q, want %q", comment.AuthorID, "user-1")
	}
	if comment.Body != "great read" {
		t.Errorf("body = %q, want %q", comment.Body, "great read")
	}
}

func TestService_ListComments_ScopedToPost(t *testing.T) {
	requestedPostID := ""
	commentRepo := &mockCommentRepo{
		listByPostIDFn: func(_ context.Context, postID string) ([]*model.Comment, error) {
			requestedPostID = postID
			return []*model.Comment{
				{ID: "c1", PostID: postID, Body: "first"},
				{ID: "c2", PostID: postID, Body: "second"},
			}, nil
		},
	}
	svc := NewService(&mockPostRepo{}, commentRepo)

	comments, err := svc.ListComments(context.Background(), "post-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if requestedPostID != "post-1" {
		t.Errorf("repository queried with post ID %q, want %q", requestedPostID, "post-1")
	}
	if len(comments) != 2 {
		t.Fatalf("len(comments) = %d, want 2", len(comments))
	}
}

func TestService_ListPosts_ReturnsInOrder(t *testing.T) {
	postRepo := &mockPostRepo{
		listFn: func(_ context.Context) ([]*model.Post, error) {
			return []*model.Post{
				{ID: "p1", Seq: 1, Title: "first"},
				{ID: "p2", Seq: 2, Title: "second"},
			}, nil
		},
	}
	svc := NewService(postRepo, &mockCommentRepo{})

	posts, err := svc.ListPosts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("len(posts) = %d, want 2", len(posts))
	}
	if posts[0].Seq >= posts[1].Seq {
		t.Errorf("posts should be in insertion order: %+v", posts)
	}
}
