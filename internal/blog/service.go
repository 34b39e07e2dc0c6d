// Package blog は記事とコメントのドメインロジックを提供する。
package blog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/kiroku/internal/model"
	"github.com/hitoshi/kiroku/internal/repository"
)

// dateFormat は記事の表示用日付フォーマット（月名・日・年）。
const dateFormat = "January 2, 2006"

// Service は記事とコメントのサービス層。
type Service struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository

	// now はテストで日付スタンプを固定するために差し替え可能にしている。
	now func() time.Time
}

// NewService はServiceを生成する。
func NewService(postRepo repository.PostRepository, commentRepo repository.CommentRepository) *Service {
	return &Service{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		now:         time.Now,
	}
}

// ListPosts は全記事を挿入順で取得する。
func (s *Service) ListPosts(ctx context.Context) ([]*model.Post, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// GetPost は指定IDの記事を取得する。
// 見つからない場合はPOST_NOT_FOUNDエラーを返す。
func (s *Service) GetPost(ctx context.Context, id string) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil {
		return nil, model.NewPostNotFoundError(id)
	}
	return post, nil
}

// CreatePost は記事を作成する。
// 作成日は今日の日付を表示用フォーマットでスタンプし、著者は操作中の管理者とする。
func (s *Service) CreatePost(ctx context.Context, authorID string, input model.PostInput) (*model.Post, error) {
	now := s.now()
	post := &model.Post{
		ID:        uuid.New().String(),
		Title:     input.Title,
		Subtitle:  input.Subtitle,
		Date:      now.Format(dateFormat),
		Body:      input.Body,
		ImgURL:    input.ImgURL,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	slog.Info("post created",
		slog.String("post_id", post.ID),
		slog.String("author_id", authorID),
	)

	return post, nil
}

// UpdatePost は既存記事のtitle/subtitle/body/img_urlを上書きする。
// 著者と作成日は保持され、リセットされない。
// 記事が存在しない場合はPOST_NOT_FOUNDエラーを返す。
func (s *Service) UpdatePost(ctx context.Context, id string, input model.PostInput) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil {
		return nil, model.NewPostNotFoundError(id)
	}

	post.Title = input.Title
	post.Subtitle = input.Subtitle
	post.Body = input.Body
	post.ImgURL = input.ImgURL

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	slog.Info("post updated", slog.String("post_id", post.ID))

	return post, nil
}

// DeletePost は指定IDの記事を削除する。コメントはCASCADE削除される。
// 記事が存在しない場合はPOST_NOT_FOUNDエラーを返す。
func (s *Service) DeletePost(ctx context.Context, id string) error {
	if err := s.postRepo.DeleteByID(ctx, id); err != nil {
		return err
	}

	slog.Info("post deleted", slog.String("post_id", id))
	return nil
}

// AddComment は認証済みユーザーのコメントを記事に追加する。
// 記事の存在を挿入前に検証する。存在しない記事へのコメントは作成されず、
// POST_NOT_FOUNDエラーを返す（孤児コメントを作らない）。
func (s *Service) AddComment(ctx context.Context, postID, authorID, body string) (*model.Comment, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil {
		return nil, model.NewPostNotFoundError(postID)
	}

	comment := &model.Comment{
		ID:        uuid.New().String(),
		PostID:    postID,
		AuthorID:  authorID,
		Body:      body,
		CreatedAt: s.now(),
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	slog.Info("comment added",
		slog.String("comment_id", comment.ID),
		slog.String("post_id", postID),
		slog.String("author_id", authorID),
	)

	return comment, nil
}

// ListComments は指定記事のコメント一覧を作成順で取得する。
// 記事IDで明示的にスコープする。
func (s *Service) ListComments(ctx context.Context, postID string) ([]*model.Comment, error) {
	comments, err := s.commentRepo.ListByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}
