// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/kiroku/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail は指定メールアドレスのユーザーを取得する。見つからない場合はnilを返す。
	// メールアドレスの照合は大文字小文字を区別する。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Create はユーザーを作成する。
	// メールアドレスの一意制約違反の場合は*model.AppError（ALREADY_REGISTERED）を返す。
	// 事前チェックではなくストアの制約に依存することで、同時登録の競合を閉じる。
	Create(ctx context.Context, user *model.User) error
}

// SessionRepository はセッションデータの永続化インターフェース。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error
	// FindByID は指定IDのセッションを取得する。期限切れの場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Session, error)
	// DeleteByID は指定IDのセッションを削除する。
	DeleteByID(ctx context.Context, id string) error
	// DeleteExpired は期限切れの全セッションを削除し、削除件数を返す。
	DeleteExpired(ctx context.Context) (int64, error)
}

// PostRepository は記事データの永続化インターフェース。
type PostRepository interface {
	// List は全記事を挿入順（seq昇順）で取得する。著者名をJOINで含む。
	List(ctx context.Context) ([]*model.Post, error)

	// FindByID は指定IDの記事を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Post, error)

	// Create は記事を作成する。
	// タイトルの一意制約違反の場合は*model.AppError（DUPLICATE_TITLE）を返す。
	Create(ctx context.Context, post *model.Post) error

	// Update は記事のtitle/subtitle/body/img_urlを更新する。
	// author_idとdateは変更しない。見つからない場合は*model.AppError（POST_NOT_FOUND）を返す。
	Update(ctx context.Context, post *model.Post) error

	// DeleteByID は指定IDの記事を削除する。コメントはCASCADE削除される。
	// 見つからない場合は*model.AppError（POST_NOT_FOUND）を返す。
	DeleteByID(ctx context.Context, id string) error
}

// CommentRepository はコメントデータの永続化インターフェース。
type CommentRepository interface {
	// Create はコメントを作成する。
	Create(ctx context.Context, comment *model.Comment) error

	// ListByPostID は指定記事のコメント一覧を作成順で取得する。著者名をJOINで含む。
	// 全コメントの横断取得は提供しない。
	ListByPostID(ctx context.Context, postID string) ([]*model.Comment, error)
}
