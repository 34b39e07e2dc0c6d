package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/kiroku/internal/model"
)

// PostgresPostRepo はPostgreSQLを使用した記事リポジトリ。
type PostgresPostRepo struct {
	db *sql.DB
}

// NewPostgresPostRepo はPostgresPostRepoを生成する。
func NewPostgresPostRepo(db *sql.DB) *PostgresPostRepo {
	return &PostgresPostRepo{db: db}
}

// List は全記事を挿入順（seq昇順）で取得する。
func (r *PostgresPostRepo) List(ctx context.Context) ([]*model.Post, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT p.id, p.seq, p.title, p.subtitle, p.date, p.body, p.img_url,
		        p.author_id, p.created_at, p.updated_at, u.name
		 FROM posts p
		 JOIN users u ON u.id = p.author_id
		 ORDER BY p.seq ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []*model.Post
	for rows.Next() {
		post := &model.Post{}
		if err := rows.Scan(
			&post.ID, &post.Seq, &post.Title, &post.Subtitle, &post.Date,
			&post.Body, &post.ImgURL, &post.AuthorID,
			&post.CreatedAt, &post.UpdatedAt, &post.AuthorName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}

	return posts, nil
}

// FindByID は指定IDの記事を取得する。見つからない場合はnilを返す。
func (r *PostgresPostRepo) FindByID(ctx context.Context, id string) (*model.Post, error) {
	post := &model.Post{}
	err := r.db.QueryRowContext(ctx,
		`SELECT p.id, p.seq, p.title, p.subtitle, p.date, p.body, p.img_url,
		        p.author_id, p.created_at, p.updated_at, u.name
		 FROM posts p
		 JOIN users u ON u.id = p.author_id
		 WHERE p.id = $1`,
		id,
	).Scan(
		&post.ID, &post.Seq, &post.Title, &post.Subtitle, &post.Date,
		&post.Body, &post.ImgURL, &post.AuthorID,
		&post.CreatedAt, &post.UpdatedAt, &post.AuthorName,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find post by ID: %w", err)
	}

	return post, nil
}

// Create は記事を作成する。
// タイトルの一意制約違反はDUPLICATE_TITLEエラーにマップする。
func (r *PostgresPostRepo) Create(ctx context.Context, post *model.Post) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (id, title, subtitle, date, body, img_url, author_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		post.ID, post.Title, post.Subtitle, post.Date, post.Body,
		post.ImgURL, post.AuthorID, post.CreatedAt, post.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return model.NewDuplicateTitleError(post.Title)
	}
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

// Update は記事のtitle/subtitle/body/img_urlを更新する。
// author_idとdateは変更しない。
func (r *PostgresPostRepo) Update(ctx context.Context, post *model.Post) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE posts
		 SET title = $1, subtitle = $2, body = $3, img_url = $4, updated_at = now()
		 WHERE id = $5`,
		post.Title, post.Subtitle, post.Body, post.ImgURL, post.ID,
	)
	if isUniqueViolation(err) {
		return model.NewDuplicateTitleError(post.Title)
	}
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return model.NewPostNotFoundError(post.ID)
	}
	return nil
}

// DeleteByID は指定IDの記事を削除する。コメントはCASCADE削除される。
func (r *PostgresPostRepo) DeleteByID(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM posts WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return model.NewPostNotFoundError(id)
	}
	return nil
}

// compile-time interface check
var _ PostRepository = (*PostgresPostRepo)(nil)
