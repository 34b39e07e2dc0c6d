// Package model はドメインモデルを定義する。
package model

import "time"

// Comment は記事へのコメントを表す。
// 作成後の編集・削除は行わない。記事削除時はCASCADEで削除される。
type Comment struct {
	ID        string
	PostID    string
	AuthorID  string
	Body      string
	CreatedAt time.Time

	// AuthorName はusersテーブルとのJOINで取得される表示用の著者名。
	AuthorName string
}
