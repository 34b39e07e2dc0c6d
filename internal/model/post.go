// Package model はドメインモデルを定義する。
package model

import "time"

// Post はブログ記事を表す。
// Dateは作成時に確定する表示用文字列（例: "January 2, 2006"）であり、
// 編集時にも変更されない。
type Post struct {
	ID        string
	Seq       int64 // 挿入順を保持する連番。一覧の並び順に使用する。
	Title     string
	Subtitle  string
	Date      string
	Body      string
	ImgURL    string
	AuthorID  string
	CreatedAt time.Time
	UpdatedAt time.Time

	// AuthorName はusersテーブルとのJOINで取得される表示用の著者名。
	AuthorName string
}

// PostInput は記事の作成・編集フォームから受け取る入力値を表す。
type PostInput struct {
	Title    string
	Subtitle string
	Body     string
	ImgURL   string
}
