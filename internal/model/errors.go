// Package model はドメインモデルを定義する。
package model

import "fmt"

// AppError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type AppError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, blog, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *AppError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodePostNotFound      = "POST_NOT_FOUND"
	ErrCodeDuplicateTitle    = "DUPLICATE_TITLE"
	ErrCodeAlreadyRegistered = "ALREADY_REGISTERED"
	ErrCodeUnknownEmail      = "UNKNOWN_EMAIL"
	ErrCodeBadCredentials    = "BAD_CREDENTIALS"
	ErrCodeRequiresAuth      = "REQUIRES_AUTH"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeUserNotFound      = "USER_NOT_FOUND"
)

// NewPostNotFoundError は記事未検出エラーを生成する。
func NewPostNotFoundError(postID string) *AppError {
	return &AppError{
		Code:     ErrCodePostNotFound,
		Message:  fmt.Sprintf("指定された記事が見つかりません: %s", postID),
		Category: "blog",
		Action:   "記事の一覧ページから記事を選び直してください。",
	}
}

// NewDuplicateTitleError は記事タイトル重複エラーを生成する。
func NewDuplicateTitleError(title string) *AppError {
	return &AppError{
		Code:     ErrCodeDuplicateTitle,
		Message:  fmt.Sprintf("同じタイトルの記事が既に存在します: %s", title),
		Category: "validation",
		Action:   "別のタイトルを指定してください。",
	}
}

// NewAlreadyRegisteredError はメールアドレス重複エラーを生成する。
func NewAlreadyRegisteredError() *AppError {
	return &AppError{
		Code:     ErrCodeAlreadyRegistered,
		Message:  "このメールアドレスは既に登録されています。ログインしてください。",
		Category: "auth",
		Action:   "ログインページからログインしてください。",
	}
}

// NewUnknownEmailError は未登録メールアドレスエラーを生成する。
func NewUnknownEmailError() *AppError {
	return &AppError{
		Code:     ErrCodeUnknownEmail,
		Message:  "このメールアドレスは登録されていません。",
		Category: "auth",
		Action:   "メールアドレスを確認するか、新規登録してください。",
	}
}

// NewBadCredentialsError はパスワード不一致エラーを生成する。
func NewBadCredentialsError() *AppError {
	return &AppError{
		Code:     ErrCodeBadCredentials,
		Message:  "パスワードが正しくありません。",
		Category: "auth",
		Action:   "パスワードを確認して再度お試しください。",
	}
}

// NewRequiresAuthError は未ログインでの操作エラーを生成する。
func NewRequiresAuthError() *AppError {
	return &AppError{
		Code:     ErrCodeRequiresAuth,
		Message:  "コメントするにはログインまたは新規登録が必要です。",
		Category: "auth",
		Action:   "ログインしてから再度コメントを送信してください。",
	}
}

// NewForbiddenError は権限不足エラーを生成する。
func NewForbiddenError() *AppError {
	return &AppError{
		Code:     ErrCodeForbidden,
		Message:  "この操作を行う権限がありません。",
		Category: "auth",
		Action:   "管理者アカウントでログインしてください。",
	}
}

// NewUserNotFoundError はユーザーが見つからない場合のエラーを生成する。
func NewUserNotFoundError() *AppError {
	return &AppError{
		Code:     ErrCodeUserNotFound,
		Message:  "ユーザーが見つかりません。",
		Category: "auth",
		Action:   "ログインし直してください。",
	}
}
