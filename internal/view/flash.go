package view

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"net/http"
	"strings"
)

// flashCookieName はフラッシュメッセージを保持するCookieの名前。
const flashCookieName = "flash"

// SetFlash は次回レンダリング時に1度だけ表示するメッセージをCookieに設定する。
// 改ざん検出のため、メッセージはセッション署名用シークレットでHMAC署名する。
func SetFlash(w http.ResponseWriter, secret, message string, secure bool) {
	encoded := base64.URLEncoding.EncodeToString([]byte(message))
	value := encoded + "." + sign(secret, encoded)

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   300, // 次のページ表示までの短期保持
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash はフラッシュメッセージを取り出し、Cookieを削除する。
// メッセージが存在しない、または署名が不正な場合は空文字を返す。
func PopFlash(w http.ResponseWriter, r *http.Request, secret string) string {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}

	// 1度読んだら必ず消す
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	encoded, signature, ok := strings.Cut(cookie.Value, ".")
	if !ok {
		return ""
	}
	if !hmac.Equal([]byte(sign(secret, encoded)), []byte(signature)) {
		return ""
	}

	message, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return ""
	}
	return string(message)
}

// sign はHMAC-SHA256署名を16進文字列で返す。
func sign(secret, value string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(value))
	return hex.EncodeToString(mac.Sum(nil))
}
