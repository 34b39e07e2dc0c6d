package view

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var staticFS embed.FS

// StaticHandler は埋め込み静的ファイル（CSSなど）を配信するハンドラーを返す。
// /static/ プレフィックスでマウントすること。
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// go:embedの構造が壊れている場合のみ到達する
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
