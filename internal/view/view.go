// Package view は埋め込みテンプレートによるHTMLレンダリングとフラッシュメッセージを提供する。
package view

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/hitoshi/kiroku/internal/model"
)

//go:embed templates/*.html
var templatesFS embed.FS

// pages はbase.htmlと組み合わせてパースするページテンプレートの一覧。
var pages = []string{
	"home.html",
	"post.html",
	"post_form.html",
	"login.html",
	"register.html",
	"about.html",
	"contact.html",
}

// Data はテンプレートに渡すレンダリングデータ。
// CurrentUserは識別ミドルウェアが解決したリクエストスコープの値であり、
// グローバル状態からは取得しない。
type Data struct {
	Title       string
	CurrentUser *model.User
	IsAdmin     bool
	Flash       string
	CSRFToken   string

	Posts    []*model.Post
	Post     *model.Post
	Comments []*model.Comment

	// Form はバリデーション失敗時の再表示用フォーム値。
	Form   map[string]string
	IsEdit bool
}

// Renderer は埋め込みテンプレートのレンダラー。
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer は全ページテンプレートをパースしたRendererを生成する。
func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"linebreaks": linebreaks,
	}

	templates := make(map[string]*template.Template)
	for _, page := range pages {
		t, err := template.New("").Funcs(funcs).ParseFS(
			templatesFS,
			"templates/base.html",
			"templates/"+page,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		templates[page] = t
	}

	return &Renderer{templates: templates}, nil
}

// Render は指定ページをbaseレイアウトでレンダリングする。
func (r *Renderer) Render(w http.ResponseWriter, page string, data Data) error {
	t, ok := r.templates[page]
	if !ok {
		return fmt.Errorf("unknown template: %s", page)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, "base", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", page, err)
	}
	return nil
}

// linebreaks はプレーンテキストを段落・改行タグ付きのHTMLに変換する。
// 入力は必ずエスケープしてから変換する。
func linebreaks(s string) template.HTML {
	s = template.HTMLEscapeString(s)

	paragraphs := strings.Split(s, "\n\n")
	var result []string

	for _, p := range paragraphs {
		if p = strings.TrimSpace(p); p != "" {
			p = strings.ReplaceAll(p, "\n", "<br>")
			result = append(result, "<p>"+p+"</p>")
		}
	}

	return template.HTML(strings.Join(result, "\n"))
}
