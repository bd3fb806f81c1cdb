// Package web はHTMLテンプレートを埋め込みで提供します。
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Templates は全テンプレートを解析して返します。
// ページは "display.tmpl" と "form.tmpl"、SSEで送るカード部分は "cards" です。
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(templateFS, "templates/*.tmpl")
}
