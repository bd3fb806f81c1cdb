// Package router はHTTPルーティングを組み立てます。
package router

import (
	"html/template"

	"github.com/gin-gonic/gin"

	companyhandler "matka_backend/internal/feature/companies/transport/handler"
	displayhandler "matka_backend/internal/feature/display/transport/handler"
	"matka_backend/internal/platform/http/handler"
	"matka_backend/internal/shared/ratelimiter"
)

// NewRouter は全ルートを登録したエンジンを返します。
func NewRouter(tmpl *template.Template, companies *companyhandler.CompanyHandler, form *companyhandler.FormPageHandler,
	display *displayhandler.DisplayHandler, ready gin.HandlerFunc, writes *ratelimiter.RateLimiter) *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(tmpl)

	// 書き込み系のルートに適用する
	limit := ratelimiter.Middleware(writes)

	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.GET("/readyz", ready)

	// ディスプレイページ（ライブ更新）
	r.GET("/", display.Page)
	r.GET("/display/stream", display.StreamHTML)

	// 管理フォーム
	r.GET(companyhandler.FormPath, form.Show)
	r.POST(companyhandler.FormPath, limit, form.Submit)
	r.POST(companyhandler.FormPath+"/edit/:id", form.Edit)
	r.POST(companyhandler.FormPath+"/cancel", form.Cancel)

	// JSON API
	api := r.Group("/api/companies")
	{
		api.GET("", companies.List)
		api.POST("", limit, companies.Create)
		api.PUT("/:id", limit, companies.Update)
		api.GET("/display", display.Get)
		api.GET("/stream", display.StreamJSON)
	}

	return r
}
