// Package handler はdisplayフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"bytes"
	"context"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"matka_backend/internal/api"
	"matka_backend/internal/feature/display/transport/http/dto"
	"matka_backend/internal/feature/display/usecase"
)

// DefaultKeepAlive はSSE接続を維持するためのpingイベントの間隔です。
const DefaultKeepAlive = 25 * time.Second

// DisplayUsecase はディスプレイページのユースケースを定義します。
type DisplayUsecase interface {
	Snapshot(ctx context.Context) (usecase.View, error)
	NewRenderer(onRender func(usecase.View)) *usecase.Renderer
}

// DisplayHandler はディスプレイページとライブ更新ストリームを処理します。
type DisplayHandler struct {
	uc        DisplayUsecase
	tmpl      *template.Template
	keepAlive time.Duration
}

// NewDisplayHandler は新しい DisplayHandler を作成します。
// tmpl はSSEで送るカード部分（"cards"）の描画に使います。
func NewDisplayHandler(uc DisplayUsecase, tmpl *template.Template) *DisplayHandler {
	return &DisplayHandler{uc: uc, tmpl: tmpl, keepAlive: DefaultKeepAlive}
}

// Page はディスプレイページを描画します。
// 一覧を取得できない場合は読み込み中として描画し、ストリームの初回通知で更新されます。
// GET /
func (h *DisplayHandler) Page(c *gin.Context) {
	view, err := h.uc.Snapshot(c.Request.Context())
	if err != nil {
		slog.Error("display snapshot failed", "error", err)
		view = usecase.View{State: usecase.StateLoading}
	}
	c.HTML(http.StatusOK, "display.tmpl", view)
}

// Get は表示順・整形済みの一覧をJSONで返します。
// GET /api/companies/display
func (h *DisplayHandler) Get(c *gin.Context) {
	view, err := h.uc.Snapshot(c.Request.Context())
	if err != nil {
		slog.Error("display snapshot failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to fetch companies"})
		return
	}
	c.JSON(http.StatusOK, dto.NewDisplayResponse(view))
}

// StreamJSON は通知ごとの表示内容を "companies" イベント（JSON）として送ります。
// GET /api/companies/stream
func (h *DisplayHandler) StreamJSON(c *gin.Context) {
	h.stream(c, func(v usecase.View) (any, bool) {
		return dto.NewDisplayResponse(v), true
	})
}

// StreamHTML は通知ごとのカード部分のHTMLを "companies" イベントとして送ります。
// GET /display/stream
func (h *DisplayHandler) StreamHTML(c *gin.Context) {
	h.stream(c, func(v usecase.View) (any, bool) {
		var buf bytes.Buffer
		if err := h.tmpl.ExecuteTemplate(&buf, "cards", v); err != nil {
			slog.Error("render cards fragment failed", "error", err)
			return nil, false
		}
		return buf.String(), true
	})
}

// stream は接続ごとに Renderer を購読し、切断時に必ず解除します。
// 送信が追いつかない場合は最新の表示内容だけを送ります。
func (h *DisplayHandler) stream(c *gin.Context, encode func(usecase.View) (any, bool)) {
	ctx := c.Request.Context()

	updates := make(chan usecase.View, 1)
	r := h.uc.NewRenderer(func(v usecase.View) {
		select {
		case updates <- v:
		default:
			// 送信者はこの購読のゴルーチンだけなので、古い値を捨てれば必ず入る
			select {
			case <-updates:
			default:
			}
			updates <- v
		}
	})

	detach, err := r.Subscribe(ctx)
	if err != nil {
		slog.Error("display subscription failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: "live updates unavailable"})
		return
	}
	defer detach()

	slog.Info("display stream opened", "remote_addr", c.ClientIP())
	defer slog.Info("display stream closed", "remote_addr", c.ClientIP())

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case v := <-updates:
			if payload, ok := encode(v); ok {
				c.SSEvent("companies", payload)
			}
			return true
		case <-ticker.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		}
	})
}
