package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"matka_backend/internal/feature/companies/domain/entity"
	"matka_backend/internal/feature/companies/usecase"
)

const (
	// FormSessionCookie はフォームセッションIDを保持するCookie名です。
	FormSessionCookie = "form_session"
	// FormPath は管理フォームページのパスです。
	FormPath = "/update-form"
)

// FormUsecase は管理フォームページのユースケースを定義します。
type FormUsecase interface {
	OpenSession(ctx context.Context, id string) (*entity.FormSession, error)
	SaveSession(ctx context.Context, s *entity.FormSession) error
	View(ctx context.Context, s *entity.FormSession) usecase.FormView
	Submit(ctx context.Context, s *entity.FormSession, fields entity.CompanyFields) error
	Edit(ctx context.Context, s *entity.FormSession, id string) error
	CancelEdit(s *entity.FormSession)
}

// FormPageHandler は管理フォームページ（一覧・追加・編集）を処理します。
// 各操作はPOST後に FormPath へリダイレクトします（PRGパターン）。
type FormPageHandler struct {
	uc           FormUsecase
	secureCookie bool
}

// NewFormPageHandler は新しい FormPageHandler を作成します。
// secureCookie が true の場合、Cookie に Secure 属性を付けます。
func NewFormPageHandler(uc FormUsecase, secureCookie bool) *FormPageHandler {
	return &FormPageHandler{uc: uc, secureCookie: secureCookie}
}

// formPage はform.tmplに渡すデータです。
type formPage struct {
	usecase.FormView
	Toast *entity.Toast
}

// Show はフォームページを描画します。保留中の通知は一度だけ表示されます。
// GET /update-form
func (h *FormPageHandler) Show(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	view := h.uc.View(c.Request.Context(), s)
	toast := s.TakeFlash()
	h.save(c, s)

	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, "form.tmpl", formPage{FormView: view, Toast: toast})
}

// Submit はフォーム入力を保存します。
// 送信中の再送信は無視し、セッションを変更せずにリダイレクトします。
// POST /update-form
func (h *FormPageHandler) Submit(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	fields := entity.CompanyFields{
		Name:         c.PostForm("name"),
		TicketNumber: c.PostForm("ticketNumber"),
		OpeningTime:  c.PostForm("openingTime"),
		ClosingTime:  c.PostForm("closingTime"),
		JodiInfo:     c.PostForm("jodiInfo"),
		PanelInfo:    c.PostForm("panelInfo"),
	}

	err := h.uc.Submit(c.Request.Context(), s, fields)
	if errors.Is(err, usecase.ErrSubmitInProgress) {
		slog.Warn("duplicate form submission ignored", "session", s.ID, "remote_addr", c.ClientIP())
		c.Redirect(http.StatusSeeOther, FormPath)
		return
	}
	if err != nil {
		slog.Warn("form submission rejected", "error", err, "session", s.ID, "remote_addr", c.ClientIP())
	}
	h.save(c, s)
	c.Redirect(http.StatusSeeOther, FormPath)
}

// Edit は指定IDの会社を編集対象にします。
// POST /update-form/edit/:id
func (h *FormPageHandler) Edit(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := h.uc.Edit(c.Request.Context(), s, c.Param("id")); err != nil {
		slog.Warn("select for edit failed", "error", err, "id", c.Param("id"))
		desc := "Failed to fetch companies"
		if errors.Is(err, usecase.ErrCompanyNotFound) {
			desc = "Company not found"
		}
		s.Flash = &entity.Toast{Title: "Error", Description: desc, Destructive: true}
	}
	h.save(c, s)
	c.Redirect(http.StatusSeeOther, FormPath)
}

// Cancel は編集をキャンセルしてフォームを空に戻します。
// POST /update-form/cancel
func (h *FormPageHandler) Cancel(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	h.uc.CancelEdit(s)
	h.save(c, s)
	c.Redirect(http.StatusSeeOther, FormPath)
}

// session はCookieからフォームセッションを開き、Cookieを更新します。
// 失敗した場合は500を返し、false を返します。
func (h *FormPageHandler) session(c *gin.Context) (*entity.FormSession, bool) {
	id, _ := c.Cookie(FormSessionCookie)
	s, err := h.uc.OpenSession(c.Request.Context(), id)
	if err != nil {
		slog.Error("failed to open form session", "error", err, "remote_addr", c.ClientIP())
		c.String(http.StatusInternalServerError, "form session unavailable")
		return nil, false
	}
	maxAge := int(time.Until(s.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(FormSessionCookie, s.ID, maxAge, "/", "", h.secureCookie, true)
	return s, true
}

// save はセッションを保存します。失敗はログのみ（次回は新しいセッションになります）。
func (h *FormPageHandler) save(c *gin.Context, s *entity.FormSession) {
	if err := h.uc.SaveSession(c.Request.Context(), s); err != nil {
		slog.Error("failed to save form session", "error", err, "session", s.ID)
	}
}
