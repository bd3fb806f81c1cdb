// Package handler はcompaniesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"matka_backend/internal/api"
	"matka_backend/internal/feature/companies/domain/entity"
	"matka_backend/internal/feature/companies/transport/http/dto"
	"matka_backend/internal/feature/companies/usecase"
)

// CompanyUsecase は会社の一覧取得と保存のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type CompanyUsecase interface {
	// List は作成日時の降順で全社を返します。
	List(ctx context.Context) ([]entity.Company, error)
	// Save は検証・上限チェックの後に作成または更新し、対象のIDを返します。
	Save(ctx context.Context, fields entity.CompanyFields, editingID string) (string, error)
}

// CompanyHandler は会社JSON APIのHTTPリクエストを処理します。
type CompanyHandler struct {
	uc CompanyUsecase
}

// NewCompanyHandler は新しい CompanyHandler を作成します。
func NewCompanyHandler(uc CompanyUsecase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// List は全社を作成日時の降順で返します。
// GET /api/companies
func (h *CompanyHandler) List(c *gin.Context) {
	companies, err := h.uc.List(c.Request.Context())
	if err != nil {
		slog.Error("list companies failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to fetch companies"})
		return
	}
	out := make([]dto.CompanyResponse, 0, len(companies))
	for _, x := range companies {
		out = append(out, dto.NewCompanyResponse(x))
	}
	c.JSON(http.StatusOK, out)
}

// Create は新しい会社を登録します。
// - JSONとして読めない場合は400
// - 入力検証エラーは422（フィールドごとのメッセージ付き）
// - 上限到達時は409
// - 成功時は201
// POST /api/companies
func (h *CompanyHandler) Create(c *gin.Context) {
	h.save(c, "", http.StatusCreated)
}

// Update は既存の会社を更新します。上限チェックは行いません。
// PUT /api/companies/:id
func (h *CompanyHandler) Update(c *gin.Context) {
	h.save(c, c.Param("id"), http.StatusOK)
}

func (h *CompanyHandler) save(c *gin.Context, editingID string, okStatus int) {
	var req dto.CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("company request binding failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	id, err := h.uc.Save(c.Request.Context(), req.ToFields(), editingID)
	if err != nil {
		writeSaveError(c, err)
		return
	}
	slog.Info("company saved", "id", id, "updated", editingID != "", "remote_addr", c.ClientIP())
	c.JSON(okStatus, dto.SaveResponse{ID: id})
}

// writeSaveError はユースケースのエラーをHTTPステータスに変換します。
// ストアの内部エラーは公開せず、汎用メッセージを返します。
func writeSaveError(c *gin.Context, err error) {
	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, api.ValidationErrorResponse{Error: "validation failed", Fields: verr.Fields})
	case errors.Is(err, usecase.ErrCapacityReached):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "You can only add up to 3 companies"})
	case errors.Is(err, usecase.ErrCompanyNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "company not found"})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to save company. Please try again."})
	}
}
