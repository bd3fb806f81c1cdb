package handler

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matka_backend/internal/feature/companies/domain/entity"
	"matka_backend/internal/feature/companies/usecase"
)

// mockFormUsecase はFormUsecaseインターフェースのモック実装です。
type mockFormUsecase struct {
	OpenSessionFunc func(ctx context.Context, id string) (*entity.FormSession, error)
	SubmitFunc      func(ctx context.Context, s *entity.FormSession, fields entity.CompanyFields) error
	EditFunc        func(ctx context.Context, s *entity.FormSession, id string) error

	saved    []entity.FormSession
	canceled bool
}

func (m *mockFormUsecase) OpenSession(ctx context.Context, id string) (*entity.FormSession, error) {
	if m.OpenSessionFunc != nil {
		return m.OpenSessionFunc(ctx, id)
	}
	if id == "" {
		id = "fresh"
	}
	return &entity.FormSession{ID: id, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (m *mockFormUsecase) SaveSession(ctx context.Context, s *entity.FormSession) error {
	m.saved = append(m.saved, *s)
	return nil
}

func (m *mockFormUsecase) View(ctx context.Context, s *entity.FormSession) usecase.FormView {
	return usecase.FormView{
		Session:    s,
		Companies:  []entity.Company{{ID: "c1", Name: "Kalyan"}},
		AtCapacity: false,
	}
}

func (m *mockFormUsecase) Submit(ctx context.Context, s *entity.FormSession, fields entity.CompanyFields) error {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, s, fields)
	}
	return nil
}

func (m *mockFormUsecase) Edit(ctx context.Context, s *entity.FormSession, id string) error {
	if m.EditFunc != nil {
		return m.EditFunc(ctx, s, id)
	}
	s.EditingID = id
	return nil
}

func (m *mockFormUsecase) CancelEdit(s *entity.FormSession) {
	m.canceled = true
	s.EditingID = ""
}

// setupFormRouter は最小限のテンプレートでフォームページのルーターを構築します。
func setupFormRouter(uc FormUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewFormPageHandler(uc, false)

	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New("form.tmpl").Parse(
		`{{range .Companies}}[{{.Name}}]{{end}}{{with .Toast}}toast:{{.Title}}/{{.Description}}{{end}}`)))
	r.GET(FormPath, h.Show)
	r.POST(FormPath, h.Submit)
	r.POST(FormPath+"/edit/:id", h.Edit)
	r.POST(FormPath+"/cancel", h.Cancel)
	return r
}

func postForm(r *gin.Engine, path string, values url.Values, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: FormSessionCookie, Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// TestFormPageHandler_Show はページ描画・Cookie発行・通知の一回限りの表示を検証します。
func TestFormPageHandler_Show(t *testing.T) {
	uc := &mockFormUsecase{
		OpenSessionFunc: func(ctx context.Context, id string) (*entity.FormSession, error) {
			return &entity.FormSession{
				ID:        "s1",
				Flash:     &entity.Toast{Title: "Success", Description: "Company added successfully!"},
				ExpiresAt: time.Now().Add(time.Hour),
			}, nil
		},
	}
	r := setupFormRouter(uc)

	req := httptest.NewRequest(http.MethodGet, FormPath, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "[Kalyan]")
	assert.Contains(t, w.Body.String(), "toast:Success/Company added successfully!")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, FormSessionCookie, cookies[0].Name)
	assert.Equal(t, "s1", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	// 表示後の保存では通知が消えている
	require.Len(t, uc.saved, 1)
	assert.Nil(t, uc.saved[0].Flash)
}

// TestFormPageHandler_SessionError はセッションを開けない場合に500を返すことを検証します。
func TestFormPageHandler_SessionError(t *testing.T) {
	r := setupFormRouter(&mockFormUsecase{
		OpenSessionFunc: func(ctx context.Context, id string) (*entity.FormSession, error) {
			return nil, errors.New("redis down")
		},
	})

	req := httptest.NewRequest(http.MethodGet, FormPath, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// TestFormPageHandler_Submit はフォーム値が渡され、保存後に303でリダイレクトすることを検証します。
func TestFormPageHandler_Submit(t *testing.T) {
	var got entity.CompanyFields
	uc := &mockFormUsecase{
		SubmitFunc: func(ctx context.Context, s *entity.FormSession, fields entity.CompanyFields) error {
			got = fields
			s.Flash = &entity.Toast{Title: "Success", Description: "Company added successfully!"}
			return nil
		},
	}
	r := setupFormRouter(uc)

	w := postForm(r, FormPath, url.Values{
		"name":         {"Kalyan"},
		"ticketNumber": {"42"},
		"openingTime":  {"09:00"},
		"closingTime":  {"17:00"},
		"jodiInfo":     {"12-34"},
	}, "s1")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, FormPath, w.Header().Get("Location"))
	assert.Equal(t, entity.CompanyFields{
		Name: "Kalyan", TicketNumber: "42", OpeningTime: "09:00", ClosingTime: "17:00", JodiInfo: "12-34",
	}, got)
	require.Len(t, uc.saved, 1)
	assert.Equal(t, "s1", uc.saved[0].ID)
	assert.NotNil(t, uc.saved[0].Flash)
}

// TestFormPageHandler_SubmitInProgress は送信中の再送信でセッションを保存しないことを検証します。
func TestFormPageHandler_SubmitInProgress(t *testing.T) {
	uc := &mockFormUsecase{
		SubmitFunc: func(ctx context.Context, s *entity.FormSession, fields entity.CompanyFields) error {
			return usecase.ErrSubmitInProgress
		},
	}
	r := setupFormRouter(uc)

	w := postForm(r, FormPath, url.Values{"name": {"Kalyan"}}, "s1")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Empty(t, uc.saved)
}

// TestFormPageHandler_Edit は編集対象の選択と、見つからない場合の通知を検証します。
func TestFormPageHandler_Edit(t *testing.T) {
	uc := &mockFormUsecase{
		EditFunc: func(ctx context.Context, s *entity.FormSession, id string) error {
			if id == "missing" {
				return usecase.ErrCompanyNotFound
			}
			s.EditingID = id
			return nil
		},
	}
	r := setupFormRouter(uc)

	w := postForm(r, FormPath+"/edit/c1", url.Values{}, "s1")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	require.Len(t, uc.saved, 1)
	assert.Equal(t, "c1", uc.saved[0].EditingID)

	w = postForm(r, FormPath+"/edit/missing", url.Values{}, "s1")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	require.Len(t, uc.saved, 2)
	require.NotNil(t, uc.saved[1].Flash)
	assert.Equal(t, "Company not found", uc.saved[1].Flash.Description)
	assert.True(t, uc.saved[1].Flash.Destructive)
}

// TestFormPageHandler_Cancel は編集キャンセルがユースケースに委譲されることを検証します。
func TestFormPageHandler_Cancel(t *testing.T) {
	uc := &mockFormUsecase{}
	r := setupFormRouter(uc)

	w := postForm(r, FormPath+"/cancel", url.Values{}, "s1")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.True(t, uc.canceled)
	require.Len(t, uc.saved, 1)
}
