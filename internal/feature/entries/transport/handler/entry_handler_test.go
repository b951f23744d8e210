package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	authentity "journal_backend/internal/feature/auth/domain/entity"
	"journal_backend/internal/feature/auth/transport/middleware"
	"journal_backend/internal/feature/entries/domain/entity"
	"journal_backend/internal/feature/entries/usecase"
)

// mockEntryUsecase はEntryUsecaseのテスト用モックです。
type mockEntryUsecase struct {
	CreateFunc func(ctx context.Context, token *authentity.AuthToken, collectionID string, content map[string]string, isDraft bool) (*entity.Entry, error)
	GetFunc    func(ctx context.Context, token *authentity.AuthToken, entryID string) (*entity.Entry, error)
	ListFunc   func(ctx context.Context, token *authentity.AuthToken, nextCursor, prevCursor string, limit int) (*usecase.Page, error)
	DeleteFunc func(ctx context.Context, token *authentity.AuthToken, entryID string) (*entity.Entry, error)
}

func (m *mockEntryUsecase) Create(ctx context.Context, token *authentity.AuthToken, collectionID string, content map[string]string, isDraft bool) (*entity.Entry, error) {
	return m.CreateFunc(ctx, token, collectionID, content, isDraft)
}

func (m *mockEntryUsecase) Get(ctx context.Context, token *authentity.AuthToken, entryID string) (*entity.Entry, error) {
	return m.GetFunc(ctx, token, entryID)
}

func (m *mockEntryUsecase) List(ctx context.Context, token *authentity.AuthToken, nextCursor, prevCursor string, limit int) (*usecase.Page, error) {
	return m.ListFunc(ctx, token, nextCursor, prevCursor, limit)
}

func (m *mockEntryUsecase) Delete(ctx context.Context, token *authentity.AuthToken, entryID string) (*entity.Entry, error) {
	return m.DeleteFunc(ctx, token, entryID)
}

func testToken() *authentity.AuthToken {
	return &authentity.AuthToken{User: &authentity.User{UserID: "user-1"}}
}

func newEntryRouter(uc EntryUsecase, token *authentity.AuthToken) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if token != nil {
			c.Set(middleware.ContextAuthToken, token)
		}
		c.Next()
	})
	h := NewEntryHandler(uc)
	r.POST("/v1/entries", h.Create)
	r.GET("/v1/entries", h.List)
	r.GET("/v1/entries/:entry_id", h.Get)
	r.DELETE("/v1/entries/:entry_id", h.Delete)
	return r
}

func sampleEntry() *entity.Entry {
	return &entity.Entry{
		UserID:       "user-1",
		EntryID:      "ent_2bEf0NqLmX9YVh3cJkR7sT1uWxy",
		CollectionID: "col_aaaaaaaaaaaaaaaaaaaaaaaaaaa",
		Content:      map[string]string{"setup": "breakout"},
		Template: []entity.TemplateField{
			{Key: "setup", DisplayName: "Setup"},
		},
		IsDraft:   true,
		CreatedAt: 1700000000,
		UpdatedAt: 1700000000,
	}
}

const sampleEntryJSON = `{
	"entry_id": "ent_2bEf0NqLmX9YVh3cJkR7sT1uWxy",
	"collection_id": "col_aaaaaaaaaaaaaaaaaaaaaaaaaaa",
	"content": {"setup": "breakout"},
	"template": [{"key": "setup", "display_name": "Setup"}],
	"is_draft": true,
	"created_at": "2023-11-14T22:13:20Z"
}`

func TestEntryHandler_Create(t *testing.T) {
	validBody := `{"collection_id": "col_aaaaaaaaaaaaaaaaaaaaaaaaaaa", "content": {"setup": "breakout"}}`

	t.Run("作成に成功すると201とエントリーを返す", func(t *testing.T) {
		uc := &mockEntryUsecase{
			CreateFunc: func(_ context.Context, token *authentity.AuthToken, collectionID string, content map[string]string, isDraft bool) (*entity.Entry, error) {
				assert.Equal(t, "user-1", token.User.UserID)
				assert.Equal(t, "col_aaaaaaaaaaaaaaaaaaaaaaaaaaa", collectionID)
				assert.Equal(t, map[string]string{"setup": "breakout"}, content)
				// is_draftを省略した場合はtrueになる
				assert.True(t, isDraft)
				return sampleEntry(), nil
			},
		}
		r := newEntryRouter(uc, testToken())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/entries", strings.NewReader(validBody))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, sampleEntryJSON, w.Body.String())
	})

	t.Run("is_draftを明示すると値がそのまま渡る", func(t *testing.T) {
		uc := &mockEntryUsecase{
			CreateFunc: func(_ context.Context, _ *authentity.AuthToken, _ string, _ map[string]string, isDraft bool) (*entity.Entry, error) {
				assert.False(t, isDraft)
				out := sampleEntry()
				out.IsDraft = false
				return out, nil
			},
		}
		r := newEntryRouter(uc, testToken())

		body := `{"collection_id": "col_a", "is_draft": false}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/entries", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("collection_idがないボディは400", func(t *testing.T) {
		uc := &mockEntryUsecase{
			CreateFunc: func(_ context.Context, _ *authentity.AuthToken, _ string, _ map[string]string, _ bool) (*entity.Entry, error) {
				t.Fatal("usecase should not be called")
				return nil, nil
			},
		}
		r := newEntryRouter(uc, testToken())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/entries", strings.NewReader(`{"content": {}}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "details")
	})

	t.Run("コレクションが存在しない場合は404", func(t *testing.T) {
		uc := &mockEntryUsecase{
			CreateFunc: func(_ context.Context, _ *authentity.AuthToken, _ string, _ map[string]string, _ bool) (*entity.Entry, error) {
				return nil, usecase.ErrCollectionNotFound
			},
		}
		r := newEntryRouter(uc, testToken())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/entries", strings.NewReader(validBody))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"details": "collection not found"}`, w.Body.String())
	})

	t.Run("コレクションが非アクティブの場合は400", func(t *testing.T) {
		uc := &mockEntryUsecase{
			CreateFunc: func(_ context.Context, _ *authentity.AuthToken, _ string, _ map[string]string, _ bool) (*entity.Entry, error) {
				return nil, usecase.ErrCollectionInactive
			},
		}
		r := newEntryRouter(uc, testToken())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/entries", strings.NewReader(validBody))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ユースケースのエラーは500", func(t *testing.T) {
		uc := &mockEntryUsecase{
			CreateFunc: func(_ context.Context, _ *authentity.AuthToken, _ string, _ map[string]string, _ bool) (*entity.Entry, error) {
				return nil, errors.New("dynamo down")
			},
		}
		r := newEntryRouter(uc, testToken())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/entries", strings.NewReader(validBody))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"details": "internal server error"}`, w.Body.String())
	})
}

func TestEntryHandler_List(t *testing.T) {
	t.Run("1ページ分のエントリーとカーソルを返す", func(t *testing.T) {
		uc := &mockEntryUsecase{
			ListFunc: func(_ context.Context, _ *authentity.AuthToken, next, prev string, limit int) (*usecase.Page, error) {
				assert.Equal(t, "", next)
				assert.Equal(t, "ent_cursorA", prev)
				assert.Equal(t, 5, limit)
				return &usecase.Page{
					NextCursor: "ent_cursorA",
					PrevCursor: "ent_cursorZ",
					Limit:      5,
					Records:    []entity.Entry{*sampleEntry()},
				}, nil
			},
		}
		r := newEntryRouter(uc, testToken())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/entries?prev_cursor=ent_cursorA&limit=5", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{
			"next_cursor": "ent_cursorA",
			"prev_cursor": "ent_cursorZ",
			"limit": 5,
			"records": [`+sampleEntryJSON+`]
		}`, w.Body.String())
	})

	t.Run("両方のカーソルを指定すると400", func(t *testing.T) {
		uc := &mockEntryUsecase{
			ListFunc: func(_ context.Context, _ *authentity.AuthToken, _, _ string, _ int) (*usecase.Page, error) {
				return nil, usecase.ErrBothCursors
			},
		}
		r := newEntryRouter(uc, testToken())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/entries?next_cursor=a&prev_cursor=b", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("limitが整数でない場合は400", func(t *testing.T) {
		called := false
		uc := &mockEntryUsecase{
			ListFunc: func(_ context.Context, _ *authentity.AuthToken, _, _ string, _ int) (*usecase.Page, error) {
				called = true
				return nil, nil
			},
		}
		r := newEntryRouter(uc, testToken())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/entries?limit=many", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, called)
	})
}

func TestEntryHandler_Get(t *testing.T) {
	t.Run("エントリーを返す", func(t *testing.T) {
		uc := &mockEntryUsecase{
			GetFunc: func(_ context.Context, _ *authentity.AuthToken, entryID string) (*entity.Entry, error) {
				assert.Equal(t, "ent_2bEf0NqLmX9YVh3cJkR7sT1uWxy", entryID)
				return sampleEntry(), nil
			},
		}
		r := newEntryRouter(uc, testToken())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/entries/ent_2bEf0NqLmX9YVh3cJkR7sT1uWxy", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, sampleEntryJSON, w.Body.String())
	})

	t.Run("存在しない場合は404", func(t *testing.T) {
		uc := &mockEntryUsecase{
			GetFunc: func(_ context.Context, _ *authentity.AuthToken, _ string) (*entity.Entry, error) {
				return nil, usecase.ErrEntryNotFound
			},
		}
		r := newEntryRouter(uc, testToken())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/entries/ent_missing", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"details": "entry not found"}`, w.Body.String())
	})
}

func TestEntryHandler_Delete(t *testing.T) {
	t.Run("削除されたエントリーを返す", func(t *testing.T) {
		uc := &mockEntryUsecase{
			DeleteFunc: func(_ context.Context, token *authentity.AuthToken, entryID string) (*entity.Entry, error) {
				assert.Equal(t, "user-1", token.User.UserID)
				assert.Equal(t, "ent_2bEf0NqLmX9YVh3cJkR7sT1uWxy", entryID)
				return sampleEntry(), nil
			},
		}
		r := newEntryRouter(uc, testToken())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/v1/entries/ent_2bEf0NqLmX9YVh3cJkR7sT1uWxy", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, sampleEntryJSON, w.Body.String())
	})

	t.Run("存在しない場合は404", func(t *testing.T) {
		uc := &mockEntryUsecase{
			DeleteFunc: func(_ context.Context, _ *authentity.AuthToken, _ string) (*entity.Entry, error) {
				return nil, usecase.ErrEntryNotFound
			},
		}
		r := newEntryRouter(uc, testToken())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/v1/entries/ent_missing", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("ストアのエラーは500", func(t *testing.T) {
		uc := &mockEntryUsecase{
			DeleteFunc: func(_ context.Context, _ *authentity.AuthToken, _ string) (*entity.Entry, error) {
				return nil, errors.New("dynamo down")
			},
		}
		r := newEntryRouter(uc, testToken())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/v1/entries/ent_x", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
