// Package handler はcollectionsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	authentity "journal_backend/internal/feature/auth/domain/entity"
	"journal_backend/internal/feature/auth/transport/middleware"
	"journal_backend/internal/feature/collections/domain/entity"
	"journal_backend/internal/feature/collections/transport/http/dto"
	"journal_backend/internal/feature/collections/usecase"
)

// CollectionUsecase はコレクション操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type CollectionUsecase interface {
	// Create は名前の一意性を検証した上で新しいコレクションを作成します。
	Create(ctx context.Context, token *authentity.AuthToken, name string, template []entity.TemplateField, active bool) (*entity.Collection, error)
	// Get はオーナーのコレクションをIDで取得します。
	Get(ctx context.Context, token *authentity.AuthToken, collectionID string) (*entity.Collection, error)
	// List はオーナーのコレクションを1ページ分取得します。
	List(ctx context.Context, token *authentity.AuthToken, nextCursor, prevCursor string, limit int) (*usecase.Page, error)
}

// CollectionHandler はコレクション操作のHTTPリクエストを処理します。
type CollectionHandler struct {
	uc CollectionUsecase
}

// NewCollectionHandler はCollectionHandlerの新しいインスタンスを生成します。
func NewCollectionHandler(uc CollectionUsecase) *CollectionHandler {
	return &CollectionHandler{uc: uc}
}

// Create はPOST /v1/collections を処理します。
// - リクエストJSONをCreateCollectionRequestにバインド（テンプレート不正は400）
// - 同名のアクティブなコレクションが存在する場合は409
// - 成功時は201でコレクションを返却
func (h *CollectionHandler) Create(c *gin.Context) {
	token, ok := middleware.FromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Details: "not authenticated"})
		return
	}

	var req dto.CreateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create collection validation failed", "error", err, "user_id", token.User.UserID)
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Details: err.Error()})
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	created, err := h.uc.Create(c.Request.Context(), token, req.Name, req.Template.ToEntity(), active)
	if err != nil {
		if errors.Is(err, usecase.ErrNameConflict) {
			c.JSON(http.StatusConflict, dto.ErrorResponse{Details: "An active collection with the given name already exists!"})
			return
		}
		slog.Error("create collection failed", "error", err, "user_id", token.User.UserID)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Details: "internal server error"})
		return
	}

	slog.Info("collection created", "user_id", token.User.UserID, "collection_id", created.CollectionID)
	c.JSON(http.StatusCreated, dto.CollectionOutFromEntity(created))
}

// List はGET /v1/collections を処理します。
// next_cursorとprev_cursorの同時指定は400です。
func (h *CollectionHandler) List(c *gin.Context) {
	token, ok := middleware.FromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Details: "not authenticated"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Details: "limit must be an integer"})
			return
		}
		limit = parsed
	}

	page, err := h.uc.List(c.Request.Context(), token, c.Query("next_cursor"), c.Query("prev_cursor"), limit)
	if err != nil {
		if errors.Is(err, usecase.ErrBothCursors) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Details: usecase.ErrBothCursors.Error()})
			return
		}
		slog.Error("list collections failed", "error", err, "user_id", token.User.UserID)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Details: "internal server error"})
		return
	}

	records := make([]dto.CollectionOut, 0, len(page.Records))
	for i := range page.Records {
		records = append(records, dto.CollectionOutFromEntity(&page.Records[i]))
	}

	c.JSON(http.StatusOK, dto.ListCollectionsResponse{
		NextCursor: page.NextCursor,
		PrevCursor: page.PrevCursor,
		Limit:      page.Limit,
		Records:    records,
	})
}

// Get はGET /v1/collections/:collection_id を処理します。
func (h *CollectionHandler) Get(c *gin.Context) {
	token, ok := middleware.FromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Details: "not authenticated"})
		return
	}

	collection, err := h.uc.Get(c.Request.Context(), token, c.Param("collection_id"))
	if err != nil {
		if errors.Is(err, usecase.ErrCollectionNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Details: "collection not found"})
			return
		}
		slog.Error("get collection failed", "error", err, "user_id", token.User.UserID)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Details: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, dto.CollectionOutFromEntity(collection))
}
