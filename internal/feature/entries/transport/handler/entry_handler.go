// Package handler はentriesフィーチャーのHTTPハンドラーを提供します。
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
	"journal_backend/internal/feature/entries/domain/entity"
	"journal_backend/internal/feature/entries/transport/http/dto"
	"journal_backend/internal/feature/entries/usecase"
)

// EntryUsecase はエントリー操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type EntryUsecase interface {
	// Create は対象コレクションを検証した上で新しいエントリーを作成します。
	Create(ctx context.Context, token *authentity.AuthToken, collectionID string, content map[string]string, isDraft bool) (*entity.Entry, error)
	// Get はオーナーのエントリーをIDで取得します。
	Get(ctx context.Context, token *authentity.AuthToken, entryID string) (*entity.Entry, error)
	// List はオーナーのエントリーを1ページ分取得します。
	List(ctx context.Context, token *authentity.AuthToken, nextCursor, prevCursor string, limit int) (*usecase.Page, error)
	// Delete はオーナーのエントリーを削除し、削除されたエントリーを返します。
	Delete(ctx context.Context, token *authentity.AuthToken, entryID string) (*entity.Entry, error)
}

// EntryHandler はエントリー操作のHTTPリクエストを処理します。
type EntryHandler struct {
	uc EntryUsecase
}

// NewEntryHandler はEntryHandlerの新しいインスタンスを生成します。
func NewEntryHandler(uc EntryUsecase) *EntryHandler {
	return &EntryHandler{uc: uc}
}

// Create はPOST /v1/entries を処理します。
// 対象コレクションが存在しない場合は404、非アクティブな場合は400です。
func (h *EntryHandler) Create(c *gin.Context) {
	token, ok := middleware.FromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Details: "not authenticated"})
		return
	}

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create entry validation failed", "error", err, "user_id", token.User.UserID)
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Details: err.Error()})
		return
	}

	isDraft := true
	if req.IsDraft != nil {
		isDraft = *req.IsDraft
	}

	created, err := h.uc.Create(c.Request.Context(), token, req.CollectionID, req.Content, isDraft)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrCollectionNotFound):
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Details: "collection not found"})
		case errors.Is(err, usecase.ErrCollectionInactive):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Details: usecase.ErrCollectionInactive.Error()})
		default:
			slog.Error("create entry failed", "error", err, "user_id", token.User.UserID)
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Details: "internal server error"})
		}
		return
	}

	slog.Info("entry created", "user_id", token.User.UserID, "entry_id", created.EntryID, "collection_id", created.CollectionID)
	c.JSON(http.StatusCreated, dto.EntryOutFromEntity(created))
}

// List はGET /v1/entries を処理します。
// next_cursorとprev_cursorの同時指定は400です。
func (h *EntryHandler) List(c *gin.Context) {
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
		slog.Error("list entries failed", "error", err, "user_id", token.User.UserID)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Details: "internal server error"})
		return
	}

	records := make([]dto.EntryOut, 0, len(page.Records))
	for i := range page.Records {
		records = append(records, dto.EntryOutFromEntity(&page.Records[i]))
	}

	c.JSON(http.StatusOK, dto.ListEntriesResponse{
		NextCursor: page.NextCursor,
		PrevCursor: page.PrevCursor,
		Limit:      page.Limit,
		Records:    records,
	})
}

// Get はGET /v1/entries/:entry_id を処理します。
func (h *EntryHandler) Get(c *gin.Context) {
	token, ok := middleware.FromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Details: "not authenticated"})
		return
	}

	entry, err := h.uc.Get(c.Request.Context(), token, c.Param("entry_id"))
	if err != nil {
		if errors.Is(err, usecase.ErrEntryNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Details: "entry not found"})
			return
		}
		slog.Error("get entry failed", "error", err, "user_id", token.User.UserID)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Details: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, dto.EntryOutFromEntity(entry))
}

// Delete はDELETE /v1/entries/:entry_id を処理します。
// 削除されたエントリーをレスポンスとして返します。
func (h *EntryHandler) Delete(c *gin.Context) {
	token, ok := middleware.FromContext(c)
	if !ok {
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Details: "not authenticated"})
		return
	}

	deleted, err := h.uc.Delete(c.Request.Context(), token, c.Param("entry_id"))
	if err != nil {
		if errors.Is(err, usecase.ErrEntryNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Details: "entry not found"})
			return
		}
		slog.Error("delete entry failed", "error", err, "user_id", token.User.UserID)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Details: "internal server error"})
		return
	}

	slog.Info("entry deleted", "user_id", token.User.UserID, "entry_id", deleted.EntryID)
	c.JSON(http.StatusOK, dto.EntryOutFromEntity(deleted))
}
