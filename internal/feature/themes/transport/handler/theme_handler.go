// Package handler はthemesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"journal_backend/internal/feature/themes/domain/entity"
	"journal_backend/internal/feature/themes/usecase"
)

// ThemeUsecase はテーマ操作のユースケースを定義します。
type ThemeUsecase interface {
	// List はカタログの全テーマをランダムなデータ付きで返します。
	List(ctx context.Context) ([]entity.Theme, error)
	// Sample はテーマのデータレコードをランダムにsampleSize件返します。
	Sample(ctx context.Context, theme entity.ThemeType, sampleSize int) ([]entity.ThemeData, error)
}

// errorResponse is the structured error body for theme endpoints.
type errorResponse struct {
	Details string `json:"details"`
}

// ThemeHandler はテーマ操作のHTTPリクエストを処理します。
type ThemeHandler struct {
	uc ThemeUsecase
}

// NewThemeHandler はThemeHandlerの新しいインスタンスを生成します。
func NewThemeHandler(uc ThemeUsecase) *ThemeHandler {
	return &ThemeHandler{uc: uc}
}

// List はGET /v1/themes を処理します。
func (h *ThemeHandler) List(c *gin.Context) {
	themes, err := h.uc.List(c.Request.Context())
	if err != nil {
		slog.Error("list themes failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Details: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, themes)
}

// Sample はGET /v1/themes/:theme/data を処理します。
// sample_sizeクエリパラメータは省略時1です。
func (h *ThemeHandler) Sample(c *gin.Context) {
	sampleSize := 1
	if raw := c.Query("sample_size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Details: "sample_size must be an integer"})
			return
		}
		sampleSize = parsed
	}

	data, err := h.uc.Sample(c.Request.Context(), entity.ThemeType(c.Param("theme")), sampleSize)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidSampleSize):
			c.JSON(http.StatusBadRequest, errorResponse{Details: usecase.ErrInvalidSampleSize.Error()})
		case errors.Is(err, usecase.ErrUnknownTheme):
			c.JSON(http.StatusNotFound, errorResponse{Details: usecase.ErrUnknownTheme.Error()})
		case errors.Is(err, usecase.ErrNoThemeData):
			c.JSON(http.StatusNotFound, errorResponse{Details: "no records found!"})
		default:
			slog.Error("sample theme data failed", "error", err, "theme", c.Param("theme"))
			c.JSON(http.StatusInternalServerError, errorResponse{Details: "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, data)
}
