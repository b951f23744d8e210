package router

import (
	"github.com/gin-gonic/gin"

	"journal_backend/internal/feature/auth/transport/middleware"
	collectionhandler "journal_backend/internal/feature/collections/transport/handler"
	entryhandler "journal_backend/internal/feature/entries/transport/handler"
	themehandler "journal_backend/internal/feature/themes/transport/handler"
	"journal_backend/internal/platform/http/handler"
)

// NewRouter はすべてのエンドポイントを登録したginエンジンを組み立てます。
func NewRouter(
	verifier middleware.TokenVerifier,
	authorizer middleware.Authorizer,
	collections *collectionhandler.CollectionHandler,
	entries *entryhandler.EntryHandler,
	themes *themehandler.ThemeHandler,
) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)

	// 認証必須のルート
	// BearerトークンのJWKS検証とユーザー解決をまとめて行う
	v1 := r.Group("/v1")
	v1.Use(middleware.RequireAuth(verifier, authorizer))
	{
		v1.POST("/collections", collections.Create)
		v1.GET("/collections", collections.List)
		v1.GET("/collections/:collection_id", collections.Get)

		v1.POST("/entries", entries.Create)
		v1.GET("/entries", entries.List)
		v1.GET("/entries/:entry_id", entries.Get)
		v1.DELETE("/entries/:entry_id", entries.Delete)

		v1.GET("/themes", themes.List)
		v1.GET("/themes/:theme/data", themes.Sample)
	}

	return r
}
