package main

import (
	"context"
	"log"

	redisv9 "github.com/redis/go-redis/v9"

	"journal_backend/internal/app/router"
	authadapters "journal_backend/internal/feature/auth/adapters"
	authusecase "journal_backend/internal/feature/auth/usecase"
	collectionadapters "journal_backend/internal/feature/collections/adapters"
	collectionhandler "journal_backend/internal/feature/collections/transport/handler"
	collectionusecase "journal_backend/internal/feature/collections/usecase"
	entryadapters "journal_backend/internal/feature/entries/adapters"
	entryhandler "journal_backend/internal/feature/entries/transport/handler"
	entryusecase "journal_backend/internal/feature/entries/usecase"
	themeadapters "journal_backend/internal/feature/themes/adapters"
	themehandler "journal_backend/internal/feature/themes/transport/handler"
	themeusecase "journal_backend/internal/feature/themes/usecase"
	"journal_backend/internal/platform/cache"
	"journal_backend/internal/platform/config"
	"journal_backend/internal/platform/dynamo"
	"journal_backend/internal/platform/identifier"
	"journal_backend/internal/platform/jwks"
	platformmongo "journal_backend/internal/platform/mongo"
	platformredis "journal_backend/internal/platform/redis"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	// JWKS（起動時に鍵セットを取得し、以降は自動リフレッシュ）
	verifier, err := jwks.NewVerifier(ctx, cfg.JWKSURL)
	if err != nil {
		log.Fatal("[ERROR] Failed to initialize JWKS verifier:", err)
	}

	// DynamoDB
	dynamoClient, err := dynamo.NewClient(ctx, cfg.AWSRegion, cfg.DynamoEndpoint)
	if err != nil {
		log.Fatal("[ERROR] Failed to initialize DynamoDB client:", err)
	}

	// MongoDB（テーマデータ）
	mongoClient, err := platformmongo.NewClient(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal("[ERROR] Failed to connect to MongoDB:", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(ctx); err != nil {
			log.Println("[ERROR] Failed to disconnect MongoDB client:", err)
		}
	}()
	themeDataColl := mongoClient.Database(cfg.MongoDB).Collection(platformmongo.ThemeDataCollection)

	// Redis
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(ctx); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		if rdb != nil {
			defer func() {
				if err := rdb.Close(); err != nil {
					log.Println("[ERROR] Failed to close Redis client:", err)
				}
			}()
		}
	}

	// Repository
	ids := identifier.NewGenerator()
	userRepo := authadapters.NewUserDynamo(dynamoClient, cfg.DynamoTable)
	collectionRepo := collectionadapters.NewCollectionDynamo(dynamoClient, cfg.DynamoTable)
	entryRepo := entryadapters.NewEntryDynamo(dynamoClient, cfg.DynamoTable)
	themeDataRepo := themeadapters.NewThemeDataMongo(themeDataColl)

	// Redisキャッシュでラップ
	cachedThemeDataRepo := cache.NewCachingThemeDataRepository(rdb, cfg.ThemeCacheTTL, themeDataRepo, "themedata")

	// Usecase
	authUC := authusecase.NewAuthorizeUsecase(userRepo)
	collectionUC := collectionusecase.NewCollectionUsecase(collectionRepo, ids)
	entryUC := entryusecase.NewEntryUsecase(entryRepo, collectionRepo, ids)
	themeUC := themeusecase.NewThemeUsecase(cachedThemeDataRepo)

	// Handler
	collectionH := collectionhandler.NewCollectionHandler(collectionUC)
	entryH := entryhandler.NewEntryHandler(entryUC)
	themeH := themehandler.NewThemeHandler(themeUC)

	// ルータ生成
	r := router.NewRouter(verifier, authUC, collectionH, entryH, themeH)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
