// Package adapters はthemesフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"journal_backend/internal/feature/themes/domain/entity"
	"journal_backend/internal/feature/themes/usecase"
)

// themeDataMongo はThemeDataRepositoryインターフェースのMongoDB実装です。
// ランダムサンプリングは$sampleステージでデータベース側で行います。
type themeDataMongo struct {
	coll *mongo.Collection
}

// themeDataMongoがThemeDataRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.ThemeDataRepository = (*themeDataMongo)(nil)

// NewThemeDataMongo は指定されたコレクションでthemeDataMongoの
// 新しいインスタンスを生成します。
func NewThemeDataMongo(coll *mongo.Collection) *themeDataMongo {
	return &themeDataMongo{coll: coll}
}

// SampleByTheme はテーマのデータレコードをランダムにsampleSize件返します。
// themeが空の場合は$matchを省略し全テーマを母集団とします。
func (r *themeDataMongo) SampleByTheme(ctx context.Context, theme entity.ThemeType, sampleSize int) ([]entity.ThemeData, error) {
	cursor, err := r.coll.Aggregate(ctx, samplePipeline(theme, sampleSize))
	if err != nil {
		return nil, fmt.Errorf("failed to sample theme data: %w", err)
	}
	defer cursor.Close(ctx)

	var data []entity.ThemeData
	if err := cursor.All(ctx, &data); err != nil {
		return nil, fmt.Errorf("failed to decode theme data: %w", err)
	}

	return data, nil
}

// samplePipeline は$matchと$sampleの集約パイプラインを組み立てます。
func samplePipeline(theme entity.ThemeType, sampleSize int) mongo.Pipeline {
	pipeline := mongo.Pipeline{}
	if theme != "" {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.D{{Key: "theme", Value: theme}}}})
	}
	return append(pipeline, bson.D{{Key: "$sample", Value: bson.D{{Key: "size", Value: sampleSize}}}})
}
