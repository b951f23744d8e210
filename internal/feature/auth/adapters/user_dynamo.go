// Package adapters はauthフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"journal_backend/internal/feature/auth/domain/entity"
	"journal_backend/internal/feature/auth/usecase"
	"journal_backend/internal/platform/dynamo"
)

// userDynamo はUserRepositoryインターフェースのDynamoDB実装です。
// ユーザーレコードは単一テーブルの(userID, userID)スロットに格納されます。
type userDynamo struct {
	client dynamo.API
	table  string
}

// userDynamoがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userDynamo)(nil)

// NewUserDynamo は指定されたクライアントとテーブル名でuserDynamoの新しいインスタンスを生成します。
func NewUserDynamo(client dynamo.API, table string) *userDynamo {
	return &userDynamo{client: client, table: table}
}

// GetByID はユーザー自身のレコードをポイントルックアップで取得します。
// レコードが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userDynamo) GetByID(ctx context.Context, userID string) (*entity.User, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       dynamo.UserKey(userID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, usecase.ErrUserNotFound
	}

	var user entity.User
	if err := attributevalue.UnmarshalMap(out.Item, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	if user.ActiveCollections == nil {
		user.ActiveCollections = map[string]entity.ActiveCollection{}
	}

	return &user, nil
}
