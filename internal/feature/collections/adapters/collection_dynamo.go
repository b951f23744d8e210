// Package adapters はcollectionsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	authentity "journal_backend/internal/feature/auth/domain/entity"
	"journal_backend/internal/feature/collections/domain/entity"
	"journal_backend/internal/feature/collections/usecase"
	"journal_backend/internal/platform/dynamo"
	"journal_backend/internal/platform/identifier"
)

// collectionDynamo はCollectionRepositoryインターフェースのDynamoDB実装です。
// コレクションはオーナーのuser_idをパーティションキー、"col_"プレフィックス付き
// のソート可能IDをセカンダリキーとして単一テーブルに格納されます。
type collectionDynamo struct {
	client dynamo.API
	table  string
}

// collectionDynamoがCollectionRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.CollectionRepository = (*collectionDynamo)(nil)

// NewCollectionDynamo は指定されたクライアントとテーブル名で
// collectionDynamoの新しいインスタンスを生成します。
func NewCollectionDynamo(client dynamo.API, table string) *collectionDynamo {
	return &collectionDynamo{client: client, table: table}
}

// Insert はコレクションレコードを書き込みます。
// 同じ複合キーのレコードが既に存在する場合は失敗します。名前の一意性は
// サービス層の不変条件であり、ここではキー衝突のみを防ぎます。
func (r *collectionDynamo) Insert(ctx context.Context, collection *entity.Collection) error {
	item, err := attributevalue.MarshalMap(collection)
	if err != nil {
		return fmt.Errorf("failed to marshal collection: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String(fmt.Sprintf("attribute_not_exists(%s)", dynamo.AttrSecondaryKey)),
	})
	if err != nil {
		return fmt.Errorf("failed to put collection: %w", err)
	}

	return nil
}

// GetByID は(owner, collectionID)のポイントルックアップです。
// レコードが存在しない場合、usecase.ErrCollectionNotFoundを返します。
func (r *collectionDynamo) GetByID(ctx context.Context, userID, collectionID string) (*entity.Collection, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       dynamo.Key(userID, collectionID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, usecase.ErrCollectionNotFound
	}

	var collection entity.Collection
	if err := attributevalue.UnmarshalMap(out.Item, &collection); err != nil {
		return nil, fmt.Errorf("failed to unmarshal collection: %w", err)
	}

	return &collection, nil
}

// ListByUser はオーナーの"col_"レコードをレンジクエリで取得します。
// cursorが与えられた場合はその直後（順方向）または直前（逆方向）から
// 再開し、打ち切り時は最後に評価されたsecondary keyを継続キーとして返します。
func (r *collectionDynamo) ListByUser(ctx context.Context, userID, cursor string, limit int, scanForward bool) ([]entity.Collection, string, error) {
	keyRange := dynamo.KeyRange{
		PartitionKey: userID,
		Prefix:       identifier.KeyPrefix(identifier.CollectionPrefix),
		Cursor:       cursor,
		ScanForward:  scanForward,
	}
	expr, values := keyRange.Condition()

	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.table),
		Select:                    types.SelectAllAttributes,
		KeyConditionExpression:    aws.String(expr),
		ExpressionAttributeValues: values,
		ScanIndexForward:          aws.Bool(scanForward),
		Limit:                     aws.Int32(int32(limit)),
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to query collections: %w", err)
	}

	collections := make([]entity.Collection, 0, len(out.Items))
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &collections); err != nil {
		return nil, "", fmt.Errorf("failed to unmarshal collections: %w", err)
	}

	return collections, dynamo.ContinuationKey(out.LastEvaluatedKey), nil
}

// UpdateActiveCollections はコレクションへの参照をオーナーのactive_collections
// にマージして書き込み、更新後のマッピングを返します。同じコレクションでの
// 再実行は同じ参照を書き直すだけで、安全です。
func (r *collectionDynamo) UpdateActiveCollections(ctx context.Context, user *authentity.User, collection *entity.Collection) (map[string]authentity.ActiveCollection, error) {
	merged := make(map[string]authentity.ActiveCollection, len(user.ActiveCollections)+1)
	for id, ref := range user.ActiveCollections {
		merged[id] = ref
	}
	merged[collection.CollectionID] = authentity.ActiveCollection{Name: collection.Name}

	value, err := attributevalue.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal active collections: %w", err)
	}

	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.table),
		Key:              dynamo.UserKey(user.UserID),
		UpdateExpression: aws.String("SET #name = :value"),
		ExpressionAttributeNames: map[string]string{
			"#name": "active_collections",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":value": value,
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update active collections: %w", err)
	}

	updated := map[string]authentity.ActiveCollection{}
	if attr, ok := out.Attributes["active_collections"]; ok {
		if err := attributevalue.Unmarshal(attr, &updated); err != nil {
			return nil, fmt.Errorf("failed to unmarshal active collections: %w", err)
		}
	}

	return updated, nil
}
