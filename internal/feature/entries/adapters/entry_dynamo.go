// Package adapters はentriesフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"journal_backend/internal/feature/entries/domain/entity"
	"journal_backend/internal/feature/entries/usecase"
	"journal_backend/internal/platform/dynamo"
	"journal_backend/internal/platform/identifier"
)

// entryDynamo はEntryRepositoryインターフェースのDynamoDB実装です。
// エントリーはオーナーのuser_idをパーティションキー、"ent_"プレフィックス付き
// のソート可能IDをセカンダリキーとして、コレクションと同じ単一テーブルに
// 格納されます。
type entryDynamo struct {
	client dynamo.API
	table  string
}

// entryDynamoがEntryRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.EntryRepository = (*entryDynamo)(nil)

// NewEntryDynamo は指定されたクライアントとテーブル名で
// entryDynamoの新しいインスタンスを生成します。
func NewEntryDynamo(client dynamo.API, table string) *entryDynamo {
	return &entryDynamo{client: client, table: table}
}

// Insert はエントリーレコードを書き込みます。
// 同じ複合キーのレコードが既に存在する場合は失敗します。
func (r *entryDynamo) Insert(ctx context.Context, entry *entity.Entry) error {
	item, err := attributevalue.MarshalMap(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String(fmt.Sprintf("attribute_not_exists(%s)", dynamo.AttrSecondaryKey)),
	})
	if err != nil {
		return fmt.Errorf("failed to put entry: %w", err)
	}

	return nil
}

// GetByID は(owner, entryID)のポイントルックアップです。
// レコードが存在しない場合、usecase.ErrEntryNotFoundを返します。
func (r *entryDynamo) GetByID(ctx context.Context, userID, entryID string) (*entity.Entry, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       dynamo.Key(userID, entryID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, usecase.ErrEntryNotFound
	}

	var entry entity.Entry
	if err := attributevalue.UnmarshalMap(out.Item, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entry: %w", err)
	}

	return &entry, nil
}

// ListByUser はオーナーの"ent_"レコードをレンジクエリで取得します。
// cursorが与えられた場合はその直後（順方向）または直前（逆方向）から
// 再開し、打ち切り時は最後に評価されたsecondary keyを継続キーとして返します。
func (r *entryDynamo) ListByUser(ctx context.Context, userID, cursor string, limit int, scanForward bool) ([]entity.Entry, string, error) {
	keyRange := dynamo.KeyRange{
		PartitionKey: userID,
		Prefix:       identifier.KeyPrefix(identifier.EntryPrefix),
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
		return nil, "", fmt.Errorf("failed to query entries: %w", err)
	}

	entries := make([]entity.Entry, 0, len(out.Items))
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &entries); err != nil {
		return nil, "", fmt.Errorf("failed to unmarshal entries: %w", err)
	}

	return entries, dynamo.ContinuationKey(out.LastEvaluatedKey), nil
}

// Delete はエントリーを削除し、削除前のレコードを返します。
// ReturnValues ALL_OLDにより存在確認と削除が1回の呼び出しで済みます。
func (r *entryDynamo) Delete(ctx context.Context, userID, entryID string) (*entity.Entry, error) {
	out, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(r.table),
		Key:          dynamo.Key(userID, entryID),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete entry: %w", err)
	}
	if len(out.Attributes) == 0 {
		return nil, usecase.ErrEntryNotFound
	}

	var entry entity.Entry
	if err := attributevalue.UnmarshalMap(out.Attributes, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal deleted entry: %w", err)
	}

	return &entry, nil
}
