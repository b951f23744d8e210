package adapters

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"journal_backend/internal/feature/entries/domain/entity"
	"journal_backend/internal/feature/entries/usecase"
	"journal_backend/internal/platform/dynamo"
)

// mockDynamoAPI はdynamo.APIインターフェースのモック実装です。
type mockDynamoAPI struct {
	GetItemFunc    func(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItemFunc    func(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItemFunc func(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItemFunc func(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	QueryFunc      func(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

var _ dynamo.API = (*mockDynamoAPI)(nil)

func (m *mockDynamoAPI) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if m.GetItemFunc != nil {
		return m.GetItemFunc(ctx, params, optFns...)
	}
	return &dynamodb.GetItemOutput{}, nil
}

func (m *mockDynamoAPI) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if m.PutItemFunc != nil {
		return m.PutItemFunc(ctx, params, optFns...)
	}
	return &dynamodb.PutItemOutput{}, nil
}

func (m *mockDynamoAPI) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	if m.UpdateItemFunc != nil {
		return m.UpdateItemFunc(ctx, params, optFns...)
	}
	return &dynamodb.UpdateItemOutput{}, nil
}

func (m *mockDynamoAPI) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	if m.DeleteItemFunc != nil {
		return m.DeleteItemFunc(ctx, params, optFns...)
	}
	return &dynamodb.DeleteItemOutput{}, nil
}

func (m *mockDynamoAPI) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, params, optFns...)
	}
	return &dynamodb.QueryOutput{}, nil
}

func testEntry() *entity.Entry {
	return &entity.Entry{
		UserID:       "user-1",
		EntryID:      "ent_abc",
		CollectionID: "col_abc",
		Content:      map[string]string{"title": "first trade"},
		Template: []entity.TemplateField{
			{Key: "title", DisplayName: "Title"},
		},
		IsDraft:   true,
		CreatedAt: 1700000000,
		UpdatedAt: 1700000000,
	}
}

func marshalEntry(t *testing.T, e *entity.Entry) map[string]types.AttributeValue {
	t.Helper()
	item, err := attributevalue.MarshalMap(e)
	require.NoError(t, err)
	return item
}

func TestEntryDynamo_Insert(t *testing.T) {
	t.Run("条件付きPutでキー衝突を防ぐ", func(t *testing.T) {
		var got *dynamodb.PutItemInput
		client := &mockDynamoAPI{
			PutItemFunc: func(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
				got = params
				return &dynamodb.PutItemOutput{}, nil
			},
		}
		repo := NewEntryDynamo(client, "painted_porch")

		err := repo.Insert(context.Background(), testEntry())
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "painted_porch", *got.TableName)
		assert.Equal(t, "attribute_not_exists(secondary_key)", *got.ConditionExpression)

		pk, ok := got.Item["primary_key"].(*types.AttributeValueMemberS)
		require.True(t, ok)
		assert.Equal(t, "user-1", pk.Value)
		sk, ok := got.Item["secondary_key"].(*types.AttributeValueMemberS)
		require.True(t, ok)
		assert.Equal(t, "ent_abc", sk.Value)
	})

	t.Run("ストアのエラーはラップして返す", func(t *testing.T) {
		storeErr := errors.New("dynamo down")
		client := &mockDynamoAPI{
			PutItemFunc: func(_ context.Context, _ *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
				return nil, storeErr
			},
		}
		repo := NewEntryDynamo(client, "painted_porch")

		err := repo.Insert(context.Background(), testEntry())
		assert.ErrorIs(t, err, storeErr)
	})
}

func TestEntryDynamo_GetByID(t *testing.T) {
	t.Run("レコードをエンティティに復元する", func(t *testing.T) {
		want := testEntry()
		client := &mockDynamoAPI{
			GetItemFunc: func(_ context.Context, params *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
				pk := params.Key["primary_key"].(*types.AttributeValueMemberS)
				sk := params.Key["secondary_key"].(*types.AttributeValueMemberS)
				assert.Equal(t, "user-1", pk.Value)
				assert.Equal(t, "ent_abc", sk.Value)
				return &dynamodb.GetItemOutput{Item: marshalEntry(t, want)}, nil
			},
		}
		repo := NewEntryDynamo(client, "painted_porch")

		got, err := repo.GetByID(context.Background(), "user-1", "ent_abc")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("レコードがない場合はErrEntryNotFound", func(t *testing.T) {
		client := &mockDynamoAPI{
			GetItemFunc: func(_ context.Context, _ *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
				return &dynamodb.GetItemOutput{}, nil
			},
		}
		repo := NewEntryDynamo(client, "painted_porch")

		_, err := repo.GetByID(context.Background(), "user-1", "ent_missing")
		assert.ErrorIs(t, err, usecase.ErrEntryNotFound)
	})
}

func TestEntryDynamo_ListByUser(t *testing.T) {
	t.Run("カーソルの有無と方向でキー条件式が変わる", func(t *testing.T) {
		tests := []struct {
			name        string
			cursor      string
			scanForward bool
			wantExpr    string
		}{
			{
				name:        "カーソルなしはプレフィックスのみ",
				cursor:      "",
				scanForward: true,
				wantExpr:    "primary_key = :primaryKeyValue AND begins_with(secondary_key, :keyPrefix)",
			},
			{
				name:        "順方向カーソルは直後から再開",
				cursor:      "ent_abc",
				scanForward: true,
				wantExpr:    "primary_key = :primaryKeyValue AND begins_with(secondary_key, :keyPrefix) AND secondary_key > :secondaryKeyValue",
			},
			{
				name:        "逆方向カーソルは直前から再開",
				cursor:      "ent_abc",
				scanForward: false,
				wantExpr:    "primary_key = :primaryKeyValue AND begins_with(secondary_key, :keyPrefix) AND secondary_key < :secondaryKeyValue",
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				var got *dynamodb.QueryInput
				client := &mockDynamoAPI{
					QueryFunc: func(_ context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
						got = params
						return &dynamodb.QueryOutput{}, nil
					},
				}
				repo := NewEntryDynamo(client, "painted_porch")

				_, _, err := repo.ListByUser(context.Background(), "user-1", tt.cursor, 10, tt.scanForward)
				require.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, tt.wantExpr, *got.KeyConditionExpression)
				assert.Equal(t, tt.scanForward, *got.ScanIndexForward)
				assert.Equal(t, int32(10), *got.Limit)

				prefix := got.ExpressionAttributeValues[":keyPrefix"].(*types.AttributeValueMemberS)
				assert.Equal(t, "ent_", prefix.Value)
			})
		}
	})

	t.Run("打ち切り時は最後に評価されたキーを継続キーとして返す", func(t *testing.T) {
		first, second := testEntry(), testEntry()
		second.EntryID = "ent_def"
		client := &mockDynamoAPI{
			QueryFunc: func(_ context.Context, _ *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
				return &dynamodb.QueryOutput{
					Items: []map[string]types.AttributeValue{marshalEntry(t, first), marshalEntry(t, second)},
					LastEvaluatedKey: map[string]types.AttributeValue{
						"primary_key":   &types.AttributeValueMemberS{Value: "user-1"},
						"secondary_key": &types.AttributeValueMemberS{Value: "ent_def"},
					},
				}, nil
			},
		}
		repo := NewEntryDynamo(client, "painted_porch")

		entries, continuation, err := repo.ListByUser(context.Background(), "user-1", "", 2, true)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "ent_abc", entries[0].EntryID)
		assert.Equal(t, "ent_def", entries[1].EntryID)
		assert.Equal(t, "ent_def", continuation)
	})

	t.Run("最終ページでは継続キーは空", func(t *testing.T) {
		client := &mockDynamoAPI{
			QueryFunc: func(_ context.Context, _ *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
				return &dynamodb.QueryOutput{
					Items: []map[string]types.AttributeValue{marshalEntry(t, testEntry())},
				}, nil
			},
		}
		repo := NewEntryDynamo(client, "painted_porch")

		entries, continuation, err := repo.ListByUser(context.Background(), "user-1", "", 10, true)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
		assert.Empty(t, continuation)
	})
}

func TestEntryDynamo_Delete(t *testing.T) {
	t.Run("削除前のレコードを返す", func(t *testing.T) {
		want := testEntry()
		client := &mockDynamoAPI{
			DeleteItemFunc: func(_ context.Context, params *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
				assert.Equal(t, types.ReturnValueAllOld, params.ReturnValues)
				sk := params.Key["secondary_key"].(*types.AttributeValueMemberS)
				assert.Equal(t, "ent_abc", sk.Value)
				return &dynamodb.DeleteItemOutput{Attributes: marshalEntry(t, want)}, nil
			},
		}
		repo := NewEntryDynamo(client, "painted_porch")

		got, err := repo.Delete(context.Background(), "user-1", "ent_abc")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("レコードがなかった場合はErrEntryNotFound", func(t *testing.T) {
		client := &mockDynamoAPI{
			DeleteItemFunc: func(_ context.Context, _ *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
				return &dynamodb.DeleteItemOutput{}, nil
			},
		}
		repo := NewEntryDynamo(client, "painted_porch")

		_, err := repo.Delete(context.Background(), "user-1", "ent_missing")
		assert.ErrorIs(t, err, usecase.ErrEntryNotFound)
	})
}
