// Package entity はentriesフィーチャーのドメインエンティティを定義します。
package entity

// TemplateField はエントリー作成時点のコレクションテンプレートの1フィールドです。
// コレクション側のテンプレートが後から変わってもエントリーの構造は保たれます。
type TemplateField struct {
	Key         string `dynamodbav:"key" json:"key"`
	DisplayName string `dynamodbav:"display_name" json:"display_name"`
}

// Entry は1件のジャーナルエントリーです。
// オーナーのuser_idをパーティションキー、"ent_"プレフィックス付きのソート可能
// IDをセカンダリキーとして、コレクションと同じ単一テーブルに格納されます。
type Entry struct {
	// UserID はオーナーのユーザーIDです。
	UserID string `dynamodbav:"primary_key" json:"-"`

	// EntryID は"ent_"プレフィックス付きの時系列順にソート可能なIDです。
	EntryID string `dynamodbav:"secondary_key" json:"entry_id"`

	// CollectionID はこのエントリーが属するコレクションのIDです。
	CollectionID string `dynamodbav:"collection_id" json:"collection_id"`

	// Content はテンプレートのキーから入力テキストへのマッピングです。
	Content map[string]string `dynamodbav:"content" json:"content"`

	// Template は作成時点のコレクションテンプレートのスナップショットです。
	Template []TemplateField `dynamodbav:"template" json:"template"`

	// IsDraft は下書き状態を表します。
	IsDraft bool `dynamodbav:"is_draft" json:"is_draft"`

	// CreatedAtとUpdatedAtはエポック秒です。
	CreatedAt int64 `dynamodbav:"created_at" json:"created_at"`
	UpdatedAt int64 `dynamodbav:"updated_at" json:"updated_at"`
}
