// Package entity はcollectionsフィーチャーのドメインエンティティを定義します。
package entity

// TemplateField is one ordered field of a collection's content template.
type TemplateField struct {
	// Key is the machine name entries file their content under.
	Key string `dynamodbav:"key" json:"key"`

	// DisplayName is the human-readable label for the field.
	DisplayName string `dynamodbav:"display_name" json:"display_name"`
}

// Collection is a user-defined content template plus metadata, under which
// journal entries are filed. Its identity is the pair (owner, collection id);
// in the single table the owner's user id is the partition key and the
// sortable collection id is the secondary key, so one range query can walk a
// user's collections in creation order.
type Collection struct {
	// UserID is the owning user's id (partition key).
	UserID string `dynamodbav:"primary_key" json:"-"`

	// CollectionID is the sortable, globally unique id with the "col_" prefix.
	CollectionID string `dynamodbav:"secondary_key" json:"collection_id"`

	// Name is the display name, unique across the owner's active collections.
	Name string `dynamodbav:"name" json:"name"`

	// Template is the ordered list of fields entries must provide.
	Template []TemplateField `dynamodbav:"template" json:"template"`

	// Active reports whether the collection accepts new entries.
	Active bool `dynamodbav:"active" json:"active"`

	// PublishedEntriesCount counts published entries filed under the collection.
	PublishedEntriesCount int `dynamodbav:"published_entries_count" json:"published_entries_count"`

	// CreatedAt and UpdatedAt are epoch seconds.
	CreatedAt int64 `dynamodbav:"created_at" json:"created_at"`
	UpdatedAt int64 `dynamodbav:"updated_at" json:"updated_at"`
}
