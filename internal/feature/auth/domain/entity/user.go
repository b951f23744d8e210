// Package entity はauthフィーチャーのドメインエンティティを定義します。
package entity

// ActiveCollection is the denormalized reference a user keeps for each of
// their active collections.
type ActiveCollection struct {
	// Name is the collection's display name, unique across the user's
	// active collections.
	Name string `dynamodbav:"name" json:"name"`
}

// User represents a registered user in the system.
// A user's own record occupies the (user_id, user_id) slot of the single
// table; their collections and entries hang off the same partition key.
type User struct {
	// UserID is the stable primary identity, issued by the identity provider.
	UserID string `dynamodbav:"primary_key" json:"user_id"`

	// SecondaryKey mirrors UserID for the user's own record.
	SecondaryKey string `dynamodbav:"secondary_key" json:"-"`

	// Name is the user's display name.
	Name string `dynamodbav:"name" json:"name"`

	// Email is the user's email address.
	Email string `dynamodbav:"email" json:"email"`

	// ActiveCollections maps collection id to its denormalized reference.
	// Collection names must be unique across this mapping.
	ActiveCollections map[string]ActiveCollection `dynamodbav:"active_collections" json:"active_collections"`

	// PublishedEntriesCount counts the user's published entries.
	PublishedEntriesCount int `dynamodbav:"published_entries_count" json:"published_entries_count"`

	// CreatedAt and UpdatedAt are epoch seconds.
	CreatedAt int64 `dynamodbav:"created_at" json:"created_at"`
	UpdatedAt int64 `dynamodbav:"updated_at" json:"updated_at"`
}

// AuthToken wraps the authenticated user for one request. It is produced per
// request by the authorization gate and never cached across requests.
type AuthToken struct {
	User *User
}
