// Package entity はthemesフィーチャーのドメインエンティティを定義します。
package entity

import "go.mongodb.org/mongo-driver/v2/bson"

// ThemeType identifies one of the built-in journaling themes.
type ThemeType string

const (
	ThemeAmorFati            ThemeType = "AMOR_FATI"
	ThemePremeditatioMalorum ThemeType = "PREMEDITATIO_MALORUM"
)

// ThemeData is one inspirational record for a theme: a quote plus the two
// writing nudges shown alongside it.
type ThemeData struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Theme        ThemeType     `bson:"theme" json:"theme"`
	Quote        string        `bson:"quote" json:"quote"`
	IdeaNudge    string        `bson:"idea_nudge" json:"idea_nudge"`
	ThoughtNudge string        `bson:"thought_nudge" json:"thought_nudge"`
	CreatedAt    int64         `bson:"created_at,omitempty" json:"created_at"`
	UpdatedAt    int64         `bson:"updated_at,omitempty" json:"updated_at"`
}

// Theme is one catalog theme together with a sampled data record.
type Theme struct {
	Theme               ThemeType  `json:"theme"`
	Name                string     `json:"name"`
	ShortDescription    string     `json:"short_description"`
	DetailedDescription string     `json:"detailed_description"`
	AccentColor         string     `json:"accent_color"`
	Data                *ThemeData `json:"data"`
}
