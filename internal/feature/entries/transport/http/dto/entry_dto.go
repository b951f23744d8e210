// Package dto はentriesフィーチャーのHTTPリクエスト/レスポンス型を定義します。
package dto

import (
	"time"

	"journal_backend/internal/feature/entries/domain/entity"
)

// TemplateField is one field of the entry's template snapshot on the wire.
type TemplateField struct {
	Key         string `json:"key"`
	DisplayName string `json:"display_name"`
}

// CreateEntryRequest is the body of POST /v1/entries.
// IsDraft defaults to true when omitted.
type CreateEntryRequest struct {
	CollectionID string            `json:"collection_id" binding:"required"`
	Content      map[string]string `json:"content"`
	IsDraft      *bool             `json:"is_draft"`
}

// EntryOut is one entry as returned by every read endpoint.
type EntryOut struct {
	EntryID      string            `json:"entry_id"`
	CollectionID string            `json:"collection_id"`
	Content      map[string]string `json:"content"`
	Template     []TemplateField   `json:"template"`
	IsDraft      bool              `json:"is_draft"`
	CreatedAt    string            `json:"created_at"`
}

// EntryOutFromEntity converts a domain entry to its wire form.
// Timestamps are rendered as UTC RFC 3339.
func EntryOutFromEntity(e *entity.Entry) EntryOut {
	template := make([]TemplateField, 0, len(e.Template))
	for _, f := range e.Template {
		template = append(template, TemplateField{Key: f.Key, DisplayName: f.DisplayName})
	}

	content := e.Content
	if content == nil {
		content = map[string]string{}
	}

	return EntryOut{
		EntryID:      e.EntryID,
		CollectionID: e.CollectionID,
		Content:      content,
		Template:     template,
		IsDraft:      e.IsDraft,
		CreatedAt:    time.Unix(e.CreatedAt, 0).UTC().Format(time.RFC3339),
	}
}

// ListEntriesResponse is the body of GET /v1/entries.
type ListEntriesResponse struct {
	NextCursor string     `json:"next_cursor"`
	PrevCursor string     `json:"prev_cursor"`
	Limit      int        `json:"limit"`
	Records    []EntryOut `json:"records"`
}

// ErrorResponse is the structured error body for entry endpoints.
type ErrorResponse struct {
	Details string `json:"details"`
}
