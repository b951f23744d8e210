// Package dto はcollectionsフィーチャーのHTTPリクエスト/レスポンス型を定義します。
package dto

import (
	"time"

	"journal_backend/internal/feature/collections/domain/entity"
)

// TemplateField is one field of a collection template as it appears on the wire.
type TemplateField struct {
	Key         string `json:"key" binding:"required"`
	DisplayName string `json:"display_name" binding:"required"`
}

// CollectionTemplate is the template envelope of create requests and responses.
type CollectionTemplate struct {
	Fields []TemplateField `json:"fields" binding:"required,min=1,dive"`
}

// ToEntity converts the wire template to its domain representation,
// preserving field order.
func (t CollectionTemplate) ToEntity() []entity.TemplateField {
	fields := make([]entity.TemplateField, 0, len(t.Fields))
	for _, f := range t.Fields {
		fields = append(fields, entity.TemplateField{Key: f.Key, DisplayName: f.DisplayName})
	}
	return fields
}

// TemplateFromEntity converts a domain template back to its wire form.
func TemplateFromEntity(fields []entity.TemplateField) CollectionTemplate {
	out := CollectionTemplate{Fields: make([]TemplateField, 0, len(fields))}
	for _, f := range fields {
		out.Fields = append(out.Fields, TemplateField{Key: f.Key, DisplayName: f.DisplayName})
	}
	return out
}

// CreateCollectionRequest is the body of POST /v1/collections.
// Active defaults to true when omitted.
type CreateCollectionRequest struct {
	Name     string             `json:"name" binding:"required"`
	Template CollectionTemplate `json:"template" binding:"required"`
	Active   *bool              `json:"active"`
}

// CollectionOut is one collection as returned by every read endpoint.
type CollectionOut struct {
	CollectionID string             `json:"collection_id"`
	Name         string             `json:"name"`
	Template     CollectionTemplate `json:"template"`
	Active       bool               `json:"active"`
	CreatedAt    string             `json:"created_at"`
}

// CollectionOutFromEntity converts a domain collection to its wire form.
// Timestamps are rendered as UTC RFC 3339.
func CollectionOutFromEntity(c *entity.Collection) CollectionOut {
	return CollectionOut{
		CollectionID: c.CollectionID,
		Name:         c.Name,
		Template:     TemplateFromEntity(c.Template),
		Active:       c.Active,
		CreatedAt:    time.Unix(c.CreatedAt, 0).UTC().Format(time.RFC3339),
	}
}

// ListCollectionsResponse is the body of GET /v1/collections.
type ListCollectionsResponse struct {
	NextCursor string          `json:"next_cursor"`
	PrevCursor string          `json:"prev_cursor"`
	Limit      int             `json:"limit"`
	Records    []CollectionOut `json:"records"`
}

// ErrorResponse is the structured error body for collection endpoints.
type ErrorResponse struct {
	Details string `json:"details"`
}
