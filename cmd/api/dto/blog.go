package dto

import (
	"blog-admin/schema"
)

// CreateBlogRequest wraps the writable fields of a new blog.
type CreateBlogRequest struct {
	Data schema.BlogCreate `json:"data"`
}

// UpdateBlogRequest wraps a full update of the writable fields.
type UpdateBlogRequest struct {
	Data schema.BlogUpdate `json:"data"`
}

// PatchBlogRequest wraps a partial update.
type PatchBlogRequest struct {
	Data schema.BlogPatch `json:"data"`
}

// BulkInsertBlogsRequest carries a batch of blogs to insert.
type BulkInsertBlogsRequest struct {
	Data []schema.BlogCreate `json:"data"`
}

// IDListRequest is the shape of bulk delete / soft-delete calls.
type IDListRequest struct {
	IDs []string `json:"ids"`
}

// ListBlogsRequest is the shape of the list operation. When IsCountOnly is
// set only the match count is computed; no documents are fetched.
type ListBlogsRequest struct {
	Query       map[string]interface{}  `json:"query"`
	Options     schema.ListQueryOptions `json:"options"`
	IsCountOnly bool                    `json:"isCountOnly"`
}

// CountBlogsRequest is the shape of the count operation.
type CountBlogsRequest struct {
	Where map[string]interface{} `json:"where"`
}

// BulkUpdateBlogsRequest applies a partial update to every document matching
// Filter.
type BulkUpdateBlogsRequest struct {
	Filter map[string]interface{} `json:"filter"`
	Data   schema.BlogPatch       `json:"data"`
}
