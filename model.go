package main

import (
	"time"

	"github.com/google/uuid"
)

// Item is the single entity managed by the service.
type Item struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// clone returns a copy that shares no memory with i.
func (i Item) clone() Item {
	if i.Description != nil {
		d := *i.Description
		i.Description = &d
	}
	return i
}

// CreateItemRequest is the payload for creating a new item.
type CreateItemRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// UpdateItemRequest is the payload for updating an existing item.
// Nil fields are left unchanged.
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// ItemPatch lists the fields an update replaces.
type ItemPatch struct {
	Name        *string
	Description *string
}

// Response is the envelope returned by every item endpoint.
type Response struct {
	Success bool    `json:"success"`
	Data    any     `json:"data"`
	Message *string `json:"message"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}
