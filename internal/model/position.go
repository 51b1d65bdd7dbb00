// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import "time"

// Position represents a job opening.
//
// The `json:"..."` tags tell Go's encoding/json package how to serialize/deserialize
// this struct to/from JSON. The frontend speaks camelCase, so tags map Go's
// exported field names to the wire names.
//
// WHY ID int64?
// Position IDs are assigned by the store as a monotonic counter starting at 1.
// They are never reused, even after a delete — a deleted Position's ID stays
// retired forever. int64 matches what database/sql returns from
// LastInsertId(), so the same model works for both storage backends.
type Position struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Department  string    `json:"department"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Status      string    `json:"status"` // defaults to PositionStatusActive on create
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PositionStatusActive is the default status assigned to new positions.
const PositionStatusActive = "Active"

// PositionUpdate is a partial update for a Position.
//
// WHY POINTER FIELDS?
// Each field is a pointer so we can tell "field not supplied" (nil) apart
// from "field supplied as empty" (&""). A nil field leaves the stored value
// unchanged; a non-nil field overwrites it. This keeps the JSON contract of
// dynamic partial updates while staying compile-time field-name safe —
// there is no free-form map of fields anywhere.
type PositionUpdate struct {
	Title       *string `json:"title"`
	Department  *string `json:"department"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// Apply merges the supplied fields over an existing Position.
// Unsupplied (nil) fields are left untouched. The caller is responsible
// for refreshing UpdatedAt — the store does that on every update, even
// when no field was supplied.
func (u PositionUpdate) Apply(p *Position) {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Department != nil {
		p.Department = *u.Department
	}
	if u.Location != nil {
		p.Location = *u.Location
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Status != nil {
		p.Status = *u.Status
	}
}
