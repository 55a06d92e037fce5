package models

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product represents a catalogue record as persisted in the products collection
type Product struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name"`
	Price    float64            `json:"price" bson:"price"`
	Category string             `json:"category" bson:"category"`
}

// Document is a product as returned by a list query. Projections may drop any
// field, so list results are not decoded into Product.
type Document map[string]interface{}

// ProductInput is the raw JSON body of create and update requests.
// Price stays raw because clients send it either as a number or a numeric string.
type ProductInput struct {
	Name     *string         `json:"name"`
	Price    json.RawMessage `json:"price"`
	Category *string         `json:"category"`
}

// ProductUpdate holds the fields of a partial update. Nil fields are left untouched.
type ProductUpdate struct {
	Name     *string
	Price    *float64
	Category *string
}

// Empty reports whether the update would change nothing
func (u ProductUpdate) Empty() bool {
	return u.Name == nil && u.Price == nil && u.Category == nil
}

// SortOrder is the requested ordering of a list query
type SortOrder int

const (
	SortNone SortOrder = iota
	SortPriceAsc
	SortPriceDesc
)

// ProductQuery is the translated form of the list endpoint's query string
type ProductQuery struct {
	Category *string
	MinPrice *float64
	Sort     SortOrder
	// Fields is nil when every field should be returned
	Fields []string
}
