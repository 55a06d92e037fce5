package service

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/Lixing-Zhang/kart-challenge/product-api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseID validates a path identifier and converts it to an ObjectID
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, newValidationError(InvalidIdentifier, msgInvalidID)
	}
	return oid, nil
}

// ValidateCreate checks a create payload and normalises it into a Product
func ValidateCreate(in models.ProductInput) (models.Product, error) {
	price, hasPrice, err := parsePrice(in.Price)
	if !present(in.Name) || !hasPrice || !present(in.Category) {
		return models.Product{}, newValidationError(MissingField, msgRequiredFields)
	}
	if err != nil {
		return models.Product{}, err
	}

	return models.Product{
		Name:     *in.Name,
		Price:    price,
		Category: *in.Category,
	}, nil
}

// ValidateUpdate checks a partial update payload.
// Only the fields the client supplied end up in the returned update.
func ValidateUpdate(in models.ProductInput) (models.ProductUpdate, error) {
	var upd models.ProductUpdate

	price, hasPrice, err := parsePrice(in.Price)
	if in.Name == nil && !hasPrice && in.Category == nil {
		return upd, newValidationError(MissingField, msgNothingToUpdate)
	}
	if err != nil {
		return upd, err
	}

	if in.Name != nil {
		if !present(in.Name) {
			return upd, newValidationError(MissingField, msgEmptyName)
		}
		upd.Name = in.Name
	}
	if hasPrice {
		upd.Price = &price
	}
	if in.Category != nil {
		if !present(in.Category) {
			return upd, newValidationError(MissingField, msgEmptyCategory)
		}
		upd.Category = in.Category
	}

	return upd, nil
}

func present(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

// parsePrice accepts a JSON number or a numeric string.
// The second return value is false when the field is absent or null.
func parsePrice(raw json.RawMessage) (float64, bool, error) {
	if len(raw) == 0 {
		return 0, false, nil
	}

	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, true, newValidationError(InvalidType, msgPriceNotNumber)
	}

	var price float64
	switch t := v.(type) {
	case nil:
		return 0, false, nil
	case float64:
		price = t
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, true, newValidationError(InvalidType, msgPriceNotNumber)
		}
		price = f
	default:
		return 0, true, newValidationError(InvalidType, msgPriceNotNumber)
	}

	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0, true, newValidationError(InvalidType, msgPriceNotNumber)
	}
	return price, true, nil
}
