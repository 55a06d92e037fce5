package service

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/Lixing-Zhang/kart-challenge/product-api/internal/models"
)

// ParseProductQuery translates the list endpoint's query string into a ProductQuery.
// Parameters that are absent or empty impose no constraint.
func ParseProductQuery(values url.Values) (models.ProductQuery, error) {
	var q models.ProductQuery

	if category := values.Get("category"); category != "" {
		q.Category = &category
	}

	if raw := values.Get("minPrice"); raw != "" {
		minPrice, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || math.IsNaN(minPrice) || math.IsInf(minPrice, 0) {
			return q, newValidationError(InvalidParameter, msgMinPrice)
		}
		q.MinPrice = &minPrice
	}

	if sort := values.Get("sort"); sort != "" {
		switch sort {
		case "price":
			q.Sort = models.SortPriceAsc
		case "-price":
			q.Sort = models.SortPriceDesc
		default:
			return q, newValidationError(InvalidParameter, msgSort)
		}
	}

	if raw := values.Get("fields"); raw != "" {
		fields, err := parseFields(raw)
		if err != nil {
			return q, err
		}
		q.Fields = fields
	}

	return q, nil
}

// parseFields splits a comma separated field list, dropping blank and repeated
// segments. A list with no usable names yields nil. Only plain top-level names
// are accepted: operators ($...), dotted paths and NUL bytes are rejected.
func parseFields(raw string) ([]string, error) {
	var fields []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(raw, ",") {
		f = strings.TrimSpace(f)
		if f == "" || seen[f] {
			continue
		}
		if strings.HasPrefix(f, "$") || strings.ContainsAny(f, ".\x00") {
			return nil, newValidationError(InvalidParameter, msgFields)
		}
		seen[f] = true
		fields = append(fields, f)
	}
	return fields, nil
}
