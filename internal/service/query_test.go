package service

import (
	"errors"
	"net/url"
	"testing"

	"github.com/Lixing-Zhang/kart-challenge/product-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestParseProductQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  models.ProductQuery
	}{
		{
			name:  "no parameters",
			query: "",
			want:  models.ProductQuery{},
		},
		{
			name:  "category",
			query: "category=Pizza",
			want:  models.ProductQuery{Category: ptr("Pizza")},
		},
		{
			name:  "min price integer",
			query: "minPrice=10",
			want:  models.ProductQuery{MinPrice: ptr(10.0)},
		},
		{
			name:  "min price decimal and negative",
			query: "minPrice=-2.5",
			want:  models.ProductQuery{MinPrice: ptr(-2.5)},
		},
		{
			name:  "sort ascending",
			query: "sort=price",
			want:  models.ProductQuery{Sort: models.SortPriceAsc},
		},
		{
			name:  "sort descending",
			query: "sort=-price",
			want:  models.ProductQuery{Sort: models.SortPriceDesc},
		},
		{
			name:  "fields trimmed and blanks dropped",
			query: "fields=" + url.QueryEscape(" name, ,price,,name "),
			want:  models.ProductQuery{Fields: []string{"name", "price"}},
		},
		{
			name:  "fields with only separators",
			query: "fields=,,",
			want:  models.ProductQuery{},
		},
		{
			name:  "fields keeps unknown plain names",
			query: "fields=name,colour",
			want:  models.ProductQuery{Fields: []string{"name", "colour"}},
		},
		{
			name:  "empty values are ignored",
			query: "category=&minPrice=&sort=&fields=",
			want:  models.ProductQuery{},
		},
		{
			name:  "everything",
			query: "category=Salad&minPrice=8&sort=-price&fields=name",
			want: models.ProductQuery{
				Category: ptr("Salad"),
				MinPrice: ptr(8.0),
				Sort:     models.SortPriceDesc,
				Fields:   []string{"name"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			got, err := ParseProductQuery(values)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseProductQuery_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		message string
	}{
		{"min price letters", "minPrice=abc", msgMinPrice},
		{"min price trailing garbage", "minPrice=10abc", msgMinPrice},
		{"min price infinity", "minPrice=inf", msgMinPrice},
		{"min price overflow", "minPrice=1e400", msgMinPrice},
		{"min price NaN", "minPrice=NaN", msgMinPrice},
		{"sort unknown", "sort=foo", msgSort},
		{"sort wrong case", "sort=Price", msgSort},
		{"sort plus prefix", "sort=%2Bprice", msgSort},
		{"fields operator", "fields=%24where", msgFields},
		{"fields operator after valid name", "fields=name,%24natural", msgFields},
		{"fields dotted path", "fields=price.x", msgFields},
		{"fields path collision", "fields=price,price.x", msgFields},
		{"fields nul byte", "fields=na%00me", msgFields},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			_, err = ParseProductQuery(values)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, InvalidParameter, verr.Kind)
			assert.Equal(t, tt.message, verr.Message)
		})
	}
}
