package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFilterFromQuery_Defaults(t *testing.T) {
	filter := ParseFilterFromQuery(url.Values{})

	assert.Equal(t, DefaultLimit, filter.Limit)
	assert.Equal(t, 1, filter.Page)
	assert.Equal(t, 0, filter.Offset)
	assert.True(t, filter.WithPagination)
	assert.Empty(t, filter.Search)
}

func TestParseFilterFromQuery_LimitCap(t *testing.T) {
	values := url.Values{}
	values.Set("limit", "500")
	values.Set("page", "3")

	filter := ParseFilterFromQuery(values)

	assert.Equal(t, MaxLimit, filter.Limit)
	assert.Equal(t, 3, filter.Page)
	assert.Equal(t, 2*MaxLimit, filter.Offset)
}

func TestParseFilterFromQuery_SortAndFilter(t *testing.T) {
	values := url.Values{}
	values.Set("search", "экскаватор")
	values.Set("sort[created_at]", "desc")
	values.Set("sort[name]", "вверх") // не asc/desc — игнорируется
	values.Set("filter[status]", "available")
	values.Set("filter[equipment_type]", "vehicle")

	filter := ParseFilterFromQuery(values)

	assert.Equal(t, "экскаватор", filter.Search)
	assert.Equal(t, map[string]string{"created_at": "desc"}, filter.Sort)
	assert.Equal(t, "available", filter.Filter["status"])
	assert.Equal(t, "vehicle", filter.Filter["equipment_type"])
}

func TestParseFilterFromQuery_InvalidNumbersIgnored(t *testing.T) {
	values := url.Values{}
	values.Set("limit", "abc")
	values.Set("page", "-2")

	filter := ParseFilterFromQuery(values)

	assert.Equal(t, DefaultLimit, filter.Limit)
	assert.Equal(t, 1, filter.Page)
}
