package controllers

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func andConditions(t *testing.T, query bson.M) []bson.M {
	t.Helper()
	raw, ok := query["$and"]
	require.True(t, ok, "expected an $and clause, got %+v", query)
	conds, ok := raw.([]bson.M)
	require.True(t, ok)
	return conds
}

func TestBuildListingQuery_Empty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, bson.M{}, buildListingQuery(url.Values{}))
}

func TestBuildListingQuery_StringField(t *testing.T) {
	t.Parallel()

	query := buildListingQuery(url.Values{"city": {"Pune, Mumbai"}})
	conds := andConditions(t, query)

	assert.Equal(t, []bson.M{
		{"city": bson.M{"$in": []string{"Pune", "Mumbai"}}},
	}, conds)
}

func TestBuildListingQuery_OperatorSuffix(t *testing.T) {
	t.Parallel()

	query := buildListingQuery(url.Values{"price[gte]": {"100000"}, "price[lte]": {"200000"}})
	conds := andConditions(t, query)

	require.Len(t, conds, 1)
	assert.Equal(t, bson.M{
		"price": bson.M{"$gte": float64(100000), "$lte": float64(200000)},
	}, conds[0])
}

func TestBuildListingQuery_NotEqualsString(t *testing.T) {
	t.Parallel()

	query := buildListingQuery(url.Values{"state[ne]": {"Goa"}})
	conds := andConditions(t, query)

	assert.Equal(t, []bson.M{
		{"state": bson.M{"$nin": []string{"Goa"}}},
	}, conds)
}

func TestBuildListingQuery_SetFields(t *testing.T) {
	t.Parallel()

	query := buildListingQuery(url.Values{"amenities": {"pool,gym"}})
	conds := andConditions(t, query)

	assert.Equal(t, []bson.M{
		{"amenities": bson.M{"$in": []string{"pool", "gym"}}},
	}, conds)
}

func TestBuildListingQuery_BoolField(t *testing.T) {
	t.Parallel()

	query := buildListingQuery(url.Values{"isVerified": {"TRUE"}})
	conds := andConditions(t, query)

	assert.Equal(t, []bson.M{
		{"isVerified": bson.M{"$eq": true}},
	}, conds)
}

func TestBuildListingQuery_DateField(t *testing.T) {
	t.Parallel()

	query := buildListingQuery(url.Values{"availableFrom[gte]": {"2026-01-15"}})
	conds := andConditions(t, query)

	want := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, []bson.M{
		{"availableFrom": bson.M{"$gte": want}},
	}, conds)
}

func TestBuildListingQuery_DropsUnknownFieldsAndOperators(t *testing.T) {
	t.Parallel()

	// Unknown fields and operators must never reach the store, so query
	// parameters cannot inject arbitrary operators.
	query := buildListingQuery(url.Values{
		"$where":        {"sleep(1000)"},
		"password":      {"x"},
		"price[regex]":  {".*"},
		"bedrooms":      {"two"},
		"favorites[in]": {"abc"},
	})

	assert.Equal(t, bson.M{}, query)
}

func TestBuildListingQuery_MultipleFields(t *testing.T) {
	t.Parallel()

	query := buildListingQuery(url.Values{
		"city":      {"Pune"},
		"furnished": {"true"},
	})
	conds := andConditions(t, query)

	assert.ElementsMatch(t, []bson.M{
		{"city": bson.M{"$in": []string{"Pune"}}},
		{"furnished": bson.M{"$eq": true}},
	}, conds)
}
