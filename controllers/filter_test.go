package controllers

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildFilter_PriceRange(t *testing.T) {
	t.Parallel()

	query := url.Values{"minPrice": {"100000"}, "maxPrice": {"200000"}}
	filters := BuildFilter(query)

	assert.Equal(t, bson.M{
		"price": bson.M{"$gte": float64(100000), "$lte": float64(200000)},
	}, filters)
}

func TestBuildFilter_MinPriceOnly(t *testing.T) {
	t.Parallel()

	filters := BuildFilter(url.Values{"minPrice": {"50000"}})
	assert.Equal(t, bson.M{"price": bson.M{"$gte": float64(50000)}}, filters)
}

func TestBuildFilter_ExactMatches(t *testing.T) {
	t.Parallel()

	query := url.Values{
		"bedrooms":  {"3"},
		"bathrooms": {"2"},
		"type":      {"Villa"},
		"state":     {"Goa"},
		"city":      {"Panaji"},
	}
	filters := BuildFilter(query)

	assert.Equal(t, bson.M{
		"bedrooms":  3,
		"bathrooms": 2,
		"type":      "Villa",
		"state":     "Goa",
		"city":      "Panaji",
	}, filters)
}

func TestBuildFilter_RatingIsLowerBound(t *testing.T) {
	t.Parallel()

	filters := BuildFilter(url.Values{"rating": {"4.5"}})
	assert.Equal(t, bson.M{"rating": bson.M{"$gte": 4.5}}, filters)
}

func TestBuildFilter_Furnished(t *testing.T) {
	t.Parallel()

	assert.Equal(t, bson.M{"furnished": true}, BuildFilter(url.Values{"furnished": {"true"}}))
	// Anything other than the literal "true" means false.
	assert.Equal(t, bson.M{"furnished": false}, BuildFilter(url.Values{"furnished": {"True"}}))
	assert.Equal(t, bson.M{"furnished": false}, BuildFilter(url.Values{"furnished": {"false"}}))
}

func TestBuildFilter_AmenitiesAndTags(t *testing.T) {
	t.Parallel()

	query := url.Values{"amenities": {"pool,gym"}, "tags": {"sea-view, family "}}
	filters := BuildFilter(query)

	assert.Equal(t, bson.M{
		"amenities": bson.M{"$in": []string{"pool", "gym"}},
		"tags":      bson.M{"$in": []string{"sea-view", "family"}},
	}, filters)
}

func TestBuildFilter_IgnoresUnknownAndInvalid(t *testing.T) {
	t.Parallel()

	query := url.Values{
		"sort":     {"price"},
		"limit":    {"10"},
		"minPrice": {"not-a-number"},
		"bedrooms": {"two"},
	}
	filters := BuildFilter(query)

	assert.Equal(t, bson.M{}, filters)
}

func TestBuildFilter_Empty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, bson.M{}, BuildFilter(url.Values{}))
}
