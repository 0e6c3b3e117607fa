package controllers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dcode-github/estate_listing_platform/backend/models"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

// BuildFilter translates the /api/filter query parameters into a Mongo
// filter. minPrice/maxPrice fold into one inclusive range on price, rating
// is a lower bound, amenities/tags match any listed value. Unrecognized
// parameters are ignored.
func BuildFilter(query url.Values) bson.M {
	filters := bson.M{}

	priceRange := bson.M{}
	if v := query.Get("minPrice"); v != "" {
		if num, err := strconv.ParseFloat(v, 64); err == nil {
			priceRange["$gte"] = num
		} else {
			log.Printf("Invalid minPrice value: %s", v)
		}
	}
	if v := query.Get("maxPrice"); v != "" {
		if num, err := strconv.ParseFloat(v, 64); err == nil {
			priceRange["$lte"] = num
		} else {
			log.Printf("Invalid maxPrice value: %s", v)
		}
	}
	if len(priceRange) > 0 {
		filters["price"] = priceRange
	}

	if v := query.Get("bedrooms"); v != "" {
		if num, err := strconv.Atoi(v); err == nil {
			filters["bedrooms"] = num
		} else {
			log.Printf("Invalid bedrooms value: %s", v)
		}
	}
	if v := query.Get("bathrooms"); v != "" {
		if num, err := strconv.Atoi(v); err == nil {
			filters["bathrooms"] = num
		} else {
			log.Printf("Invalid bathrooms value: %s", v)
		}
	}
	if v := query.Get("rating"); v != "" {
		if num, err := strconv.ParseFloat(v, 64); err == nil {
			filters["rating"] = bson.M{"$gte": num}
		} else {
			log.Printf("Invalid rating value: %s", v)
		}
	}

	if v := query.Get("type"); v != "" {
		filters["type"] = v
	}
	if v := query.Get("state"); v != "" {
		filters["state"] = v
	}
	if v := query.Get("city"); v != "" {
		filters["city"] = v
	}
	if v := query.Get("furnished"); v != "" {
		filters["furnished"] = v == "true"
	}

	if v := query.Get("amenities"); v != "" {
		if terms := splitAndTrim(v); len(terms) > 0 {
			filters["amenities"] = bson.M{"$in": terms}
		}
	}
	if v := query.Get("tags"); v != "" {
		if terms := splitAndTrim(v); len(terms) > 0 {
			filters["tags"] = bson.M{"$in": terms}
		}
	}

	return filters
}

func (a *App) FilterProperties() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		cacheKey := filterCacheKey(query)

		if a.Cache != nil {
			cached, err := a.Cache.Get(r.Context(), cacheKey).Result()
			if err == nil {
				log.Printf("Cache hit for key: %s", cacheKey)
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(cached))
				return
			}
			if err != redis.Nil {
				log.Printf("Redis GET error for key %s: %v", cacheKey, err)
			}
		}

		filters := BuildFilter(query)

		cursor, err := a.Store.Properties.Find(r.Context(), filters)
		if err != nil {
			log.Printf("Error fetching properties with filter %+v: %v", filters, err)
			writeError(w, http.StatusInternalServerError, "Failed to fetch properties", err)
			return
		}
		defer cursor.Close(r.Context())

		properties := []models.Property{}
		if err := cursor.All(r.Context(), &properties); err != nil {
			log.Printf("Error decoding properties: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to fetch properties", err)
			return
		}

		resultBytes, err := json.Marshal(properties)
		if err != nil {
			log.Printf("Failed to serialize properties: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to encode response", err)
			return
		}

		if a.Cache != nil {
			if err := a.Cache.Set(r.Context(), cacheKey, resultBytes, filterCacheTTL).Err(); err != nil {
				log.Printf("Failed to cache response for key %s: %v", cacheKey, err)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(resultBytes)
	}
}
