package controllers

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

// Allow-listed schema for GET /api/properties. Anything not in these tables
// is dropped, so query parameters can never smuggle store operators.
var (
	listingOperatorMap = map[string]string{
		"eq": "$eq", "ne": "$ne", "gt": "$gt", "gte": "$gte", "lt": "$lt", "lte": "$lte",
	}
	listingNumericFields = map[string]bool{
		"price": true, "areaSqFt": true, "bedrooms": true, "bathrooms": true, "rating": true,
	}
	listingDateFields = map[string]bool{"availableFrom": true}
	listingBoolFields = map[string]bool{"isVerified": true, "furnished": true}
	listingStringFields = map[string]bool{
		"propid": true, "title": true, "type": true, "state": true, "city": true,
		"listedBy": true, "listingType": true, "colorTheme": true,
	}
	listingSetFields = map[string]bool{"tags": true, "amenities": true}
)

// buildListingQuery translates query parameters into a Mongo filter.
// Supports an optional operator suffix on numeric and date fields, e.g.
// price[gte]=100000. Invalid values are logged and skipped.
func buildListingQuery(query url.Values) bson.M {
	var andConditions []bson.M
	fieldSpecificConditions := make(map[string]bson.M)

	for rawKey, queryValues := range query {
		if len(queryValues) == 0 || queryValues[0] == "" {
			continue
		}

		fieldKey := rawKey
		mongoOperator := "$eq"

		if strings.Contains(rawKey, "[") && strings.Contains(rawKey, "]") {
			parts := strings.SplitN(rawKey, "[", 2)
			fieldKey = parts[0]
			opKey := strings.TrimSuffix(parts[1], "]")
			if mappedOp, exists := listingOperatorMap[opKey]; exists {
				mongoOperator = mappedOp
			} else {
				log.Printf("Unknown operator key: %s in query param %s", opKey, rawKey)
				continue
			}
		}
		queryValue := queryValues[0]

		if listingSetFields[fieldKey] {
			terms := splitAndTrim(queryValue)
			if len(terms) > 0 {
				andConditions = append(andConditions, bson.M{fieldKey: bson.M{"$in": terms}})
			}
			continue
		}

		if listingStringFields[fieldKey] {
			values := splitAndTrim(queryValue)
			if len(values) == 0 {
				continue
			}
			switch mongoOperator {
			case "$eq":
				andConditions = append(andConditions, bson.M{fieldKey: bson.M{"$in": values}})
			case "$ne":
				andConditions = append(andConditions, bson.M{fieldKey: bson.M{"$nin": values}})
			default:
				log.Printf("Unsupported operator '%s' for string field '%s'. Defaulting to $in.", mongoOperator, fieldKey)
				andConditions = append(andConditions, bson.M{fieldKey: bson.M{"$in": values}})
			}
			continue
		}

		if listingBoolFields[fieldKey] {
			boolVal, err := strconv.ParseBool(strings.ToLower(queryValue))
			if err != nil {
				log.Printf("Invalid boolean value for %s: %s", fieldKey, queryValue)
				continue
			}
			andConditions = append(andConditions, bson.M{fieldKey: bson.M{mongoOperator: boolVal}})
			continue
		}

		if listingNumericFields[fieldKey] || listingDateFields[fieldKey] {
			if _, ok := fieldSpecificConditions[fieldKey]; !ok {
				fieldSpecificConditions[fieldKey] = bson.M{}
			}

			if listingNumericFields[fieldKey] {
				numVal, err := strconv.ParseFloat(queryValue, 64)
				if err != nil {
					log.Printf("Invalid numeric value for %s operator %s: %s", fieldKey, mongoOperator, queryValue)
					continue
				}
				fieldSpecificConditions[fieldKey][mongoOperator] = numVal
			} else {
				t, err := time.Parse("2006-01-02", queryValue)
				if err != nil {
					log.Printf("Invalid date value for %s operator %s: %s", fieldKey, mongoOperator, queryValue)
					continue
				}
				fieldSpecificConditions[fieldKey][mongoOperator] = t
			}
			continue
		}

		log.Printf("Unhandled query parameter: %s (parsed as field: %s)", rawKey, fieldKey)
	}

	for field, conditionsMap := range fieldSpecificConditions {
		if len(conditionsMap) > 0 {
			andConditions = append(andConditions, bson.M{field: conditionsMap})
		}
	}

	finalQuery := bson.M{}
	if len(andConditions) > 0 {
		finalQuery["$and"] = andConditions
	}
	return finalQuery
}

func splitAndTrim(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
