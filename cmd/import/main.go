package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dcode-github/estate_listing_platform/backend/config"
	"github.com/dcode-github/estate_listing_platform/backend/controllers"
	"github.com/dcode-github/estate_listing_platform/backend/models"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// One-shot bulk importer for the listings CSV. Imported records carry no
// owner, so they can never be updated or deleted through the API.

func propertyFromRecord(header map[string]int, record []string) (models.Property, error) {
	field := func(name string) string {
		idx, ok := header[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return record[idx]
	}

	price, err := strconv.Atoi(field("price"))
	if err != nil {
		return models.Property{}, fmt.Errorf("invalid price %q: %v", field("price"), err)
	}
	areaSqFt, err := strconv.Atoi(field("areaSqFt"))
	if err != nil {
		return models.Property{}, fmt.Errorf("invalid areaSqFt %q: %v", field("areaSqFt"), err)
	}
	bedrooms, err := strconv.Atoi(field("bedrooms"))
	if err != nil {
		return models.Property{}, fmt.Errorf("invalid bedrooms %q: %v", field("bedrooms"), err)
	}
	bathrooms, err := strconv.Atoi(field("bathrooms"))
	if err != nil {
		return models.Property{}, fmt.Errorf("invalid bathrooms %q: %v", field("bathrooms"), err)
	}
	rating, err := strconv.ParseFloat(field("rating"), 64)
	if err != nil {
		return models.Property{}, fmt.Errorf("invalid rating %q: %v", field("rating"), err)
	}
	availableFrom, err := time.Parse("2006-01-02", field("availableFrom"))
	if err != nil {
		return models.Property{}, fmt.Errorf("invalid availableFrom %q: %v", field("availableFrom"), err)
	}

	return models.Property{
		PropId:        field("id"),
		Title:         field("title"),
		Type:          field("type"),
		Price:         price,
		State:         field("state"),
		City:          field("city"),
		AreaSqFt:      areaSqFt,
		Bedrooms:      bedrooms,
		Bathrooms:     bathrooms,
		Amenities:     splitMulti(field("amenities")),
		Furnished:     field("furnished") == "true",
		AvailableFrom: availableFrom,
		ListedBy:      field("listedBy"),
		Tags:          splitMulti(field("tags")),
		ColorTheme:    field("colorTheme"),
		Rating:        rating,
		IsVerified:    field("isVerified") == "true",
		ListingType:   field("listingType"),
		CreatedBy:     nil,
	}, nil
}

// splitMulti splits the CSV's pipe-separated multi-value columns.
func splitMulti(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var out []string
	for _, part := range strings.Split(raw, "|") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func main() {
	csvPath := flag.String("csv", "data/properties.csv", "path to the listings CSV")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("Error loading .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	client, err := config.ConnectDB(cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to the database: %v", err)
	}
	defer config.CloseDBConnection(client)

	store, err := config.NewStore(client, cfg.DBName)
	if err != nil {
		log.Fatalf("Failed to set up the database: %v", err)
	}

	f, err := os.Open(*csvPath)
	if err != nil {
		log.Fatalf("Failed to open CSV file %s: %v", *csvPath, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV file %s: %v", *csvPath, err)
	}
	if len(rows) < 2 {
		log.Fatalf("CSV file %s has no data rows", *csvPath)
	}

	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		header[strings.TrimSpace(name)] = i
	}

	var docs []interface{}
	for i, record := range rows[1:] {
		property, err := propertyFromRecord(header, record)
		if err != nil {
			log.Printf("Skipping row %d: %v", i+2, err)
			continue
		}
		docs = append(docs, property)
	}

	if len(docs) == 0 {
		log.Fatal("No valid rows to import")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	res, err := store.Properties.InsertMany(ctx, docs)
	if err != nil {
		log.Fatalf("Error importing CSV: %v", err)
	}

	// A running server's filter cache would otherwise serve pre-import
	// results until the TTL expires.
	controllers.FlushFilterCache(config.InitRedis(cfg.RedisAddr, cfg.RedisPassword))

	log.Printf("CSV data imported successfully, %d properties inserted", len(res.InsertedIDs))
}
