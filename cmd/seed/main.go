// Package main provides a tool to seed the database with demo collection data.
//
// This creates a demo user with a handful of categories and items so the
// schema engine, rendering, and search features can be exercised against
// realistic data.
//
// Usage:
//
//	DATA_PATH=~/Curio/data go run ./cmd/seed
//	DATA_PATH=~/Curio/data go run ./cmd/seed --email me@example.com --password hunter22
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/curioapp/curio-server/internal/auth"
	"github.com/curioapp/curio-server/internal/color"
	"github.com/curioapp/curio-server/internal/domain"
	"github.com/curioapp/curio-server/internal/id"
	"github.com/curioapp/curio-server/internal/schema"
	"github.com/curioapp/curio-server/internal/store"
)

var (
	email    = flag.String("email", "demo@curio.local", "Email for the demo user")
	password = flag.String("password", "curio-demo", "Password for the demo user")
)

func main() {
	flag.Parse()

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/Curio/data")
	}
	dbPath := filepath.Join(dataPath, "db")

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := store.New(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	user, err := ensureUser(ctx, s, *email, *password)
	if err != nil {
		log.Fatalf("Failed to create demo user: %v", err)
	}

	existing, err := s.ListCategories(ctx, user.ID)
	if err != nil {
		log.Fatalf("Failed to list categories: %v", err)
	}
	have := make(map[string]bool, len(existing))
	for _, c := range existing {
		have[c.Name] = true
	}

	created := 0
	for _, seed := range demoCategories() {
		if have[seed.name] {
			fmt.Printf("  Category %q already exists, skipping\n", seed.name)
			continue
		}

		category, fieldIDs, err := createCategory(ctx, s, user.ID, seed)
		if err != nil {
			log.Printf("  Failed to create category %q: %v", seed.name, err)
			continue
		}

		fmt.Printf("  Created category: %s (%d fields)\n", category.Name, len(category.FieldConfig))

		for _, item := range seed.items {
			if err := createItem(ctx, s, user.ID, category, fieldIDs, item); err != nil {
				log.Printf("    Failed to create item %q: %v", item.name, err)
				continue
			}
			fmt.Printf("    Created item: %s\n", item.name)
			created++
		}
	}

	fmt.Printf("\nSeeding complete! %d items created.\n", created)
	fmt.Println("The server rebuilds the search index from the store when it comes up empty;")
	fmt.Println("delete the search directory under DATA_PATH to force a reindex of seeded data.")
}

// ensureUser returns the existing user with the given email, creating
// one when it does not exist yet.
func ensureUser(ctx context.Context, s *store.Store, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if existing, err := s.GetUserByEmail(ctx, email); err == nil {
		fmt.Printf("User %s already exists\n", email)
		return existing, nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID, err := id.Generate(id.PrefixUser)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:           userID,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	fmt.Printf("Created user: %s (%s)\n", email, userID)
	return user, nil
}

// fieldSeed pairs a field definition with the key items use to refer
// to it before real field IDs are assigned.
type fieldSeed struct {
	key      string
	name     string
	ftype    schema.FieldType
	required bool
	options  schema.Options
}

type itemSeed struct {
	name        string
	description string
	// values keyed by fieldSeed.key, mapped to real field IDs at create time
	values map[string]schema.Value
}

type categorySeed struct {
	name        string
	description string
	icon        string
	fields      []fieldSeed
	items       []itemSeed
}

// createCategory persists a category built from the seed and returns
// the mapping from seed field keys to assigned field IDs.
func createCategory(ctx context.Context, s *store.Store, userID string, seed categorySeed) (*domain.Category, map[string]string, error) {
	fields := make(schema.Schema, 0, len(seed.fields))
	fieldIDs := make(map[string]string, len(seed.fields))
	for _, f := range seed.fields {
		field, err := schema.NewField(f.name, f.ftype, f.required, f.options)
		if err != nil {
			return nil, nil, err
		}
		fields = append(fields, field)
		fieldIDs[f.key] = field.ID
	}
	if err := fields.Check(); err != nil {
		return nil, nil, err
	}

	categoryID, err := id.Generate(id.PrefixCategory)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	category := &domain.Category{
		ID:          categoryID,
		UserID:      userID,
		Name:        seed.name,
		Description: seed.description,
		FieldConfig: fields,
		Color:       color.ForCategory(seed.name),
		Icon:        seed.icon,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.CreateCategory(ctx, category); err != nil {
		return nil, nil, err
	}
	return category, fieldIDs, nil
}

func createItem(ctx context.Context, s *store.Store, userID string, category *domain.Category, fieldIDs map[string]string, seed itemSeed) error {
	fieldData := make(schema.ValueMap, len(seed.values))
	for key, value := range seed.values {
		fieldID, ok := fieldIDs[key]
		if !ok {
			return fmt.Errorf("unknown field key %q", key)
		}
		fieldData[fieldID] = value
	}

	itemID, err := id.Generate(id.PrefixItem)
	if err != nil {
		return err
	}

	now := time.Now()
	item := &domain.Item{
		ID:          itemID,
		CategoryID:  category.ID,
		UserID:      userID,
		Name:        seed.name,
		Description: seed.description,
		FieldData:   fieldData,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return s.CreateItem(ctx, item)
}

func demoCategories() []categorySeed {
	minPages := 1.0
	return []categorySeed{
		{
			name:        "Books",
			description: "Paper and hardcover library",
			icon:        "book",
			fields: []fieldSeed{
				{key: "author", name: "Author", ftype: schema.TypeText, required: true},
				{key: "pages", name: "Pages", ftype: schema.TypeNumber, options: schema.Options{Min: &minPages}},
				{key: "read", name: "Read", ftype: schema.TypeBoolean},
				{key: "genres", name: "Genres", ftype: schema.TypeTags},
			},
			items: []itemSeed{
				{
					name:        "Dune",
					description: "First edition paperback",
					values: map[string]schema.Value{
						"author": schema.String("Frank Herbert"),
						"pages":  schema.Number(412),
						"read":   schema.Bool(true),
						"genres": schema.List("sci-fi", "classic"),
					},
				},
				{
					name: "The Left Hand of Darkness",
					values: map[string]schema.Value{
						"author": schema.String("Ursula K. Le Guin"),
						"pages":  schema.Number(304),
						"read":   schema.Bool(false),
						"genres": schema.List("sci-fi"),
					},
				},
			},
		},
		{
			name:        "Vinyl Records",
			description: "Record collection",
			icon:        "disc",
			fields: []fieldSeed{
				{key: "artist", name: "Artist", ftype: schema.TypeText, required: true},
				{key: "year", name: "Release Year", ftype: schema.TypeNumber},
				{key: "condition", name: "Condition", ftype: schema.TypeSelect, options: schema.Options{
					Choices: []string{"Mint", "Near Mint", "Very Good", "Good", "Fair"},
				}},
			},
			items: []itemSeed{
				{
					name: "Kind of Blue",
					values: map[string]schema.Value{
						"artist":    schema.String("Miles Davis"),
						"year":      schema.Number(1959),
						"condition": schema.String("Very Good"),
					},
				},
				{
					name: "Rumours",
					values: map[string]schema.Value{
						"artist":    schema.String("Fleetwood Mac"),
						"year":      schema.Number(1977),
						"condition": schema.String("Near Mint"),
					},
				},
			},
		},
		{
			name:        "Board Games",
			description: "Shelf of shame included",
			icon:        "dice",
			fields: []fieldSeed{
				{key: "designer", name: "Designer", ftype: schema.TypeText},
				{key: "players", name: "Max Players", ftype: schema.TypeNumber},
				{key: "acquired", name: "Acquired", ftype: schema.TypeDate},
			},
			items: []itemSeed{
				{
					name: "Brass: Birmingham",
					values: map[string]schema.Value{
						"designer": schema.String("Martin Wallace"),
						"players":  schema.Number(4),
						"acquired": schema.String("2024-03-15"),
					},
				},
			},
		},
	}
}
