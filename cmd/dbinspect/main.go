// Package main provides a read-only inspection tool for the Curio database.
//
// Usage:
//
//	DATA_PATH=~/Curio/data go run ./cmd/dbinspect
package main

import (
	"encoding/json/v2"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/curioapp/curio-server/internal/domain"
)

func main() {
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/Curio/data")
	}
	dbPath := filepath.Join(dataPath, "db")

	opts := badger.DefaultOptions(dbPath).
		WithReadOnly(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Println("=== Database Inspection ===")
	fmt.Println()

	userCount := 0
	err = forEachEntity(db, "user:", func(val []byte) error {
		var user domain.User
		if err := json.Unmarshal(val, &user); err != nil {
			return err
		}
		userCount++
		fmt.Printf("User: %s\n", user.Email)
		fmt.Printf("  ID: %s\n", user.ID)
		fmt.Printf("  Created: %s\n", user.CreatedAt.Format(time.RFC3339))
		return nil
	})
	if err != nil {
		log.Fatalf("Error iterating users: %v", err)
	}
	fmt.Println()

	// Count categories and show their field schemas
	categoryCount := 0
	fieldTypeCounts := map[string]int{}
	itemsPerCategory := map[string]int{}
	categoryNames := map[string]string{}

	err = forEachEntity(db, "category:", func(val []byte) error {
		var category domain.Category
		if err := json.Unmarshal(val, &category); err != nil {
			return err
		}

		categoryCount++
		categoryNames[category.ID] = category.Name

		for _, f := range category.FieldConfig {
			fieldTypeCounts[string(f.Type)]++
		}

		// Show first few categories with their schemas
		if categoryCount <= 5 {
			fmt.Printf("Category: %s\n", category.Name)
			fmt.Printf("  ID: %s\n", category.ID)
			fmt.Printf("  Owner: %s\n", category.UserID)
			fmt.Printf("  Fields: %d\n", len(category.FieldConfig))
			for _, f := range category.FieldConfig {
				required := ""
				if f.Required {
					required = " (required)"
				}
				fmt.Printf("    [%s] %s: %s%s\n", f.ID, f.Name, f.Type, required)
			}
			fmt.Println()
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Error iterating categories: %v", err)
	}

	itemCount := 0
	err = forEachEntity(db, "item:", func(val []byte) error {
		var item domain.Item
		if err := json.Unmarshal(val, &item); err != nil {
			return err
		}
		itemCount++
		itemsPerCategory[item.CategoryID]++
		return nil
	})
	if err != nil {
		log.Fatalf("Error iterating items: %v", err)
	}

	sessionCount := 0
	expiredSessions := 0
	now := time.Now()
	err = forEachEntity(db, "session:", func(val []byte) error {
		var session domain.Session
		if err := json.Unmarshal(val, &session); err != nil {
			return err
		}
		sessionCount++
		if session.ExpiresAt.Before(now) {
			expiredSessions++
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Error iterating sessions: %v", err)
	}

	fmt.Println("=== Summary ===")
	fmt.Printf("Users: %d\n", userCount)
	fmt.Printf("Categories: %d\n", categoryCount)
	fmt.Printf("Items: %d\n", itemCount)
	fmt.Printf("Sessions: %d (%d expired)\n", sessionCount, expiredSessions)

	if categoryCount > 0 {
		fmt.Println()
		fmt.Println("Items per category:")
		for categoryID, name := range categoryNames {
			fmt.Printf("  %s: %d\n", name, itemsPerCategory[categoryID])
		}
	}

	if len(fieldTypeCounts) > 0 {
		fmt.Println()
		fmt.Println("Field types in use:")
		for ftype, count := range fieldTypeCounts {
			fmt.Printf("  %s: %d\n", ftype, count)
		}
	}
}

// forEachEntity iterates the primary records under a key prefix,
// skipping secondary index keys ("<prefix>idx:...").
func forEachEntity(db *badger.DB, prefix string, fn func(val []byte) error) error {
	idxPrefix := prefix + "idx:"
	return db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
			item := it.Item()
			key := string(item.Key())
			if strings.HasPrefix(key, idxPrefix) {
				continue
			}

			if err := item.Value(fn); err != nil {
				log.Printf("Error reading %s: %v", key, err)
			}
		}
		return nil
	})
}
