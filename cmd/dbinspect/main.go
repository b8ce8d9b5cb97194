// Package main provides a read-only inspection tool for the Lendly database.
//
// Usage:
//
//	DB_PATH=~/Lendly/data/db go run ./cmd/dbinspect
package main

import (
	"encoding/json/v2"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/lendlyapp/lendly-server/internal/domain"
)

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/Lendly/data/db")
	}

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

	fmt.Printf("Users:      %d\n", countRecords(db, "user:"))
	fmt.Printf("Categories: %d\n", countRecords(db, "category:"))
	fmt.Printf("Books:      %d\n", countRecords(db, "book:"))
	fmt.Printf("Tickets:    %d\n", countRecords(db, "ticket:"))
	fmt.Println()

	showTickets(db)
}

// countRecords counts document keys under a prefix, skipping index entries.
func countRecords(db *badger.DB, prefix string) int {
	count := 0
	_ = db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
			key := string(it.Item().Key())
			if strings.HasPrefix(key, prefix+"idx:") {
				continue
			}
			count++
		}
		return nil
	})
	return count
}

// showTickets prints the loan pipeline grouped by status.
func showTickets(db *badger.DB) {
	byStatus := map[domain.TicketStatus]int{}
	overdue := 0

	err := db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte("ticket:")
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte("ticket:")); it.ValidForPrefix([]byte("ticket:")); it.Next() {
			item := it.Item()
			if strings.HasPrefix(string(item.Key()), "ticket:idx:") {
				continue
			}

			err := item.Value(func(val []byte) error {
				var ticket domain.Ticket
				if err := json.Unmarshal(val, &ticket); err != nil {
					return err
				}
				byStatus[ticket.Status]++
				if ticket.IsOverdue(time.Now()) {
					overdue++
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to read tickets: %v", err)
	}

	fmt.Println("=== Loan Pipeline ===")
	fmt.Printf("Pending:   %d\n", byStatus[domain.TicketPending])
	fmt.Printf("Approved:  %d\n", byStatus[domain.TicketApproved])
	fmt.Printf("Completed: %d\n", byStatus[domain.TicketCompleted])
	fmt.Printf("Overdue:   %d\n", overdue)
}
