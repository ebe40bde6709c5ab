package services

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"property-dashboard-server/models"
	"property-dashboard-server/storage"
	"property-dashboard-server/types"
)

// AccountingKey is the backend key holding the ledger collection
const AccountingKey = "accounting"

// Ledger is the accounting collaborator. The maintenance core posts expense
// entries on completion and treats failures as non-fatal.
type Ledger interface {
	CreateExpense(entry models.LedgerEntry) (*models.LedgerEntry, error)
}

// NoopLedger accepts entries without recording them
type NoopLedger struct{}

func (NoopLedger) CreateExpense(entry models.LedgerEntry) (*models.LedgerEntry, error) {
	return &entry, nil
}

// StorageLedger appends entries to the accounting collection in the same
// keyed backend the maintenance records live in
type StorageLedger struct {
	backend storage.Backend
	mu      sync.Mutex
}

// NewStorageLedger creates a ledger over the given backend
func NewStorageLedger(backend storage.Backend) *StorageLedger {
	return &StorageLedger{backend: backend}
}

func (l *StorageLedger) CreateExpense(entry models.LedgerEntry) (*models.LedgerEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := l.loadAll()

	entry.Type = models.LedgerTypeExpense
	entry.ID = nextLedgerID(entries)
	entry.CreatedAt = time.Now()
	entries = append(entries, entry)

	raw, err := json.Marshal(entries)
	if err != nil {
		return nil, &types.StorageError{Op: "encode", Key: AccountingKey, Err: err}
	}
	if err := l.backend.Set(AccountingKey, raw); err != nil {
		return nil, err
	}

	log.Printf("💰 Expense entry %d recorded: %.2f (%s)", entry.ID, entry.Amount, entry.Category)
	return &entry, nil
}

// Entries returns the recorded ledger entries, empty on any read problem
func (l *StorageLedger) Entries() []models.LedgerEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadAll()
}

func (l *StorageLedger) loadAll() []models.LedgerEntry {
	raw, found, err := l.backend.Get(AccountingKey)
	if err != nil {
		log.Printf("❌ Failed to read %s collection: %v", AccountingKey, err)
		return []models.LedgerEntry{}
	}
	if !found {
		return []models.LedgerEntry{}
	}

	var entries []models.LedgerEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		log.Printf("❌ Malformed %s collection, starting empty: %v", AccountingKey, err)
		return []models.LedgerEntry{}
	}
	return entries
}

func nextLedgerID(entries []models.LedgerEntry) int64 {
	id := time.Now().UnixMilli()
	for _, e := range entries {
		if e.ID >= id {
			id = e.ID + 1
		}
	}
	return id
}
