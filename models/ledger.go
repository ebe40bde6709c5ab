package models

import "time"

// LedgerEntryType distinguishes income from expense entries
type LedgerEntryType string

const (
	LedgerTypeExpense LedgerEntryType = "expense"
	LedgerTypeIncome  LedgerEntryType = "income"
)

// LedgerCategoryMaintenance tags expense entries generated by work-order completion
const LedgerCategoryMaintenance = "manutenzione"

// LedgerEntry is the shape the accounting collaborator accepts. Validation of
// the entry is the ledger's own concern; this core only posts well-formed
// expenses on completion.
type LedgerEntry struct {
	ID            int64           `json:"id"`
	Type          LedgerEntryType `json:"type"`
	Amount        float64         `json:"amount"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Date          string          `json:"date"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}
