// Package metadata manages persisted statement records: which statements
// were generated, for which period, and their workflow status. These records
// carry no computed figures; statements are rederived on every view.
package metadata

import (
	"time"

	"github.com/google/uuid"
)

// Statement types.
const (
	TypeBalanceSheet    = "balance_sheet"
	TypeIncomeStatement = "income_statement"
	TypeCostOfSales     = "cost_of_sales"
	TypeCashFlow        = "cash_flow"
)

// Statement statuses.
const (
	StatusDraft    = "draft"
	StatusApproved = "approved"
)

// Record identifies one generated statement.
type Record struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   int64     `json:"ownerId"`
	Type      string    `json:"type"`
	Period    string    `json:"period"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// ValidType reports whether t is a known statement type.
func ValidType(t string) bool {
	switch t {
	case TypeBalanceSheet, TypeIncomeStatement, TypeCostOfSales, TypeCashFlow:
		return true
	}
	return false
}
