package ledger

import "strings"

// AccountType is the canonical account nature discriminator. Collaborators
// report types in Spanish or English; everything downstream of the ingestion
// boundary sees only these values.
type AccountType string

const (
	TypeAsset     AccountType = "asset"
	TypeLiability AccountType = "liability"
	TypeEquity    AccountType = "equity"
	TypeIncome    AccountType = "income"
	TypeCost      AccountType = "cost"
	TypeExpense   AccountType = "expense"

	// TypeUnknown marks rows whose reported type is outside the canonical set.
	// They are carried through ingestion so the engine can log and skip them.
	TypeUnknown AccountType = ""
)

var typeAliases = map[string]AccountType{
	"asset":      TypeAsset,
	"activo":     TypeAsset,
	"activos":    TypeAsset,
	"liability":  TypeLiability,
	"pasivo":     TypeLiability,
	"pasivos":    TypeLiability,
	"equity":     TypeEquity,
	"patrimonio": TypeEquity,
	"capital":    TypeEquity,
	"income":     TypeIncome,
	"revenue":    TypeIncome,
	"ingreso":    TypeIncome,
	"ingresos":   TypeIncome,
	"cost":       TypeCost,
	"costo":      TypeCost,
	"costos":     TypeCost,
	"expense":    TypeExpense,
	"gasto":      TypeExpense,
	"gastos":     TypeExpense,
}

// NormalizeType maps a raw bilingual discriminator onto the canonical enum.
// The second return is false when the value is not recognised.
func NormalizeType(raw string) (AccountType, bool) {
	t, ok := typeAliases[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return TypeUnknown, false
	}
	return t, true
}

// AccountBalance is one trial-balance row: a ledger account with its net
// balance and gross debit/credit activity over the queried range. Balance
// follows the normal-balance convention of Type (debit-normal for
// asset/cost/expense, credit-normal for liability/equity/income).
type AccountBalance struct {
	AccountID   int64       `json:"accountId"`
	Code        string      `json:"code"`
	Name        string      `json:"name"`
	Type        AccountType `json:"type"`
	Balance     float64     `json:"balance"`
	TotalDebit  float64     `json:"totalDebit"`
	TotalCredit float64     `json:"totalCredit"`
}

// NormalBalance computes the balance for a canonical type from gross debit
// and credit activity.
func NormalBalance(t AccountType, debit, credit float64) float64 {
	switch t {
	case TypeLiability, TypeEquity, TypeIncome:
		return credit - debit
	default:
		return debit - credit
	}
}
