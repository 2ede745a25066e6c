package statements

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/balanza-app/balanza/internal/ledger"
)

// SubcategoryRule maps code prefixes to a presentation sub-group label.
type SubcategoryRule struct {
	Label    string   `yaml:"label"`
	Prefixes []string `yaml:"prefixes"`
}

// ClassificationConfig is the editable prefix-table configuration driving
// account classification. The defaults reproduce the stock chart of
// accounts; deployments with custom charts override them via YAML.
type ClassificationConfig struct {
	CurrentAssetPrefixes     []string `yaml:"current_asset_prefixes"`
	CurrentLiabilityPrefixes []string `yaml:"current_liability_prefixes"`

	// CostReclassPrefixes marks expense-typed accounts that belong under
	// cost of sales on the income statement.
	CostReclassPrefixes []string `yaml:"cost_reclass_prefixes"`

	CashBankPrefixes  []string `yaml:"cash_bank_prefixes"`
	InventoryPrefixes []string `yaml:"inventory_prefixes"`

	// Legacy purchases split, used only when inventory accounts show no
	// debit movement in the period.
	PurchasesLocalPrefixes  []string `yaml:"purchases_local_prefixes"`
	PurchasesImportPrefixes []string `yaml:"purchases_import_prefixes"`

	// ContraRevenueMarkers are case-insensitive name fragments flagging
	// sign-reversing revenue accounts (returns, discounts, rebates).
	ContraRevenueMarkers []string `yaml:"contra_revenue_markers"`
	// ContraAssetMarkers tag accumulated depreciation/amortization accounts.
	// Tagging is informational; their sign is already correct in place.
	ContraAssetMarkers []string `yaml:"contra_asset_markers"`

	Subcategories []SubcategoryRule `yaml:"subcategories"`
}

// DefaultClassification returns the stock prefix tables.
func DefaultClassification() ClassificationConfig {
	return ClassificationConfig{
		CurrentAssetPrefixes:     []string{"10", "11", "12", "13"},
		CurrentLiabilityPrefixes: []string{"20", "21"},
		CostReclassPrefixes:      []string{"5"},
		CashBankPrefixes:         []string{"1001", "1002", "1102"},
		InventoryPrefixes:        []string{"12"},
		PurchasesLocalPrefixes:   []string{"5001"},
		PurchasesImportPrefixes:  []string{"5002"},
		ContraRevenueMarkers:     []string{"devoluc", "descuent", "rebaj"},
		ContraAssetMarkers:       []string{"deprecia", "amortiza", "acumulad"},
		Subcategories: []SubcategoryRule{
			{Label: "cash_bank", Prefixes: []string{"1001", "1002", "1102"}},
			{Label: "receivables", Prefixes: []string{"11"}},
			{Label: "inventory", Prefixes: []string{"12"}},
			{Label: "prepaid", Prefixes: []string{"13"}},
			{Label: "trade_payables", Prefixes: []string{"2001"}},
			{Label: "accruals", Prefixes: []string{"21"}},
			{Label: "capital", Prefixes: []string{"3001"}},
			{Label: "reserves", Prefixes: []string{"3002"}},
			{Label: "retained_earnings", Prefixes: []string{"3003"}},
			{Label: "salaries", Prefixes: []string{"6001"}},
			{Label: "rent", Prefixes: []string{"6002"}},
			{Label: "utilities", Prefixes: []string{"6003"}},
			{Label: "advertising", Prefixes: []string{"6004"}},
			{Label: "insurance", Prefixes: []string{"6005"}},
			{Label: "depreciation", Prefixes: []string{"6101"}},
			{Label: "amortization", Prefixes: []string{"6102"}},
		},
	}
}

// LoadClassification reads a YAML override file; empty fields fall back to
// the defaults so partial overrides stay safe.
func LoadClassification(path string) (ClassificationConfig, error) {
	cfg := DefaultClassification()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("statements: read classification config: %w", err)
	}
	var override ClassificationConfig
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return cfg, fmt.Errorf("statements: parse classification config: %w", err)
	}
	cfg.merge(override)
	return cfg, nil
}

func (c *ClassificationConfig) merge(o ClassificationConfig) {
	if len(o.CurrentAssetPrefixes) > 0 {
		c.CurrentAssetPrefixes = o.CurrentAssetPrefixes
	}
	if len(o.CurrentLiabilityPrefixes) > 0 {
		c.CurrentLiabilityPrefixes = o.CurrentLiabilityPrefixes
	}
	if len(o.CostReclassPrefixes) > 0 {
		c.CostReclassPrefixes = o.CostReclassPrefixes
	}
	if len(o.CashBankPrefixes) > 0 {
		c.CashBankPrefixes = o.CashBankPrefixes
	}
	if len(o.InventoryPrefixes) > 0 {
		c.InventoryPrefixes = o.InventoryPrefixes
	}
	if len(o.PurchasesLocalPrefixes) > 0 {
		c.PurchasesLocalPrefixes = o.PurchasesLocalPrefixes
	}
	if len(o.PurchasesImportPrefixes) > 0 {
		c.PurchasesImportPrefixes = o.PurchasesImportPrefixes
	}
	if len(o.ContraRevenueMarkers) > 0 {
		c.ContraRevenueMarkers = o.ContraRevenueMarkers
	}
	if len(o.ContraAssetMarkers) > 0 {
		c.ContraAssetMarkers = o.ContraAssetMarkers
	}
	if len(o.Subcategories) > 0 {
		c.Subcategories = o.Subcategories
	}
}

var codeSeparators = strings.NewReplacer("-", "", ".", "", " ", "", "/", "")

// NormalizeCode strips separators so prefix rules see bare digits.
func NormalizeCode(code string) string {
	return codeSeparators.Replace(code)
}

func hasAnyPrefix(code string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(code, p) {
			return true
		}
	}
	return false
}

// IsCashAccount reports whether a normalized code is a cash/bank account.
func (c ClassificationConfig) IsCashAccount(code string) bool {
	return hasAnyPrefix(NormalizeCode(code), c.CashBankPrefixes)
}

// IsInventoryAccount reports whether a normalized code falls under the
// inventory prefix fallback.
func (c ClassificationConfig) IsInventoryAccount(code string) bool {
	return hasAnyPrefix(NormalizeCode(code), c.InventoryPrefixes)
}

// IsCostReclass reports whether an expense code presents under cost of sales.
func (c ClassificationConfig) IsCostReclass(code string) bool {
	return hasAnyPrefix(NormalizeCode(code), c.CostReclassPrefixes)
}

// Subcategory resolves the presentation sub-group for a code. Longer
// prefixes win so 1001 beats 10.
func (c ClassificationConfig) Subcategory(code string) string {
	normalized := NormalizeCode(code)
	label := ""
	best := 0
	for _, rule := range c.Subcategories {
		for _, p := range rule.Prefixes {
			if len(p) > best && strings.HasPrefix(normalized, p) {
				best = len(p)
				label = rule.Label
			}
		}
	}
	return label
}

// matchesMarker reports a case-insensitive substring match on account names.
func matchesMarker(name string, markers []string) bool {
	lower := strings.ToLower(name)
	for _, m := range markers {
		if m != "" && strings.Contains(lower, strings.ToLower(m)) {
			return true
		}
	}
	return false
}

// currentFor resolves the current/non-current split for balance-sheet types.
func (c ClassificationConfig) currentFor(t ledger.AccountType, code string) bool {
	normalized := NormalizeCode(code)
	switch t {
	case ledger.TypeAsset:
		return hasAnyPrefix(normalized, c.CurrentAssetPrefixes)
	case ledger.TypeLiability:
		return hasAnyPrefix(normalized, c.CurrentLiabilityPrefixes)
	}
	return false
}
