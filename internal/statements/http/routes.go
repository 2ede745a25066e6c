package statementhttp

import "github.com/go-chi/chi/v5"

// MountRoutes attaches the statement endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/balance-sheet", h.handleBalanceSheet)
	r.Get("/income-statement", h.handleIncomeStatement)
	r.Get("/cost-of-sales", h.handleCostOfSales)
	r.Get("/cash-flow", h.handleCashFlow)
	r.Get("/latest", h.handleLatest)
}
