package finance

import (
	"github.com/mbiancareli/studio-manager/internal/models"
)

// Summary aggregates a filtered set of ledger entries. Balance is always
// TotalIncome - TotalExpense over the same set.
type Summary struct {
	TotalIncome       float64            `json:"total_income"`
	TotalExpense      float64            `json:"total_expense"`
	Balance           float64            `json:"balance"`
	IncomeByService   map[string]float64 `json:"income_by_service"`
	ExpenseByCategory map[string]float64 `json:"expense_by_category"`
}

// Summarize computes the ledger summary in memory over already-fetched
// entries, so it stays independent of the store.
func Summarize(entries []models.Finance) Summary {
	s := Summary{
		IncomeByService:   make(map[string]float64),
		ExpenseByCategory: make(map[string]float64),
	}

	for _, e := range entries {
		switch Type(e.Type) {
		case TypeIncome:
			s.TotalIncome += e.Amount
			if e.ServiceID != nil {
				s.IncomeByService[e.ServiceID.String()] += e.Amount
			}
		case TypeExpense:
			s.TotalExpense += e.Amount
			if e.Category != "" {
				s.ExpenseByCategory[e.Category] += e.Amount
			}
		}
	}

	s.Balance = s.TotalIncome - s.TotalExpense
	return s
}
