package finance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/mbiancareli/studio-manager/internal/models"
)

func TestSummarize(t *testing.T) {
	corteID := uuid.New()
	coloracaoID := uuid.New()

	entries := []models.Finance{
		{Type: string(TypeIncome), Amount: 80, ServiceID: &corteID},
		{Type: string(TypeIncome), Amount: 120, ServiceID: &coloracaoID},
		{Type: string(TypeIncome), Amount: 80, ServiceID: &corteID},
		{Type: string(TypeExpense), Amount: 50, Category: "Trabalho"},
		{Type: string(TypeExpense), Amount: 30, Category: "Casa"},
		{Type: string(TypeExpense), Amount: 20, Category: "Trabalho"},
	}

	s := Summarize(entries)

	assert.Equal(t, 280.0, s.TotalIncome)
	assert.Equal(t, 100.0, s.TotalExpense)
	assert.Equal(t, 180.0, s.Balance)

	assert.Equal(t, 160.0, s.IncomeByService[corteID.String()])
	assert.Equal(t, 120.0, s.IncomeByService[coloracaoID.String()])

	assert.Equal(t, 70.0, s.ExpenseByCategory["Trabalho"])
	assert.Equal(t, 30.0, s.ExpenseByCategory["Casa"])
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)

	assert.Zero(t, s.TotalIncome)
	assert.Zero(t, s.TotalExpense)
	assert.Zero(t, s.Balance)
	assert.Empty(t, s.IncomeByService)
	assert.Empty(t, s.ExpenseByCategory)
}

func TestSummarizeSkipsUnattributed(t *testing.T) {
	entries := []models.Finance{
		// income without a service still counts in the total
		{Type: string(TypeIncome), Amount: 40},
		// expense without a category still counts in the total
		{Type: string(TypeExpense), Amount: 10},
	}

	s := Summarize(entries)

	assert.Equal(t, 40.0, s.TotalIncome)
	assert.Equal(t, 10.0, s.TotalExpense)
	assert.Empty(t, s.IncomeByService)
	assert.Empty(t, s.ExpenseByCategory)
}

func TestTypeAndCategoryValidation(t *testing.T) {
	assert.True(t, IsValidType(TypeIncome))
	assert.True(t, IsValidType(TypeExpense))
	assert.False(t, IsValidType(Type("transfer")))

	assert.True(t, IsValidCategory("Trabalho"))
	assert.True(t, IsValidCategory("Gastos Pessoais"))
	assert.False(t, IsValidCategory("Outros"))
}
