package finance

// ===============================
// Entry types and categories
// ===============================

type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

func IsValidType(t Type) bool {
	return t == TypeIncome || t == TypeExpense
}

// Categories is the closed set accepted for expense entries.
var Categories = []string{
	"Saúde",
	"Educação",
	"Alimentação",
	"Gastos Pessoais",
	"Trabalho",
	"Veículo",
	"Lazer",
	"Casa",
}

func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
