package storage

import "github.com/pocketwatch/pocketwatch/internal/model"

// DefaultSettings are the settings seeded when no snapshot exists yet.
var DefaultSettings = model.Settings{
	Currency:        "USD",
	FirstDayOfMonth: 1,
	Theme:           "system",
}

// DefaultAppData returns the starter snapshot for a first run: the stock
// category set, default settings, and no transactions or budgets.
func DefaultAppData() *model.AppData {
	return &model.AppData{
		Transactions: []model.Transaction{},
		Budgets:      []model.Budget{},
		Categories:   defaultCategories(),
		Settings:     DefaultSettings,
	}
}

func defaultCategories() []model.Category {
	return []model.Category{
		{ID: "1", Name: "Food", Type: model.CategoryTypeExpense, Color: "#EF4444"},
		{ID: "2", Name: "Transport", Type: model.CategoryTypeExpense, Color: "#F59E0B"},
		{ID: "3", Name: "Housing", Type: model.CategoryTypeExpense, Color: "#10B981"},
		{ID: "4", Name: "Entertainment", Type: model.CategoryTypeExpense, Color: "#6366F1"},
		{ID: "5", Name: "Healthcare", Type: model.CategoryTypeExpense, Color: "#EC4899"},
		{ID: "6", Name: "Shopping", Type: model.CategoryTypeExpense, Color: "#8B5CF6"},
		{ID: "7", Name: "Utilities", Type: model.CategoryTypeExpense, Color: "#14B8A6"},
		{ID: "8", Name: "Other Expense", Type: model.CategoryTypeExpense, Color: "#6B7280"},
		{ID: "9", Name: "Salary", Type: model.CategoryTypeIncome, Color: "#22C55E"},
		{ID: "10", Name: "Freelance", Type: model.CategoryTypeIncome, Color: "#3B82F6"},
		{ID: "11", Name: "Gifts", Type: model.CategoryTypeIncome, Color: "#D946EF"},
		{ID: "12", Name: "Other Income", Type: model.CategoryTypeIncome, Color: "#64748B"},
	}
}
