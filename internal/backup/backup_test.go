package backup

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pocketwatch/pocketwatch/internal/common"
	"github.com/pocketwatch/pocketwatch/internal/model"
)

func TestJSONRoundTrip(t *testing.T) {
	in := &model.AppData{
		Transactions: []model.Transaction{{
			ID:          "t1",
			Type:        model.TypeExpense,
			Category:    "Food & Dining",
			Description: "coffee",
			Amount:      decimal.RequireFromString("3.75"),
			Date:        time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
		}},
		Budgets: []model.Budget{{
			ID:         "b1",
			Categories: []string{"Food & Dining"},
			Amount:     decimal.NewFromInt(300),
			Period:     model.PeriodMonthly,
			StartDate:  time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		}},
		Categories: []model.Category{{ID: "c1", Name: "Food & Dining", Type: model.CategoryTypeExpense}},
		Settings:   model.Settings{Currency: "USD", FirstDayOfMonth: 1, Theme: "system"},
	}

	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, in))

	out, err := ImportJSON(&buf)
	require.NoError(t, err)

	require.Len(t, out.Transactions, 1)
	assert.True(t, out.Transactions[0].Amount.Equal(decimal.RequireFromString("3.75")))
	require.Len(t, out.Budgets, 1)
	assert.Equal(t, []string{"Food & Dining"}, out.Budgets[0].Categories)
	assert.Equal(t, "USD", out.Settings.Currency)
}

func TestImportJSON_NormalizesLegacyBudgets(t *testing.T) {
	payload := `{
		"transactions": [],
		"budgets": [{"id": "b1", "category": "Shopping", "amount": "50", "period": "monthly", "startDate": "2026-08-01T00:00:00Z"}],
		"categories": [],
		"settings": {"currency": "USD", "firstDayOfMonth": 1, "theme": "system"}
	}`

	out, err := ImportJSON(strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, out.Budgets, 1)
	assert.Equal(t, []string{"Shopping"}, out.Budgets[0].Categories)
}

func TestImportJSON_RejectsBrokenPayloads(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", "{nope"},
		{"bad settings", `{"settings": {"currency": "USD", "firstDayOfMonth": 99, "theme": "system"}}`},
		{"bad transaction", `{
			"transactions": [{"id": "t1", "type": "teleport", "amount": "5", "date": "2026-08-01T00:00:00Z", "category": "x"}],
			"settings": {"currency": "USD", "firstDayOfMonth": 1, "theme": "system"}
		}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ImportJSON(strings.NewReader(tt.payload))
			assert.ErrorIs(t, err, common.ErrInvalidImportPayload)
		})
	}
}

func TestTransactionsCSVRoundTrip(t *testing.T) {
	in := []model.Transaction{{
		ID:          "t1",
		Type:        model.TypeExpense,
		Category:    "Food & Dining",
		Description: "coffee",
		Notes:       "with milk",
		Amount:      decimal.RequireFromString("3.75"),
		Date:        time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
	}, {
		ID:       "t2",
		Type:     model.TypeIncome,
		Category: "Salary",
		Amount:   decimal.RequireFromString("2500.00"),
		Date:     time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}}

	var buf bytes.Buffer
	require.NoError(t, ExportTransactionsCSV(&buf, in))

	out, problems, err := ImportTransactionsCSV(&buf)
	require.NoError(t, err)
	assert.Empty(t, problems)
	require.Len(t, out, 2)
	assert.True(t, out[0].Amount.Equal(decimal.RequireFromString("3.75")))
	assert.Equal(t, "with milk", out[0].Notes)
	assert.Equal(t, model.TypeIncome, out[1].Type)
}

func TestImportTransactionsCSV_CollectsRowErrors(t *testing.T) {
	csv := strings.Join([]string{
		"Date,Amount,Category,Description",
		"2026-08-01,12.50,Food & Dining,lunch",
		"2026-08-02,not-a-number,Food & Dining,broken row",
		"not-a-date,5.00,Food & Dining,broken too",
		"2026-08-03,-8.25,,card payment",
	}, "\n")

	out, problems, err := ImportTransactionsCSV(strings.NewReader(csv))
	require.NoError(t, err, "bad rows are collected, not fatal")

	require.Len(t, out, 2)
	assert.Len(t, problems, 2)
	assert.Contains(t, problems[0], "line 3")
	assert.Contains(t, problems[1], "line 4")

	// Untyped negative amount becomes a positive expense.
	assert.Equal(t, model.TypeExpense, out[1].Type)
	assert.True(t, out[1].Amount.Equal(decimal.RequireFromString("8.25")))
	assert.NotEmpty(t, out[1].ID, "missing ids are generated")
}

func TestImportTransactionsCSV_HeaderMapping(t *testing.T) {
	// Different order, different case, Memo instead of Description.
	csv := "category,MEMO,amount,DATE\nFood & Dining,lunch,12.50,2026-08-01\n"

	out, problems, err := ImportTransactionsCSV(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Empty(t, problems)
	require.Len(t, out, 1)
	assert.Equal(t, "lunch", out[0].Description)
	assert.Equal(t, model.TypeIncome, out[0].Type, "positive untyped amount defaults to income")
}

func TestImportTransactionsCSV_MissingRequiredColumns(t *testing.T) {
	_, _, err := ImportTransactionsCSV(strings.NewReader("ID,Category\nx,y\n"))
	assert.ErrorIs(t, err, common.ErrInvalidImportPayload)
}

func TestExportBudgetsCSV(t *testing.T) {
	budgets := []model.Budget{{
		ID:         "b1",
		Name:       "Groceries",
		Categories: []string{"Food & Dining", "Shopping"},
		Amount:     decimal.NewFromInt(300),
		Period:     model.PeriodMonthly,
		StartDate:  time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}}

	var buf bytes.Buffer
	require.NoError(t, ExportBudgetsCSV(&buf, budgets))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "Food & Dining;Shopping", "categories joined with semicolon")
}

func TestImportSheet(t *testing.T) {
	payload := `{
		"rows": [
			{"date": "2026-08-01", "label": "salary august", "category": "Work", "value": "2500,00", "kind": "income"},
			{"date": "2026-08-03", "label": "groceries", "category": "Food", "value": "-87,50"},
			{"date": "2026-08-05", "label": "more groceries", "category": "Food", "value": "-12,50"}
		]
	}`

	data, err := ImportSheet(strings.NewReader(payload))
	require.NoError(t, err)

	// Sheet-era defaults when the export carries no settings.
	assert.Equal(t, "EUR", data.Settings.Currency)
	assert.Equal(t, 1, data.Settings.FirstDayOfMonth)
	assert.Equal(t, "system", data.Settings.Theme)

	require.Len(t, data.Transactions, 3)
	assert.Equal(t, model.TypeIncome, data.Transactions[0].Type)
	assert.True(t, data.Transactions[0].Amount.Equal(decimal.RequireFromString("2500.00")),
		"comma decimal separators are handled")
	assert.Equal(t, model.TypeExpense, data.Transactions[1].Type, "negative value defaults to expense")

	require.Len(t, data.Categories, 2, "categories derived in first-appearance order")
	assert.Equal(t, "Work", data.Categories[0].Name)
	assert.Equal(t, model.CategoryTypeIncome, data.Categories[0].Type)
	assert.Equal(t, "Food", data.Categories[1].Name)
	assert.Equal(t, model.CategoryTypeExpense, data.Categories[1].Type)
}

func TestImportSheet_PartialSettingsKeepDefaults(t *testing.T) {
	payload := `{
		"rows": [{"date": "2026-08-01", "label": "x", "category": "Misc", "value": "-5"}],
		"settings": {"currency": "GBP"}
	}`

	data, err := ImportSheet(strings.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, "GBP", data.Settings.Currency)
	assert.Equal(t, 1, data.Settings.FirstDayOfMonth, "missing fields default")
	assert.Equal(t, "system", data.Settings.Theme)
}

func TestImportSheet_RejectsEmptyAndBroken(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"empty rows", `{"rows": []}`},
		{"bad value", `{"rows": [{"date": "2026-08-01", "label": "x", "category": "y", "value": "abc"}]}`},
		{"bad date", `{"rows": [{"date": "yesterday", "label": "x", "category": "y", "value": "5"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ImportSheet(strings.NewReader(tt.payload))
			assert.ErrorIs(t, err, common.ErrInvalidImportPayload)
		})
	}
}
