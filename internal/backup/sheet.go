package backup

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketwatch/pocketwatch/internal/common"
	"github.com/pocketwatch/pocketwatch/internal/model"
)

// Legacy sheet exports carry their settings inconsistently, so missing
// values fall back to the sheet era's defaults rather than the app's.
var sheetDefaultSettings = model.Settings{
	Currency:        "EUR",
	FirstDayOfMonth: 1,
	Theme:           "system",
}

// sheetSnapshot is the loose shape produced by the old spreadsheet export.
// Rows carry amounts as strings, descriptions under "label", and no stable
// IDs or category table.
type sheetSnapshot struct {
	Rows []struct {
		Date     string `json:"date"`
		Label    string `json:"label"`
		Category string `json:"category"`
		Value    string `json:"value"`
		Kind     string `json:"kind"`
	} `json:"rows"`
	Settings *struct {
		Currency        string `json:"currency"`
		FirstDayOfMonth int    `json:"firstDayOfMonth"`
		Theme           string `json:"theme"`
	} `json:"settings"`
}

// ImportSheet converts a legacy spreadsheet export into a full snapshot
// suitable for a wholesale replace. Categories are derived from the names
// the rows reference, and settings the sheet omits take the sheet-era
// defaults.
func ImportSheet(r io.Reader) (*model.AppData, error) {
	var sheet sheetSnapshot
	if err := json.NewDecoder(r).Decode(&sheet); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidImportPayload, err)
	}
	if len(sheet.Rows) == 0 {
		return nil, fmt.Errorf("%w: sheet has no rows", common.ErrInvalidImportPayload)
	}

	data := &model.AppData{
		Transactions: make([]model.Transaction, 0, len(sheet.Rows)),
		Budgets:      []model.Budget{},
		Categories:   []model.Category{},
		Settings:     sheetDefaultSettings,
	}
	if s := sheet.Settings; s != nil {
		if s.Currency != "" {
			data.Settings.Currency = s.Currency
		}
		if s.FirstDayOfMonth >= 1 && s.FirstDayOfMonth <= 31 {
			data.Settings.FirstDayOfMonth = s.FirstDayOfMonth
		}
		if s.Theme != "" {
			data.Settings.Theme = s.Theme
		}
	}

	seen := make(map[string]model.CategoryType)
	for i, row := range sheet.Rows {
		amount, err := decimal.NewFromString(strings.ReplaceAll(row.Value, ",", "."))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: invalid value %q", common.ErrInvalidImportPayload, i+1, row.Value)
		}

		typ := model.TransactionType(strings.ToLower(row.Kind))
		if typ != model.TypeExpense && typ != model.TypeIncome {
			if amount.IsNegative() {
				typ = model.TypeExpense
			} else {
				typ = model.TypeIncome
			}
		}

		date, err := parseDate(row.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", common.ErrInvalidImportPayload, i+1, err)
		}

		txn := model.Transaction{
			ID:          uuid.NewString(),
			Type:        typ,
			Amount:      amount.Abs(),
			Date:        date,
			Category:    strings.TrimSpace(row.Category),
			Description: strings.TrimSpace(row.Label),
		}
		if err := txn.Validate(); err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", common.ErrInvalidImportPayload, i+1, err)
		}
		data.Transactions = append(data.Transactions, txn)

		if txn.Category != "" {
			kind := model.CategoryType(txn.Type)
			if prev, ok := seen[txn.Category]; ok && prev != kind {
				seen[txn.Category] = model.CategoryTypeBoth
			} else if !ok {
				seen[txn.Category] = kind
			}
		}
	}

	data.Categories = derivedCategories(data.Transactions, seen)
	return data, nil
}

// derivedCategories builds a category table from the names the imported
// rows use, in first-appearance order.
func derivedCategories(txns []model.Transaction, kinds map[string]model.CategoryType) []model.Category {
	var cats []model.Category
	added := make(map[string]bool)
	for _, txn := range txns {
		if txn.Category == "" || added[txn.Category] {
			continue
		}
		added[txn.Category] = true
		cats = append(cats, model.Category{
			ID:   uuid.NewString(),
			Name: txn.Category,
			Type: kinds[txn.Category],
		})
	}
	if cats == nil {
		cats = []model.Category{}
	}
	return cats
}
