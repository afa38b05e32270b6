package backup

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketwatch/pocketwatch/internal/common"
	"github.com/pocketwatch/pocketwatch/internal/model"
)

const csvDateLayout = "2006-01-02"

var transactionHeader = []string{"ID", "Type", "Amount", "Date", "Category", "Description", "Notes"}

// ExportTransactionsCSV writes every transaction as one CSV row.
func ExportTransactionsCSV(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(transactionHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, txn := range txns {
		record := []string{
			txn.ID,
			string(txn.Type),
			txn.Amount.String(),
			txn.Date.Format(csvDateLayout),
			txn.Category,
			txn.Description,
			txn.Notes,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportBudgetsCSV writes the live budgets and templates as CSV rows.
// Multi-category budgets join their category names with a semicolon.
func ExportBudgetsCSV(w io.Writer, budgets []model.Budget) error {
	cw := csv.NewWriter(w)
	header := []string{"ID", "Name", "Amount", "Period", "StartDate", "Categories", "Template", "Notes"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, b := range budgets {
		record := []string{
			b.ID,
			b.Name,
			b.Amount.String(),
			string(b.Period),
			b.StartDate.Format(csvDateLayout),
			strings.Join(b.Categories, ";"),
			fmt.Sprintf("%t", b.IsTemplate),
			b.Notes,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ImportTransactionsCSV parses transaction rows from CSV. Rows that fail to
// parse are reported as messages rather than aborting the whole import, so a
// mostly-good file still loads. Header names are matched case-insensitively
// and the column order is free.
func ImportTransactionsCSV(r io.Reader) ([]model.Transaction, []string, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: missing CSV header", common.ErrInvalidImportPayload)
	}
	cols, err := mapColumns(header)
	if err != nil {
		return nil, nil, err
	}

	var (
		txns     []model.Transaction
		problems []string
		line     = 1
	)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			problems = append(problems, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		txn, err := parseTransactionRow(record, cols)
		if err != nil {
			problems = append(problems, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		txns = append(txns, txn)
	}
	return txns, problems, nil
}

type columnMap struct {
	id, typ, amount, date, category, description, notes int
}

func mapColumns(header []string) (columnMap, error) {
	cols := columnMap{id: -1, typ: -1, amount: -1, date: -1, category: -1, description: -1, notes: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "id":
			cols.id = i
		case "type":
			cols.typ = i
		case "amount":
			cols.amount = i
		case "date":
			cols.date = i
		case "category":
			cols.category = i
		case "description", "memo":
			cols.description = i
		case "notes", "note":
			cols.notes = i
		}
	}
	if cols.amount == -1 || cols.date == -1 {
		return cols, fmt.Errorf("%w: CSV header must include Amount and Date columns", common.ErrInvalidImportPayload)
	}
	return cols, nil
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func parseTransactionRow(record []string, cols columnMap) (model.Transaction, error) {
	amount, err := decimal.NewFromString(field(record, cols.amount))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("invalid amount %q", field(record, cols.amount))
	}

	date, err := parseDate(field(record, cols.date))
	if err != nil {
		return model.Transaction{}, err
	}

	typ := model.TransactionType(strings.ToLower(field(record, cols.typ)))
	switch typ {
	case model.TypeExpense, model.TypeIncome:
	case "":
		// Untyped rows fall back to the amount's sign.
		if amount.IsNegative() {
			typ = model.TypeExpense
			amount = amount.Abs()
		} else {
			typ = model.TypeIncome
		}
	default:
		return model.Transaction{}, fmt.Errorf("invalid type %q", field(record, cols.typ))
	}

	id := field(record, cols.id)
	if id == "" {
		id = uuid.NewString()
	}

	txn := model.Transaction{
		ID:          id,
		Type:        typ,
		Amount:      amount.Abs(),
		Date:        date,
		Category:    field(record, cols.category),
		Description: field(record, cols.description),
		Notes:       field(record, cols.notes),
	}
	if err := txn.Validate(); err != nil {
		return model.Transaction{}, err
	}
	return txn, nil
}

var dateLayouts = []string{
	csvDateLayout,
	"2006-01-02T15:04:05Z07:00",
	"01/02/2006",
	"2006/01/02",
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}
