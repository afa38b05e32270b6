// Package backup serializes the full application snapshot to and from its
// interchange formats: the native JSON backup, CSV, and the legacy
// spreadsheet-derived shape.
package backup

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pocketwatch/pocketwatch/internal/common"
	"github.com/pocketwatch/pocketwatch/internal/model"
)

// ExportJSON writes the snapshot as the native backup format.
func ExportJSON(w io.Writer, data *model.AppData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	return nil
}

// ImportJSON reads a native backup and returns the snapshot it holds,
// normalized and checked just enough to protect the ledger's replace
// operation from an obviously broken payload.
func ImportJSON(r io.Reader) (*model.AppData, error) {
	var data model.AppData
	dec := json.NewDecoder(r)
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidImportPayload, err)
	}

	if err := data.Settings.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidImportPayload, err)
	}
	for i := range data.Transactions {
		if err := data.Transactions[i].Validate(); err != nil {
			return nil, fmt.Errorf("%w: transaction %d: %v", common.ErrInvalidImportPayload, i, err)
		}
	}

	data.Normalize()
	if data.Transactions == nil {
		data.Transactions = []model.Transaction{}
	}
	if data.Budgets == nil {
		data.Budgets = []model.Budget{}
	}
	if data.Categories == nil {
		data.Categories = []model.Category{}
	}
	return &data, nil
}
