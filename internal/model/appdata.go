// Package model defines the entity types shared across the application.
package model

// AppData is the full application snapshot: the four collections the
// ledger owns, and the shape that export/import round-trips.
type AppData struct {
	Transactions []Transaction `json:"transactions"`
	Budgets      []Budget      `json:"budgets"`
	Categories   []Category    `json:"categories"`
	Settings     Settings      `json:"settings"`
}

// Normalize applies the one-time budget shape migration to every budget.
// Call it whenever a snapshot enters the process (load or import).
func (d *AppData) Normalize() {
	for i := range d.Budgets {
		d.Budgets[i].Normalize()
	}
}

// Clone returns a deep copy. Slices of value structs copy cleanly except
// for each budget's category list, which needs its own backing array.
func (d *AppData) Clone() *AppData {
	out := &AppData{
		Transactions: make([]Transaction, len(d.Transactions)),
		Budgets:      make([]Budget, len(d.Budgets)),
		Categories:   make([]Category, len(d.Categories)),
		Settings:     d.Settings,
	}
	copy(out.Transactions, d.Transactions)
	copy(out.Categories, d.Categories)
	for i, b := range d.Budgets {
		cats := make([]string, len(b.Categories))
		copy(cats, b.Categories)
		b.Categories = cats
		out.Budgets[i] = b
	}
	return out
}
