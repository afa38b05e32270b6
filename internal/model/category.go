package model

// CategoryType indicates which transaction types a category applies to.
type CategoryType string

const (
	// CategoryTypeExpense marks categories used by expense transactions.
	CategoryTypeExpense CategoryType = "expense"
	// CategoryTypeIncome marks categories used by income transactions.
	CategoryTypeIncome CategoryType = "income"
	// CategoryTypeBoth marks categories valid for either side.
	CategoryTypeBoth CategoryType = "both"
)

// Category is a named bucket transactions are filed under.
//
// Name is the display key all lookups run on; uniqueness is assumed, not
// enforced. The first match wins when duplicates exist.
type Category struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Type  CategoryType `json:"type"`
	Color string       `json:"color"`
	Icon  string       `json:"icon,omitempty"`
}

// AppliesTo reports whether the category can classify the given transaction type.
func (c *Category) AppliesTo(t TransactionType) bool {
	switch c.Type {
	case CategoryTypeBoth:
		return true
	case CategoryTypeExpense:
		return t == TypeExpense
	case CategoryTypeIncome:
		return t == TypeIncome
	}
	return false
}
