package report

import (
	"sort"
	"strings"
	"time"

	"github.com/pocketwatch/pocketwatch/internal/model"
)

// Filter narrows a transaction list for the expense/income views. Zero
// values mean "no constraint".
type Filter struct {
	Start      *time.Time
	End        *time.Time
	Type       model.TransactionType
	Search     string
	Categories []string
}

// Apply returns the transactions passing every set constraint, newest
// first. Search matches case-insensitively against description and
// category name.
func (f Filter) Apply(transactions []model.Transaction) []model.Transaction {
	search := strings.ToLower(f.Search)
	categories := make(map[string]struct{}, len(f.Categories))
	for _, c := range f.Categories {
		categories[c] = struct{}{}
	}

	var out []model.Transaction
	for _, t := range transactions {
		if f.Type != "" && t.Type != f.Type {
			continue
		}
		if len(categories) > 0 {
			if _, ok := categories[t.Category]; !ok {
				continue
			}
		}
		if f.Start != nil && t.Date.Before(*f.Start) {
			continue
		}
		if f.End != nil && t.Date.After(*f.End) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Description), search) &&
			!strings.Contains(strings.ToLower(t.Category), search) {
			continue
		}
		out = append(out, t)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}
