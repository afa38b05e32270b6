package model

import "fmt"

// Settings holds the process-wide user preferences.
type Settings struct {
	Currency string `json:"currency"`
	Theme    string `json:"theme"`

	// FirstDayOfMonth shifts the dashboard balance window. It does NOT
	// affect the budget roller, which always uses calendar months.
	FirstDayOfMonth int `json:"firstDayOfMonth"`
}

// Validate checks the settings are usable.
func (s *Settings) Validate() error {
	if s.Currency == "" {
		return fmt.Errorf("currency is required")
	}
	if s.FirstDayOfMonth < 1 || s.FirstDayOfMonth > 31 {
		return fmt.Errorf("firstDayOfMonth must be between 1 and 31, got %d", s.FirstDayOfMonth)
	}
	return nil
}
