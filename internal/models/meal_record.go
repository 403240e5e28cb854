package models

// EatingRatioPending marks a record that has been ordered but not yet
// evaluated. Valid evaluations are 1..10.
const EatingRatioPending = 0

// MealRecord is one meal order for one user on one day. UserName,
// UserGroup and UserCategory are copied from the user at order time;
// the UserID reference may later orphan if the user is deleted, which
// is detected by the integrity check but never corrected.
type MealRecord struct {
	ID           string `json:"id"`
	UserID       string `json:"userId"`
	UserName     string `json:"userName"`
	UserGroup    string `json:"userGroup"`
	UserCategory string `json:"userCategory"`
	Date         string `json:"date"` // yyyy-MM-dd, the record's logical day
	EatingRatio  int    `json:"eatingRatio"`
	Price        int    `json:"price"`
	MenuName     string `json:"menuName,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// Evaluated reports whether the record carries a completed evaluation.
func (r MealRecord) Evaluated() bool {
	return r.EatingRatio >= 1 && r.EatingRatio <= 10
}
