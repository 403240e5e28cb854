package models

// User is a facility member who orders meals. Users live in the
// users collection persisted as one JSON document, not in their own
// table; meal records keep denormalized copies of Name and Group so
// later edits never rewrite history.
type User struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Group         string `json:"group"`
	Price         int    `json:"price"`
	IsActive      bool   `json:"isActive"`
	TrialUser     bool   `json:"trialUser"`
	CreatedAt     string `json:"createdAt"` // ISO timestamp, immutable
	Notes         string `json:"notes,omitempty"`
	DisplayNumber int    `json:"displayNumber"`
}
