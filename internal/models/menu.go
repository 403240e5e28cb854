package models

// MenuItem is the current menu singleton. Only one menu is held at a
// time; there is no menu history.
type MenuItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Date        string `json:"date"`
	Description string `json:"description,omitempty"`
	Price       int    `json:"price,omitempty"`
	Category    string `json:"category,omitempty"`
}
