package validation

// Result is the outcome of a validation. Invalid input is communicated
// solely through Errors; validators never return Go errors and never
// panic on bad input. Warnings are advisory and do not affect IsValid.
type Result struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func NewResult() Result {
	return Result{IsValid: true, Errors: []string{}, Warnings: []string{}}
}

func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.IsValid = false
}

func (r *Result) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// Merge folds another result into this one. IsValid stays true only if
// both sides produced no errors.
func (r *Result) Merge(other Result) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	if !other.IsValid {
		r.IsValid = false
	}
}
