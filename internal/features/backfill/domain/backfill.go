package domain

// Request optionally overrides the defaults of a backfill run.
// Zero values fall back to "today" and the configured page settings.
type Request struct {
	// StartDate is the first creation date to scan, formatted 2006-01-02.
	StartDate string `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	// EndDate is the last creation date to scan, formatted 2006-01-02.
	EndDate string `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	// StatusList filters the orders returned by BasitKargo.
	StatusList []string `json:"statusList,omitempty" validate:"omitempty,dive,required"`
	// Size is the page size.
	Size int `json:"size,omitempty" validate:"omitempty,min=1,max=250"`
	// MaxPages caps how many pages are read.
	MaxPages int `json:"maxPages,omitempty" validate:"omitempty,min=1,max=100"`
}

// FailedItem is one shipment that did not reach a successful outcome.
type FailedItem struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Report summarizes a backfill run. Only failures are listed individually.
type Report struct {
	RunID       string       `json:"runId"`
	StartDate   string       `json:"startDate"`
	EndDate     string       `json:"endDate"`
	Pages       int          `json:"pages"`
	DoneCount   int          `json:"doneCount"`
	FailedCount int          `json:"failedCount"`
	Failed      []FailedItem `json:"failed"`
}

// AddFailure records a failed item.
func (r *Report) AddFailure(id, message string) {
	r.FailedCount++
	r.Failed = append(r.Failed, FailedItem{ID: id, Message: message})
}
