package transfer

import "time"

// Report is the persistence view of a terminal run: identity, lifecycle
// outcome and counters, without the item payloads.  Reports are what the
// report DAO stores and lists.
type Report struct {
	ID           string        `json:"id"`
	Scenario     string        `json:"scenario,omitempty"`
	State        string        `json:"state"`
	Expected     int           `json:"expected"`
	Capacity     int           `json:"capacity"`
	Produced     int           `json:"produced"`
	Consumed     int           `json:"consumed"`
	Acknowledged int           `json:"acknowledged"`
	HighWater    int           `json:"highWater"`
	Success      bool          `json:"success"`
	Error        string        `json:"error,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	FinishedAt   *time.Time    `json:"finishedAt,omitempty"`
	Elapsed      time.Duration `json:"elapsed"`
}

// Report flattens the run into its persistence view
func (r *Run[T]) Report() *Report {
	r.mu.RLock()
	defer r.mu.RUnlock()
	report := &Report{
		ID:           r.ID,
		Scenario:     r.Scenario,
		State:        r.State,
		Expected:     r.Expected,
		Capacity:     r.Capacity,
		Produced:     r.Produced,
		Consumed:     r.Consumed,
		Acknowledged: r.Acknowledged,
		HighWater:    r.HighWater,
		Success:      r.Success,
		Error:        r.Error,
		CreatedAt:    r.CreatedAt,
		FinishedAt:   r.FinishedAt,
	}
	if r.FinishedAt != nil {
		report.Elapsed = r.FinishedAt.Sub(r.CreatedAt)
	}
	return report
}
