package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running sync.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase (0 when unknown)
	Message string // Human-readable message for display
}

// Operation phase enumeration
type Phase int

const (
	ProbeSequence Phase = iota
	FetchPages
	RefreshOrders
	FillGaps
	FillDates
	FillNotes
	ReclassifyRows
)

func (p Phase) String() string {
	switch p {
	case ProbeSequence:
		return "probe_sequence"
	case FetchPages:
		return "fetch_pages"
	case RefreshOrders:
		return "refresh_orders"
	case FillGaps:
		return "fill_gaps"
	case FillDates:
		return "fill_dates"
	case FillNotes:
		return "fill_notes"
	case ReclassifyRows:
		return "reclassify_rows"
	default:
		return ""
	}
}

func fetchedUpdate(phase Phase, step, total int, folio string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   phase,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s", step, total, folio),
	}
}

func pageUpdate(page, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchPages,
		Step:    page,
		Message: fmt.Sprintf("Page %d: %d items", page, count),
	}
}

func reclassifyUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ReclassifyRows,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Reclassified %d/%d tasks", step, total),
	}
}

// sendProgress delivers an update without blocking. A slow or absent
// consumer drops updates instead of stalling the sync.
func (e *SyncEngine) sendProgress(prog chan<- ProgressUpdate, update ProgressUpdate) {
	if prog == nil {
		return
	}
	select {
	case prog <- update:
	default:
	}
}
