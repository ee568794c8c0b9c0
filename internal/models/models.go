package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FolioPrefix is the fixed prefix of the upstream work-order identifier.
// Folios look like "OS1", "OS2", ... with a monotonically assigned number.
const FolioPrefix = "OS"

// FolioForNumber formats a sequence number as an upstream folio.
func FolioForNumber(n int) string {
	return fmt.Sprintf("%s%d", FolioPrefix, n)
}

// FolioNumber parses the sequence number embedded in a folio.
// Returns false for folios that do not follow the prefix+integer format.
func FolioNumber(folio string) (int, bool) {
	rest, ok := strings.CutPrefix(folio, FolioPrefix)
	if !ok || rest == "" {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Status is the lifecycle status of a work order.
type Status string

const (
	StatusOpen      Status = "Open"
	StatusInReview  Status = "InReview"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
	StatusUnknown   Status = "Unknown"
)

// StatusFromRemote maps the upstream numeric status id to a [Status].
func StatusFromRemote(id int) Status {
	switch id {
	case 1:
		return StatusOpen
	case 2:
		return StatusInReview
	case 3:
		return StatusCompleted
	case 4:
		return StatusCancelled
	default:
		return StatusUnknown
	}
}

// Terminal reports whether the status ends the work order's lifecycle.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Criticality is the priority tier of a work order.
type Criticality string

const (
	CriticalityVeryHigh    Criticality = "VeryHigh"
	CriticalityHigh        Criticality = "High"
	CriticalityMedium      Criticality = "Medium"
	CriticalityLow         Criticality = "Low"
	CriticalityVeryLow     Criticality = "VeryLow"
	CriticalityUnspecified Criticality = "Unspecified"
)

// CriticalityFromRemote maps the upstream priority id to a [Criticality].
func CriticalityFromRemote(id int) Criticality {
	switch id {
	case 1:
		return CriticalityVeryHigh
	case 2:
		return CriticalityHigh
	case 3:
		return CriticalityMedium
	case 4:
		return CriticalityLow
	case 5:
		return CriticalityVeryLow
	default:
		return CriticalityUnspecified
	}
}

// WorkOrder is the aggregate root mirrored from the upstream API,
// keyed by its folio. Location group/detail and the calendar parts are
// derived fields, recomputed on every write.
type WorkOrder struct {
	Folio       string
	Status      Status
	Criticality Criticality
	CreatedBy   *string
	SiteText    *string
	Observation *string
	ProgressPct *int
	TicketID    *int64
	HasTicket   bool

	LocationGroup  string
	LocationDetail string

	CreatedAt    *time.Time
	StartedAt    *time.Time
	CompletedAt  *time.Time
	ReviewSentAt *time.Time
	ScheduledAt  *time.Time

	CreatedYear, CreatedMonth, CreatedDay       *int
	CreatedTime                                 *string
	StartedYear, StartedMonth, StartedDay       *int
	StartedTime                                 *string
	CompletedYear, CompletedMonth, CompletedDay *int
	CompletedTime                               *string
}

// SyncCalendarParts rewrites the derived year/month/day/time-of-day columns
// from their source timestamps. Parts are nil exactly when the timestamp is nil.
func (w *WorkOrder) SyncCalendarParts() {
	w.CreatedYear, w.CreatedMonth, w.CreatedDay, w.CreatedTime = calendarParts(w.CreatedAt)
	w.StartedYear, w.StartedMonth, w.StartedDay, w.StartedTime = calendarParts(w.StartedAt)
	w.CompletedYear, w.CompletedMonth, w.CompletedDay, w.CompletedTime = calendarParts(w.CompletedAt)
}

func calendarParts(t *time.Time) (year, month, day *int, clock *string) {
	if t == nil {
		return nil, nil, nil, nil
	}
	y, m, d := t.Date()
	mo := int(m)
	c := t.Format("15:04:05")
	return &y, &mo, &d, &c
}

// Task is a child entity of a WorkOrder, keyed by the upstream task id.
// TechnicianGroup and TaskTypeGroup are derived classification fields.
type Task struct {
	RemoteID int64
	Folio    string

	AssetText      *string
	TechnicianText *string
	TaskPlan       *string
	TaskTypeText   *string

	DurationMinutes *float64
	TaskStatus      *string

	FailureType     *string
	FailureCause    *string
	DetectionMethod *string

	TechnicianGroup string
	TaskTypeGroup   string
}
