package services

import (
	"encoding/json"
	"math"
	"time"
)

// Envelope wraps every list response of the upstream API.
type Envelope struct {
	Data []WorkOrderTaskItem `json:"data"`
}

// WorkOrderTaskItem is one element of the upstream work-orders payload.
// The API is task-grained: each item carries the fields of the parent work
// order alongside one task row, so a multi-task order appears as several
// items repeating the same folio.
type WorkOrderTaskItem struct {
	Folio  string `json:"wo_folio"`
	TaskID int64  `json:"id_work_orders_tasks"`

	StatusID    int     `json:"id_status_work_order"`
	PriorityID  int     `json:"id_priorities"`
	CreatedBy   *string `json:"created_by"`
	ProgressPct *int    `json:"completed_percentage"`
	RequestID   *int64  `json:"id_request"`
	SiteText    *string `json:"parent_description"`
	TaskNote    *string `json:"task_note"`

	CreationDate    *string `json:"creation_date"`
	InitialDate     *string `json:"initial_date"`
	FinalDate       *string `json:"wo_final_date"`
	ReviewDate      *string `json:"review_date"`
	MaintenanceDate *string `json:"date_maintenance"`

	AssetText       *string      `json:"items_log_description"`
	TechnicianText  *string      `json:"personnel_description"`
	TaskPlan        *string      `json:"description"`
	TaskTypeText    *string      `json:"tasks_log_task_type_main"`
	RealDurationSec *json.Number `json:"real_duration"`
	TaskStatus      *string      `json:"task_status"`

	FailureType     *string `json:"types_description"`
	FailureCause    *string `json:"causes_description"`
	DetectionMethod *string `json:"detection_method_description"`
}

// Valid reports whether the item carries the two natural keys every row
// needs. Items without a folio or task id are skipped, not errors.
func (i *WorkOrderTaskItem) Valid() bool {
	return i.Folio != "" && i.TaskID != 0
}

// DurationMinutes converts the raw duration in seconds to minutes rounded
// to two decimals. Nil in, nil out; unparseable values also map to nil.
func (i *WorkOrderTaskItem) DurationMinutes() *float64 {
	if i.RealDurationSec == nil {
		return nil
	}
	secs, err := i.RealDurationSec.Float64()
	if err != nil {
		return nil
	}
	m := math.Round(secs/60*100) / 100
	return &m
}

// reportTZ is the timezone every upstream timestamp is converted into.
var reportTZ = func() *time.Location {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		return time.FixedZone("-03", -3*60*60)
	}
	return loc
}()

// ParseTimestamp parses an upstream ISO-8601 timestamp and converts it to
// the report timezone. Nil, empty and malformed inputs all map to nil.
func ParseTimestamp(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		// Some endpoints omit the offset entirely; treat those as UTC.
		t, err = time.ParseInLocation("2006-01-02T15:04:05", *s, time.UTC)
		if err != nil {
			return nil
		}
	}
	local := t.In(reportTZ)
	return &local
}
