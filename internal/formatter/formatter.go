// package formatter exports the mirrored work-order data to report files (CSV, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/gitelweb/ossync/internal/models"
)

// ExportWorkOrdersCSV converts stored work orders to CSV with one row per folio.
func ExportWorkOrdersCSV(orders []*models.WorkOrder) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{
		"Folio", "Status", "Criticality", "LocationGroup", "LocationDetail",
		"CreatedAt", "StartedAt", "CompletedAt", "ScheduledAt",
		"HasTicket", "Progress", "CreatedBy", "Site", "Observation",
	}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, wo := range orders {
		record := []string{
			wo.Folio,
			string(wo.Status),
			string(wo.Criticality),
			wo.LocationGroup,
			wo.LocationDetail,
			timeField(wo.CreatedAt),
			timeField(wo.StartedAt),
			timeField(wo.CompletedAt),
			timeField(wo.ScheduledAt),
			strconv.FormatBool(wo.HasTicket),
			intField(wo.ProgressPct),
			strField(wo.CreatedBy),
			strField(wo.SiteText),
			strField(wo.Observation),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportTasksCSV converts stored tasks to CSV with one row per upstream task.
func ExportTasksCSV(tasks []*models.Task) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{
		"TaskID", "Folio", "TechnicianGroup", "TaskTypeGroup",
		"DurationMinutes", "TaskStatus", "Asset", "Technician", "TaskType",
		"FailureType", "FailureCause", "DetectionMethod",
	}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, task := range tasks {
		record := []string{
			strconv.FormatInt(task.RemoteID, 10),
			task.Folio,
			task.TechnicianGroup,
			task.TaskTypeGroup,
			floatField(task.DurationMinutes),
			strField(task.TaskStatus),
			strField(task.AssetText),
			strField(task.TechnicianText),
			strField(task.TaskTypeText),
			strField(task.FailureType),
			strField(task.FailureCause),
			strField(task.DetectionMethod),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// GroupSummaryText renders a plain-text count of work orders per location
// group, sorted by descending count then name.
func GroupSummaryText(orders []*models.WorkOrder) []byte {
	counts := map[string]int{}
	for _, wo := range orders {
		counts[wo.LocationGroup]++
	}

	groups := make([]string, 0, len(counts))
	for group := range counts {
		groups = append(groups, group)
	}
	sort.Slice(groups, func(i, j int) bool {
		if counts[groups[i]] != counts[groups[j]] {
			return counts[groups[i]] > counts[groups[j]]
		}
		return groups[i] < groups[j]
	})

	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("Work orders: %d\n\n", len(orders)))
	for _, group := range groups {
		buf.WriteString(fmt.Sprintf("%6d  %s\n", counts[group], group))
	}

	return buf.Bytes()
}

// ExportResult contains the paths of files created by WriteExport.
type ExportResult struct {
	WorkOrdersFile string
	TasksFile      string
	SummaryFile    string
}

// WriteExport writes the full report set for the given data.
//
// Creates {base}_work_orders.csv, {base}_tasks.csv and {base}_summary.txt.
func WriteExport(orders []*models.WorkOrder, tasks []*models.Task, basePath string) (*ExportResult, error) {
	if basePath == "" {
		basePath = "ossync_export"
	}

	ordersCSV, err := ExportWorkOrdersCSV(orders)
	if err != nil {
		return nil, fmt.Errorf("failed to generate work-order CSV: %w", err)
	}
	tasksCSV, err := ExportTasksCSV(tasks)
	if err != nil {
		return nil, fmt.Errorf("failed to generate task CSV: %w", err)
	}

	result := &ExportResult{
		WorkOrdersFile: basePath + "_work_orders.csv",
		TasksFile:      basePath + "_tasks.csv",
		SummaryFile:    basePath + "_summary.txt",
	}

	if err := os.WriteFile(result.WorkOrdersFile, ordersCSV, 0644); err != nil {
		return nil, fmt.Errorf("failed to write work-order CSV: %w", err)
	}
	if err := os.WriteFile(result.TasksFile, tasksCSV, 0644); err != nil {
		return nil, fmt.Errorf("failed to write task CSV: %w", err)
	}
	if err := os.WriteFile(result.SummaryFile, GroupSummaryText(orders), 0644); err != nil {
		return nil, fmt.Errorf("failed to write summary: %w", err)
	}

	return result, nil
}

func timeField(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

func strField(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intField(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func floatField(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', 2, 64)
}
