package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/gitelweb/ossync/internal/models"
	"github.com/gitelweb/ossync/internal/shared"
)

// WorkOrderRepository handles work-order persistence, keyed by folio.
type WorkOrderRepository struct {
	db *sql.DB
}

// NewWorkOrderRepository creates a new WorkOrderRepository with the given database connection
func NewWorkOrderRepository(db *sql.DB) *WorkOrderRepository {
	return &WorkOrderRepository{db: db}
}

const workOrderColumns = `
	folio, status, criticality, created_by, site_text, observation,
	progress_pct, ticket_id, has_ticket, location_group, location_detail,
	created_at, created_year, created_month, created_day, created_time,
	started_at, started_year, started_month, started_day, started_time,
	completed_at, completed_year, completed_month, completed_day, completed_time,
	review_sent_at, scheduled_at
`

// Upsert inserts or fully replaces a work order by folio and reports
// whether the row was newly created. Derived fields are the caller's
// responsibility; call [models.WorkOrder.SyncCalendarParts] first.
func (r *WorkOrderRepository) Upsert(wo *models.WorkOrder) (bool, error) {
	if wo.Folio == "" {
		return false, fmt.Errorf("%w: work order without folio", shared.ErrInvalidInput)
	}

	var exists bool
	err := r.db.QueryRow("SELECT EXISTS(SELECT 1 FROM work_orders WHERE folio = ?)", wo.Folio).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check work order existence: %w", err)
	}

	query := `
		INSERT INTO work_orders (` + workOrderColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(folio) DO UPDATE SET
			status = excluded.status,
			criticality = excluded.criticality,
			created_by = excluded.created_by,
			site_text = excluded.site_text,
			observation = excluded.observation,
			progress_pct = excluded.progress_pct,
			ticket_id = excluded.ticket_id,
			has_ticket = excluded.has_ticket,
			location_group = excluded.location_group,
			location_detail = excluded.location_detail,
			created_at = excluded.created_at,
			created_year = excluded.created_year,
			created_month = excluded.created_month,
			created_day = excluded.created_day,
			created_time = excluded.created_time,
			started_at = excluded.started_at,
			started_year = excluded.started_year,
			started_month = excluded.started_month,
			started_day = excluded.started_day,
			started_time = excluded.started_time,
			completed_at = excluded.completed_at,
			completed_year = excluded.completed_year,
			completed_month = excluded.completed_month,
			completed_day = excluded.completed_day,
			completed_time = excluded.completed_time,
			review_sent_at = excluded.review_sent_at,
			scheduled_at = excluded.scheduled_at
	`

	_, err = r.db.Exec(query,
		wo.Folio, string(wo.Status), string(wo.Criticality), wo.CreatedBy, wo.SiteText, wo.Observation,
		wo.ProgressPct, wo.TicketID, wo.HasTicket, wo.LocationGroup, wo.LocationDetail,
		wo.CreatedAt, wo.CreatedYear, wo.CreatedMonth, wo.CreatedDay, wo.CreatedTime,
		wo.StartedAt, wo.StartedYear, wo.StartedMonth, wo.StartedDay, wo.StartedTime,
		wo.CompletedAt, wo.CompletedYear, wo.CompletedMonth, wo.CompletedDay, wo.CompletedTime,
		wo.ReviewSentAt, wo.ScheduledAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to upsert work order %s: %w", wo.Folio, err)
	}

	return !exists, nil
}

// Get retrieves a work order by folio.
func (r *WorkOrderRepository) Get(folio string) (*models.WorkOrder, error) {
	row := r.db.QueryRow("SELECT "+workOrderColumns+" FROM work_orders WHERE folio = ?", folio)
	wo, err := scanWorkOrder(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: work order %s", shared.ErrNotFound, folio)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan work order: %w", err)
	}
	return wo, nil
}

// Folios returns every stored folio.
func (r *WorkOrderRepository) Folios() ([]string, error) {
	return r.folioQuery("SELECT folio FROM work_orders ORDER BY folio")
}

// ActiveFolios returns the folios of work orders still in a non-terminal
// status, the candidates for a refresh pass.
func (r *WorkOrderRepository) ActiveFolios() ([]string, error) {
	return r.folioQuery(
		"SELECT folio FROM work_orders WHERE status IN (?, ?) ORDER BY folio",
		string(models.StatusOpen), string(models.StatusInReview),
	)
}

// FoliosMissingDates returns folios lacking a review or scheduled
// timestamp, the candidates for the date backfill.
func (r *WorkOrderRepository) FoliosMissingDates() ([]string, error) {
	return r.folioQuery("SELECT folio FROM work_orders WHERE review_sent_at IS NULL OR scheduled_at IS NULL ORDER BY folio")
}

// FoliosMissingObservation returns folios with no stored observation.
func (r *WorkOrderRepository) FoliosMissingObservation() ([]string, error) {
	return r.folioQuery("SELECT folio FROM work_orders WHERE observation IS NULL OR observation = '' ORDER BY folio")
}

// UpdateStatus sets only the status of a work order, leaving every other
// column untouched.
func (r *WorkOrderRepository) UpdateStatus(folio string, status models.Status) error {
	result, err := r.db.Exec("UPDATE work_orders SET status = ? WHERE folio = ?", string(status), folio)
	if err != nil {
		return fmt.Errorf("failed to update status of %s: %w", folio, err)
	}
	return requireRow(result, folio)
}

// MergeDates fills the review and scheduled timestamps of a work order
// without clobbering values already present.
func (r *WorkOrderRepository) MergeDates(folio string, reviewSentAt, scheduledAt *time.Time) error {
	query := `
		UPDATE work_orders
		SET review_sent_at = COALESCE(review_sent_at, ?),
		    scheduled_at = COALESCE(scheduled_at, ?)
		WHERE folio = ?
	`
	result, err := r.db.Exec(query, reviewSentAt, scheduledAt, folio)
	if err != nil {
		return fmt.Errorf("failed to merge dates of %s: %w", folio, err)
	}
	return requireRow(result, folio)
}

// MergeObservation sets the observation only when none is stored yet.
func (r *WorkOrderRepository) MergeObservation(folio, observation string) error {
	query := `
		UPDATE work_orders
		SET observation = ?
		WHERE folio = ? AND (observation IS NULL OR observation = '')
	`
	if _, err := r.db.Exec(query, observation, folio); err != nil {
		return fmt.Errorf("failed to merge observation of %s: %w", folio, err)
	}
	return nil
}

// UpdateLocation rewrites the derived location columns of a work order.
func (r *WorkOrderRepository) UpdateLocation(folio, group, detail string) error {
	result, err := r.db.Exec(
		"UPDATE work_orders SET location_group = ?, location_detail = ? WHERE folio = ?",
		group, detail, folio,
	)
	if err != nil {
		return fmt.Errorf("failed to update location of %s: %w", folio, err)
	}
	return requireRow(result, folio)
}

// All retrieves every stored work order ordered by folio.
func (r *WorkOrderRepository) All() ([]*models.WorkOrder, error) {
	rows, err := r.db.Query("SELECT " + workOrderColumns + " FROM work_orders ORDER BY folio")
	if err != nil {
		return nil, fmt.Errorf("failed to query work orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.WorkOrder
	for rows.Next() {
		wo, err := scanWorkOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work order: %w", err)
		}
		orders = append(orders, wo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return orders, nil
}

func (r *WorkOrderRepository) folioQuery(query string, args ...any) ([]string, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query folios: %w", err)
	}
	defer rows.Close()

	var folios []string
	for rows.Next() {
		var folio string
		if err := rows.Scan(&folio); err != nil {
			return nil, fmt.Errorf("failed to scan folio: %w", err)
		}
		folios = append(folios, folio)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return folios, nil
}

func requireRow(result sql.Result, folio string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: work order %s", shared.ErrNotFound, folio)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorkOrder(row rowScanner) (*models.WorkOrder, error) {
	var (
		wo             models.WorkOrder
		status         string
		criticality    string
		locationGroup  sql.NullString
		locationDetail sql.NullString
		createdAt      sql.NullTime
		startedAt      sql.NullTime
		completedAt    sql.NullTime
		reviewSentAt   sql.NullTime
		scheduledAt    sql.NullTime
	)

	err := row.Scan(
		&wo.Folio, &status, &criticality, &wo.CreatedBy, &wo.SiteText, &wo.Observation,
		&wo.ProgressPct, &wo.TicketID, &wo.HasTicket, &locationGroup, &locationDetail,
		&createdAt, &wo.CreatedYear, &wo.CreatedMonth, &wo.CreatedDay, &wo.CreatedTime,
		&startedAt, &wo.StartedYear, &wo.StartedMonth, &wo.StartedDay, &wo.StartedTime,
		&completedAt, &wo.CompletedYear, &wo.CompletedMonth, &wo.CompletedDay, &wo.CompletedTime,
		&reviewSentAt, &scheduledAt,
	)
	if err != nil {
		return nil, err
	}

	wo.Status = models.Status(status)
	wo.Criticality = models.Criticality(criticality)
	wo.LocationGroup = locationGroup.String
	wo.LocationDetail = locationDetail.String
	wo.CreatedAt = timePtr(createdAt)
	wo.StartedAt = timePtr(startedAt)
	wo.CompletedAt = timePtr(completedAt)
	wo.ReviewSentAt = timePtr(reviewSentAt)
	wo.ScheduledAt = timePtr(scheduledAt)

	return &wo, nil
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}
