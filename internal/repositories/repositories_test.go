package repositories

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/gitelweb/ossync/internal/models"
	"github.com/gitelweb/ossync/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func testOrder(folio string) *models.WorkOrder {
	site := "GERDAU SAPUCAIA"
	createdBy := "NOC"
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	wo := &models.WorkOrder{
		Folio:          folio,
		Status:         models.StatusOpen,
		Criticality:    models.CriticalityHigh,
		CreatedBy:      &createdBy,
		SiteText:       &site,
		LocationGroup:  "Gerdau",
		LocationDetail: "Gerdau Sapucaia",
		CreatedAt:      &created,
	}
	wo.SyncCalendarParts()
	return wo
}

func TestWorkOrderRepository(t *testing.T) {
	t.Run("UpsertCreatesThenUpdates", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewWorkOrderRepository(db)
		wo := testOrder("OS1")

		created, err := repo.Upsert(wo)
		if err != nil {
			t.Fatalf("upsert: %v", err)
		}
		if !created {
			t.Error("first upsert should create")
		}

		wo.Status = models.StatusCompleted
		created, err = repo.Upsert(wo)
		if err != nil {
			t.Fatalf("second upsert: %v", err)
		}
		if created {
			t.Error("second upsert should update")
		}

		got, err := repo.Get("OS1")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Status != models.StatusCompleted {
			t.Errorf("status = %s", got.Status)
		}
		if got.LocationDetail != "Gerdau Sapucaia" {
			t.Errorf("location detail = %q", got.LocationDetail)
		}
		if got.CreatedYear == nil || *got.CreatedYear != 2024 {
			t.Errorf("created year = %v", got.CreatedYear)
		}
		if got.CreatedTime == nil || *got.CreatedTime != "09:00:00" {
			t.Errorf("created time = %v", got.CreatedTime)
		}
	})

	t.Run("GetMissing", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewWorkOrderRepository(db)

		if _, err := repo.Get("OS404"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("ActiveFolios", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewWorkOrderRepository(db)

		statuses := map[string]models.Status{
			"OS1": models.StatusOpen,
			"OS2": models.StatusInReview,
			"OS3": models.StatusCompleted,
			"OS4": models.StatusCancelled,
		}
		for folio, status := range statuses {
			wo := testOrder(folio)
			wo.Status = status
			if _, err := repo.Upsert(wo); err != nil {
				t.Fatalf("upsert %s: %v", folio, err)
			}
		}

		active, err := repo.ActiveFolios()
		if err != nil {
			t.Fatalf("active folios: %v", err)
		}
		if len(active) != 2 || active[0] != "OS1" || active[1] != "OS2" {
			t.Errorf("active = %v", active)
		}
	})

	t.Run("UpdateStatusOnly", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewWorkOrderRepository(db)
		wo := testOrder("OS1")
		if _, err := repo.Upsert(wo); err != nil {
			t.Fatalf("upsert: %v", err)
		}

		if err := repo.UpdateStatus("OS1", models.StatusCancelled); err != nil {
			t.Fatalf("update status: %v", err)
		}

		got, err := repo.Get("OS1")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Status != models.StatusCancelled {
			t.Errorf("status = %s", got.Status)
		}
		// Only the status may change.
		if got.SiteText == nil || *got.SiteText != "GERDAU SAPUCAIA" {
			t.Errorf("site text changed: %v", got.SiteText)
		}

		if err := repo.UpdateStatus("OS404", models.StatusCancelled); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("missing folio err = %v", err)
		}
	})

	t.Run("MergeDatesKeepsExisting", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewWorkOrderRepository(db)

		review := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)
		wo := testOrder("OS1")
		wo.ReviewSentAt = &review
		if _, err := repo.Upsert(wo); err != nil {
			t.Fatalf("upsert: %v", err)
		}

		laterReview := review.Add(48 * time.Hour)
		scheduled := time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC)
		if err := repo.MergeDates("OS1", &laterReview, &scheduled); err != nil {
			t.Fatalf("merge dates: %v", err)
		}

		got, err := repo.Get("OS1")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.ReviewSentAt == nil || !got.ReviewSentAt.Equal(review) {
			t.Errorf("review date clobbered: %v", got.ReviewSentAt)
		}
		if got.ScheduledAt == nil || !got.ScheduledAt.Equal(scheduled) {
			t.Errorf("scheduled date not filled: %v", got.ScheduledAt)
		}

		missing, err := repo.FoliosMissingDates()
		if err != nil {
			t.Fatalf("missing dates: %v", err)
		}
		if len(missing) != 0 {
			t.Errorf("missing = %v", missing)
		}
	})

	t.Run("MergeObservationOnlyWhenEmpty", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewWorkOrderRepository(db)
		if _, err := repo.Upsert(testOrder("OS1")); err != nil {
			t.Fatalf("upsert: %v", err)
		}

		missing, err := repo.FoliosMissingObservation()
		if err != nil {
			t.Fatalf("missing observations: %v", err)
		}
		if len(missing) != 1 || missing[0] != "OS1" {
			t.Errorf("missing = %v", missing)
		}

		if err := repo.MergeObservation("OS1", "troca de fonte"); err != nil {
			t.Fatalf("merge: %v", err)
		}
		if err := repo.MergeObservation("OS1", "segunda nota"); err != nil {
			t.Fatalf("second merge: %v", err)
		}

		got, err := repo.Get("OS1")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Observation == nil || *got.Observation != "troca de fonte" {
			t.Errorf("observation = %v", got.Observation)
		}
	})

	t.Run("UpdateLocation", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewWorkOrderRepository(db)
		if _, err := repo.Upsert(testOrder("OS1")); err != nil {
			t.Fatalf("upsert: %v", err)
		}

		if err := repo.UpdateLocation("OS1", "Hospital De Clinicas", "Hospital De Clinicas"); err != nil {
			t.Fatalf("update location: %v", err)
		}
		got, err := repo.Get("OS1")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.LocationGroup != "Hospital De Clinicas" {
			t.Errorf("group = %q", got.LocationGroup)
		}
	})
}

func TestTaskRepository(t *testing.T) {
	seedOrder := func(t *testing.T, db *sql.DB, folio string) {
		t.Helper()
		if _, err := NewWorkOrderRepository(db).Upsert(testOrder(folio)); err != nil {
			t.Fatalf("seed order %s: %v", folio, err)
		}
	}

	testTask := func(id int64, folio string) *models.Task {
		tech := "Augusto Brum"
		plan := "Corretiva"
		duration := 1.5
		return &models.Task{
			RemoteID:        id,
			Folio:           folio,
			TechnicianText:  &tech,
			TaskPlan:        &plan,
			DurationMinutes: &duration,
			TechnicianGroup: "Augusto Brum",
			TaskTypeGroup:   "Corretiva",
		}
	}

	t.Run("UpsertIdempotent", func(t *testing.T) {
		db := setupTestDB(t)
		seedOrder(t, db, "OS1")
		repo := NewTaskRepository(db)

		created, err := repo.Upsert(testTask(9001, "OS1"))
		if err != nil {
			t.Fatalf("upsert: %v", err)
		}
		if !created {
			t.Error("first upsert should create")
		}

		created, err = repo.Upsert(testTask(9001, "OS1"))
		if err != nil {
			t.Fatalf("second upsert: %v", err)
		}
		if created {
			t.Error("second upsert should update")
		}

		tasks, err := repo.ListByFolio("OS1")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(tasks) != 1 {
			t.Fatalf("got %d tasks", len(tasks))
		}
		if tasks[0].TechnicianGroup != "Augusto Brum" {
			t.Errorf("technician group = %q", tasks[0].TechnicianGroup)
		}
	})

	t.Run("UpsertKeepsFailureFields", func(t *testing.T) {
		db := setupTestDB(t)
		seedOrder(t, db, "OS1")
		repo := NewTaskRepository(db)

		task := testTask(9001, "OS1")
		ft := "Falha elétrica"
		task.FailureType = &ft
		if _, err := repo.Upsert(task); err != nil {
			t.Fatalf("upsert: %v", err)
		}

		// A later payload without failure data must not erase it.
		if _, err := repo.Upsert(testTask(9001, "OS1")); err != nil {
			t.Fatalf("second upsert: %v", err)
		}

		tasks, err := repo.ListByFolio("OS1")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if tasks[0].FailureType == nil || *tasks[0].FailureType != "Falha elétrica" {
			t.Errorf("failure type = %v", tasks[0].FailureType)
		}
	})

	t.Run("CascadeDelete", func(t *testing.T) {
		db := setupTestDB(t)
		seedOrder(t, db, "OS1")
		repo := NewTaskRepository(db)
		if _, err := repo.Upsert(testTask(9001, "OS1")); err != nil {
			t.Fatalf("upsert: %v", err)
		}

		if _, err := db.Exec("DELETE FROM work_orders WHERE folio = ?", "OS1"); err != nil {
			t.Fatalf("delete order: %v", err)
		}
		tasks, err := repo.All()
		if err != nil {
			t.Fatalf("all: %v", err)
		}
		if len(tasks) != 0 {
			t.Errorf("tasks survived cascade: %d", len(tasks))
		}
	})

	t.Run("UpdateGroups", func(t *testing.T) {
		db := setupTestDB(t)
		seedOrder(t, db, "OS1")
		repo := NewTaskRepository(db)
		if _, err := repo.Upsert(testTask(9001, "OS1")); err != nil {
			t.Fatalf("upsert: %v", err)
		}

		if err := repo.UpdateGroups(9001, "Outros", "Preventiva"); err != nil {
			t.Fatalf("update groups: %v", err)
		}
		tasks, err := repo.ListByFolio("OS1")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if tasks[0].TechnicianGroup != "Outros" || tasks[0].TaskTypeGroup != "Preventiva" {
			t.Errorf("groups = %q / %q", tasks[0].TechnicianGroup, tasks[0].TaskTypeGroup)
		}

		if err := repo.UpdateGroups(404, "x", "y"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("missing task err = %v", err)
		}
	})

	t.Run("OrphanTaskRejected", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewTaskRepository(db)

		if _, err := repo.Upsert(testTask(9001, "OS1")); err == nil {
			t.Error("task without parent order must fail the foreign key")
		}
	})
}
