package tasks

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gitelweb/ossync/internal/classify"
	"github.com/gitelweb/ossync/internal/models"
	"github.com/gitelweb/ossync/internal/repositories"
	"github.com/gitelweb/ossync/internal/services"
	"github.com/gitelweb/ossync/internal/shared"
)

// fetcher is the slice of [services.Client] the engine needs. Narrowed to
// an interface so strategy tests can script outcomes without a server.
type fetcher interface {
	FetchByFolio(ctx context.Context, folio string) services.FetchOutcome
	FetchPage(ctx context.Context, page, perPage int) ([]services.WorkOrderTaskItem, error)
}

// orderStore and taskStore mirror the repository surfaces the engine uses.
type orderStore interface {
	Upsert(wo *models.WorkOrder) (bool, error)
	Folios() ([]string, error)
	ActiveFolios() ([]string, error)
	FoliosMissingDates() ([]string, error)
	FoliosMissingObservation() ([]string, error)
	UpdateStatus(folio string, status models.Status) error
	MergeDates(folio string, reviewSentAt, scheduledAt *time.Time) error
	MergeObservation(folio, observation string) error
	UpdateLocation(folio, group, detail string) error
	All() ([]*models.WorkOrder, error)
}

type taskStore interface {
	Upsert(task *models.Task) (bool, error)
	ListByFolio(folio string) ([]*models.Task, error)
	All() ([]*models.Task, error)
	UpdateGroups(remoteID int64, technicianGroup, taskTypeGroup string) error
}

// Options contains tuning for the sync engine. Zero values select the
// defaults the upstream integration was sized for.
type Options struct {
	Workers      int     // Concurrent folio fetches (default: 15)
	PageSize     int     // Listing page size (default: 100)
	SafetyMargin int     // Extra folios probed past the known maximum (default: 50)
	PageRate     float64 // Listing pages per second (default: 5)
}

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = 15
	}
	if o.PageSize <= 0 {
		o.PageSize = 100
	}
	if o.SafetyMargin <= 0 {
		o.SafetyMargin = 50
	}
	if o.PageRate <= 0 {
		o.PageRate = 5.0
	}
	return o
}

// SyncSummary aggregates the result of one strategy run.
type SyncSummary struct {
	RunID    string `json:"run_id"`
	Strategy string `json:"strategy"`

	Targets           int `json:"targets"`
	WorkOrdersCreated int `json:"work_orders_created"`
	WorkOrdersUpdated int `json:"work_orders_updated"`
	TasksCreated      int `json:"tasks_created"`
	TasksUpdated      int `json:"tasks_updated"`
	NotFound          int `json:"not_found"`
	Errored           int `json:"errored"`
}

// SyncEngine coordinates fetching, classification and persistence for
// every sync strategy.
type SyncEngine struct {
	client     fetcher
	orders     orderStore
	tasks      taskStore
	classifier *classify.Classifier
	logger     *log.Logger
	opts       Options
}

// NewSyncEngine builds an engine. The classifier must be non-nil; the
// logger defaults to the shared stderr logger.
func NewSyncEngine(
	client fetcher,
	orders *repositories.WorkOrderRepository,
	tasks *repositories.TaskRepository,
	classifier *classify.Classifier,
	logger *log.Logger,
	opts Options,
) *SyncEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &SyncEngine{
		client:     client,
		orders:     orders,
		tasks:      tasks,
		classifier: classifier,
		logger:     logger,
		opts:       opts.withDefaults(),
	}
}

// newSummary stamps a fresh run id onto a strategy summary.
func newSummary(strategy string) *SyncSummary {
	return &SyncSummary{RunID: shared.GenerateRunID(), Strategy: strategy}
}
