package tasks

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/time/rate"

	"github.com/gitelweb/ossync/internal/models"
	"github.com/gitelweb/ossync/internal/services"
	"github.com/gitelweb/ossync/internal/shared"
)

// FullScan probes every folio from OS1 up to the highest stored number
// plus the safety margin (at least OS100 when the store is empty) and
// rebuilds the mirror from whatever the API returns.
func (e *SyncEngine) FullScan(ctx context.Context, prog chan<- ProgressUpdate) (*SyncSummary, error) {
	summary := newSummary("full_scan")
	logger := shared.RunLogger(e.logger, summary.RunID)

	folios, err := e.orders.Folios()
	if err != nil {
		return summary, err
	}

	maxNumber := 0
	for _, folio := range folios {
		if n, ok := models.FolioNumber(folio); ok && n > maxNumber {
			maxNumber = n
		}
	}

	limit := maxNumber + e.opts.SafetyMargin
	if limit < 100 {
		limit = 100
	}

	targets := make([]string, 0, limit)
	for n := 1; n <= limit; n++ {
		targets = append(targets, models.FolioForNumber(n))
	}

	logger.Info("starting full scan", "known_max", maxNumber, "limit", limit)
	return e.runFolioSync(ctx, prog, ProbeSequence, targets, summary)
}

// BackfillGaps fetches only the folios missing from the locally stored
// sequence OS1..OSmax. Folios that do not parse are ignored when computing
// the gap set.
func (e *SyncEngine) BackfillGaps(ctx context.Context, prog chan<- ProgressUpdate) (*SyncSummary, error) {
	summary := newSummary("backfill_gaps")
	logger := shared.RunLogger(e.logger, summary.RunID)

	folios, err := e.orders.Folios()
	if err != nil {
		return summary, err
	}

	gaps := missingFolios(folios)
	if len(gaps) == 0 {
		logger.Info("sequence is complete, nothing to backfill")
		return summary, nil
	}

	logger.Info("found sequence gaps", "count", len(gaps))
	return e.runFolioSync(ctx, prog, FillGaps, gaps, summary)
}

// RefreshActive refetches every order still in a non-terminal status. An
// order the API no longer knows is marked Cancelled locally; nothing else
// about it is touched.
func (e *SyncEngine) RefreshActive(ctx context.Context, prog chan<- ProgressUpdate) (*SyncSummary, error) {
	summary := newSummary("refresh_active")
	logger := shared.RunLogger(e.logger, summary.RunID)

	targets, err := e.orders.ActiveFolios()
	if err != nil {
		return summary, err
	}
	if len(targets) == 0 {
		logger.Info("no active orders to refresh")
		return summary, nil
	}

	summary.Targets = len(targets)
	seen := make(map[string]bool)
	var fatal error

	e.fetchAll(ctx, prog, RefreshOrders, targets, func(outcome services.FetchOutcome) {
		switch outcome.Kind {
		case services.OutcomeFound:
			e.ingestItems(outcome.Items, summary, seen)
		case services.OutcomeNotFound:
			if err := e.orders.UpdateStatus(outcome.Folio, models.StatusCancelled); err != nil {
				logger.Error("failed to cancel vanished order", "folio", outcome.Folio, "err", err)
				summary.Errored++
				return
			}
			summary.NotFound++
		case services.OutcomeTransient:
			logger.Warn("fetch failed", "folio", outcome.Folio, "err", outcome.Err)
			summary.Errored++
			if errors.Is(outcome.Err, shared.ErrAuthFailed) {
				fatal = outcome.Err
			}
		}
	})

	return summary, fatal
}

// PaginatedSync drains the listing endpoint page by page until a short or
// empty page. Pages are rate limited; a failed page aborts the run since
// skipping one would silently drop records.
func (e *SyncEngine) PaginatedSync(ctx context.Context, prog chan<- ProgressUpdate) (*SyncSummary, error) {
	summary := newSummary("paginated_sync")
	logger := shared.RunLogger(e.logger, summary.RunID)
	limiter := rate.NewLimiter(rate.Limit(e.opts.PageRate), 1)
	seen := make(map[string]bool)

	for page := 1; ; page++ {
		if err := limiter.Wait(ctx); err != nil {
			return summary, err
		}

		items, err := e.client.FetchPage(ctx, page, e.opts.PageSize)
		if err != nil {
			summary.Errored++
			return summary, fmt.Errorf("page %d: %w", page, err)
		}
		if len(items) == 0 {
			logger.Info("end of listing", "pages", page-1)
			break
		}

		summary.Targets += len(items)
		e.ingestItems(items, summary, seen)
		e.sendProgress(prog, pageUpdate(page, len(items)))

		if len(items) < e.opts.PageSize {
			logger.Info("short page, listing drained", "page", page)
			break
		}
	}

	return summary, nil
}

// BackfillDates refetches orders missing a review or scheduled timestamp
// and merges in the first value found across the order's payload items.
// Existing timestamps are never overwritten.
func (e *SyncEngine) BackfillDates(ctx context.Context, prog chan<- ProgressUpdate) (*SyncSummary, error) {
	summary := newSummary("backfill_dates")
	logger := shared.RunLogger(e.logger, summary.RunID)

	targets, err := e.orders.FoliosMissingDates()
	if err != nil {
		return summary, err
	}
	if len(targets) == 0 {
		logger.Info("no orders with missing dates")
		return summary, nil
	}

	summary.Targets = len(targets)
	var fatal error

	e.fetchAll(ctx, prog, FillDates, targets, func(outcome services.FetchOutcome) {
		switch outcome.Kind {
		case services.OutcomeFound:
			var review, scheduled *time.Time
			for idx := range outcome.Items {
				item := &outcome.Items[idx]
				if review == nil {
					review = services.ParseTimestamp(item.ReviewDate)
				}
				if scheduled == nil {
					scheduled = services.ParseTimestamp(item.MaintenanceDate)
				}
				if review != nil && scheduled != nil {
					break
				}
			}
			if review == nil && scheduled == nil {
				return
			}
			if err := e.orders.MergeDates(outcome.Folio, review, scheduled); err != nil {
				logger.Error("failed to merge dates", "folio", outcome.Folio, "err", err)
				summary.Errored++
				return
			}
			summary.WorkOrdersUpdated++
		case services.OutcomeNotFound:
			summary.NotFound++
		case services.OutcomeTransient:
			logger.Warn("fetch failed", "folio", outcome.Folio, "err", outcome.Err)
			summary.Errored++
			if errors.Is(outcome.Err, shared.ErrAuthFailed) {
				fatal = outcome.Err
			}
		}
	})

	return summary, fatal
}

// BackfillObservations refetches orders with no stored observation and
// fills it from the first non-empty task note in the payload.
func (e *SyncEngine) BackfillObservations(ctx context.Context, prog chan<- ProgressUpdate) (*SyncSummary, error) {
	summary := newSummary("backfill_observations")
	logger := shared.RunLogger(e.logger, summary.RunID)

	targets, err := e.orders.FoliosMissingObservation()
	if err != nil {
		return summary, err
	}
	if len(targets) == 0 {
		logger.Info("no orders with missing observations")
		return summary, nil
	}

	summary.Targets = len(targets)
	var fatal error

	e.fetchAll(ctx, prog, FillNotes, targets, func(outcome services.FetchOutcome) {
		switch outcome.Kind {
		case services.OutcomeFound:
			for idx := range outcome.Items {
				note := outcome.Items[idx].TaskNote
				if note == nil || *note == "" {
					continue
				}
				if err := e.orders.MergeObservation(outcome.Folio, *note); err != nil {
					logger.Error("failed to merge observation", "folio", outcome.Folio, "err", err)
					summary.Errored++
					return
				}
				summary.WorkOrdersUpdated++
				return
			}
		case services.OutcomeNotFound:
			summary.NotFound++
		case services.OutcomeTransient:
			logger.Warn("fetch failed", "folio", outcome.Folio, "err", outcome.Err)
			summary.Errored++
			if errors.Is(outcome.Err, shared.ErrAuthFailed) {
				fatal = outcome.Err
			}
		}
	})

	return summary, fatal
}

// Reclassify re-runs classification and location escalation over every
// stored row using the current dictionaries. Offline: no network traffic.
func (e *SyncEngine) Reclassify(ctx context.Context, prog chan<- ProgressUpdate) (*SyncSummary, error) {
	summary := newSummary("reclassify")
	logger := shared.RunLogger(e.logger, summary.RunID)

	orders, err := e.orders.All()
	if err != nil {
		return summary, err
	}

	locations := make(map[string][2]string, len(orders))
	for _, wo := range orders {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}

		site := ""
		if wo.SiteText != nil {
			site = *wo.SiteText
		}
		group := e.classifier.LocationGroup(site)
		detail := e.classifier.LocationDetail(group, site)
		locations[wo.Folio] = [2]string{group, detail}

		if group != wo.LocationGroup || detail != wo.LocationDetail {
			if err := e.orders.UpdateLocation(wo.Folio, group, detail); err != nil {
				logger.Error("failed to update location", "folio", wo.Folio, "err", err)
				summary.Errored++
				continue
			}
			summary.WorkOrdersUpdated++
		}
	}

	tasks, err := e.tasks.All()
	if err != nil {
		return summary, err
	}
	summary.Targets = len(tasks)

	for i, task := range tasks {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}

		technician, taskType := "", ""
		if task.TechnicianText != nil {
			technician = *task.TechnicianText
		}
		if task.TaskTypeText != nil {
			taskType = *task.TaskTypeText
		}

		techGroup := e.classifier.TechnicianGroup(technician)
		typeGroup := e.classifier.TaskTypeGroup(taskType)
		if techGroup != task.TechnicianGroup || typeGroup != task.TaskTypeGroup {
			if err := e.tasks.UpdateGroups(task.RemoteID, techGroup, typeGroup); err != nil {
				logger.Error("failed to update groups", "task", task.RemoteID, "err", err)
				summary.Errored++
				continue
			}
			summary.TasksUpdated++
		}

		if loc, ok := locations[task.Folio]; ok {
			group, detail := e.classifier.EscalateFromAsset(loc[0], loc[1], task.AssetText)
			if group != loc[0] || detail != loc[1] {
				if err := e.orders.UpdateLocation(task.Folio, group, detail); err != nil {
					logger.Error("failed to escalate location", "folio", task.Folio, "err", err)
					summary.Errored++
					continue
				}
				locations[task.Folio] = [2]string{group, detail}
				summary.WorkOrdersUpdated++
			}
		}

		e.sendProgress(prog, reclassifyUpdate(i+1, len(tasks)))
	}

	return summary, nil
}

// runFolioSync fetches the given folios through the worker pool and
// ingests every found order. Shared by the scan-shaped strategies.
func (e *SyncEngine) runFolioSync(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	phase Phase,
	targets []string,
	summary *SyncSummary,
) (*SyncSummary, error) {
	summary.Targets = len(targets)
	seen := make(map[string]bool)
	logger := shared.RunLogger(e.logger, summary.RunID)
	var fatal error

	e.fetchAll(ctx, prog, phase, targets, func(outcome services.FetchOutcome) {
		switch outcome.Kind {
		case services.OutcomeFound:
			e.ingestItems(outcome.Items, summary, seen)
		case services.OutcomeNotFound:
			summary.NotFound++
		case services.OutcomeTransient:
			logger.Warn("fetch failed", "folio", outcome.Folio, "err", outcome.Err)
			summary.Errored++
			if errors.Is(outcome.Err, shared.ErrAuthFailed) {
				fatal = outcome.Err
			}
		}
	})

	if fatal != nil {
		return summary, fatal
	}
	return summary, ctx.Err()
}

// missingFolios computes the gap set of a stored folio sequence: every
// number in 1..max without a row, as folios, ascending. Unparseable
// folios are skipped entirely.
func missingFolios(folios []string) []string {
	existing := make(map[int]bool, len(folios))
	maxNumber := 0
	for _, folio := range folios {
		n, ok := models.FolioNumber(folio)
		if !ok {
			continue
		}
		existing[n] = true
		if n > maxNumber {
			maxNumber = n
		}
	}

	var missing []int
	for n := 1; n <= maxNumber; n++ {
		if !existing[n] {
			missing = append(missing, n)
		}
	}
	sort.Ints(missing)

	gaps := make([]string, 0, len(missing))
	for _, n := range missing {
		gaps = append(gaps, models.FolioForNumber(n))
	}
	return gaps
}
