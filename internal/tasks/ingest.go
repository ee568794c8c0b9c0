package tasks

import (
	"github.com/gitelweb/ossync/internal/models"
	"github.com/gitelweb/ossync/internal/services"
)

// ingestItems folds one batch of payload items into the store: upsert the
// work order by folio, upsert the task by upstream id, then re-derive the
// location escalation per touched folio. Items without both natural keys
// are skipped. seenFolios dedupes the updated-orders counter across
// batches, since a multi-task order repeats its folio once per item.
func (e *SyncEngine) ingestItems(items []services.WorkOrderTaskItem, summary *SyncSummary, seenFolios map[string]bool) {
	base := make(map[string][2]string)

	for idx := range items {
		item := &items[idx]
		if !item.Valid() {
			continue
		}

		wo := e.buildWorkOrder(item)
		created, err := e.orders.Upsert(wo)
		if err != nil {
			e.logger.Error("failed to store work order", "folio", item.Folio, "err", err)
			summary.Errored++
			continue
		}
		if created {
			summary.WorkOrdersCreated++
			seenFolios[item.Folio] = true
		} else if !seenFolios[item.Folio] {
			summary.WorkOrdersUpdated++
			seenFolios[item.Folio] = true
		}
		base[item.Folio] = [2]string{wo.LocationGroup, wo.LocationDetail}

		task := e.buildTask(item)
		created, err = e.tasks.Upsert(task)
		if err != nil {
			e.logger.Error("failed to store task", "folio", item.Folio, "task", item.TaskID, "err", err)
			summary.Errored++
			continue
		}
		if created {
			summary.TasksCreated++
		} else {
			summary.TasksUpdated++
		}
	}

	// Every order upsert resets the location to what its own site text
	// says, so escalation has to consider all stored siblings of the
	// folio, not just the items of this batch.
	for folio, loc := range base {
		e.escalateFromTasks(folio, loc[0], loc[1], summary)
	}
}

// escalateFromTasks folds the asset text of every stored task of the folio
// into the order's location columns.
func (e *SyncEngine) escalateFromTasks(folio, group, detail string, summary *SyncSummary) {
	children, err := e.tasks.ListByFolio(folio)
	if err != nil {
		e.logger.Error("failed to list tasks for escalation", "folio", folio, "err", err)
		summary.Errored++
		return
	}

	newGroup, newDetail := group, detail
	for _, task := range children {
		newGroup, newDetail = e.classifier.EscalateFromAsset(newGroup, newDetail, task.AssetText)
	}
	if newGroup == group && newDetail == detail {
		return
	}

	if err := e.orders.UpdateLocation(folio, newGroup, newDetail); err != nil {
		e.logger.Error("failed to escalate location", "folio", folio, "err", err)
		summary.Errored++
	}
}

func (e *SyncEngine) buildWorkOrder(item *services.WorkOrderTaskItem) *models.WorkOrder {
	wo := &models.WorkOrder{
		Folio:       item.Folio,
		Status:      models.StatusFromRemote(item.StatusID),
		Criticality: models.CriticalityFromRemote(item.PriorityID),
		CreatedBy:   item.CreatedBy,
		SiteText:    item.SiteText,
		Observation: item.TaskNote,
		ProgressPct: item.ProgressPct,
		TicketID:    item.RequestID,
		HasTicket:   item.RequestID != nil,

		CreatedAt:    services.ParseTimestamp(item.CreationDate),
		StartedAt:    services.ParseTimestamp(item.InitialDate),
		CompletedAt:  services.ParseTimestamp(item.FinalDate),
		ReviewSentAt: services.ParseTimestamp(item.ReviewDate),
		ScheduledAt:  services.ParseTimestamp(item.MaintenanceDate),
	}

	site := ""
	if item.SiteText != nil {
		site = *item.SiteText
	}
	wo.LocationGroup = e.classifier.LocationGroup(site)
	wo.LocationDetail = e.classifier.LocationDetail(wo.LocationGroup, site)
	wo.SyncCalendarParts()

	return wo
}

func (e *SyncEngine) buildTask(item *services.WorkOrderTaskItem) *models.Task {
	technician, taskType := "", ""
	if item.TechnicianText != nil {
		technician = *item.TechnicianText
	}
	if item.TaskTypeText != nil {
		taskType = *item.TaskTypeText
	}

	return &models.Task{
		RemoteID:        item.TaskID,
		Folio:           item.Folio,
		AssetText:       item.AssetText,
		TechnicianText:  item.TechnicianText,
		TaskPlan:        item.TaskPlan,
		TaskTypeText:    item.TaskTypeText,
		DurationMinutes: item.DurationMinutes(),
		TaskStatus:      item.TaskStatus,
		FailureType:     item.FailureType,
		FailureCause:    item.FailureCause,
		DetectionMethod: item.DetectionMethod,
		TechnicianGroup: e.classifier.TechnicianGroup(technician),
		TaskTypeGroup:   e.classifier.TaskTypeGroup(taskType),
	}
}
