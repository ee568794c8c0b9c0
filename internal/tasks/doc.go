// Package tasks orchestrates synchronization between the upstream
// work-management API and the local store.
//
// # Strategies
//
// The [SyncEngine] exposes one method per strategy, all returning a
// [SyncSummary]:
//
//  1. [SyncEngine.FullScan] : probe every folio from OS1 up to the highest
//     known number plus a safety margin, rebuilding the whole mirror.
//  2. [SyncEngine.PaginatedSync] : drain the listing endpoint page by page
//     until a short or empty page, rate limited.
//  3. [SyncEngine.RefreshActive] : refetch orders still in a non-terminal
//     status; a 404 marks the order Cancelled locally.
//  4. [SyncEngine.BackfillGaps] : fetch only the folios missing from the
//     locally stored sequence.
//  5. [SyncEngine.BackfillDates] : fill missing review/scheduled
//     timestamps without touching anything else.
//  6. [SyncEngine.BackfillObservations] : fill empty observations from the
//     first non-empty task note.
//  7. [SyncEngine.Reclassify] : offline re-run of classification and
//     location escalation over every stored row. No network traffic.
//
// # Concurrency
//
// Per-folio strategies fan out over a bounded worker pool fed through
// channels; results are ingested sequentially so SQLite sees one writer.
// A failed folio is recorded in the summary and never aborts the run; only
// a credential failure is fatal.
//
// # Progress Reporting
//
// All operations use non-blocking channel sends for progress updates via
// [ProgressUpdate], so a slow or absent consumer never stalls a sync.
package tasks
