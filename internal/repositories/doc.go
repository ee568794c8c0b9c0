// package repositories provides the SQLite persistence layer.
//
// Both repositories upsert by the natural key of their entity (folio for
// work orders, upstream task id for tasks) so that re-running any sync
// strategy is idempotent.
package repositories
