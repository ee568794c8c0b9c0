// package classify maps noisy free-text fields from upstream work orders
// (site names, technician names, task plans) onto small sets of canonical
// group names used for reporting.
//
// The engine is pure and deterministic: all dictionaries are normalized once
// when a [Classifier] is built and never mutated afterwards. Matching is
// layered — exact normalized lookup, then substring containment, then a
// fuzzy nearest-match fallback with a similarity floor.
package classify
