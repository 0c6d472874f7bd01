// Package task implements the task engine: the canonical task collection,
// its mutation operations, and the derived views rendered by consumers.
//
// # Write path
//
// Every mutation follows the same two-phase shape: the persistence write is
// issued first, and only on success does the in-memory collection change. A
// reader that observes the updated collection can therefore assume the
// corresponding write was issued (not necessarily durably committed).
//
// # Derived views
//
//   - Search filters by substring, case-insensitively. Queries starting
//     with '#' match against tags only.
//
//   - ActiveTasks and CompletedTasks partition the search-filtered set by
//     the completion flag; the two filters compose.
//
//   - GroupByTimeCategory, GroupByTag and GroupByPriority bucket the
//     active, filtered tasks. All three recompute from the collection on
//     every call; nothing is cached, so views can never drift from the
//     canonical state after concurrent edits.
//
// # Record repair
//
// Records written by older versions may lack priority, completion flags or
// the per-subtask completion list. Bulk loads repair such records in place
// with the documented defaults instead of rejecting them.
package task
