// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package voting coordinates votes, question creation, and resets.

# Vote Path

CastVote resolves the dialed number through the pool, commits the tally
increment through the ledger (a single atomic fetch-and-add), and
regenerates the question document from the values the increment
returned - never from a stale read. Unresolved numbers are dropped
silently.

# Creation Path

CreateQuestion reserves a phone pair and inserts the ledger row inside
one transaction, guarded by the coordinator's reservation lock. Either
both happen or neither: there is no window where lines are bound to a
token that has no question. Document writes follow the commit and are
retryable via RenderAll.

# Consistency Priorities

Tally correctness beats document freshness. A failed document write is
returned to the caller but never rolls back committed state.
*/
package voting
