// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger holds the question records and their vote tallies.

Each question has a unique token (UUID), an immutable prompt and phone
pair, and two monotonically growing counters. IncrementVote is the single
most safety-critical operation in the service: it is issued as one UPDATE
with RETURNING so the database performs the fetch-and-add atomically and
per-token increments are linearizable. Increments on different tokens
share no lock and proceed fully concurrently.

Create and Clear take a transaction handle because they participate in
the coordinator's atomic reserve-and-create and reset flows.
*/
package ledger
