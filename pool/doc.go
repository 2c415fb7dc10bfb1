// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package pool manages the phone pool and pair allocation.

Every dialable line is a phone_pool row. A free line has no question
token; a reserved line carries the token and a side ("yes" or "no").
Lines are never unbound individually - only the bulk reset clears
assignments.

# Allocation

ReservePair picks the two oldest free lines (stable insertion order) and
binds them to a question token, the older line as the yes side. It runs
inside the caller's transaction; the voting coordinator serializes
reservations so two concurrent creations can never grab overlapping
lines. Each assignment UPDATE re-checks that the line is still free as a
backstop.

# Errors

  - ErrDuplicatePhone: number already provisioned
  - ErrPhoneNotFound: number unknown, or known but free (Resolve only)
  - ErrNotEnoughPhones: fewer than two free lines at reservation time
*/
package pool
