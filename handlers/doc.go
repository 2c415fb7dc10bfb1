// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP request handlers.

# Handler Groups

  - PhoneHandler: provision and list phone lines
  - QuestionHandler: create/list questions, cast votes, trigger synthesis
  - AdminHandler: destructive bulk reset

Handlers are thin: they validate input, call into the pool, ledger, or
coordinator, and map package sentinel errors to HTTP statuses. A vote on
an unresolved number returns 204 rather than an error - the IVR gateway
prevents that case in practice, so it is handled defensively, not
reported to callers.
*/
package handlers
