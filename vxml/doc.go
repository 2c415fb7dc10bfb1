// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package vxml renders and stores the VoiceXML documents the IVR gateway
plays to callers.

# Documents

  - root.xml: home menu listing every open question
  - <token>.xml: per-question prompt with current tallies
  - phone-<number>.xml: greeting for a provisioned line

Documents are deterministic functions of ledger state and are always
regenerated whole - never patched. The DirStore writes through a temp
file and rename so a reader fetches either the old document or the new
one, never a partial write.

# Failure Model

A failed write surfaces as ErrWriteFailed. The vote or creation that
triggered the render is already committed; regeneration from current
ledger state is the retry path.
*/
package vxml
