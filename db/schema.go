// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The DDL sticks to types both postgres and sqlite understand.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Phone pool: one row per dialable line. question_token and side are
-- both NULL (free) or both set (reserved). position records insertion
-- order so allocation can pick the oldest free lines deterministically.
CREATE TABLE IF NOT EXISTS phone_pool (
    number TEXT PRIMARY KEY,
    question_token TEXT,
    side TEXT CHECK (side IN ('yes', 'no') OR side IS NULL),
    position BIGINT NOT NULL,
    CHECK ((question_token IS NULL) = (side IS NULL))
);

CREATE INDEX IF NOT EXISTS idx_phone_pool_token ON phone_pool(question_token);
CREATE INDEX IF NOT EXISTS idx_phone_pool_position ON phone_pool(position);

-- Questions
CREATE TABLE IF NOT EXISTS question (
    token TEXT PRIMARY KEY,
    prompt TEXT NOT NULL,
    yes_phone TEXT NOT NULL,
    no_phone TEXT NOT NULL,
    yes_count BIGINT NOT NULL DEFAULT 0 CHECK (yes_count >= 0),
    no_count BIGINT NOT NULL DEFAULT 0 CHECK (no_count >= 0),
    artifact_url TEXT NOT NULL,
    position BIGINT NOT NULL,
    CHECK (yes_phone <> no_phone)
);

CREATE INDEX IF NOT EXISTS idx_question_yes_phone ON question(yes_phone);
CREATE INDEX IF NOT EXISTS idx_question_no_phone ON question(no_phone);
`
