// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The DDL is kept portable between postgres and sqlite (no SERIAL, no NOW()),
since the service runs against either driver.

# Tables

The schema includes:

  - phone_pool: Dialable lines and their question/side assignment
  - question: Binary questions with yes/no tallies

# Relationships

	question 1──2 phone_pool (yes_phone, no_phone)

Assignment is enforced both ways: a reserved line carries the question
token and side, and the question records its two line numbers. A CHECK
constraint keeps token and side both-or-neither on each line.
*/
package db
