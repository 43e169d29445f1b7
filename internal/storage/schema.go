// ABOUTME: Relational layout of the four snapshot tables.
// ABOUTME: Column names and affinities match what the ingestion jobs write.
package storage

// SnapshotSchema creates the snapshot tables. Lifeops never writes
// snapshots itself; the DDL documents the expected columns and seeds
// fixtures. It is valid for both SQLite and Postgres.
const SnapshotSchema = `
CREATE TABLE IF NOT EXISTS ` + WeightTable + ` (
	measured_at TEXT,
	weight_kg REAL,
	grpid INTEGER,
	attrib INTEGER,
	category INTEGER,
	ingested_at TEXT
);
CREATE TABLE IF NOT EXISTS ` + StepsTable + ` (
	date TEXT,
	steps INTEGER,
	ingested_at TEXT
);
CREATE TABLE IF NOT EXISTS ` + SleepTable + ` (
	date TEXT,
	minutes_asleep INTEGER,
	minutes_in_bed INTEGER,
	efficiency INTEGER,
	minutes_deep INTEGER,
	minutes_light INTEGER,
	minutes_rem INTEGER,
	minutes_wake INTEGER,
	ingested_at TEXT
);
CREATE TABLE IF NOT EXISTS ` + HeartTable + ` (
	date TEXT,
	resting_hr INTEGER,
	ingested_at TEXT
);
`
