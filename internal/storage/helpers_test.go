// ABOUTME: Shared fixtures for storage tests.
// ABOUTME: Writes Parquet snapshots and seeds SQLite snapshot databases.
package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/writer"
)

// writeParquet writes rows to dir/<table>.parquet.
func writeParquet[T any](t *testing.T, dir, table string, rows []T) {
	t.Helper()

	fw, err := local.NewLocalFileWriter(filepath.Join(dir, table+".parquet"))
	require.NoError(t, err)

	pw, err := writer.NewParquetWriter(fw, new(T), 1)
	require.NoError(t, err)

	for _, r := range rows {
		require.NoError(t, pw.Write(r))
	}
	require.NoError(t, pw.WriteStop())
	require.NoError(t, fw.Close())
}

// seedSQLite creates a snapshot database at dir/lifeops.db and runs stmts.
func seedSQLite(t *testing.T, dir string, stmts ...string) string {
	t.Helper()

	dbPath := filepath.Join(dir, "lifeops.db")
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(SnapshotSchema)
	require.NoError(t, err)
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err, stmt)
	}
	return dbPath
}

func micros(s string) *int64 {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	v := t.UnixMicro()
	return &v
}

func days(s string) *int32 {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	v := int32(t.Unix() / 86400)
	return &v
}

func i32(v int32) *int32 { return &v }

func i64(v int64) *int64 { return &v }

func f64(v float64) *float64 { return &v }

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}
