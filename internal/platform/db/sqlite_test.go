package db

import (
	"context"
	"path/filepath"
	"testing"
)

func TestOpenSQLiteRequiresPath(t *testing.T) {
	if _, err := OpenSQLite(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestOpenSQLiteAndClose(t *testing.T) {
	conn, err := OpenSQLite(filepath.Join(t.TempDir(), "doodle.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.DB.Exec("SELECT 1").Error; err != nil {
		t.Fatalf("exec: %v", err)
	}
	if err := conn.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestCloseNilIsNoop(t *testing.T) {
	var conn *Postgres
	if err := conn.Close(); err != nil {
		t.Fatalf("expected nil close on nil handle, got %v", err)
	}
}

func TestConnectRequiresDSN(t *testing.T) {
	if _, err := Connect(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty dsn")
	}
}
