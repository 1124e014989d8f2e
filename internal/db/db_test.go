package db

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestInitRejectsUnsupportedDriver(t *testing.T) {
	_, err := Init("mysql", "user:pass@/app")
	if !errors.Is(err, ErrUnsupportedDriver) {
		t.Errorf("error = %v, want ErrUnsupportedDriver", err)
	}
}

func TestInitCreatesSqliteDataDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "app.db")

	database, err := Init("sqlite", path)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer Close(database)

	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Errorf("data directory missing: %v", err)
	}
	if err := database.Ping(); err != nil {
		t.Errorf("ping: %v", err)
	}
}
