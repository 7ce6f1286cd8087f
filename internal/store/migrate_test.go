package store

import (
	"io"
	"strings"
	"testing"
)

func TestMigrationSourceVersions(t *testing.T) {
	src, err := migrationSource()
	if err != nil {
		t.Fatalf("migrationSource: %v", err)
	}
	defer src.Close()

	first, err := src.First()
	if err != nil {
		t.Fatalf("First: %v", err)
	}
	if first != 1 {
		t.Fatalf("expected first version 1, got %d", first)
	}

	next, err := src.Next(first)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if next != 2 {
		t.Fatalf("expected second version 2, got %d", next)
	}

	r, _, err := src.ReadUp(next)
	if err != nil {
		t.Fatalf("ReadUp: %v", err)
	}
	defer r.Close()
	body, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	if !strings.Contains(string(body), "thumbnail") {
		t.Fatalf("expected thumbnail migration, got %q", body)
	}

	for _, version := range []uint{first, next} {
		down, _, err := src.ReadDown(version)
		if err != nil {
			t.Fatalf("ReadDown(%d): %v", version, err)
		}
		down.Close()
	}
}

func TestParseDirection(t *testing.T) {
	for _, raw := range []string{"up", "down"} {
		if _, err := ParseDirection(raw); err != nil {
			t.Fatalf("ParseDirection(%q): %v", raw, err)
		}
	}
	if _, err := ParseDirection("sideways"); err == nil {
		t.Fatal("expected error for unknown direction")
	}
}
