package memory

import (
	"context"
	"errors"
	"testing"

	"reminder/internal/sheets"
)

func TestReadRange(t *testing.T) {
	store := New(map[string][][]string{
		"Overview!B2:E": {
			{"Groceries", "120.50", "8.61", "12.05"},
		},
	})
	rows, err := store.ReadRange(context.Background(), "Overview!B2:E")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 1 || rows[0][1] != "120.50" {
		t.Fatalf("rows: %+v", rows)
	}

	// Mutating the returned matrix must not leak back into the store.
	rows[0][1] = "changed"
	again, err := store.ReadRange(context.Background(), "Overview!B2:E")
	if err != nil {
		t.Fatalf("read again: %v", err)
	}
	if again[0][1] != "120.50" {
		t.Fatal("store data was mutated through a returned copy")
	}
}

func TestReadRange_Missing(t *testing.T) {
	store := New(nil)
	_, err := store.ReadRange(context.Background(), "Nope!A1")
	if !errors.Is(err, sheets.ErrFetch) {
		t.Fatalf("want ErrFetch, got %v", err)
	}
}

func TestSet(t *testing.T) {
	store := New(nil)
	store.Set("A!A1", [][]string{{"x"}})
	rows, err := store.ReadRange(context.Background(), "A!A1")
	if err != nil || rows[0][0] != "x" {
		t.Fatalf("rows %v, err %v", rows, err)
	}
}
