package database

import (
	"errors"
	"testing"
	"time"

	locerr "github.com/ERRORIK404/Scientific_Calculator/pkg/local_errors"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := InitDB(":memory:")
	if err != nil {
		t.Fatalf("init db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestUsers(t *testing.T) {
	db := newTestDB(t)

	if err := db.CreateUser("alice", "hash"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := db.CreateUser("alice", "other"); !errors.Is(err, locerr.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	user, err := db.GetUser("alice")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if user.Login != "alice" || user.PasswordHash != "hash" {
		t.Fatalf("unexpected user %+v", user)
	}

	if _, err := db.GetUser("bob"); !errors.Is(err, locerr.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestExports(t *testing.T) {
	db := newTestDB(t)
	for _, login := range []string{"alice", "bob"} {
		if err := db.CreateUser(login, "hash"); err != nil {
			t.Fatal(err)
		}
	}

	at := time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)
	first, err := db.AddExport("alice", "a.txt", "first", at)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	second, err := db.AddExport("alice", "b.txt", "second", at.Add(time.Minute))
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	list, err := db.GetUserExports("alice")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != second || list[1].ID != first {
		t.Fatalf("unexpected exports %+v", list)
	}
	if list[0].Content != "" {
		t.Fatalf("list must not carry content")
	}

	export, err := db.GetExportByID(first, "alice")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if export.Content != "first" || export.FileName != "a.txt" || !export.CreatedAt.Equal(at) {
		t.Fatalf("unexpected export %+v", export)
	}

	if _, err := db.GetExportByID(first, "bob"); !errors.Is(err, locerr.ErrExportNotFound) {
		t.Fatalf("foreign export must be hidden, got %v", err)
	}
	if empty, _ := db.GetUserExports("bob"); len(empty) != 0 {
		t.Fatalf("expected no exports for bob")
	}
}

func TestExportRequiresUser(t *testing.T) {
	db := newTestDB(t)
	if _, err := db.AddExport("ghost", "a.txt", "x", time.Now()); err == nil {
		t.Fatalf("expected foreign key violation")
	}
}
