package staff

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	schema := `
		CREATE TABLE staff (
			staff_id    TEXT PRIMARY KEY,
			pin_hash    TEXT NOT NULL UNIQUE,
			first_name  TEXT NOT NULL,
			last_name   TEXT NOT NULL,
			hourly_wage REAL NOT NULL DEFAULT 0,
			is_admin    INTEGER NOT NULL DEFAULT 0
		);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		t.Fatalf("failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func testStaff(id, pin string, admin bool) *Staff {
	return &Staff{
		ID:         id,
		PINHash:    HashPIN(pin),
		FirstName:  "Test",
		LastName:   "Member",
		HourlyWage: 15.0,
		IsAdmin:    admin,
	}
}

func TestCreateAndGet(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	s := testStaff("staff100001", "1234", true)
	if err := repo.Create(ctx, s); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(ctx, "staff100001")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.FirstName != "Test" || !got.IsAdmin {
		t.Errorf("unexpected record: %+v", got)
	}
}

func TestGetByPINHash(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, testStaff("staff100001", "1234", true)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByPINHash(ctx, HashPIN("1234"))
	if err != nil {
		t.Fatalf("GetByPINHash: %v", err)
	}
	if got.ID != "staff100001" {
		t.Errorf("resolved wrong staff member: %s", got.ID)
	}

	if _, err := repo.GetByPINHash(ctx, HashPIN("9999")); !errors.Is(err, ErrStaffNotFound) {
		t.Errorf("unknown hash: got %v, want ErrStaffNotFound", err)
	}
}

func TestCreateDuplicateID(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, testStaff("staff100001", "1234", false)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	err := repo.Create(ctx, testStaff("staff100001", "5678", false))
	if !errors.Is(err, ErrIDExists) {
		t.Errorf("duplicate id: got %v, want ErrIDExists", err)
	}
}

func TestCreateDuplicatePIN(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, testStaff("staff100001", "1234", false)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	err := repo.Create(ctx, testStaff("staff100002", "1234", false))
	if !errors.Is(err, ErrPINExists) {
		t.Errorf("duplicate pin: got %v, want ErrPINExists", err)
	}
}

func TestUpdate(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	s := testStaff("staff100001", "1234", false)
	if err := repo.Create(ctx, s); err != nil {
		t.Fatalf("Create: %v", err)
	}

	s.FirstName = "Updated"
	s.IsAdmin = true
	if err := repo.Update(ctx, s); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repo.GetByID(ctx, s.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.FirstName != "Updated" || !got.IsAdmin {
		t.Errorf("update not applied: %+v", got)
	}
}

func TestUpdateMissing(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))

	err := repo.Update(context.Background(), testStaff("staff999999", "1234", false))
	if !errors.Is(err, ErrStaffNotFound) {
		t.Errorf("got %v, want ErrStaffNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, testStaff("staff100001", "1234", false)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.Delete(ctx, "staff100001"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, "staff100001"); !errors.Is(err, ErrStaffNotFound) {
		t.Errorf("second delete: got %v, want ErrStaffNotFound", err)
	}
}

func TestListAndCount(t *testing.T) {
	repo := NewSQLiteRepository(setupTestDB(t))
	ctx := context.Background()

	a := testStaff("staff100001", "1111", false)
	a.LastName = "Zimmer"
	b := testStaff("staff100002", "2222", false)
	b.LastName = "Adams"
	for _, s := range []*Staff{a, b} {
		if err := repo.Create(ctx, s); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 staff, got %d", len(list))
	}
	if list[0].LastName != "Adams" {
		t.Errorf("list not ordered by last name: %+v", list)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Errorf("Count = %d, want 2", count)
	}
}
