package staff

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Repository defines staff persistence and credential lookup.
type Repository interface {
	Create(ctx context.Context, s *Staff) error
	GetByID(ctx context.Context, id string) (*Staff, error)
	GetByPINHash(ctx context.Context, pinHash string) (*Staff, error)
	List(ctx context.Context) ([]Staff, error)
	Update(ctx context.Context, s *Staff) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a SQLite-backed staff repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const staffColumns = "staff_id, pin_hash, first_name, last_name, hourly_wage, is_admin"

// Create inserts a new staff member. The caller must have set the ID
// (via the identifier allocator) and the PIN hash.
func (r *SQLiteRepository) Create(ctx context.Context, s *Staff) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO staff (staff_id, pin_hash, first_name, last_name, hourly_wage, is_admin)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.PINHash, s.FirstName, s.LastName, s.HourlyWage, boolToInt(s.IsAdmin),
	)
	if err != nil {
		if constraintErr := mapUniqueViolation(err); constraintErr != nil {
			return constraintErr
		}
		return fmt.Errorf("creating staff member: %w", err)
	}
	return nil
}

// GetByID retrieves a staff member by identifier.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*Staff, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+staffColumns+" FROM staff WHERE staff_id = ?", id)
	return scanStaff(row)
}

// GetByPINHash resolves a credential by its PIN hash. This is the
// credential store lookup used by the admin gate; at most one record can
// match (pin_hash is unique).
func (r *SQLiteRepository) GetByPINHash(ctx context.Context, pinHash string) (*Staff, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+staffColumns+" FROM staff WHERE pin_hash = ?", pinHash)
	return scanStaff(row)
}

// List returns all staff members ordered by last name, then first name.
func (r *SQLiteRepository) List(ctx context.Context) ([]Staff, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+staffColumns+" FROM staff ORDER BY last_name, first_name")
	if err != nil {
		return nil, fmt.Errorf("listing staff: %w", err)
	}
	defer rows.Close()

	staff := []Staff{}
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		staff = append(staff, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating staff: %w", err)
	}
	return staff, nil
}

// Update modifies a staff member's fields, including the PIN hash.
func (r *SQLiteRepository) Update(ctx context.Context, s *Staff) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE staff SET pin_hash = ?, first_name = ?, last_name = ?, hourly_wage = ?, is_admin = ?
		 WHERE staff_id = ?`,
		s.PINHash, s.FirstName, s.LastName, s.HourlyWage, boolToInt(s.IsAdmin), s.ID,
	)
	if err != nil {
		if constraintErr := mapUniqueViolation(err); constraintErr != nil {
			return constraintErr
		}
		return fmt.Errorf("updating staff member: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrStaffNotFound
	}
	return nil
}

// Delete removes a staff member by identifier.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM staff WHERE staff_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting staff member: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrStaffNotFound
	}
	return nil
}

// Count returns the total number of staff records.
func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM staff").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting staff: %w", err)
	}
	return count, nil
}

// scanner is satisfied by both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanStaff scans a staff record from a row.
func scanStaff(s scanner) (*Staff, error) {
	var st Staff
	var isAdmin int

	err := s.Scan(&st.ID, &st.PINHash, &st.FirstName, &st.LastName, &st.HourlyWage, &isAdmin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("scanning staff member: %w", err)
	}

	st.IsAdmin = isAdmin != 0
	return &st, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// mapUniqueViolation translates a SQLite UNIQUE constraint failure into the
// matching sentinel error, or returns nil if the error is something else.
func mapUniqueViolation(err error) error {
	msg := err.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") {
		return nil
	}
	if strings.Contains(msg, "staff.pin_hash") {
		return ErrPINExists
	}
	return ErrIDExists
}
