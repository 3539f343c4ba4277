package server

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"empdir/internal/domain/directory"
)

// Querier is the slice of pgxpool.Pool the store needs; pgxmock satisfies
// it in tests.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PGStore persists employee records in PostgreSQL.
type PGStore struct {
	DB Querier
}

func NewPGStore(db Querier) *PGStore {
	return &PGStore{DB: db}
}

// Connect opens a pgx pool for the store.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConns = 10
	poolCfg.MinConns = 2
	return pgxpool.NewWithConfig(ctx, poolCfg)
}

// EnsureSchema creates the employees table if it does not exist yet.
func (s *PGStore) EnsureSchema(ctx context.Context) error {
	_, err := s.DB.Exec(ctx, `
    CREATE TABLE IF NOT EXISTS employees (
      id BIGSERIAL PRIMARY KEY,
      first_name TEXT NOT NULL,
      other_names TEXT NOT NULL DEFAULT '',
      first_surname TEXT NOT NULL,
      second_surname TEXT NOT NULL DEFAULT '',
      employment_country TEXT NOT NULL,
      id_type TEXT NOT NULL,
      id_number TEXT NOT NULL,
      email TEXT NOT NULL UNIQUE,
      hire_date TEXT NOT NULL,
      department TEXT NOT NULL,
      status TEXT NOT NULL,
      created_at TIMESTAMPTZ NOT NULL,
      updated_at TIMESTAMPTZ,
      UNIQUE (id_type, id_number)
    )
  `)
	return err
}

const employeeColumns = `
    SELECT id, first_name, other_names, first_surname, second_surname,
           employment_country, id_type, id_number, email, hire_date,
           department, status, created_at, updated_at
    FROM employees
  `

func (s *PGStore) List(ctx context.Context) ([]directory.Employee, error) {
	rows, err := s.DB.Query(ctx, employeeColumns+` ORDER BY first_surname, first_name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]directory.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *emp)
	}
	return out, rows.Err()
}

func (s *PGStore) Get(ctx context.Context, id int64) (*directory.Employee, error) {
	row := s.DB.QueryRow(ctx, employeeColumns+` WHERE id = $1`, id)
	emp, err := scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return emp, err
}

func (s *PGStore) Create(ctx context.Context, emp directory.Employee) (*directory.Employee, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (
      first_name, other_names, first_surname, second_surname,
      employment_country, id_type, id_number, email, hire_date,
      department, status, created_at
    ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
    RETURNING id
  `,
		emp.FirstName, emp.OtherNames, emp.FirstSurname, emp.SecondSurname,
		emp.EmploymentCountry, emp.IDType, emp.IDNumber, emp.Email, emp.HireDate,
		emp.Department, emp.Status, emp.CreatedAt,
	).Scan(&emp.ID)
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (s *PGStore) Update(ctx context.Context, id int64, emp directory.Employee) (*directory.Employee, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees SET
      first_name = $1, other_names = $2, first_surname = $3, second_surname = $4,
      employment_country = $5, id_type = $6, id_number = $7, hire_date = $8,
      department = $9, updated_at = $10
    WHERE id = $11
  `,
		emp.FirstName, emp.OtherNames, emp.FirstSurname, emp.SecondSurname,
		emp.EmploymentCountry, emp.IDType, emp.IDNumber, emp.HireDate,
		emp.Department, emp.UpdatedAt, id,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	emp.ID = id
	return &emp, nil
}

func (s *PGStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.DB.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PGStore) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM employees WHERE email = $1 AND id <> $2
  `, email, excludeID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *PGStore) IdentityExists(ctx context.Context, idType, idNumber string, excludeID int64) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM employees WHERE id_type = $1 AND id_number = $2 AND id <> $3
  `, idType, idNumber, excludeID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func scanEmployee(row pgx.Row) (*directory.Employee, error) {
	var emp directory.Employee
	err := row.Scan(
		&emp.ID, &emp.FirstName, &emp.OtherNames, &emp.FirstSurname, &emp.SecondSurname,
		&emp.EmploymentCountry, &emp.IDType, &emp.IDNumber, &emp.Email, &emp.HireDate,
		&emp.Department, &emp.Status, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &emp, nil
}
