package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/de-tools/csr-atlas/pkg/models/store"
	"github.com/de-tools/csr-atlas/pkg/store/duckdb"
)

var ErrNotFound = errors.New("project not found")

type Store interface {
	List(ctx context.Context) ([]store.Project, error)
	Insert(ctx context.Context, project store.Project) error
	Update(ctx context.Context, project store.Project) error
	Count(ctx context.Context) (int, error)
}

const (
	listProjectsQuery  = `SELECT id, name, description, status FROM projects ORDER BY seq`
	insertProjectQuery = `INSERT INTO projects (id, name, description, status) VALUES (?, ?, ?, ?)`
	updateProjectQuery = `UPDATE projects SET name = ?, description = ?, status = ? WHERE id = ?`
	countProjectsQuery = `SELECT COUNT(*) FROM projects`
)

type projectStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &projectStore{db: db}, nil
}

func (s *projectStore) List(ctx context.Context) ([]store.Project, error) {
	rows, err := duckdb.Conn(ctx, s.db).QueryContext(ctx, listProjectsQuery)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	projects := make([]store.Project, 0)
	for rows.Next() {
		var p store.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Status); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (s *projectStore) Insert(ctx context.Context, p store.Project) error {
	_, err := duckdb.Conn(ctx, s.db).ExecContext(ctx, insertProjectQuery, p.ID, p.Name, p.Description, p.Status)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

func (s *projectStore) Update(ctx context.Context, p store.Project) error {
	res, err := duckdb.Conn(ctx, s.db).ExecContext(ctx, updateProjectQuery, p.Name, p.Description, p.Status, p.ID)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, p.ID)
	}
	return nil
}

func (s *projectStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := duckdb.Conn(ctx, s.db).QueryRowContext(ctx, countProjectsQuery).Scan(&n); err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return n, nil
}
