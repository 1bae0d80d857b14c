package report

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/de-tools/csr-atlas/pkg/models/store"
	"github.com/de-tools/csr-atlas/pkg/store/duckdb"
)

var ErrNotFound = errors.New("report not found")

// Store persists reports and saved wizard drafts. Writes join the transaction
// bound to ctx, if any.
type Store interface {
	List(ctx context.Context) ([]store.Report, error)
	Insert(ctx context.Context, report store.Report) error
	Update(ctx context.Context, report store.Report) error
	Count(ctx context.Context) (int, error)

	SaveDraft(ctx context.Context, draft store.Draft) error
	GetDraft(ctx context.Context, sessionID string) (*store.Draft, error)
	DeleteDraft(ctx context.Context, sessionID string) error
}

const (
	listReportsQuery = `
		SELECT id, title, type, frameworks, description, kpis, analysis,
			status, submission_date, version, documents
		FROM reports
		ORDER BY seq`

	insertReportQuery = `
		INSERT INTO reports (
			id, title, type, frameworks, description, kpis, analysis,
			status, submission_date, version, documents
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	updateReportQuery = `
		UPDATE reports SET
			title = ?, type = ?, frameworks = ?, description = ?, kpis = ?,
			analysis = ?, status = ?, submission_date = ?, version = ?, documents = ?
		WHERE id = ?`

	countReportsQuery = `SELECT COUNT(*) FROM reports`

	saveDraftQuery = `
		INSERT OR REPLACE INTO report_drafts (
			session_id, title, type, frameworks, description, kpis, analysis, version, saved_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	getDraftQuery = `
		SELECT session_id, title, type, frameworks, description, kpis, analysis, version, saved_at
		FROM report_drafts
		WHERE session_id = ?`

	deleteDraftQuery = `DELETE FROM report_drafts WHERE session_id = ?`
)

type reportStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &reportStore{db: db}, nil
}

func (s *reportStore) List(ctx context.Context) ([]store.Report, error) {
	rows, err := duckdb.Conn(ctx, s.db).QueryContext(ctx, listReportsQuery)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	reports := make([]store.Report, 0)
	for rows.Next() {
		var (
			r                           store.Report
			frameworks, kpis, documents string
		)
		if err := rows.Scan(
			&r.ID, &r.Title, &r.Type, &frameworks, &r.Description, &kpis, &r.Analysis,
			&r.Status, &r.SubmissionDate, &r.Version, &documents,
		); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		if err := unmarshalColumns(
			column{"frameworks", frameworks, &r.Frameworks},
			column{"kpis", kpis, &r.KPIs},
			column{"documents", documents, &r.Documents},
		); err != nil {
			return nil, fmt.Errorf("report %s: %w", r.ID, err)
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

func (s *reportStore) Insert(ctx context.Context, r store.Report) error {
	frameworks, kpis, documents, err := marshalReport(r)
	if err != nil {
		return err
	}

	_, err = duckdb.Conn(ctx, s.db).ExecContext(ctx, insertReportQuery,
		r.ID, r.Title, r.Type, frameworks, r.Description, kpis, r.Analysis,
		r.Status, r.SubmissionDate, r.Version, documents,
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

func (s *reportStore) Update(ctx context.Context, r store.Report) error {
	frameworks, kpis, documents, err := marshalReport(r)
	if err != nil {
		return err
	}

	res, err := duckdb.Conn(ctx, s.db).ExecContext(ctx, updateReportQuery,
		r.Title, r.Type, frameworks, r.Description, kpis, r.Analysis,
		r.Status, r.SubmissionDate, r.Version, documents, r.ID,
	)
	if err != nil {
		return fmt.Errorf("update report: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update report: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, r.ID)
	}
	return nil
}

func (s *reportStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := duckdb.Conn(ctx, s.db).QueryRowContext(ctx, countReportsQuery).Scan(&n); err != nil {
		return 0, fmt.Errorf("count reports: %w", err)
	}
	return n, nil
}

func (s *reportStore) SaveDraft(ctx context.Context, d store.Draft) error {
	frameworks, err := json.Marshal(d.Frameworks)
	if err != nil {
		return fmt.Errorf("marshal frameworks: %w", err)
	}
	kpis, err := json.Marshal(d.KPIs)
	if err != nil {
		return fmt.Errorf("marshal kpis: %w", err)
	}

	_, err = duckdb.Conn(ctx, s.db).ExecContext(ctx, saveDraftQuery,
		d.SessionID, d.Title, d.Type, string(frameworks), d.Description, string(kpis),
		d.Analysis, d.Version, d.SavedAt,
	)
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// GetDraft returns nil when the session has no saved draft.
func (s *reportStore) GetDraft(ctx context.Context, sessionID string) (*store.Draft, error) {
	var (
		d                store.Draft
		frameworks, kpis string
	)
	err := duckdb.Conn(ctx, s.db).QueryRowContext(ctx, getDraftQuery, sessionID).Scan(
		&d.SessionID, &d.Title, &d.Type, &frameworks, &d.Description, &kpis,
		&d.Analysis, &d.Version, &d.SavedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}
	if err := unmarshalColumns(
		column{"frameworks", frameworks, &d.Frameworks},
		column{"kpis", kpis, &d.KPIs},
	); err != nil {
		return nil, fmt.Errorf("draft %s: %w", sessionID, err)
	}
	return &d, nil
}

func (s *reportStore) DeleteDraft(ctx context.Context, sessionID string) error {
	if _, err := duckdb.Conn(ctx, s.db).ExecContext(ctx, deleteDraftQuery, sessionID); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}

func marshalReport(r store.Report) (frameworks, kpis, documents string, err error) {
	fw, err := json.Marshal(r.Frameworks)
	if err != nil {
		return "", "", "", fmt.Errorf("marshal frameworks: %w", err)
	}
	k, err := json.Marshal(r.KPIs)
	if err != nil {
		return "", "", "", fmt.Errorf("marshal kpis: %w", err)
	}
	docs := r.Documents
	if docs == nil {
		docs = map[string][]byte{}
	}
	d, err := json.Marshal(docs)
	if err != nil {
		return "", "", "", fmt.Errorf("marshal documents: %w", err)
	}
	return string(fw), string(k), string(d), nil
}

type column struct {
	name string
	raw  string
	dst  any
}

func unmarshalColumns(cols ...column) error {
	for _, c := range cols {
		if c.raw == "" {
			continue
		}
		if err := json.Unmarshal([]byte(c.raw), c.dst); err != nil {
			return fmt.Errorf("unmarshal %s: %w", c.name, err)
		}
	}
	return nil
}
