package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"telemed/internal/domain"
)

const issueColumns = `id, consultation_id, reporter_id, issue_type, severity, description,
		device_info, browser_info, network_info,
		resolved, resolved_at, resolved_by, auto_resolved, resolution_notes, created_at, updated_at`

type IssueRepositoryImpl struct {
	db DB
}

func NewIssueRepository(db DB) *IssueRepositoryImpl {
	return &IssueRepositoryImpl{db: db}
}

func scanIssue(row pgx.Row) (*domain.TechnicalIssue, error) {
	var i domain.TechnicalIssue
	err := row.Scan(
		&i.ID,
		&i.ConsultationID,
		&i.ReporterID,
		&i.Type,
		&i.Severity,
		&i.Description,
		&i.DeviceInfo,
		&i.BrowserInfo,
		&i.NetworkInfo,
		&i.Resolved,
		&i.ResolvedAt,
		&i.ResolvedBy,
		&i.AutoResolved,
		&i.ResolutionNotes,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *IssueRepositoryImpl) Create(ctx context.Context, consultationID, reporterID int64, dto domain.ReportIssueDTO) (*domain.TechnicalIssue, error) {
	severity := dto.Severity
	if severity == "" {
		severity = domain.IssueSeverityMedium
	}

	query := `
		INSERT INTO technical_issues (consultation_id, reporter_id, issue_type, severity, description, device_info, browser_info, network_info)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + issueColumns

	return scanIssue(r.db.QueryRow(ctx, query,
		consultationID,
		reporterID,
		dto.Type,
		severity,
		dto.Description,
		dto.DeviceInfo,
		dto.BrowserInfo,
		dto.NetworkInfo,
	))
}

func (r *IssueRepositoryImpl) GetByID(ctx context.Context, id int64) (*domain.TechnicalIssue, error) {
	query := `SELECT ` + issueColumns + ` FROM technical_issues WHERE id = $1`
	return scanIssue(r.db.QueryRow(ctx, query, id))
}

func (r *IssueRepositoryImpl) ListByConsultation(ctx context.Context, consultationID int64, openOnly bool) ([]domain.TechnicalIssue, error) {
	query := `SELECT ` + issueColumns + ` FROM technical_issues WHERE consultation_id = $1`
	if openOnly {
		query += " AND resolved = FALSE"
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(ctx, query, consultationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var issues []domain.TechnicalIssue
	for rows.Next() {
		i, err := scanIssue(rows)
		if err != nil {
			return nil, err
		}
		issues = append(issues, *i)
	}

	return issues, rows.Err()
}

func (r *IssueRepositoryImpl) Resolve(ctx context.Context, id int64, resolvedBy *int64, autoResolved bool, notes *string, now time.Time) (*domain.TechnicalIssue, error) {
	query := `
		UPDATE technical_issues
		SET resolved = TRUE, resolved_at = $1, resolved_by = $2, auto_resolved = $3, resolution_notes = $4, updated_at = $1
		WHERE id = $5
		RETURNING ` + issueColumns

	return scanIssue(r.db.QueryRow(ctx, query, now, resolvedBy, autoResolved, notes, id))
}
