package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/validaeja/validaeja-backend/pkg/database"
)

// AuditEntry records a completed document analysis for traceability.
// Only verdict metadata is stored; the OCR text and extracted values are
// never persisted.
type AuditEntry struct {
	ID             string    `db:"id"`
	SessionID      string    `db:"session_id"`
	DocumentType   string    `db:"document_type"`
	Approved       bool      `db:"approved"`
	CriteriaFailed int       `db:"criteria_failed"`
	OCRLanguage    string    `db:"ocr_language"`
	DurationMs     int64     `db:"duration_ms"`
	CreatedAt      time.Time `db:"created_at"`
}

// AuditRepository writes analysis audit entries
type AuditRepository struct {
	db *database.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *database.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create inserts an audit entry
func (r *AuditRepository) Create(ctx context.Context, entry *AuditEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO laudo_analysis_audit
		(id, session_id, document_type, approved, criteria_failed, ocr_language, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.SessionID,
		entry.DocumentType,
		entry.Approved,
		entry.CriteriaFailed,
		entry.OCRLanguage,
		entry.DurationMs,
		entry.CreatedAt,
	)
	return err
}
