package service

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/validaeja/validaeja-backend/internal/analysis/approval"
	"github.com/validaeja/validaeja-backend/internal/analysis/domain"
	"github.com/validaeja/validaeja-backend/internal/analysis/events"
	"github.com/validaeja/validaeja-backend/internal/analysis/extract"
	"github.com/validaeja/validaeja-backend/internal/analysis/registry"
	"github.com/validaeja/validaeja-backend/internal/analysis/repository"
	"github.com/validaeja/validaeja-backend/internal/analysis/session"
	"github.com/validaeja/validaeja-backend/internal/ocr"
	"github.com/validaeja/validaeja-backend/pkg/errors"
	"github.com/validaeja/validaeja-backend/pkg/i18n"
	"github.com/validaeja/validaeja-backend/pkg/logger"
	"github.com/validaeja/validaeja-backend/pkg/messaging"
)

// Service orchestrates the document analysis pipeline: OCR, the five
// extractions, session state and the audit trail.
type Service struct {
	classifier *extract.Classifier
	cid        *extract.CIDExtractor
	registry   *extract.RegistryExtractor
	absence    *extract.AbsenceDetector
	signature  *extract.SignatureDetector

	ocrEngine       ocr.Engine
	sessions        *session.Store
	audit           *repository.AuditRepository
	publisher       *events.AnalysisEventPublisher
	defaultLanguage string
	logger          *logger.Logger
}

// New creates the analysis service. The audit repository and event
// publisher may be nil, in which case those side effects are skipped.
func New(
	engine ocr.Engine,
	sessions *session.Store,
	checker registry.StatusChecker,
	audit *repository.AuditRepository,
	publisher *events.AnalysisEventPublisher,
	defaultLanguage string,
	log *logger.Logger,
) *Service {
	return &Service{
		classifier:      extract.NewClassifier(),
		cid:             extract.NewCIDExtractor(),
		registry:        extract.NewRegistryExtractor(checker),
		absence:         extract.NewAbsenceDetector(),
		signature:       extract.NewSignatureDetector(),
		ocrEngine:       engine,
		sessions:        sessions,
		audit:           audit,
		publisher:       publisher,
		defaultLanguage: defaultLanguage,
		logger:          log.WithComponent("analysis-service"),
	}
}

// Analyze runs the full pipeline on one uploaded document. When sessionID
// is empty a new session is created; otherwise the document is analyzed
// inside the existing session. On OCR failure the session keeps awaiting
// input with the error message recorded and no result is stored.
func (s *Service) Analyze(ctx context.Context, sessionID string, image []byte, language string) (*session.Session, error) {
	sess, err := s.resolveSession(sessionID)
	if err != nil {
		return nil, err
	}

	if !ocr.IsSupportedImage(image) {
		return nil, errors.BadRequestWithKey("upload.invalid_format")
	}

	if language == "" {
		language = s.defaultLanguage
	}

	log := s.logger.WithSessionID(sess.ID)
	start := time.Now()

	text, err := s.ocrEngine.ImageToText(ctx, image, language)
	if err != nil {
		log.Error().Err(err).Str("engine", s.ocrEngine.Name()).Msg("ocr failed")
		s.sessions.Fail(sess.ID, err.Error())
		s.publisher.PublishAnalysisFailed(ctx, &messaging.AnalysisFailedEvent{
			SessionID: sess.ID,
			Reason:    err.Error(),
		})
		return nil, errors.UnprocessableDocument(err)
	}

	result := s.extractAll(text)
	result.AnalysisID = uuid.New().String()
	result.OCRLanguage = language
	result.DurationMs = time.Since(start).Milliseconds()
	result.AnalyzedAt = time.Now().UTC()

	sess = s.sessions.Complete(sess.ID, result)
	if sess == nil {
		return nil, errors.NewWithKey("SESSION_NOT_FOUND", "errors.session_not_found", http.StatusNotFound)
	}

	verdict := approval.Evaluate(result, i18n.NewLocalizer(i18n.LocalePortuguese))

	log.Info().
		Str("analysis_id", result.AnalysisID).
		Str("document_type", string(result.DocumentType)).
		Bool("approved", verdict.Approved).
		Int64("duration_ms", result.DurationMs).
		Msg("analysis completed")

	s.publisher.PublishAnalysisCompleted(ctx, &messaging.AnalysisCompletedEvent{
		SessionID:      sess.ID,
		AnalysisID:     result.AnalysisID,
		DocumentType:   string(result.DocumentType),
		Approved:       verdict.Approved,
		CriteriaFailed: verdict.FailedCriteria(),
		DurationMs:     result.DurationMs,
	})

	s.writeAudit(sess.ID, result, verdict)

	return sess, nil
}

// GetSession returns a session by ID
func (s *Service) GetSession(sessionID string) (*session.Session, error) {
	sess := s.sessions.Get(sessionID)
	if sess == nil {
		return nil, errors.NewWithKey("SESSION_NOT_FOUND", "errors.session_not_found", http.StatusNotFound)
	}
	return sess, nil
}

// Reset discards the stored result and error, returning the session to
// awaiting input.
func (s *Service) Reset(sessionID string) (*session.Session, error) {
	sess := s.sessions.Reset(sessionID)
	if sess == nil {
		return nil, errors.NewWithKey("SESSION_NOT_FOUND", "errors.session_not_found", http.StatusNotFound)
	}
	return sess, nil
}

func (s *Service) resolveSession(sessionID string) (*session.Session, error) {
	if sessionID == "" {
		return s.sessions.Create(), nil
	}
	sess := s.sessions.Get(sessionID)
	if sess == nil {
		return nil, errors.NewWithKey("SESSION_NOT_FOUND", "errors.session_not_found", http.StatusNotFound)
	}
	return sess, nil
}

// extractAll runs the five extractions concurrently over the same text.
// Each extractor is a pure function of the text, so they share nothing
// but the input.
func (s *Service) extractAll(text string) *domain.AnalysisResult {
	result := &domain.AnalysisResult{RawText: text}

	var wg sync.WaitGroup
	wg.Add(5)

	go func() {
		defer wg.Done()
		result.DocumentType = s.classifier.Classify(text)
	}()
	go func() {
		defer wg.Done()
		if code, ok := s.cid.Extract(text); ok {
			result.DiagnosisCode = &code
		}
	}()
	go func() {
		defer wg.Done()
		if rec, ok := s.registry.Extract(text); ok {
			result.Registry = rec
		}
	}()
	go func() {
		defer wg.Done()
		result.Absence = s.absence.Detect(text)
	}()
	go func() {
		defer wg.Done()
		result.Signature = s.signature.Detect(text)
	}()

	wg.Wait()
	return result
}

// writeAudit records the verdict metadata asynchronously. The audit trail
// never blocks or fails a request; failures are logged and dropped.
func (s *Service) writeAudit(sessionID string, result *domain.AnalysisResult, verdict *domain.ApprovalVerdict) {
	if s.audit == nil {
		return
	}

	entry := &repository.AuditEntry{
		SessionID:      sessionID,
		DocumentType:   string(result.DocumentType),
		Approved:       verdict.Approved,
		CriteriaFailed: verdict.FailedCriteria(),
		OCRLanguage:    result.OCRLanguage,
		DurationMs:     result.DurationMs,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.audit.Create(ctx, entry); err != nil {
			s.logger.Error().Err(err).
				Str("session_id", sessionID).
				Msg("failed to write analysis audit entry")
		}
	}()
}
