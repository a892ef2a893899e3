package session_test

import (
	"testing"
	"time"

	"github.com/validaeja/validaeja-backend/internal/analysis/domain"
	"github.com/validaeja/validaeja-backend/internal/analysis/session"
)

func TestStore_CreateAndGet(t *testing.T) {
	store := session.NewStore(time.Minute)

	sess := store.Create()
	if sess.ID == "" {
		t.Fatal("expected a session ID")
	}
	if sess.State != session.StateAwaitingInput {
		t.Errorf("State = %v, want awaiting_input", sess.State)
	}

	got := store.Get(sess.ID)
	if got == nil || got.ID != sess.ID {
		t.Error("Get did not return the stored session")
	}

	if store.Get("missing") != nil {
		t.Error("Get for unknown ID should return nil")
	}
}

func TestStore_CompleteTransition(t *testing.T) {
	store := session.NewStore(time.Minute)
	sess := store.Create()

	result := &domain.AnalysisResult{DocumentType: domain.DocumentTypeLaudo}
	updated := store.Complete(sess.ID, result)

	if updated.State != session.StateShowingResult {
		t.Errorf("State = %v, want showing_result", updated.State)
	}
	if updated.Result != result {
		t.Error("result was not stored")
	}
	if updated.ErrorMessage != "" {
		t.Error("error message should be cleared on completion")
	}
}

func TestStore_FailKeepsAwaitingInput(t *testing.T) {
	store := session.NewStore(time.Minute)
	sess := store.Create()

	updated := store.Fail(sess.ID, "ocr unavailable")

	if updated.State != session.StateAwaitingInput {
		t.Errorf("State = %v, want awaiting_input", updated.State)
	}
	if updated.Result != nil {
		t.Error("no result may be stored on failure")
	}
	if updated.ErrorMessage != "ocr unavailable" {
		t.Errorf("ErrorMessage = %q", updated.ErrorMessage)
	}
}

func TestStore_ResetClearsResultAndError(t *testing.T) {
	store := session.NewStore(time.Minute)
	sess := store.Create()

	store.Complete(sess.ID, &domain.AnalysisResult{DocumentType: domain.DocumentTypeLaudo})
	updated := store.Reset(sess.ID)

	if updated.State != session.StateAwaitingInput {
		t.Errorf("State = %v, want awaiting_input", updated.State)
	}
	if updated.Result != nil || updated.ErrorMessage != "" {
		t.Error("reset must clear result and error message")
	}
}

func TestStore_GetReturnsSnapshot(t *testing.T) {
	store := session.NewStore(time.Minute)
	sess := store.Create()

	snapshot := store.Get(sess.ID)
	store.Complete(sess.ID, &domain.AnalysisResult{DocumentType: domain.DocumentTypeLaudo})

	if snapshot.State != session.StateAwaitingInput {
		t.Error("snapshot must not observe later store updates")
	}
	if snapshot.Result != nil {
		t.Error("snapshot result must not observe later store updates")
	}
	if got := store.Get(sess.ID); got.State != session.StateShowingResult {
		t.Errorf("State = %v, want showing_result", got.State)
	}
}

func TestStore_UpdateUnknownSession(t *testing.T) {
	store := session.NewStore(time.Minute)

	if store.Complete("missing", &domain.AnalysisResult{}) != nil {
		t.Error("Complete on unknown session should return nil")
	}
	if store.Reset("missing") != nil {
		t.Error("Reset on unknown session should return nil")
	}
}

func TestGenerateSessionID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := session.GenerateSessionID()
		if len(id) != 32 {
			t.Fatalf("session ID length = %d, want 32", len(id))
		}
		if seen[id] {
			t.Fatal("duplicate session ID generated")
		}
		seen[id] = true
	}
}
