package registry

import (
	"github.com/validaeja/validaeja-backend/internal/analysis/domain"
)

// StatusChecker resolves the validity status of a professional registry
// identifier. Implementations can be swapped in to query a real council
// backend without changing the extraction logic.
type StatusChecker interface {
	// Check returns the status for the given registry record
	Check(rec domain.RegistryRecord) domain.RegistryStatus

	// Name returns the checker name for logging
	Name() string
}

// SimulatedChecker marks every matched registry as active. It stands in
// for a real council lookup, which is out of scope for this service.
type SimulatedChecker struct{}

// NewSimulatedChecker creates a new simulated status checker
func NewSimulatedChecker() *SimulatedChecker {
	return &SimulatedChecker{}
}

func (c *SimulatedChecker) Name() string {
	return "simulated"
}

// Check always reports active. Swap this checker for a real one to
// change the policy; do not special-case it in callers.
func (c *SimulatedChecker) Check(rec domain.RegistryRecord) domain.RegistryStatus {
	return domain.RegistryStatusActive
}
