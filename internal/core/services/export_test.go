package services

import (
	portsrepo "github.com/SscSPs/courier_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/courier_ledger/internal/core/ports/services"
	"github.com/SscSPs/courier_ledger/internal/utils/identifier"
)

// NewUniquenessGuardWithGenerator lets tests control the candidate sequence.
func NewUniquenessGuardWithGenerator(checker portsrepo.UniquenessChecker, maxAttempts int, gen identifier.Generator) portssvc.UniquenessGuardSvc {
	return newUniquenessGuard(checker, maxAttempts, gen)
}
