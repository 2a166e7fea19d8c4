package dto

import (
	"time"

	"github.com/SscSPs/courier_ledger/internal/core/domain"
)

// LedgerDiscrepancyResponse is one ledger whose totals disagree with its payments.
type LedgerDiscrepancyResponse struct {
	EntityKind     string   `json:"entityKind"`
	EntityID       string   `json:"entityID"`
	BusinessNumber string   `json:"businessNumber"`
	Issues         []string `json:"issues"`
}

// LedgerAuditResponse is the result of an integrity pass.
type LedgerAuditResponse struct {
	CheckedAt     time.Time                   `json:"checkedAt"`
	Healthy       bool                        `json:"healthy"`
	Discrepancies []LedgerDiscrepancyResponse `json:"discrepancies"`
}

// ToLedgerAuditResponse converts a domain.LedgerAuditReport to its DTO.
func ToLedgerAuditResponse(r *domain.LedgerAuditReport) LedgerAuditResponse {
	resp := LedgerAuditResponse{
		CheckedAt:     r.CheckedAt,
		Healthy:       len(r.Discrepancies) == 0,
		Discrepancies: make([]LedgerDiscrepancyResponse, len(r.Discrepancies)),
	}
	for i, d := range r.Discrepancies {
		resp.Discrepancies[i] = LedgerDiscrepancyResponse{
			EntityKind:     string(d.EntityKind),
			EntityID:       d.EntityID,
			BusinessNumber: d.BusinessNumber,
			Issues:         d.Issues,
		}
	}
	return resp
}
