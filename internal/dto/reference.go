package dto

import (
	"time"

	"github.com/SscSPs/courier_ledger/internal/core/domain"
)

// CreateReferenceRequest defines the payload for adding master data of any kind.
type CreateReferenceRequest struct {
	Code string `json:"code" binding:"required,max=32"`
	Name string `json:"name" binding:"required,max=255"`
}

// ReferenceResponse is a master-data entity as returned by the API.
type ReferenceResponse struct {
	ReferenceID string    `json:"referenceID"`
	Kind        string    `json:"kind"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   string    `json:"createdBy"`
}

// ToReferenceResponse converts a domain.ReferenceEntity to ReferenceResponse DTO.
func ToReferenceResponse(r domain.ReferenceEntity) ReferenceResponse {
	return ReferenceResponse{
		ReferenceID: r.ReferenceID,
		Kind:        string(r.Kind),
		Code:        r.Code,
		Name:        r.Name,
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
		CreatedBy:   r.CreatedBy,
	}
}

// ToListReferenceResponse converts a slice of domain.ReferenceEntity.
func ToListReferenceResponse(refs []domain.ReferenceEntity) []ReferenceResponse {
	list := make([]ReferenceResponse, len(refs))
	for i, r := range refs {
		list[i] = ToReferenceResponse(r)
	}
	return list
}
