package models

import (
	"strings"
	"time"

	id "trustgate/pkg/domain"
	dErrors "trustgate/pkg/domain-errors"
)

// Sub-types that take part in the identity requirement.
const (
	SubTypeIDCard = "id_card"
	SubTypeSelfie = "selfie"
)

const maxSubTypeLength = 64

// Document is the aggregate root for an uploaded verification document.
// Only metadata lives here; file bytes belong to the file-storage collaborator.
//
// Invariants:
//   - Status transitions: pending → approved | pending → rejected, exactly once
//   - RejectionReason is non-empty iff Status == rejected
//   - ValidatedBy and ValidatedAt are set iff Status != pending
//   - OwnerID, Type and SubType are immutable after construction
type Document struct {
	ID              id.DocumentID  `json:"id"`
	OwnerID         id.UserID      `json:"owner_id"`
	Type            DocumentType   `json:"type"`
	SubType         string         `json:"sub_type,omitempty"`
	Status          DocumentStatus `json:"status"`
	RejectionReason string         `json:"rejection_reason,omitempty"`
	ValidatedBy     *id.UserID     `json:"validated_by,omitempty"`
	ValidatedAt     *time.Time     `json:"validated_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// NewDocument registers an uploaded document in the pending state.
func NewDocument(docID id.DocumentID, owner id.UserID, docType DocumentType, subType string, now time.Time) (*Document, error) {
	if owner.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "document owner is required")
	}
	if !docType.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "invalid document type")
	}
	subType = strings.ToLower(strings.TrimSpace(subType))
	if len(subType) > maxSubTypeLength {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "document sub_type must be 64 characters or less")
	}
	return &Document{
		ID:        docID,
		OwnerID:   owner,
		Type:      docType,
		SubType:   subType,
		Status:    DocumentStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (d *Document) IsPending() bool {
	return d.Status == DocumentStatusPending
}

func (d *Document) IsApproved() bool {
	return d.Status == DocumentStatusApproved
}

// CanValidate checks that the document has not been decided yet.
// Use with ApplyApproval/ApplyRejection in Execute callbacks.
func (d *Document) CanValidate() error {
	if !d.Status.CanTransitionTo(DocumentStatusApproved) {
		return dErrors.New(dErrors.CodeInvalidState, "document has already been validated")
	}
	return nil
}

// ApplyApproval records an approval. Call CanValidate first.
func (d *Document) ApplyApproval(validator id.UserID, now time.Time) {
	d.Status = DocumentStatusApproved
	d.RejectionReason = ""
	d.stamp(validator, now)
}

// ApplyRejection records a rejection. Call CanValidate first; the service
// checks the reason once the document is known to be pending.
func (d *Document) ApplyRejection(validator id.UserID, reason string, now time.Time) {
	d.clearValidation()
	d.Status = DocumentStatusRejected
	d.RejectionReason = strings.TrimSpace(reason)
	d.stamp(validator, now)
}

func (d *Document) stamp(validator id.UserID, now time.Time) {
	by := validator
	at := now
	d.ValidatedBy = &by
	d.ValidatedAt = &at
	d.UpdatedAt = now
}

func (d *Document) clearValidation() {
	d.ValidatedBy = nil
	d.ValidatedAt = nil
}

// satisfiesSubType reports whether an approved document counts towards the
// given identity sub-type.
func (d *Document) satisfiesSubType(subType string) bool {
	if !d.IsApproved() || d.SubType != subType {
		return false
	}
	return d.Type == DocumentTypeIdentity || d.Type == DocumentTypeSelfie
}
