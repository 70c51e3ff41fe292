package models

import dErrors "trustgate/pkg/domain-errors"

// DocumentType is the broad category of an uploaded document.
type DocumentType string

const (
	DocumentTypeIdentity  DocumentType = "identity"
	DocumentTypeSelfie    DocumentType = "selfie"
	DocumentTypeFinancial DocumentType = "financial"
)

var validDocumentTypes = map[DocumentType]bool{
	DocumentTypeIdentity:  true,
	DocumentTypeSelfie:    true,
	DocumentTypeFinancial: true,
}

// AllDocumentTypes lists types in a stable order for reporting.
var AllDocumentTypes = []DocumentType{DocumentTypeIdentity, DocumentTypeSelfie, DocumentTypeFinancial}

func ParseDocumentType(s string) (DocumentType, error) {
	if s == "" {
		return "", dErrors.NewField(dErrors.CodeInvalidInput, "type", "document type is required")
	}
	t := DocumentType(s)
	if !t.IsValid() {
		return "", dErrors.NewField(dErrors.CodeInvalidInput, "type", "invalid document type")
	}
	return t, nil
}

func (t DocumentType) IsValid() bool {
	return validDocumentTypes[t]
}

func (t DocumentType) String() string {
	return string(t)
}

// DocumentStatus is the closed set of validation states.
type DocumentStatus string

const (
	DocumentStatusPending  DocumentStatus = "pending"
	DocumentStatusApproved DocumentStatus = "approved"
	DocumentStatusRejected DocumentStatus = "rejected"
)

// AllDocumentStatuses lists statuses in a stable order for reporting.
var AllDocumentStatuses = []DocumentStatus{DocumentStatusPending, DocumentStatusApproved, DocumentStatusRejected}

// CanTransitionTo encodes the decide-once state machine.
func (s DocumentStatus) CanTransitionTo(next DocumentStatus) bool {
	switch s {
	case DocumentStatusPending:
		return next == DocumentStatusApproved || next == DocumentStatusRejected
	default:
		return false
	}
}

func (s DocumentStatus) IsValid() bool {
	switch s {
	case DocumentStatusPending, DocumentStatusApproved, DocumentStatusRejected:
		return true
	}
	return false
}

func (s DocumentStatus) String() string {
	return string(s)
}
