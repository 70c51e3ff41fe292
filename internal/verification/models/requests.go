package models

import (
	"strings"

	dErrors "trustgate/pkg/domain-errors"
)

// SubmitDocumentRequest registers metadata for an uploaded file.
type SubmitDocumentRequest struct {
	Type    string `json:"type"`
	SubType string `json:"sub_type"`
}

func (r *SubmitDocumentRequest) Normalize() {
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	r.SubType = strings.ToLower(strings.TrimSpace(r.SubType))
}

// ValidateDocumentRequest is the admin decision on a pending document.
type ValidateDocumentRequest struct {
	Approve *bool  `json:"approve"`
	Reason  string `json:"reason"`
}

func (r *ValidateDocumentRequest) Validate() error {
	if r.Approve == nil {
		return dErrors.NewField(dErrors.CodeValidation, "approve", "approve is required")
	}
	r.Reason = strings.TrimSpace(r.Reason)
	return nil
}
