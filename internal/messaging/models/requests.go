package models

import (
	"strings"

	id "trustgate/pkg/domain"
	dErrors "trustgate/pkg/domain-errors"
	strutil "trustgate/pkg/platform/strings"
)

// MaxBulkRead bounds a single mark-as-read call.
const MaxBulkRead = 100

type CreateMessageRequest struct {
	RecipientID string  `json:"recipient_id"`
	Content     string  `json:"content"`
	PropertyID  *string `json:"property_id,omitempty"`
}

// Parse validates the identifiers. Content is checked by the risk analyzer.
func (r *CreateMessageRequest) Parse() (id.UserID, *id.PropertyID, error) {
	recipient, err := id.ParseUserID(strings.TrimSpace(r.RecipientID))
	if err != nil {
		return id.UserID{}, nil, err
	}
	if r.PropertyID == nil || strings.TrimSpace(*r.PropertyID) == "" {
		return recipient, nil, nil
	}
	property, err := id.ParsePropertyID(strings.TrimSpace(*r.PropertyID))
	if err != nil {
		return id.UserID{}, nil, err
	}
	return recipient, &property, nil
}

// ApproveMessageRequest optionally carries moderator-edited content.
type ApproveMessageRequest struct {
	EditedContent *string `json:"edited_content,omitempty"`
}

type RejectMessageRequest struct {
	Reason string `json:"reason"`
}

func (r *RejectMessageRequest) Validate() error {
	r.Reason = strings.TrimSpace(r.Reason)
	if r.Reason == "" {
		return dErrors.NewField(dErrors.CodeValidation, "reason", "rejection reason is required")
	}
	return nil
}

type CheckContentRequest struct {
	Content string `json:"content"`
}

type MarkReadRequest struct {
	MessageIDs []string `json:"message_ids"`
}

// Parse trims, deduplicates and parses the ids.
func (r *MarkReadRequest) Parse() ([]id.MessageID, error) {
	raw := strutil.DedupeAndTrim(r.MessageIDs)
	if len(raw) == 0 {
		return nil, dErrors.NewField(dErrors.CodeValidation, "message_ids", "at least one message id is required")
	}
	if len(raw) > MaxBulkRead {
		return nil, dErrors.NewField(dErrors.CodeValidation, "message_ids", "too many message ids")
	}
	ids := make([]id.MessageID, 0, len(raw))
	for _, s := range raw {
		msgID, err := id.ParseMessageID(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, msgID)
	}
	return ids, nil
}
