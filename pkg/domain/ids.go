package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "trustgate/pkg/domain-errors"
)

// Typed identifiers. Each wraps a UUID so a DocumentID can never be passed
// where a MessageID is expected.
type (
	UserID     uuid.UUID
	DocumentID uuid.UUID
	MessageID  uuid.UUID
	PropertyID uuid.UUID
)

const maxIDLength = 64

func parseUUID(kind, raw string) (uuid.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" is required")
	}
	if len(raw) > maxIDLength {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind)
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind)
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind)
	}
	return parsed, nil
}

// ParseUserID validates raw input at a trust boundary.
func ParseUserID(raw string) (UserID, error) {
	u, err := parseUUID("user_id", raw)
	return UserID(u), err
}

func ParseDocumentID(raw string) (DocumentID, error) {
	u, err := parseUUID("document_id", raw)
	return DocumentID(u), err
}

func ParseMessageID(raw string) (MessageID, error) {
	u, err := parseUUID("message_id", raw)
	return MessageID(u), err
}

func ParsePropertyID(raw string) (PropertyID, error) {
	u, err := parseUUID("property_id", raw)
	return PropertyID(u), err
}

func (id UserID) String() string     { return uuid.UUID(id).String() }
func (id DocumentID) String() string { return uuid.UUID(id).String() }
func (id MessageID) String() string  { return uuid.UUID(id).String() }
func (id PropertyID) String() string { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id DocumentID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id MessageID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id PropertyID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

func (id UserID) MarshalText() ([]byte, error)     { return []byte(id.String()), nil }
func (id DocumentID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id MessageID) MarshalText() ([]byte, error)  { return []byte(id.String()), nil }
func (id PropertyID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *UserID) UnmarshalText(b []byte) error {
	parsed, err := ParseUserID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *DocumentID) UnmarshalText(b []byte) error {
	parsed, err := ParseDocumentID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *MessageID) UnmarshalText(b []byte) error {
	parsed, err := ParseMessageID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *PropertyID) UnmarshalText(b []byte) error {
	parsed, err := ParsePropertyID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// NewDocumentID and NewMessageID mint identifiers for new aggregates.
func NewDocumentID() DocumentID { return DocumentID(uuid.New()) }
func NewMessageID() MessageID   { return MessageID(uuid.New()) }
