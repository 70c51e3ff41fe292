package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "trustgate/pkg/domain"
	dErrors "trustgate/pkg/domain-errors"
)

var (
	now       = time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	owner     = id.UserID(uuid.New())
	validator = id.UserID(uuid.New())
)

func newDoc(t *testing.T, docType DocumentType, subType string) *Document {
	t.Helper()
	doc, err := NewDocument(id.NewDocumentID(), owner, docType, subType, now)
	require.NoError(t, err)
	return doc
}

func TestNewDocument(t *testing.T) {
	t.Run("normalises sub type and starts pending", func(t *testing.T) {
		doc := newDoc(t, DocumentTypeIdentity, "  ID_Card ")
		assert.Equal(t, "id_card", doc.SubType)
		assert.True(t, doc.IsPending())
		assert.Nil(t, doc.ValidatedBy)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		_, err := NewDocument(id.NewDocumentID(), id.UserID{}, DocumentTypeIdentity, "", now)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))

		_, err = NewDocument(id.NewDocumentID(), owner, DocumentType("passport"), "", now)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))

		long := make([]byte, 65)
		for i := range long {
			long[i] = 'a'
		}
		_, err = NewDocument(id.NewDocumentID(), owner, DocumentTypeSelfie, string(long), now)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})
}

func TestDocumentTransitions(t *testing.T) {
	t.Run("approve from pending", func(t *testing.T) {
		doc := newDoc(t, DocumentTypeIdentity, SubTypeIDCard)
		later := now.Add(time.Hour)
		require.NoError(t, doc.CanValidate())
		doc.ApplyApproval(validator, later)
		assert.Equal(t, DocumentStatusApproved, doc.Status)
		assert.Equal(t, validator, *doc.ValidatedBy)
		assert.Equal(t, later, *doc.ValidatedAt)
		assert.Equal(t, later, doc.UpdatedAt)
		assert.Empty(t, doc.RejectionReason)
	})

	t.Run("reject stores the trimmed reason", func(t *testing.T) {
		doc := newDoc(t, DocumentTypeSelfie, SubTypeSelfie)
		require.NoError(t, doc.CanValidate())
		doc.ApplyRejection(validator, " expired ", now)
		assert.Equal(t, DocumentStatusRejected, doc.Status)
		assert.Equal(t, "expired", doc.RejectionReason)
	})

	t.Run("terminal states never change", func(t *testing.T) {
		for _, decide := range []func(*Document){
			func(d *Document) { d.ApplyApproval(validator, now) },
			func(d *Document) { d.ApplyRejection(validator, "no", now) },
		} {
			doc := newDoc(t, DocumentTypeFinancial, "")
			require.NoError(t, doc.CanValidate())
			decide(doc)
			assert.True(t, dErrors.HasCode(doc.CanValidate(), dErrors.CodeInvalidState), doc.Status)
		}
	})
}

func TestStatusCanTransitionTo(t *testing.T) {
	assert.True(t, DocumentStatusPending.CanTransitionTo(DocumentStatusApproved))
	assert.True(t, DocumentStatusPending.CanTransitionTo(DocumentStatusRejected))
	assert.False(t, DocumentStatusPending.CanTransitionTo(DocumentStatusPending))
	for _, from := range []DocumentStatus{DocumentStatusApproved, DocumentStatusRejected} {
		for _, to := range AllDocumentStatuses {
			assert.False(t, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestEvaluateRequirements(t *testing.T) {
	approved := func(docType DocumentType, subType string) *Document {
		d := newDoc(t, docType, subType)
		d.ApplyApproval(validator, now)
		return d
	}
	rejected := func(docType DocumentType, subType string) *Document {
		d := newDoc(t, docType, subType)
		d.ApplyRejection(validator, "bad", now)
		return d
	}

	tests := []struct {
		name      string
		docs      []*Document
		identity  bool
		financial bool
	}{
		{"empty", nil, false, false},
		{"id card only", []*Document{approved(DocumentTypeIdentity, SubTypeIDCard)}, false, false},
		{"selfie only", []*Document{approved(DocumentTypeSelfie, SubTypeSelfie)}, false, false},
		{"both", []*Document{approved(DocumentTypeIdentity, SubTypeIDCard), approved(DocumentTypeSelfie, SubTypeSelfie)}, true, false},
		{"selfie sub type under identity type", []*Document{approved(DocumentTypeIdentity, SubTypeIDCard), approved(DocumentTypeIdentity, SubTypeSelfie)}, true, false},
		{"pending selfie does not count", []*Document{approved(DocumentTypeIdentity, SubTypeIDCard), newDoc(t, DocumentTypeSelfie, SubTypeSelfie)}, false, false},
		{"rejected financial does not count", []*Document{rejected(DocumentTypeFinancial, "payslip")}, false, false},
		{"financial with id_card sub type does not satisfy identity", []*Document{approved(DocumentTypeFinancial, SubTypeIDCard), approved(DocumentTypeSelfie, SubTypeSelfie)}, false, true},
		{"everything", []*Document{approved(DocumentTypeIdentity, SubTypeIDCard), approved(DocumentTypeSelfie, SubTypeSelfie), approved(DocumentTypeFinancial, "")}, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateRequirements(tt.docs)
			assert.Equal(t, tt.identity, got.IdentityComplete)
			assert.Equal(t, tt.financial, got.FinancialComplete)
			assert.Equal(t, tt.identity && tt.financial, got.AllComplete)
		})
	}
}

func TestBuildValidationStats(t *testing.T) {
	stats := BuildValidationStats([]StatusCount{
		{Type: DocumentTypeIdentity, Status: DocumentStatusPending, Count: 2},
		{Type: DocumentTypeFinancial, Status: DocumentStatusRejected, Count: 1},
		{Type: DocumentType("unknown"), Status: DocumentStatusPending, Count: 9},
	})
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.ByStatus[DocumentStatusPending])
	assert.Equal(t, 0, stats.ByStatus[DocumentStatusApproved])
	assert.Len(t, stats.ByType, 3)
	assert.Equal(t, 1, stats.ByType[DocumentTypeFinancial][DocumentStatusRejected])
	assert.Equal(t, 0, stats.ByType[DocumentTypeSelfie][DocumentStatusPending])
}

func TestValidateDocumentRequest(t *testing.T) {
	yes, no := true, false
	assert.NoError(t, (&ValidateDocumentRequest{Approve: &yes}).Validate())
	assert.Error(t, (&ValidateDocumentRequest{}).Validate())
	blank := &ValidateDocumentRequest{Approve: &no, Reason: " "}
	assert.NoError(t, blank.Validate(), "the service checks the reason once the document is known to be pending")
	assert.Empty(t, blank.Reason)
	assert.NoError(t, (&ValidateDocumentRequest{Approve: &no, Reason: "blurry"}).Validate())
}
