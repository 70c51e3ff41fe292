package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustgate/internal/verification/models"
	"trustgate/internal/verification/store/document"
	id "trustgate/pkg/domain"
)

type failingLister struct{}

func (failingLister) ListByOwner(context.Context, id.UserID) ([]*models.Document, error) {
	return nil, errors.New("db down")
}

func TestVerificationAdapterDocumentFacts(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	owner := id.UserID(uuid.New())
	admin := id.UserID(uuid.New())
	store := document.NewInMemoryStore()
	adapter := NewVerificationAdapter(store)

	add := func(docType models.DocumentType, subType string, approve bool) {
		doc, err := models.NewDocument(id.NewDocumentID(), owner, docType, subType, now)
		require.NoError(t, err)
		if approve {
			doc.ApplyApproval(admin, now)
		}
		require.NoError(t, store.Create(ctx, doc))
	}

	facts, err := adapter.DocumentFacts(ctx, owner)
	require.NoError(t, err)
	assert.False(t, facts.IdentityComplete)
	assert.False(t, facts.FinancialComplete)

	add(models.DocumentTypeIdentity, models.SubTypeIDCard, true)
	add(models.DocumentTypeSelfie, models.SubTypeSelfie, false)
	facts, err = adapter.DocumentFacts(ctx, owner)
	require.NoError(t, err)
	assert.False(t, facts.IdentityComplete, "pending selfie must not count")

	add(models.DocumentTypeSelfie, models.SubTypeSelfie, true)
	add(models.DocumentTypeFinancial, "payslip", true)
	facts, err = adapter.DocumentFacts(ctx, owner)
	require.NoError(t, err)
	assert.True(t, facts.IdentityComplete)
	assert.True(t, facts.FinancialComplete)

	_, err = NewVerificationAdapter(failingLister{}).DocumentFacts(ctx, owner)
	assert.Error(t, err)
}
