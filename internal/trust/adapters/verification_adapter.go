package adapters

import (
	"context"

	"trustgate/internal/trust"
	"trustgate/internal/trust/ports"
	"trustgate/internal/verification/models"
	id "trustgate/pkg/domain"
)

// DocumentLister is the slice of the document store the adapter needs.
type DocumentLister interface {
	ListByOwner(ctx context.Context, owner id.UserID) ([]*models.Document, error)
}

// VerificationAdapter is an in-process adapter that implements
// ports.RequirementsPort by reading the owner's documents and applying the
// verification module's requirement rules.
//
// It reads the store rather than the verification service because the
// service depends on the trust scorer; going through the store keeps the
// dependency graph acyclic.
type VerificationAdapter struct {
	documents DocumentLister
}

func NewVerificationAdapter(documents DocumentLister) ports.RequirementsPort {
	return &VerificationAdapter{documents: documents}
}

func (a *VerificationAdapter) DocumentFacts(ctx context.Context, userID id.UserID) (trust.DocumentFacts, error) {
	docs, err := a.documents.ListByOwner(ctx, userID)
	if err != nil {
		return trust.DocumentFacts{}, err
	}
	req := models.EvaluateRequirements(docs)
	return trust.DocumentFacts{
		IdentityComplete:  req.IdentityComplete,
		FinancialComplete: req.FinancialComplete,
	}, nil
}
