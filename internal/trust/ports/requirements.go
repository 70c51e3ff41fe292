package ports

import (
	"context"

	"trustgate/internal/trust"
	id "trustgate/pkg/domain"
)

// RequirementsPort supplies the document-derived facts of a trust score.
// It lets the trust module read verification state without importing the
// verification stores, so either side can move out of process later.
type RequirementsPort interface {
	DocumentFacts(ctx context.Context, userID id.UserID) (trust.DocumentFacts, error)
}
