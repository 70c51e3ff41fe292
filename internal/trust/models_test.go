package trust

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileUpdateApply(t *testing.T) {
	yes, no := true, false
	name := "  Camille "
	t1 := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	p := &VerificationProfile{}
	ProfileUpdate{EmailVerified: &yes, FirstName: &name}.Apply(p, t1)
	assert.True(t, p.EmailVerified)
	require.NotNil(t, p.EmailVerifiedAt)
	assert.Equal(t, t1, *p.EmailVerifiedAt)
	assert.Equal(t, "Camille", p.FirstName)
	assert.Equal(t, t1, p.UpdatedAt)

	// re-verifying keeps the original timestamp
	ProfileUpdate{EmailVerified: &yes}.Apply(p, t2)
	assert.Equal(t, t1, *p.EmailVerifiedAt)
	assert.Equal(t, "Camille", p.FirstName)

	ProfileUpdate{EmailVerified: &no}.Apply(p, t2)
	assert.False(t, p.EmailVerified)
	assert.Nil(t, p.EmailVerifiedAt)
}
