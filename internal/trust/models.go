package trust

import (
	"strings"
	"time"

	id "trustgate/pkg/domain"
)

// VerificationProfile is the verification state a score is derived from.
// Onboarding owns the flags; this module only reads them and writes back the
// computed TrustScore.
type VerificationProfile struct {
	UserID          id.UserID  `json:"user_id"`
	EmailVerified   bool       `json:"email_verified"`
	EmailVerifiedAt *time.Time `json:"email_verified_at,omitempty"`
	PhoneVerified   bool       `json:"phone_verified"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	Phone           string     `json:"phone"`
	AvatarURL       string     `json:"avatar_url"`
	TermsAccepted   bool       `json:"terms_accepted"`
	TrustScore      float64    `json:"trust_score"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// EmptyProfile is what a user without any recorded verification state looks
// like. Nothing is verified, so the score is zero.
func EmptyProfile(userID id.UserID) *VerificationProfile {
	return &VerificationProfile{UserID: userID}
}

// PersonalInfoComplete requires first name, last name, phone and avatar.
func (p *VerificationProfile) PersonalInfoComplete() bool {
	return notBlank(p.FirstName) && notBlank(p.LastName) && notBlank(p.Phone) && p.HasAvatar()
}

func (p *VerificationProfile) HasAvatar() bool {
	return notBlank(p.AvatarURL)
}

// DocumentFacts is the document-derived input of the score.
type DocumentFacts struct {
	IdentityComplete  bool `json:"identity_complete"`
	FinancialComplete bool `json:"financial_complete"`
}

// ProfileUpdate carries verification flags reported by onboarding. Nil fields
// are left untouched.
type ProfileUpdate struct {
	EmailVerified *bool   `json:"email_verified,omitempty"`
	PhoneVerified *bool   `json:"phone_verified,omitempty"`
	FirstName     *string `json:"first_name,omitempty"`
	LastName      *string `json:"last_name,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	AvatarURL     *string `json:"avatar_url,omitempty"`
	TermsAccepted *bool   `json:"terms_accepted,omitempty"`
}

// Apply merges the update into p. EmailVerifiedAt is stamped the first time
// the email flips to verified and cleared when it flips back.
func (u ProfileUpdate) Apply(p *VerificationProfile, now time.Time) {
	if u.EmailVerified != nil {
		if *u.EmailVerified && !p.EmailVerified {
			t := now
			p.EmailVerifiedAt = &t
		}
		if !*u.EmailVerified {
			p.EmailVerifiedAt = nil
		}
		p.EmailVerified = *u.EmailVerified
	}
	if u.PhoneVerified != nil {
		p.PhoneVerified = *u.PhoneVerified
	}
	if u.FirstName != nil {
		p.FirstName = strings.TrimSpace(*u.FirstName)
	}
	if u.LastName != nil {
		p.LastName = strings.TrimSpace(*u.LastName)
	}
	if u.Phone != nil {
		p.Phone = strings.TrimSpace(*u.Phone)
	}
	if u.AvatarURL != nil {
		p.AvatarURL = strings.TrimSpace(*u.AvatarURL)
	}
	if u.TermsAccepted != nil {
		p.TermsAccepted = *u.TermsAccepted
	}
	p.UpdatedAt = now
}

func notBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}
