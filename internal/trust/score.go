// Package trust computes the marketplace trust score: a weighted sum of
// verification facts on a 0 to 5 scale. Everything here is pure; loading
// profiles and document facts is the service's job.
package trust

import (
	"math"
	"sort"
)

// Factor names one verification fact that contributes to the score.
type Factor string

const (
	FactorEmail        Factor = "email"
	FactorPhone        Factor = "phone"
	FactorPersonalInfo Factor = "personal_info"
	FactorAvatar       Factor = "avatar"
	FactorIdentity     Factor = "identity"
	FactorFinancial    Factor = "financial"
	FactorTerms        Factor = "terms"
)

const (
	MaxScore      = 5.0
	maxNextSteps  = 3
	tenthsPerUnit = 10
)

type factorDef struct {
	factor   Factor
	tenths   int // weight in tenths of a point, so sums stay exact
	priority int
	label    string
	title    string
	action   string
}

// factorTable lists every factor in display order. The weights add up to
// exactly MaxScore.
var factorTable = []factorDef{
	{FactorEmail, 5, 10, "Email verified", "Verify your email", "Confirm your email address from the link we sent you."},
	{FactorPhone, 5, 5, "Phone verified", "Verify your phone", "Confirm your phone number with the code sent by SMS."},
	{FactorPersonalInfo, 5, 9, "Profile complete", "Complete your profile", "Add your first name, last name, phone number and a profile picture."},
	{FactorAvatar, 5, 7, "Profile picture", "Add a profile picture", "Upload a photo so other members can recognise you."},
	{FactorIdentity, 15, 6, "Identity verified", "Verify your identity", "Upload an ID card and a selfie for validation."},
	{FactorFinancial, 10, 4, "Financial documents", "Add a financial document", "Upload a payslip or tax notice for validation."},
	{FactorTerms, 5, 8, "Terms accepted", "Accept the terms of use", "Read and accept the marketplace terms of use."},
}

func (d factorDef) weight() float64 {
	return float64(d.tenths) / tenthsPerUnit
}

func (d factorDef) satisfied(p *VerificationProfile, facts DocumentFacts) bool {
	switch d.factor {
	case FactorEmail:
		return p.EmailVerified
	case FactorPhone:
		return p.PhoneVerified
	case FactorPersonalInfo:
		return p.PersonalInfoComplete()
	case FactorAvatar:
		return p.HasAvatar()
	case FactorIdentity:
		return facts.IdentityComplete
	case FactorFinancial:
		return facts.FinancialComplete
	case FactorTerms:
		return p.TermsAccepted
	default:
		return false
	}
}

// Weight returns the points a factor is worth, or zero for unknown factors.
func Weight(f Factor) float64 {
	for _, d := range factorTable {
		if d.factor == f {
			return d.weight()
		}
	}
	return 0
}

// Calculate returns the score rounded to one decimal and clamped to [0, 5].
// A nil profile scores as an empty one.
func Calculate(p *VerificationProfile, facts DocumentFacts) float64 {
	if p == nil {
		p = &VerificationProfile{}
	}
	return scoreWhere(func(d factorDef) bool { return d.satisfied(p, facts) })
}

func scoreWhere(satisfied func(factorDef) bool) float64 {
	tenths := 0
	for _, d := range factorTable {
		if satisfied(d) {
			tenths += d.tenths
		}
	}
	return clamp(float64(tenths) / tenthsPerUnit)
}

func clamp(score float64) float64 {
	score = math.Max(0, math.Min(MaxScore, score))
	return math.Round(score*tenthsPerUnit) / tenthsPerUnit
}

// FactorResult is one row of the score breakdown.
type FactorResult struct {
	Factor    Factor  `json:"factor"`
	Label     string  `json:"label"`
	Weight    float64 `json:"weight"`
	Satisfied bool    `json:"satisfied"`
	Points    float64 `json:"points"`
}

// NextStep is an actionable suggestion for an incomplete factor.
type NextStep struct {
	Factor      Factor  `json:"factor"`
	Priority    int     `json:"priority"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Points      float64 `json:"points"`
}

// ScoreDetails is the full breakdown shown to a user.
type ScoreDetails struct {
	CurrentScore float64        `json:"current_score"`
	MaxScore     float64        `json:"max_score"`
	Percentage   int            `json:"percentage"`
	Factors      []FactorResult `json:"factors"`
	NextSteps    []NextStep     `json:"next_steps"`
	Level        Level          `json:"level"`
}

// Details breaks the score down per factor and ranks what is still missing.
// NextSteps holds at most three entries, highest priority first.
func Details(p *VerificationProfile, facts DocumentFacts) *ScoreDetails {
	if p == nil {
		p = &VerificationProfile{}
	}
	score := Calculate(p, facts)
	out := &ScoreDetails{
		CurrentScore: score,
		MaxScore:     MaxScore,
		Percentage:   int(math.Round(score / MaxScore * 100)),
		Factors:      make([]FactorResult, 0, len(factorTable)),
		NextSteps:    []NextStep{},
		Level:        LevelFor(score),
	}

	var missing []NextStep
	for _, d := range factorTable {
		ok := d.satisfied(p, facts)
		r := FactorResult{Factor: d.factor, Label: d.label, Weight: d.weight(), Satisfied: ok}
		if ok {
			r.Points = d.weight()
		} else {
			missing = append(missing, NextStep{
				Factor:      d.factor,
				Priority:    d.priority,
				Title:       d.title,
				Description: d.action,
				Points:      d.weight(),
			})
		}
		out.Factors = append(out.Factors, r)
	}

	sort.SliceStable(missing, func(i, j int) bool {
		return missing[i].Priority > missing[j].Priority
	})
	if len(missing) > maxNextSteps {
		missing = missing[:maxNextSteps]
	}
	out.NextSteps = append(out.NextSteps, missing...)
	return out
}

// LevelName is the coarse band a score falls into.
type LevelName string

const (
	LevelExcellent LevelName = "excellent"
	LevelGood      LevelName = "good"
	LevelMedium    LevelName = "medium"
	LevelLow       LevelName = "low"
	LevelVeryLow   LevelName = "very_low"
)

type Level struct {
	Level LevelName `json:"level"`
	Label string    `json:"label"`
}

// LevelFor maps a score to its band. Thresholds are inclusive lower bounds.
func LevelFor(score float64) Level {
	switch {
	case score >= 4.5:
		return Level{LevelExcellent, "Excellent"}
	case score >= 3.5:
		return Level{LevelGood, "Good"}
	case score >= 2.5:
		return Level{LevelMedium, "Medium"}
	case score >= 1.5:
		return Level{LevelLow, "Low"}
	default:
		return Level{LevelVeryLow, "Very low"}
	}
}
