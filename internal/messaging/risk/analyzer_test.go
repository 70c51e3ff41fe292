package risk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeLength(t *testing.T) {
	a := New()

	t.Run("too short", func(t *testing.T) {
		got := a.Analyze("hi")
		assert.False(t, got.IsValid)
		require.Len(t, got.Errors, 1)
		assert.Contains(t, got.Errors[0], "too short")
	})

	t.Run("too long", func(t *testing.T) {
		got := a.Analyze(strings.Repeat("ab ", 700))
		assert.False(t, got.IsValid)
		require.NotEmpty(t, got.Errors)
		assert.Contains(t, got.Errors[0], "too long")

		got = a.Analyze(strings.Repeat("x", 2001))
		assert.False(t, got.IsValid)
	})

	t.Run("counts characters not bytes", func(t *testing.T) {
		got := a.Analyze(strings.Repeat("éa ", 600))
		assert.True(t, got.IsValid, got.Errors)
	})

	t.Run("unusual length costs ten points", func(t *testing.T) {
		got := a.Analyze("short note")
		assert.True(t, got.IsValid)
		assert.Equal(t, 10, got.SpamScore)
		assert.False(t, got.RequiresModeration, "score alone does not force review")
	})

	t.Run("errors never short circuit other checks", func(t *testing.T) {
		got := a.Analyze("a@b.fr")
		assert.False(t, got.IsValid)
		assert.Contains(t, got.Flags, FlagEmail)
	})
}

func TestAnalyzeEmailExample(t *testing.T) {
	got := New().Analyze("Email me at a@b.com now!!!")
	assert.True(t, got.IsValid)
	assert.Contains(t, got.Flags, FlagEmail)
	assert.GreaterOrEqual(t, got.SpamScore, 10)
	assert.True(t, got.RequiresModeration)
}

func TestAnalyzeCleanMessage(t *testing.T) {
	got := New().Analyze("Bonjour, je suis intéressé par votre appartement pour une visite.")
	assert.True(t, got.IsValid)
	assert.Empty(t, got.Errors)
	assert.Empty(t, got.Warnings)
	assert.Empty(t, got.Flags)
	assert.Zero(t, got.SpamScore)
	assert.False(t, got.RequiresModeration)
	assert.Equal(t, "fr", got.Language)
}

func TestAnalyzeKeywords(t *testing.T) {
	got := New().Analyze("Great investment opportunity in BITCOIN and crypto")
	assert.ElementsMatch(t, []string{"spam_crypto", "spam_financial_scam"}, got.Flags)
	assert.Len(t, got.Warnings, 3)
	assert.Equal(t, 40, got.SpamScore, "one category counts once")
	assert.True(t, got.RequiresModeration)
}

func TestAnalyzeCustomKeywords(t *testing.T) {
	a := New(WithKeywords([]KeywordCategory{{Name: "deposit", Keywords: []string{"cash deposit"}}}))
	got := a.Analyze("Send the CASH DEPOSIT before the visit please")
	assert.Equal(t, []string{"spam_deposit"}, got.Flags)

	got = a.Analyze("Visit the casino next to the apartment")
	assert.Empty(t, got.Flags)
}

func TestAnalyzeCapitals(t *testing.T) {
	a := New()

	t.Run("mostly capitals is flagged", func(t *testing.T) {
		got := a.Analyze("PLEASE CALL ME BACK TODAY")
		assert.Equal(t, []string{FlagExcessiveCapitals}, got.Flags)
		assert.Equal(t, 30, got.SpamScore)
	})

	t.Run("some capitals only scores", func(t *testing.T) {
		got := a.Analyze("Hello THERE FRIEND, how are you")
		assert.Empty(t, got.Flags)
		assert.Equal(t, 15, got.SpamScore)
		assert.False(t, got.RequiresModeration)
	})

	t.Run("non letters are ignored", func(t *testing.T) {
		assert.Zero(t, capitalRatio("123 456 !!!"))
		assert.InDelta(t, 0.5, capitalRatio("Ab 12345 !!"), 1e-9)
	})
}

func TestAnalyzePatterns(t *testing.T) {
	a := New()

	got := a.Analyze("Visit www.example.com or call 06 12 34 56 78, ref 12345")
	assert.ElementsMatch(t, []string{FlagLinks, FlagPhone, FlagLongNumbers}, got.Flags)
	assert.Equal(t, 30, got.SpamScore)

	got = a.Analyze("Sooooo nice place!!!!!")
	assert.Equal(t, []string{FlagRepeated}, got.Flags)
	assert.Equal(t, 10, got.SpamScore)

	got = a.Analyze("wow     nice flat here, really")
	assert.Empty(t, got.Flags, "whitespace runs are not repeated characters")

	got = a.Analyze("See https://example.org/listing?id=4 for photos")
	assert.Contains(t, got.Flags, FlagLinks)

	got = a.Analyze("Call me on +33 6 12 34 56 78 tomorrow")
	assert.Contains(t, got.Flags, FlagPhone)
}

func TestAnalyzeScoreSaturates(t *testing.T) {
	got := New().Analyze("WIN THE LOTTERY AND CASINO JACKPOT!!!!! BUY VIAGRA BITCOIN www.x.com a@b.co +33612345678 YOU WON")
	assert.Equal(t, 100, got.SpamScore)
	assert.True(t, got.RequiresModeration)
}

func TestDetectLanguage(t *testing.T) {
	assert.Equal(t, "en", DetectLanguage("The house is nice and you will like it"))
	assert.Equal(t, "fr", DetectLanguage("La maison est belle et vous allez l'aimer"))
	assert.Equal(t, "und", DetectLanguage("12345 !!!"))
}

func TestKeywordTableIsNormalised(t *testing.T) {
	a := New(WithKeywords([]KeywordCategory{
		{Name: "deposit", Keywords: []string{" Cash Deposit ", "cash deposit", ""}},
		{Name: "empty", Keywords: []string{"  "}},
	}))
	require.Len(t, a.keywords, 1)
	assert.Equal(t, []string{"cash deposit"}, a.keywords[0].Keywords)
}
