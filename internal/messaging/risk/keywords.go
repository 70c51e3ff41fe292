package risk

// KeywordCategory groups spam keywords. A category counts once towards the
// spam score no matter how many of its keywords match.
type KeywordCategory struct {
	Name     string
	Keywords []string
}

// DefaultKeywords is the fixed keyword table. Matching is case-insensitive
// substring search, so entries should be lowercase and specific enough not
// to hit ordinary listing vocabulary.
var DefaultKeywords = []KeywordCategory{
	{Name: "pharma", Keywords: []string{"viagra", "cialis", "pharmacy", "diet pills"}},
	{Name: "gambling", Keywords: []string{"casino", "lottery", "loterie", "jackpot", "poker"}},
	{Name: "crypto", Keywords: []string{"bitcoin", "crypto", "ethereum", "nft"}},
	{Name: "financial_scam", Keywords: []string{
		"investment opportunity", "guaranteed return", "western union",
		"make money fast", "argent facile", "wire transfer",
	}},
	{Name: "prize", Keywords: []string{"you won", "you have won", "claim your prize", "vous avez gagné", "free money"}},
}
