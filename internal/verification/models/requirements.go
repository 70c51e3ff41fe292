package models

// RequirementDetails reports each predicate that feeds the requirements.
type RequirementDetails struct {
	IDCard    bool `json:"id_card"`
	Selfie    bool `json:"selfie"`
	Financial bool `json:"financial"`
}

// RequiredDocuments summarises which document requirements a user satisfies.
//
// Identity needs both an approved id_card and an approved selfie; one alone
// is insufficient. Financial needs any one approved financial document.
type RequiredDocuments struct {
	IdentityComplete  bool               `json:"identity_complete"`
	FinancialComplete bool               `json:"financial_complete"`
	AllComplete       bool               `json:"all_complete"`
	Details           RequirementDetails `json:"details"`
}

// EvaluateRequirements scans a user's documents. Only approved documents count.
// This is pure domain logic - no I/O.
func EvaluateRequirements(docs []*Document) *RequiredDocuments {
	var details RequirementDetails
	for _, d := range docs {
		if d == nil || !d.IsApproved() {
			continue
		}
		if d.satisfiesSubType(SubTypeIDCard) {
			details.IDCard = true
		}
		if d.satisfiesSubType(SubTypeSelfie) {
			details.Selfie = true
		}
		if d.Type == DocumentTypeFinancial {
			details.Financial = true
		}
	}

	identity := details.IDCard && details.Selfie
	return &RequiredDocuments{
		IdentityComplete:  identity,
		FinancialComplete: details.Financial,
		AllComplete:       identity && details.Financial,
		Details:           details,
	}
}

// ValidationStats aggregates document counts for the admin console.
type ValidationStats struct {
	Total    int                                     `json:"total"`
	ByStatus map[DocumentStatus]int                  `json:"by_status"`
	ByType   map[DocumentType]map[DocumentStatus]int `json:"by_type"`
}

// StatusCount is one (type, status) bucket as returned by a store.
type StatusCount struct {
	Type   DocumentType
	Status DocumentStatus
	Count  int
}

// BuildValidationStats folds store buckets into a fully populated report;
// every type/status pair is present, zero when absent.
func BuildValidationStats(counts []StatusCount) *ValidationStats {
	stats := &ValidationStats{
		ByStatus: make(map[DocumentStatus]int, len(AllDocumentStatuses)),
		ByType:   make(map[DocumentType]map[DocumentStatus]int, len(AllDocumentTypes)),
	}
	for _, st := range AllDocumentStatuses {
		stats.ByStatus[st] = 0
	}
	for _, t := range AllDocumentTypes {
		stats.ByType[t] = make(map[DocumentStatus]int, len(AllDocumentStatuses))
		for _, st := range AllDocumentStatuses {
			stats.ByType[t][st] = 0
		}
	}
	for _, c := range counts {
		if _, ok := stats.ByType[c.Type]; !ok {
			continue
		}
		stats.ByType[c.Type][c.Status] += c.Count
		stats.ByStatus[c.Status] += c.Count
		stats.Total += c.Count
	}
	return stats
}
