package perspective

// analyzeRequest is the comments:analyze request body.
type analyzeRequest struct {
	Comment             analyzeComment           `json:"comment"`
	Languages           []string                 `json:"languages"`
	RequestedAttributes map[string]struct{}      `json:"requestedAttributes"`
}

type analyzeComment struct {
	Text string `json:"text"`
}

// analyzeResponse is the comments:analyze response body. Only the summary
// score of each attribute is used.
type analyzeResponse struct {
	AttributeScores map[string]attributeScore `json:"attributeScores"`
}

type attributeScore struct {
	SummaryScore summaryScore `json:"summaryScore"`
}

type summaryScore struct {
	Value float64 `json:"value"`
}

// Attribute names requested from the API.
const (
	attrToxicity       = "TOXICITY"
	attrSevereToxicity = "SEVERE_TOXICITY"
	attrInsult         = "INSULT"
	attrProfanity      = "PROFANITY"
	attrThreat         = "THREAT"
	attrIdentityAttack = "IDENTITY_ATTACK"
)

func requestedAttributes() map[string]struct{} {
	return map[string]struct{}{
		attrToxicity:       {},
		attrSevereToxicity: {},
		attrInsult:         {},
		attrProfanity:      {},
		attrThreat:         {},
		attrIdentityAttack: {},
	}
}
