package provider

// ToxicityResult is the structured result from a toxicity-scoring provider.
// All scores are in [0,1]; attributes the provider did not score stay 0.
type ToxicityResult struct {
	Toxicity       float64
	SevereToxicity float64
	Insult         float64
	Profanity      float64
	Threat         float64
	IdentityAttack float64
}

// JudgeRole is the speaker role in a judge conversation turn.
type JudgeRole string

const (
	JudgeRoleUser  JudgeRole = "user"
	JudgeRoleModel JudgeRole = "model"
)

// JudgeMessage is one turn of conversation history passed to the
// generative judge.
type JudgeMessage struct {
	Role JudgeRole
	Text string
}
