package testutil

// DefaultRunToken is used when a scenario does not name its run.
const DefaultRunToken = "test-run-default"

// FixedRunGenerator generates the same run token every time.
//
// Unlike engine.FixedGenerator which returns tokens in sequence, this
// generator never runs out, so a scenario can be executed repeatedly and
// still produce byte-identical golden output.
//
// Thread-safety: FixedRunGenerator is stateless and safe for concurrent use.
type FixedRunGenerator struct {
	token string
}

// NewFixedRunGenerator creates a generator for token.
// If token is empty, Generate() returns DefaultRunToken.
func NewFixedRunGenerator(token string) *FixedRunGenerator {
	if token == "" {
		token = DefaultRunToken
	}
	return &FixedRunGenerator{token: token}
}

// Generate returns the fixed run token.
//
// Implements engine.RunTokenGenerator.
func (g *FixedRunGenerator) Generate() string {
	return g.token
}
