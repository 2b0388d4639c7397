package stats

// Severity classifies a session length. Boundaries are
// inclusive-lower / exclusive-upper.
func Severity(minutes int) string {
	switch {
	case minutes < 5:
		return "Minor annoyance"
	case minutes < 15:
		return "Avoidable"
	case minutes < 30:
		return "Painful"
	default:
		return "Unforgivable"
	}
}
