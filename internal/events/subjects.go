package events

const (
	SubjectStats = "sites.stats"

	// Matches every per-evaluation inconsistency advisory.
	SubjectInconsistentAll = "sites.evaluation.*.inconsistent"

	StreamName   = "SITERANK_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

func SubjectEvaluationCompleted(id string) string    { return "sites.evaluation." + id + ".completed" }
func SubjectEvaluationInconsistent(id string) string { return "sites.evaluation." + id + ".inconsistent" }
