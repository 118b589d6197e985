package metrics

import (
	"time"

	"dora-metrics-collector/internal/model"
)

// Config is the immutable convention set the engines evaluate events
// against. It is passed in at construction, never read from ambient state.
type Config struct {
	// Namespace is the base metric namespace (e.g. "DORA").
	Namespace string

	// DefaultMainBranch is the branch whose deployments count as production
	// for GitFlow repositories.
	DefaultMainBranch string

	// ProdStageName is the stage that must have succeeded for trunk-based
	// repositories.
	ProdStageName string

	// AppRepositories lists the trunk-based repositories.
	AppRepositories []string

	// IncidentLookback bounds the window searched when correlating a
	// deployment with incidents.
	IncidentLookback time.Duration
}

// TrunkBased reports whether the repository deploys from trunk (prod stage
// check) rather than from the main branch (GitFlow).
func (c Config) TrunkBased(repository string) bool {
	for _, repo := range c.AppRepositories {
		if repo == repository {
			return true
		}
	}
	return false
}

// RecordOutput reports what one engine invocation did: which points were
// emitted, or why nothing was.
type RecordOutput struct {
	Points  []model.MetricDataPoint
	Skipped bool
	Reason  string
}
