package gitcommits

import (
	"context"
	"time"
)

// Lookup resolves commit timestamps on the source-control platform. Results
// are never cached across invocations; each metric computation queries fresh.
type Lookup interface {
	// FirstCommitTime returns the timestamp of the first commit included in
	// the change identified by revision (a commit SHA) in the given
	// repository ("owner/name"). Returns ErrRevisionNotFound when the
	// platform does not know the revision.
	FirstCommitTime(ctx context.Context, repository, revision string) (time.Time, error)
}
