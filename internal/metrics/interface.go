package metrics

import (
	"context"
	"time"

	"dora-metrics-collector/internal/model"
	"dora-metrics-collector/pkg/codepipeline"
)

// UseCase computes the four delivery metrics from individual events. Every
// operation is safe to invoke twice with the same event: re-emission of the
// same data point is the only repeated effect (the sink owns de-duplication).
type UseCase interface {
	// RecordDeploymentFrequency counts one successful production deployment.
	RecordDeploymentFrequency(ctx context.Context, event model.DeploymentEvent) (RecordOutput, error)

	// RecordLeadTime emits the elapsed time between the first commit of the
	// deployed change and deployment completion.
	RecordLeadTime(ctx context.Context, event model.DeploymentEvent) (RecordOutput, error)

	// RecordChangeFailure emits one total-deployment unit and, when the
	// deployment correlates with a production-impacting incident inside the
	// lookback window, one failed-change unit.
	RecordChangeFailure(ctx context.Context, event model.DeploymentEvent) (RecordOutput, error)

	// RecordIncidentOpened counts a newly created open incident.
	RecordIncidentOpened(ctx context.Context, event model.IncidentEvent) (RecordOutput, error)

	// RecordTimeToRestore emits the elapsed time between an incident's
	// creation and the successful deployment that restored it.
	RecordTimeToRestore(ctx context.Context, event model.DeploymentEvent) (RecordOutput, error)
}

// MetricSink appends data points to the external time-series store.
type MetricSink interface {
	Emit(ctx context.Context, point model.MetricDataPoint) error
}

// PipelineInspector resolves pipeline stage states and source configuration
// in the tooling account.
type PipelineInspector interface {
	StageStates(ctx context.Context, pipelineName string) ([]codepipeline.StageState, error)
	SourceAction(ctx context.Context, pipelineName string) (*codepipeline.SourceAction, error)
}

// CommitLookup resolves the first commit timestamp of a deployed revision.
type CommitLookup interface {
	FirstCommitTime(ctx context.Context, repository, revision string) (time.Time, error)
}

// IncidentLookup queries the incident system. The incident system's status
// field is the source of truth; no incident state is kept here.
type IncidentLookup interface {
	GetIncident(ctx context.Context, id string) (*model.Incident, error)
	ListIncidents(ctx context.Context, since, until time.Time) ([]model.Incident, error)
}
