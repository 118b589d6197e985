package usecase

import (
	"context"
	"strings"

	"dora-metrics-collector/internal/metrics"
	"dora-metrics-collector/internal/model"
)

// RecordChangeFailure emits the change failure rate's raw counters: one
// total-deployment unit for every successful deployment, plus one
// failed-change unit when the deployment correlates with an incident inside
// the lookback window. The ratio itself is computed by the sink over a
// reporting window, never here.
func (uc *implUseCase) RecordChangeFailure(ctx context.Context, event model.DeploymentEvent) (metrics.RecordOutput, error) {
	if err := event.Validate(); err != nil {
		uc.l.Warnf(ctx, "cfr: discarding invalid event: %v", err)
		return metrics.RecordOutput{Skipped: true, Reason: err.Error()}, nil
	}

	if !event.Succeeded() {
		uc.l.Infof(ctx, "cfr: pipeline %s execution %s finished %s, skipping",
			event.PipelineName, event.ExecutionID, event.Status)
		return metrics.RecordOutput{Skipped: true, Reason: metrics.ReasonNotSucceeded}, nil
	}

	var points []model.MetricDataPoint

	total := model.MetricDataPoint{
		Namespace:  uc.cfg.Namespace + metrics.NamespaceChangeFailureRate,
		Name:       metrics.MetricTotalDeployments,
		Value:      1,
		Unit:       model.UnitCount,
		Timestamp:  event.CompletionTime,
		Dimensions: pipelineDimensions(event),
	}
	if uc.emit(ctx, total) {
		points = append(points, total)
	}

	correlated := uc.correlatedIncident(ctx, event)
	if correlated != nil {
		failed := model.MetricDataPoint{
			Namespace:  uc.cfg.Namespace + metrics.NamespaceChangeFailureRate,
			Name:       metrics.MetricFailedChanges,
			Value:      1,
			Unit:       model.UnitCount,
			Timestamp:  event.CompletionTime,
			Dimensions: pipelineDimensions(event),
		}
		if uc.emit(ctx, failed) {
			points = append(points, failed)
		}
		uc.l.Infof(ctx, "cfr: deployment %s correlated with incident %s",
			event.ExecutionID, correlated.ID)
	}

	if len(points) == 0 {
		return metrics.RecordOutput{Skipped: true, Reason: metrics.ReasonSinkUnavailable}, nil
	}
	return metrics.RecordOutput{Points: points}, nil
}

// RecordIncidentOpened counts a newly created open incident as a failed
// change unit, the incident-driven numerator of the change failure rate.
func (uc *implUseCase) RecordIncidentOpened(ctx context.Context, event model.IncidentEvent) (metrics.RecordOutput, error) {
	if !event.Opened() {
		uc.l.Infof(ctx, "cfr: ignoring incident event %q with status %q", event.DetailType, event.Status)
		return metrics.RecordOutput{Skipped: true, Reason: metrics.ReasonNotIncidentCreation}, nil
	}

	point := model.MetricDataPoint{
		Namespace: uc.cfg.Namespace + metrics.NamespaceChangeFailureRate,
		Name:      metrics.MetricTotalFailedItems,
		Value:     1,
		Unit:      model.UnitCount,
		Timestamp: event.ReceivedAt,
	}
	if !uc.emit(ctx, point) {
		return metrics.RecordOutput{Skipped: true, Reason: metrics.ReasonSinkUnavailable}, nil
	}

	uc.l.Infof(ctx, "cfr: counted opened incident %s", event.OpsItemID)
	return metrics.RecordOutput{Points: []model.MetricDataPoint{point}}, nil
}

// correlatedIncident searches the lookback window for an open or recently
// created incident that references the deployment's revision or branch.
// Lookup failures degrade to "no correlation" with a log line.
func (uc *implUseCase) correlatedIncident(ctx context.Context, event model.DeploymentEvent) *model.Incident {
	since := event.CompletionTime.Add(-uc.cfg.IncidentLookback)
	incidents, err := uc.incidents.ListIncidents(ctx, since, event.CompletionTime)
	if err != nil {
		uc.l.Errorf(ctx, "cfr: incident window lookup failed: %v", err)
		return nil
	}

	for i, incident := range incidents {
		if uc.incidentReferencesDeployment(incident, event) {
			return &incidents[i]
		}
	}
	return nil
}

// incidentReferencesDeployment matches an incident to a deployment through
// the incident's free-text reference fields: the deployed revision (full or
// short SHA) or a non-production branch name.
func (uc *implUseCase) incidentReferencesDeployment(incident model.Incident, event model.DeploymentEvent) bool {
	text := incident.Title + " " + incident.Description
	if event.SourceRevision != "" {
		if strings.Contains(text, event.SourceRevision) {
			return true
		}
		if len(event.SourceRevision) >= 7 && strings.Contains(text, event.SourceRevision[:7]) {
			return true
		}
	}
	if event.BranchName != "" && event.BranchName != uc.cfg.DefaultMainBranch &&
		strings.Contains(text, event.BranchName) {
		return true
	}
	return false
}
