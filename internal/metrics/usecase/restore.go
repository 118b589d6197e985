package usecase

import (
	"context"
	"errors"

	"dora-metrics-collector/internal/metrics"
	"dora-metrics-collector/internal/model"
	"dora-metrics-collector/pkg/opsitems"
)

// RecordTimeToRestore emits the elapsed seconds between an incident's
// creation and the successful production deployment that references it. The
// incident system's live status decides whether the incident is still open:
// the first observed restoration wins, later deployments referencing the
// same incident are skipped and reported.
func (uc *implUseCase) RecordTimeToRestore(ctx context.Context, event model.DeploymentEvent) (metrics.RecordOutput, error) {
	if err := event.Validate(); err != nil {
		uc.l.Warnf(ctx, "restore: discarding invalid event: %v", err)
		return metrics.RecordOutput{Skipped: true, Reason: err.Error()}, nil
	}

	if !event.Succeeded() {
		uc.l.Infof(ctx, "restore: pipeline %s execution %s finished %s, skipping",
			event.PipelineName, event.ExecutionID, event.Status)
		return metrics.RecordOutput{Skipped: true, Reason: metrics.ReasonNotSucceeded}, nil
	}

	ok, reason := uc.isProduction(ctx, &event)
	if !ok {
		return metrics.RecordOutput{Skipped: true, Reason: reason}, nil
	}

	ref := extractIncidentRef(event)
	if ref == "" {
		uc.l.Infof(ctx, "restore: deployment %s carries no incident reference, not a restoration",
			event.ExecutionID)
		return metrics.RecordOutput{Skipped: true, Reason: metrics.ReasonNoIncidentRef}, nil
	}

	incident, err := uc.incidents.GetIncident(ctx, ref)
	if err != nil {
		if errors.Is(err, opsitems.ErrIncidentNotFound) {
			uc.l.Warnf(ctx, "restore: no incident found with id %s", ref)
			return metrics.RecordOutput{Skipped: true, Reason: metrics.ReasonIncidentNotFound}, nil
		}
		uc.l.Errorf(ctx, "restore: incident lookup for %s failed: %v", ref, err)
		return metrics.RecordOutput{Skipped: true, Reason: metrics.ReasonIncidentLookupFailed}, nil
	}

	if !incident.Open() {
		uc.l.Warnf(ctx, "restore: incident %s already resolved, first restoration wins", incident.ID)
		return metrics.RecordOutput{Skipped: true, Reason: metrics.ReasonIncidentResolved}, nil
	}

	downtime := uc.clampDuration(ctx, event, incident.CreatedTime)

	point := model.MetricDataPoint{
		Namespace:  uc.cfg.Namespace + metrics.NamespaceMeanTimeToRestore,
		Name:       metrics.MetricDowntime,
		Value:      downtime.Seconds(),
		Unit:       model.UnitSeconds,
		Timestamp:  event.CompletionTime,
		Dimensions: pipelineDimensions(event),
	}
	if !uc.emit(ctx, point) {
		return metrics.RecordOutput{Skipped: true, Reason: metrics.ReasonSinkUnavailable}, nil
	}

	uc.l.Infof(ctx, "restore: incident %s restored by pipeline %s after %.0fs",
		incident.ID, event.PipelineName, downtime.Seconds())
	return metrics.RecordOutput{Points: []model.MetricDataPoint{point}}, nil
}
