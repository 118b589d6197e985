package usecase

import (
	"context"
	"errors"

	"dora-metrics-collector/internal/metrics"
	"dora-metrics-collector/internal/model"
	"dora-metrics-collector/pkg/gitcommits"
)

// RecordLeadTime emits the elapsed seconds between the first commit of the
// deployed change and deployment completion. A failed commit lookup skips
// emission and reports; it never fails the invocation.
func (uc *implUseCase) RecordLeadTime(ctx context.Context, event model.DeploymentEvent) (metrics.RecordOutput, error) {
	if err := event.Validate(); err != nil {
		uc.l.Warnf(ctx, "leadtime: discarding invalid event: %v", err)
		return metrics.RecordOutput{Skipped: true, Reason: err.Error()}, nil
	}

	if !event.Succeeded() {
		uc.l.Infof(ctx, "leadtime: pipeline %s execution %s finished %s, skipping",
			event.PipelineName, event.ExecutionID, event.Status)
		return metrics.RecordOutput{Skipped: true, Reason: metrics.ReasonNotSucceeded}, nil
	}

	ok, reason := uc.isProduction(ctx, &event)
	if !ok {
		return metrics.RecordOutput{Skipped: true, Reason: reason}, nil
	}

	firstCommit, err := uc.commits.FirstCommitTime(ctx, event.Repository, event.SourceRevision)
	if err != nil {
		if errors.Is(err, gitcommits.ErrRevisionNotFound) || errors.Is(err, gitcommits.ErrEmptyHistory) {
			uc.l.Warnf(ctx, "leadtime: revision %s not resolvable in %s: %v",
				event.SourceRevision, event.Repository, err)
			return metrics.RecordOutput{Skipped: true, Reason: metrics.ReasonRevisionNotFound}, nil
		}
		uc.l.Errorf(ctx, "leadtime: commit lookup for %s@%s failed: %v",
			event.Repository, event.SourceRevision, err)
		return metrics.RecordOutput{Skipped: true, Reason: metrics.ReasonCommitLookupFailed}, nil
	}

	duration := uc.clampDuration(ctx, event, firstCommit)

	point := model.MetricDataPoint{
		Namespace:  uc.cfg.Namespace,
		Name:       metrics.MetricLeadTimeForChange,
		Value:      duration.Seconds(),
		Unit:       model.UnitSeconds,
		Timestamp:  event.CompletionTime,
		Dimensions: pipelineDimensions(event),
	}
	if !uc.emit(ctx, point) {
		return metrics.RecordOutput{Skipped: true, Reason: metrics.ReasonSinkUnavailable}, nil
	}

	uc.l.Infof(ctx, "leadtime: pipeline %s lead time %.0fs (first commit %s)",
		event.PipelineName, duration.Seconds(), firstCommit)
	return metrics.RecordOutput{Points: []model.MetricDataPoint{point}}, nil
}
