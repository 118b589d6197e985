package usecase

import (
	"context"

	"dora-metrics-collector/internal/metrics"
	"dora-metrics-collector/internal/model"
)

// RecordDeploymentFrequency counts one successful production deployment.
// Redelivery of the same event produces a second identical data point; the
// sink de-duplicates by timestamp and dimensions if it needs to.
func (uc *implUseCase) RecordDeploymentFrequency(ctx context.Context, event model.DeploymentEvent) (metrics.RecordOutput, error) {
	if err := event.Validate(); err != nil {
		uc.l.Warnf(ctx, "frequency: discarding invalid event: %v", err)
		return metrics.RecordOutput{Skipped: true, Reason: err.Error()}, nil
	}

	if !event.Succeeded() {
		uc.l.Infof(ctx, "frequency: pipeline %s execution %s finished %s, not counted",
			event.PipelineName, event.ExecutionID, event.Status)
		return metrics.RecordOutput{Skipped: true, Reason: metrics.ReasonNotSucceeded}, nil
	}

	ok, reason := uc.isProduction(ctx, &event)
	if !ok {
		return metrics.RecordOutput{Skipped: true, Reason: reason}, nil
	}

	point := model.MetricDataPoint{
		Namespace:  uc.cfg.Namespace,
		Name:       metrics.MetricDeploymentFrequency,
		Value:      1,
		Unit:       model.UnitCount,
		Timestamp:  event.CompletionTime,
		Dimensions: pipelineDimensions(event),
	}
	if !uc.emit(ctx, point) {
		return metrics.RecordOutput{Skipped: true, Reason: metrics.ReasonSinkUnavailable}, nil
	}

	uc.l.Infof(ctx, "frequency: counted deployment of pipeline %s at %s",
		event.PipelineName, event.CompletionTime)
	return metrics.RecordOutput{Points: []model.MetricDataPoint{point}}, nil
}
