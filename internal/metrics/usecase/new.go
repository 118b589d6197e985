package usecase

import (
	"dora-metrics-collector/internal/metrics"
	"dora-metrics-collector/pkg/log"
)

// implUseCase is the private implementation of metrics.UseCase.
type implUseCase struct {
	cfg       metrics.Config
	sink      metrics.MetricSink
	pipelines metrics.PipelineInspector
	commits   metrics.CommitLookup
	incidents metrics.IncidentLookup
	l         log.Logger
}

// New creates a new metrics UseCase implementation.
func New(
	cfg metrics.Config,
	sink metrics.MetricSink,
	pipelines metrics.PipelineInspector,
	commits metrics.CommitLookup,
	incidents metrics.IncidentLookup,
	l log.Logger,
) *implUseCase {
	return &implUseCase{
		cfg:       cfg,
		sink:      sink,
		pipelines: pipelines,
		commits:   commits,
		incidents: incidents,
		l:         l,
	}
}
