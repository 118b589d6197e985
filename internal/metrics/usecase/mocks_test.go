package usecase

import (
	"context"
	"time"

	"dora-metrics-collector/internal/metrics"
	"dora-metrics-collector/internal/model"
	"dora-metrics-collector/pkg/codepipeline"
)

// mockLogger satisfies log.Logger without any output.
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                 {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                 {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any) {}

// mockSink records every emitted point; emitFunc overrides the default
// always-succeed behavior.
type mockSink struct {
	points   []model.MetricDataPoint
	emitFunc func(point model.MetricDataPoint) error
}

func (m *mockSink) Emit(ctx context.Context, point model.MetricDataPoint) error {
	if m.emitFunc != nil {
		if err := m.emitFunc(point); err != nil {
			return err
		}
	}
	m.points = append(m.points, point)
	return nil
}

type mockPipelines struct {
	stagesFunc func(pipelineName string) ([]codepipeline.StageState, error)
	sourceFunc func(pipelineName string) (*codepipeline.SourceAction, error)
}

func (m *mockPipelines) StageStates(ctx context.Context, pipelineName string) ([]codepipeline.StageState, error) {
	if m.stagesFunc != nil {
		return m.stagesFunc(pipelineName)
	}
	return nil, nil
}

func (m *mockPipelines) SourceAction(ctx context.Context, pipelineName string) (*codepipeline.SourceAction, error) {
	if m.sourceFunc != nil {
		return m.sourceFunc(pipelineName)
	}
	return &codepipeline.SourceAction{}, nil
}

type mockCommits struct {
	firstCommitFunc func(repository, revision string) (time.Time, error)
}

func (m *mockCommits) FirstCommitTime(ctx context.Context, repository, revision string) (time.Time, error) {
	if m.firstCommitFunc != nil {
		return m.firstCommitFunc(repository, revision)
	}
	return time.Time{}, nil
}

type mockIncidents struct {
	getFunc  func(id string) (*model.Incident, error)
	listFunc func(since, until time.Time) ([]model.Incident, error)
}

func (m *mockIncidents) GetIncident(ctx context.Context, id string) (*model.Incident, error) {
	if m.getFunc != nil {
		return m.getFunc(id)
	}
	return nil, nil
}

func (m *mockIncidents) ListIncidents(ctx context.Context, since, until time.Time) ([]model.Incident, error) {
	if m.listFunc != nil {
		return m.listFunc(since, until)
	}
	return nil, nil
}

// testConfig is the conventional setup used across engine tests: one
// trunk-based repository, GitFlow everywhere else.
func testConfig() metrics.Config {
	return metrics.Config{
		Namespace:         "DORA",
		DefaultMainBranch: "main",
		ProdStageName:     "DeployPROD",
		AppRepositories:   []string{"org/trunk-app"},
		IncidentLookback:  168 * time.Hour,
	}
}

// gitFlowEvent is a successful production deployment of a GitFlow repository.
func gitFlowEvent(completion time.Time) model.DeploymentEvent {
	return model.DeploymentEvent{
		PipelineName:   "app-pipeline",
		ExecutionID:    "exec-1",
		SourceRevision: "4f2b9c1d8e7a6b5c4d3e2f1a0b9c8d7e6f5a4b3c",
		Repository:     "org/web-app",
		BranchName:     "main",
		Status:         model.StatusSucceeded,
		CompletionTime: completion,
		ReceivedAt:     completion,
	}
}
