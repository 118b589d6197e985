package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// DeploymentStatus is the terminal state of a pipeline execution.
type DeploymentStatus string

const (
	StatusStarted    DeploymentStatus = "STARTED"
	StatusSucceeded  DeploymentStatus = "SUCCEEDED"
	StatusFailed     DeploymentStatus = "FAILED"
	StatusCanceled   DeploymentStatus = "CANCELED"
	StatusSuperseded DeploymentStatus = "SUPERSEDED"
	StatusStopped    DeploymentStatus = "STOPPED"
)

// Validation errors for deployment events. Engines treat any of these as
// "skip and report", never as a retryable failure.
var (
	ErrMissingPipeline       = errors.New("event missing pipeline name")
	ErrMissingExecutionID    = errors.New("event missing execution id")
	ErrMissingStatus         = errors.New("event missing execution state")
	ErrMissingCompletionTime = errors.New("event missing completion time")
)

// DeploymentEvent is one terminal state transition of a pipeline execution,
// as delivered by the event routing layer.
type DeploymentEvent struct {
	PipelineName   string           // Pipeline identifier
	ExecutionID    string           // Execution identifier
	SourceRevision string           // Commit SHA that triggered the execution
	Repository     string           // Full repository name (owner/repo)
	BranchName     string           // Branch the execution was triggered from
	CommitMessage  string           // Head commit message (merge commits carry the source branch)
	Status         DeploymentStatus // Terminal status
	CompletionTime time.Time        // When the execution reached the terminal status
	ReceivedAt     time.Time        // When this event entered the collector
}

// Succeeded reports whether this event represents a successful deployment.
func (e DeploymentEvent) Succeeded() bool {
	return e.Status == StatusSucceeded
}

// Validate fails closed: every field an engine reads must be present.
func (e DeploymentEvent) Validate() error {
	if e.PipelineName == "" {
		return ErrMissingPipeline
	}
	if e.ExecutionID == "" {
		return ErrMissingExecutionID
	}
	if e.Status == "" {
		return ErrMissingStatus
	}
	if e.CompletionTime.IsZero() {
		return ErrMissingCompletionTime
	}
	return nil
}

// deploymentEnvelope is the EventBridge envelope for pipeline execution state
// change events.
type deploymentEnvelope struct {
	DetailType string `json:"detail-type"`
	Time       string `json:"time"`
	Detail     struct {
		Pipeline         string `json:"pipeline"`
		ExecutionID      string `json:"execution-id"`
		State            string `json:"state"`
		ExecutionTrigger struct {
			CommitID           string `json:"commit-id"`
			FullRepositoryName string `json:"full-repository-name"`
			BranchName         string `json:"branch-name"`
			CommitMessage      string `json:"commit-message"`
		} `json:"execution-trigger"`
	} `json:"detail"`
}

// ParseDeploymentEvent parses a pipeline execution state change envelope into
// a DeploymentEvent and validates it.
func ParseDeploymentEvent(payload []byte) (*DeploymentEvent, error) {
	var env deploymentEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("failed to parse deployment event: %w", err)
	}

	event := &DeploymentEvent{
		PipelineName:   env.Detail.Pipeline,
		ExecutionID:    env.Detail.ExecutionID,
		SourceRevision: env.Detail.ExecutionTrigger.CommitID,
		Repository:     env.Detail.ExecutionTrigger.FullRepositoryName,
		BranchName:     env.Detail.ExecutionTrigger.BranchName,
		CommitMessage:  env.Detail.ExecutionTrigger.CommitMessage,
		Status:         DeploymentStatus(env.Detail.State),
		ReceivedAt:     time.Now(),
	}

	if env.Time != "" {
		t, err := time.Parse(time.RFC3339, env.Time)
		if err != nil {
			return nil, fmt.Errorf("failed to parse event time %q: %w", env.Time, err)
		}
		event.CompletionTime = t
	}

	if err := event.Validate(); err != nil {
		return nil, err
	}
	return event, nil
}

// IncidentEvent is an OpsItem lifecycle notification from the incident system.
type IncidentEvent struct {
	DetailType string // e.g. "OpsItem Create"
	Status     string // e.g. "Open"
	OpsItemID  string
	ReceivedAt time.Time
}

// Opened reports whether this event is the creation of a new open incident.
func (e IncidentEvent) Opened() bool {
	return e.DetailType == "OpsItem Create" && e.Status == "Open"
}

// ParseIncidentEvent parses an OpsItem state change envelope.
func ParseIncidentEvent(payload []byte) (*IncidentEvent, error) {
	var env struct {
		DetailType string `json:"detail-type"`
		Detail     struct {
			Status    string `json:"status"`
			OpsItemID string `json:"opsItemId"`
		} `json:"detail"`
	}
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("failed to parse incident event: %w", err)
	}
	if env.DetailType == "" {
		return nil, errors.New("incident event missing detail-type")
	}

	return &IncidentEvent{
		DetailType: env.DetailType,
		Status:     env.Detail.Status,
		OpsItemID:  env.Detail.OpsItemID,
		ReceivedAt: time.Now(),
	}, nil
}
