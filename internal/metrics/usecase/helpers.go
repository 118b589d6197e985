package usecase

import (
	"context"
	"regexp"
	"strings"
	"time"

	"dora-metrics-collector/internal/metrics"
	"dora-metrics-collector/internal/model"
)

// isProduction decides whether a succeeded execution was a production
// deployment. Trunk-based repositories require the configured prod stage to
// have succeeded; all other repositories deploy production from the default
// main branch. Missing repo/branch attributes are resolved from the pipeline
// definition.
func (uc *implUseCase) isProduction(ctx context.Context, event *model.DeploymentEvent) (bool, string) {
	if event.Repository == "" || event.BranchName == "" {
		src, err := uc.pipelines.SourceAction(ctx, event.PipelineName)
		if err != nil {
			uc.l.Warnf(ctx, "pipeline %s: source action lookup failed: %v", event.PipelineName, err)
			return false, metrics.ReasonSourceLookupFailed
		}
		if event.Repository == "" {
			event.Repository = src.Repository
		}
		if event.BranchName == "" {
			event.BranchName = src.BranchName
		}
	}

	if uc.cfg.TrunkBased(event.Repository) {
		states, err := uc.pipelines.StageStates(ctx, event.PipelineName)
		if err != nil {
			uc.l.Warnf(ctx, "pipeline %s: stage state lookup failed: %v", event.PipelineName, err)
			return false, metrics.ReasonStageLookupFailed
		}
		for _, stage := range states {
			if stage.Name == uc.cfg.ProdStageName && stage.Status == "Succeeded" {
				return true, ""
			}
		}
		uc.l.Infof(ctx, "pipeline %s: trunk-based repo %s without succeeded %s stage",
			event.PipelineName, event.Repository, uc.cfg.ProdStageName)
		return false, metrics.ReasonNotProduction
	}

	if event.BranchName != uc.cfg.DefaultMainBranch {
		uc.l.Infof(ctx, "pipeline %s: branch %s is not the production branch %s",
			event.PipelineName, event.BranchName, uc.cfg.DefaultMainBranch)
		return false, metrics.ReasonNotProduction
	}
	return true, ""
}

// incidentRefPattern recognizes incident identifiers: OpsItem ids (oi-hex)
// or ticket-style references such as OPS-123. Plain kebab-case branch words
// deliberately do not match.
var incidentRefPattern = regexp.MustCompile(`^(?:oi-[0-9a-f]+|[A-Z][A-Z0-9]*-\d+)$`)

// sourceBranchPattern pulls the source branch out of a merge commit message
// ("Merge pull request #N from owner/fix/OPS-123/hotfix").
var sourceBranchPattern = regexp.MustCompile(`from [^/\s]+/(\S+)`)

// extractIncidentRef is the single place the branch-name-encodes-incident-id
// convention lives. A restoring deployment names the incident either in the
// source branch recorded by the merge commit or in the branch itself:
// the middle segment of fix/<id>/hotfix (and hotfix/<id>/fix), otherwise the
// last segment — provided the segment looks like an incident id.
func extractIncidentRef(event model.DeploymentEvent) string {
	if match := sourceBranchPattern.FindStringSubmatch(event.CommitMessage); match != nil {
		if ref := refFromBranch(match[1]); ref != "" {
			return ref
		}
	}
	return refFromBranch(event.BranchName)
}

func refFromBranch(branch string) string {
	if branch == "" {
		return ""
	}

	parts := strings.Split(branch, "/")
	candidate := parts[len(parts)-1]
	if len(parts) == 3 && isFixMarker(parts[0]) && isFixMarker(parts[2]) {
		candidate = parts[1]
	}

	if incidentRefPattern.MatchString(candidate) {
		return candidate
	}
	return ""
}

func isFixMarker(s string) bool {
	return s == "fix" || s == "hotfix"
}

// clampDuration guards against clock skew between the event sources: a
// negative elapsed time is reported as zero and flagged, never emitted
// negative.
func (uc *implUseCase) clampDuration(ctx context.Context, event model.DeploymentEvent, from time.Time) time.Duration {
	duration := event.CompletionTime.Sub(from)
	if duration < 0 {
		uc.l.Warnf(ctx, "pipeline %s execution %s: clock skew detected (start %s after completion %s), clamping to zero",
			event.PipelineName, event.ExecutionID, from.Format(time.RFC3339), event.CompletionTime.Format(time.RFC3339))
		return 0
	}
	return duration
}

// emit pushes one point to the sink. Failures are logged and reported in the
// output, never escalated: redelivery by the routing layer is the only retry.
func (uc *implUseCase) emit(ctx context.Context, point model.MetricDataPoint) bool {
	if err := uc.sink.Emit(ctx, point); err != nil {
		uc.l.Errorf(ctx, "failed to emit %s/%s: %v", point.Namespace, point.Name, err)
		return false
	}
	return true
}

func pipelineDimensions(event model.DeploymentEvent) map[string]string {
	return map[string]string{metrics.DimensionPipelineName: event.PipelineName}
}
