package http

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"

	"dora-metrics-collector/internal/metrics"
	"dora-metrics-collector/internal/model"
	pkgResponse "dora-metrics-collector/pkg/response"
)

// Every handler answers 200 regardless of outcome: the routing layer
// redelivers on transport errors only, and an event we cannot use is
// discarded with an audit log line, not retried forever.

// DeploymentFrequency godoc
// @Summary     Record deployment frequency
// @Description Counts one successful production deployment from a pipeline execution state change event.
// @Tags        Metrics
// @Accept      json
// @Produce     json
// @Success     200 {object} recordResp
// @Router      /events/deployment-frequency [POST]
func (h *handler) DeploymentFrequency(c *gin.Context) {
	h.record(c, "frequency", h.uc.RecordDeploymentFrequency)
}

// LeadTime godoc
// @Summary     Record lead time for change
// @Description Emits the elapsed time between first commit and deployment completion.
// @Tags        Metrics
// @Accept      json
// @Produce     json
// @Success     200 {object} recordResp
// @Router      /events/lead-time [POST]
func (h *handler) LeadTime(c *gin.Context) {
	h.record(c, "leadtime", h.uc.RecordLeadTime)
}

// ChangeFailure godoc
// @Summary     Record change failure counters
// @Description Emits one total-deployment unit and, if correlated with an incident, one failed-change unit.
// @Tags        Metrics
// @Accept      json
// @Produce     json
// @Success     200 {object} recordResp
// @Router      /events/change-failure [POST]
func (h *handler) ChangeFailure(c *gin.Context) {
	h.record(c, "cfr", h.uc.RecordChangeFailure)
}

// TimeToRestore godoc
// @Summary     Record time to restore
// @Description Emits the elapsed time between incident creation and the restoring deployment.
// @Tags        Metrics
// @Accept      json
// @Produce     json
// @Success     200 {object} recordResp
// @Router      /events/time-to-restore [POST]
func (h *handler) TimeToRestore(c *gin.Context) {
	h.record(c, "restore", h.uc.RecordTimeToRestore)
}

// IncidentOpened godoc
// @Summary     Record an opened incident
// @Description Counts a newly created open incident for the change failure rate.
// @Tags        Metrics
// @Accept      json
// @Produce     json
// @Success     200 {object} recordResp
// @Router      /events/incident-opened [POST]
func (h *handler) IncidentOpened(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.l.Errorf(ctx, "incident-opened: failed to read body: %v", err)
		pkgResponse.OK(c, newDiscardedResp("unreadable body"))
		return
	}

	event, err := model.ParseIncidentEvent(body)
	if err != nil {
		h.l.Warnf(ctx, "incident-opened: discarding event: %v", err)
		pkgResponse.OK(c, newDiscardedResp(err.Error()))
		return
	}

	output, err := h.uc.RecordIncidentOpened(ctx, *event)
	if err != nil {
		h.l.Errorf(ctx, "uc.RecordIncidentOpened: %v", err)
		pkgResponse.OK(c, newDiscardedResp(err.Error()))
		return
	}

	pkgResponse.OK(c, newRecordResp(output))
}

// record is the shared deployment-event path: read, parse fail-closed, run
// the engine, report the outcome.
func (h *handler) record(
	c *gin.Context,
	name string,
	run func(ctx context.Context, event model.DeploymentEvent) (metrics.RecordOutput, error),
) {
	ctx := c.Request.Context()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.l.Errorf(ctx, "%s: failed to read body: %v", name, err)
		pkgResponse.OK(c, newDiscardedResp("unreadable body"))
		return
	}

	event, err := model.ParseDeploymentEvent(body)
	if err != nil {
		h.l.Warnf(ctx, "%s: discarding event: %v", name, err)
		pkgResponse.OK(c, newDiscardedResp(err.Error()))
		return
	}

	output, err := run(ctx, *event)
	if err != nil {
		h.l.Errorf(ctx, "%s: engine failed: %v", name, err)
		pkgResponse.OK(c, newDiscardedResp(err.Error()))
		return
	}

	pkgResponse.OK(c, newRecordResp(output))
}
