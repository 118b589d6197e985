package metrics

// Metric names, matching what the dashboards aggregate on.
const (
	MetricDeploymentFrequency = "DeploymentFrequency"
	MetricLeadTimeForChange   = "LeadTimeForChange"
	MetricTotalDeployments    = "TotalDeployments"
	MetricFailedChanges       = "FailedChanges"
	MetricTotalFailedItems    = "TotalFailedItems"
	MetricDowntime            = "Downtime-OPS-Item"
)

// Namespace suffixes appended to Config.Namespace.
const (
	NamespaceChangeFailureRate = "/ChangeFailureRate"
	NamespaceMeanTimeToRestore = "/MeanTimeToRestore"
)

// DimensionPipelineName keys every data point by the emitting pipeline.
const DimensionPipelineName = "PipelineName"

// Skip reasons reported by the engines. Every skip also leaves a log line.
const (
	ReasonNotSucceeded         = "not a successful deployment"
	ReasonNotProduction        = "not a production deployment"
	ReasonSourceLookupFailed   = "pipeline source lookup failed"
	ReasonStageLookupFailed    = "pipeline state lookup failed"
	ReasonCommitLookupFailed   = "commit lookup failed"
	ReasonRevisionNotFound     = "revision not found"
	ReasonNoIncidentRef        = "no incident reference in deployment"
	ReasonIncidentNotFound     = "incident not found"
	ReasonIncidentLookupFailed = "incident lookup failed"
	ReasonIncidentResolved     = "incident already resolved"
	ReasonNotIncidentCreation  = "not an incident creation event"
	ReasonSinkUnavailable      = "metric sink unavailable"
)
