package codepipeline

// StageState is the latest status of one pipeline stage.
type StageState struct {
	Name   string
	Status string
}

// SourceAction is the source configuration of a pipeline: which repository
// and branch feed it.
type SourceAction struct {
	Repository string
	BranchName string
}
