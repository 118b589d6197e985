package usecase

import (
	"testing"

	"dora-metrics-collector/internal/model"
)

func TestExtractIncidentRef(t *testing.T) {
	cases := []struct {
		name          string
		branch        string
		commitMessage string
		want          string
	}{
		{
			name:   "OpsItem Id As Last Segment",
			branch: "fix/oi-1a2b3c",
			want:   "oi-1a2b3c",
		},
		{
			name:   "Ticket Reference As Last Segment",
			branch: "hotfix/OPS-123",
			want:   "OPS-123",
		},
		{
			name:   "Middle Segment Between Fix Markers",
			branch: "fix/oi-1a2b3c/hotfix",
			want:   "oi-1a2b3c",
		},
		{
			name:   "Hotfix Fix Markers Reversed",
			branch: "hotfix/OPS-42/fix",
			want:   "OPS-42",
		},
		{
			name:   "Plain Feature Branch",
			branch: "feature/new-checkout",
			want:   "",
		},
		{
			name:   "Kebab Case Word Does Not Match",
			branch: "fix/broken-thing",
			want:   "",
		},
		{
			name:   "Main Branch",
			branch: "main",
			want:   "",
		},
		{
			name:          "Merge Commit Source Branch Wins",
			branch:        "main",
			commitMessage: "Merge pull request #42 from org/fix/oi-1a2b3c/hotfix",
			want:          "oi-1a2b3c",
		},
		{
			name:          "Merge Commit Without Reference Falls Back",
			branch:        "hotfix/OPS-7",
			commitMessage: "Merge pull request #43 from org/feature/polish",
			want:          "OPS-7",
		},
		{
			name:   "Empty Branch",
			branch: "",
			want:   "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := extractIncidentRef(model.DeploymentEvent{
				BranchName:    tc.branch,
				CommitMessage: tc.commitMessage,
			})
			if got != tc.want {
				t.Errorf("extractIncidentRef(%q, %q) = %q, want %q",
					tc.branch, tc.commitMessage, got, tc.want)
			}
		})
	}
}
