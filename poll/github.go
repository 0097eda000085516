package poll

import (
	"context"
	"fmt"

	"github.com/google/go-github/v57/github"

	"status-leds/animation"
)

// WorkflowSource follows the latest GitHub Actions run of a repository
type WorkflowSource struct {
	client   *github.Client
	owner    string
	repo     string
	workflow string // workflow file name or ID; empty means any workflow
	branch   string
}

// NewGitHubClient returns a client, authenticated when token is set
func NewGitHubClient(token string) *github.Client {
	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return client
}

func NewWorkflowSource(client *github.Client, owner, repo, workflow, branch string) *WorkflowSource {
	return &WorkflowSource{
		client:   client,
		owner:    owner,
		repo:     repo,
		workflow: workflow,
		branch:   branch,
	}
}

func (s *WorkflowSource) Status(ctx context.Context) (string, error) {
	opts := &github.ListWorkflowRunsOptions{
		Branch:      s.branch,
		ListOptions: github.ListOptions{PerPage: 1},
	}

	var (
		runs *github.WorkflowRuns
		err  error
	)
	if s.workflow != "" {
		runs, _, err = s.client.Actions.ListWorkflowRunsByFileName(ctx, s.owner, s.repo, s.workflow, opts)
	} else {
		runs, _, err = s.client.Actions.ListRepositoryWorkflowRuns(ctx, s.owner, s.repo, opts)
	}
	if err != nil {
		return "", fmt.Errorf("failed to list workflow runs for %s/%s: %w", s.owner, s.repo, err)
	}

	if runs == nil || len(runs.WorkflowRuns) == 0 {
		return animation.Off, nil
	}
	return RunAnimation(runs.WorkflowRuns[0]), nil
}

// RunAnimation maps a workflow run to the animation that represents it
func RunAnimation(run *github.WorkflowRun) string {
	switch run.GetStatus() {
	case "queued", "requested", "waiting", "pending":
		return animation.Starting
	case "in_progress":
		return animation.Flashing
	case "completed":
		switch run.GetConclusion() {
		case "success", "neutral", "skipped":
			return animation.Finish
		default:
			return animation.Error
		}
	default:
		return animation.Off
	}
}
