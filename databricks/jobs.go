package databricks

import (
	"context"
	"net/http"
)

// ListJobs returns all jobs in the workspace.
func ListJobs(ctx context.Context, api API) (map[string]any, error) {
	return api.Request(ctx, http.MethodGet, "/api/2.0/jobs/list", nil, nil)
}

// RunJob triggers a run of an existing job. notebookParams may be nil.
func RunJob(ctx context.Context, api API, jobID string, notebookParams map[string]any) (map[string]any, error) {
	body := map[string]any{"job_id": jobID}
	if len(notebookParams) > 0 {
		body["notebook_params"] = notebookParams
	}
	return api.Request(ctx, http.MethodPost, "/api/2.0/jobs/run-now", nil, body)
}

// GetJob returns information about a single job.
func GetJob(ctx context.Context, api API, jobID string) (map[string]any, error) {
	return api.Request(ctx, http.MethodGet, "/api/2.0/jobs/get", map[string]string{"job_id": jobID}, nil)
}

// GetRun returns information about a single job run.
func GetRun(ctx context.Context, api API, runID string) (map[string]any, error) {
	return api.Request(ctx, http.MethodGet, "/api/2.0/jobs/runs/get", map[string]string{"run_id": runID}, nil)
}

// CancelRun cancels a job run.
func CancelRun(ctx context.Context, api API, runID string) (map[string]any, error) {
	return api.Request(ctx, http.MethodPost, "/api/2.0/jobs/runs/cancel", nil, map[string]any{"run_id": runID})
}
