package databricks

import (
	"context"
	"net/http"
)

// ListClusters returns all clusters in the workspace.
func ListClusters(ctx context.Context, api API) (map[string]any, error) {
	return api.Request(ctx, http.MethodGet, "/api/2.0/clusters/list", nil, nil)
}

// CreateCluster creates a new cluster from the given configuration.
// The response carries the new cluster_id.
func CreateCluster(ctx context.Context, api API, config map[string]any) (map[string]any, error) {
	return api.Request(ctx, http.MethodPost, "/api/2.0/clusters/create", nil, config)
}

// TerminateCluster terminates a running cluster.
func TerminateCluster(ctx context.Context, api API, clusterID string) (map[string]any, error) {
	return api.Request(ctx, http.MethodPost, "/api/2.0/clusters/delete", nil, map[string]any{"cluster_id": clusterID})
}

// GetCluster returns information about a single cluster.
func GetCluster(ctx context.Context, api API, clusterID string) (map[string]any, error) {
	return api.Request(ctx, http.MethodGet, "/api/2.0/clusters/get", map[string]string{"cluster_id": clusterID}, nil)
}

// StartCluster starts a terminated cluster.
func StartCluster(ctx context.Context, api API, clusterID string) (map[string]any, error) {
	return api.Request(ctx, http.MethodPost, "/api/2.0/clusters/start", nil, map[string]any{"cluster_id": clusterID})
}

// RestartCluster restarts a cluster.
func RestartCluster(ctx context.Context, api API, clusterID string) (map[string]any, error) {
	return api.Request(ctx, http.MethodPost, "/api/2.0/clusters/restart", nil, map[string]any{"cluster_id": clusterID})
}

// ResizeCluster changes the number of workers on a cluster.
func ResizeCluster(ctx context.Context, api API, clusterID string, numWorkers int) (map[string]any, error) {
	return api.Request(ctx, http.MethodPost, "/api/2.0/clusters/resize", nil, map[string]any{
		"cluster_id":  clusterID,
		"num_workers": numWorkers,
	})
}
