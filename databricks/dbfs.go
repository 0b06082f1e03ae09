package databricks

import (
	"context"
	"net/http"
)

// ListFiles lists files and directories at a DBFS path.
func ListFiles(ctx context.Context, api API, path string) (map[string]any, error) {
	return api.Request(ctx, http.MethodGet, "/api/2.0/dbfs/list", map[string]string{"path": path}, nil)
}

// FileStatus returns the status of a DBFS file or directory.
func FileStatus(ctx context.Context, api API, path string) (map[string]any, error) {
	return api.Request(ctx, http.MethodGet, "/api/2.0/dbfs/get-status", map[string]string{"path": path}, nil)
}

// DeleteFile deletes a DBFS file, or a directory when recursive is set.
func DeleteFile(ctx context.Context, api API, path string, recursive bool) (map[string]any, error) {
	return api.Request(ctx, http.MethodPost, "/api/2.0/dbfs/delete", nil, map[string]any{
		"path":      path,
		"recursive": recursive,
	})
}

// CreateDirectory creates a DBFS directory, including missing parents.
func CreateDirectory(ctx context.Context, api API, path string) (map[string]any, error) {
	return api.Request(ctx, http.MethodPost, "/api/2.0/dbfs/mkdirs", nil, map[string]any{"path": path})
}
