package databricks

import (
	"context"
	"encoding/base64"
	"net/http"
)

// ListNotebooks lists notebooks and directories at a workspace path.
func ListNotebooks(ctx context.Context, api API, path string) (map[string]any, error) {
	return api.Request(ctx, http.MethodGet, "/api/2.0/workspace/list", map[string]string{"path": path}, nil)
}

// ExportNotebook exports a notebook in the given format. For SOURCE and
// JUPYTER exports the base64 content is additionally decoded into a
// decoded_content field; decode failures leave the raw content untouched.
func ExportNotebook(ctx context.Context, api API, path, format string) (map[string]any, error) {
	result, err := api.Request(ctx, http.MethodGet, "/api/2.0/workspace/export", map[string]string{
		"path":   path,
		"format": format,
	}, nil)
	if err != nil {
		return nil, err
	}

	if format == "SOURCE" || format == "JUPYTER" {
		if content, ok := result["content"].(string); ok {
			if decoded, err := base64.StdEncoding.DecodeString(content); err == nil {
				result["decoded_content"] = string(decoded)
			}
		}
	}
	return result, nil
}

// ImportNotebook imports a notebook into the workspace. content must be the
// raw source; it is base64 encoded for the wire. language may be empty.
func ImportNotebook(ctx context.Context, api API, path, content, format, language string, overwrite bool) (map[string]any, error) {
	body := map[string]any{
		"path":      path,
		"format":    format,
		"content":   base64.StdEncoding.EncodeToString([]byte(content)),
		"overwrite": overwrite,
	}
	if language != "" {
		body["language"] = language
	}
	return api.Request(ctx, http.MethodPost, "/api/2.0/workspace/import", nil, body)
}

// DeleteNotebook deletes a notebook or directory from the workspace.
func DeleteNotebook(ctx context.Context, api API, path string, recursive bool) (map[string]any, error) {
	return api.Request(ctx, http.MethodPost, "/api/2.0/workspace/delete", nil, map[string]any{
		"path":      path,
		"recursive": recursive,
	})
}
