package server

import (
	"context"
	"fmt"

	"github.com/spo0nman/databricks-mcp-server/databricks"
)

// maxExportPreview caps the notebook content echoed back to the caller.
const maxExportPreview = 1000

// NewCatalog builds the registry of Databricks tools backed by api.
// Registration order is the order tools appear in discovery responses.
func NewCatalog(api databricks.API) (*Registry, error) {
	registry := NewRegistry()

	defs := []ToolDefinition{
		{
			Name:        "list_clusters",
			Description: "List all Databricks clusters",
			InputSchema: InputSchema{Type: "object"},
			Handler: func(ctx context.Context, _ map[string]any) (any, error) {
				return databricks.ListClusters(ctx, api)
			},
		},
		{
			Name:        "create_cluster",
			Description: "Create a new Databricks cluster",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"cluster_name":            {Type: "string", Description: "Name for the new cluster"},
					"spark_version":           {Type: "string", Description: "Spark runtime version"},
					"node_type_id":            {Type: "string", Description: "Node type identifier"},
					"num_workers":             {Type: "integer", Description: "Number of worker nodes"},
					"autotermination_minutes": {Type: "integer", Description: "Minutes of inactivity before auto-termination"},
				},
				Required: []string{"cluster_name", "spark_version", "node_type_id"},
			},
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				// Validated args are exactly the cluster configuration.
				return databricks.CreateCluster(ctx, api, args)
			},
		},
		{
			Name:        "terminate_cluster",
			Description: "Terminate a Databricks cluster",
			InputSchema: singleParamSchema("cluster_id", "string", "ID of the cluster to terminate"),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return databricks.TerminateCluster(ctx, api, stringArg(args, "cluster_id"))
			},
		},
		{
			Name:        "get_cluster",
			Description: "Get information about a specific Databricks cluster",
			InputSchema: singleParamSchema("cluster_id", "string", "ID of the cluster to retrieve information for"),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return databricks.GetCluster(ctx, api, stringArg(args, "cluster_id"))
			},
		},
		{
			Name:        "start_cluster",
			Description: "Start a terminated Databricks cluster",
			InputSchema: singleParamSchema("cluster_id", "string", "ID of the cluster to start"),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return databricks.StartCluster(ctx, api, stringArg(args, "cluster_id"))
			},
		},
		{
			Name:        "restart_cluster",
			Description: "Restart a Databricks cluster",
			InputSchema: singleParamSchema("cluster_id", "string", "ID of the cluster to restart"),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return databricks.RestartCluster(ctx, api, stringArg(args, "cluster_id"))
			},
		},
		{
			Name:        "resize_cluster",
			Description: "Resize a Databricks cluster by changing its number of workers",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"cluster_id":  {Type: "string", Description: "ID of the cluster to resize"},
					"num_workers": {Type: "integer", Description: "New number of worker nodes"},
				},
				Required: []string{"cluster_id", "num_workers"},
			},
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return databricks.ResizeCluster(ctx, api, stringArg(args, "cluster_id"), intArg(args, "num_workers"))
			},
		},
		{
			Name:        "list_jobs",
			Description: "List all Databricks jobs",
			InputSchema: InputSchema{Type: "object"},
			Handler: func(ctx context.Context, _ map[string]any) (any, error) {
				return databricks.ListJobs(ctx, api)
			},
		},
		{
			Name:        "run_job",
			Description: "Run a Databricks job",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"job_id":          {Type: "string", Description: "ID of the job to run"},
					"notebook_params": {Type: "object", Description: "Parameters to pass to the notebook"},
				},
				Required: []string{"job_id"},
			},
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return databricks.RunJob(ctx, api, stringArg(args, "job_id"), objectArg(args, "notebook_params"))
			},
		},
		{
			Name:        "get_job",
			Description: "Get information about a specific Databricks job",
			InputSchema: singleParamSchema("job_id", "string", "ID of the job"),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return databricks.GetJob(ctx, api, stringArg(args, "job_id"))
			},
		},
		{
			Name:        "get_run",
			Description: "Get information about a specific job run",
			InputSchema: singleParamSchema("run_id", "string", "ID of the run"),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return databricks.GetRun(ctx, api, stringArg(args, "run_id"))
			},
		},
		{
			Name:        "cancel_run",
			Description: "Cancel a running Databricks job run",
			InputSchema: singleParamSchema("run_id", "string", "ID of the run to cancel"),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return databricks.CancelRun(ctx, api, stringArg(args, "run_id"))
			},
		},
		{
			Name:        "list_notebooks",
			Description: "List notebooks in a workspace directory",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"path": {Type: "string", Description: "Workspace path to list notebooks from (defaults to root '/')", Default: "/"},
				},
			},
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return databricks.ListNotebooks(ctx, api, stringArg(args, "path"))
			},
		},
		{
			Name:        "export_notebook",
			Description: "Export a notebook from the workspace",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"path":   {Type: "string", Description: "Path to the notebook to export"},
					"format": {Type: "string", Description: "Export format", Enum: []string{"SOURCE", "HTML", "JUPYTER", "DBC"}, Default: "SOURCE"},
				},
				Required: []string{"path"},
			},
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				result, err := databricks.ExportNotebook(ctx, api, stringArg(args, "path"), stringArg(args, "format"))
				if err != nil {
					return nil, err
				}
				if content, ok := result["content"].(string); ok && len(content) > maxExportPreview {
					result["content"] = fmt.Sprintf("%s... [content truncated, total length: %d characters]",
						content[:maxExportPreview], len(content))
				}
				return result, nil
			},
		},
		{
			Name:        "import_notebook",
			Description: "Import a notebook into the workspace",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"path":      {Type: "string", Description: "Workspace path for the notebook"},
					"content":   {Type: "string", Description: "Notebook source content"},
					"format":    {Type: "string", Description: "Notebook format", Enum: []string{"SOURCE", "HTML", "JUPYTER", "DBC"}, Default: "SOURCE"},
					"language":  {Type: "string", Description: "Notebook language", Enum: []string{"SCALA", "PYTHON", "SQL", "R"}},
					"overwrite": {Type: "boolean", Description: "Overwrite an existing notebook", Default: false},
				},
				Required: []string{"path", "content"},
			},
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return databricks.ImportNotebook(ctx, api,
					stringArg(args, "path"), stringArg(args, "content"),
					stringArg(args, "format"), stringArg(args, "language"),
					boolArg(args, "overwrite"))
			},
		},
		{
			Name:        "delete_notebook",
			Description: "Delete a notebook or directory from the workspace",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"path":      {Type: "string", Description: "Workspace path to delete"},
					"recursive": {Type: "boolean", Description: "Recursively delete directories", Default: false},
				},
				Required: []string{"path"},
			},
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return databricks.DeleteNotebook(ctx, api, stringArg(args, "path"), boolArg(args, "recursive"))
			},
		},
		{
			Name:        "list_files",
			Description: "List files and directories in a DBFS path",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"dbfs_path": {Type: "string", Description: "DBFS path to list files from (defaults to root '/')", Default: "/"},
				},
			},
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return databricks.ListFiles(ctx, api, stringArg(args, "dbfs_path"))
			},
		},
		{
			Name:        "file_status",
			Description: "Get the status of a DBFS file or directory",
			InputSchema: singleParamSchema("dbfs_path", "string", "DBFS path to check"),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return databricks.FileStatus(ctx, api, stringArg(args, "dbfs_path"))
			},
		},
		{
			Name:        "delete_file",
			Description: "Delete a file or directory from DBFS",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"dbfs_path": {Type: "string", Description: "DBFS path to delete"},
					"recursive": {Type: "boolean", Description: "Recursively delete directories", Default: false},
				},
				Required: []string{"dbfs_path"},
			},
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return databricks.DeleteFile(ctx, api, stringArg(args, "dbfs_path"), boolArg(args, "recursive"))
			},
		},
		{
			Name:        "create_directory",
			Description: "Create a directory in DBFS",
			InputSchema: singleParamSchema("dbfs_path", "string", "DBFS directory path to create"),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return databricks.CreateDirectory(ctx, api, stringArg(args, "dbfs_path"))
			},
		},
		{
			Name:        "execute_sql",
			Description: "Execute a SQL statement",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"statement":    {Type: "string", Description: "SQL statement to execute"},
					"warehouse_id": {Type: "string", Description: "ID of the SQL warehouse to use"},
					"catalog":      {Type: "string", Description: "Catalog to use (optional)"},
					"schema":       {Type: "string", Description: "Schema to use (optional)"},
				},
				Required: []string{"statement", "warehouse_id"},
			},
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return databricks.ExecuteStatement(ctx, api,
					stringArg(args, "statement"), stringArg(args, "warehouse_id"),
					stringArg(args, "catalog"), stringArg(args, "schema"))
			},
		},
		{
			Name:        "get_sql_status",
			Description: "Get the status of a SQL statement",
			InputSchema: singleParamSchema("statement_id", "string", "ID of the statement to check"),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return databricks.GetStatementStatus(ctx, api, stringArg(args, "statement_id"))
			},
		},
		{
			Name:        "cancel_sql",
			Description: "Cancel a running SQL statement",
			InputSchema: singleParamSchema("statement_id", "string", "ID of the statement to cancel"),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				return databricks.CancelStatement(ctx, api, stringArg(args, "statement_id"))
			},
		},
	}

	for _, def := range defs {
		if err := registry.Register(def); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// singleParamSchema builds the common one-required-string-parameter schema.
func singleParamSchema(name, typ, description string) InputSchema {
	return InputSchema{
		Type: "object",
		Properties: map[string]Property{
			name: {Type: typ, Description: description},
		},
		Required: []string{name},
	}
}

// Argument accessors for validated arguments. Validation has already
// enforced presence and types, so missing optionals map to zero values.

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

func boolArg(args map[string]any, key string) bool {
	b, _ := args[key].(bool)
	return b
}

func intArg(args map[string]any, key string) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	default:
		return 0
	}
}

func objectArg(args map[string]any, key string) map[string]any {
	m, _ := args[key].(map[string]any)
	return m
}
