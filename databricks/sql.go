package databricks

import (
	"context"
	"net/http"
)

const (
	defaultRowLimit  = 10000
	defaultByteLimit = 100_000_000
)

// ExecuteStatement submits a SQL statement to a SQL warehouse. catalog and
// schema may be empty. The statement runs asynchronously; poll with
// GetStatementStatus for the final result.
func ExecuteStatement(ctx context.Context, api API, statement, warehouseID, catalog, schema string) (map[string]any, error) {
	body := map[string]any{
		"statement":    statement,
		"warehouse_id": warehouseID,
		"wait_timeout": "0s",
		"row_limit":    defaultRowLimit,
		"byte_limit":   defaultByteLimit,
	}
	if catalog != "" {
		body["catalog"] = catalog
	}
	if schema != "" {
		body["schema"] = schema
	}
	return api.Request(ctx, http.MethodPost, "/api/2.0/sql/statements/execute", nil, body)
}

// GetStatementStatus returns the current status of a SQL statement.
func GetStatementStatus(ctx context.Context, api API, statementID string) (map[string]any, error) {
	return api.Request(ctx, http.MethodGet, "/api/2.0/sql/statements/"+statementID, nil, nil)
}

// CancelStatement cancels a running SQL statement.
func CancelStatement(ctx context.Context, api API, statementID string) (map[string]any, error) {
	return api.Request(ctx, http.MethodPost, "/api/2.0/sql/statements/"+statementID+"/cancel", nil, map[string]any{})
}
