// Package handler contains the non-GraphQL HTTP endpoints: the GraphiQL
// page and the health check. The GraphQL endpoint itself is the relay
// handler wired in internal/server.
package handler

import (
	"log/slog"
	"net/http"
)

// graphiqlPage is a minimal GraphiQL served from a CDN. It posts to the
// same origin's /graphql endpoint, so it works wherever the server runs.
const graphiqlPage = `<!DOCTYPE html>
<html>
<head>
	<title>PhotoShare GraphiQL</title>
	<style>html, body, #graphiql { height: 100%; margin: 0; }</style>
	<link rel="stylesheet" href="https://unpkg.com/graphiql/graphiql.min.css" />
</head>
<body>
	<div id="graphiql">Loading…</div>
	<script src="https://unpkg.com/react@18/umd/react.production.min.js"></script>
	<script src="https://unpkg.com/react-dom@18/umd/react-dom.production.min.js"></script>
	<script src="https://unpkg.com/graphiql/graphiql.min.js"></script>
	<script>
		ReactDOM.createRoot(document.getElementById('graphiql')).render(
			React.createElement(GraphiQL, {
				fetcher: GraphiQL.createFetcher({ url: '/graphql' }),
			})
		);
	</script>
</body>
</html>
`

// GraphiQLHandler serves the interactive query page at /.
type GraphiQLHandler struct {
	logger *slog.Logger
}

// NewGraphiQLHandler creates a GraphiQLHandler.
func NewGraphiQLHandler(logger *slog.Logger) *GraphiQLHandler {
	return &GraphiQLHandler{logger: logger}
}

// HandleGraphiQL writes the GraphiQL page.
func (h *GraphiQLHandler) HandleGraphiQL(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(graphiqlPage)); err != nil {
		h.logger.Error("failed to write GraphiQL page", slog.String("error", err.Error()))
	}
}

// HandleHealth reports liveness. Load balancers and uptime checks hit this;
// it intentionally does not touch the store.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
