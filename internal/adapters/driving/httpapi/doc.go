// Package httpapi exposes search and keyword management as a JSON HTTP API
// for browser front-ends.
//
// Routes:
//
//	GET    /api/search?q=company
//	GET    /api/categories
//	POST   /api/categories                      {"name": "..."}
//	POST   /api/categories/reset
//	DELETE /api/categories/{id}
//	POST   /api/categories/{id}/keywords        {"keyword": "..."}
//	DELETE /api/categories/{id}/keywords/{keyword}
//	GET    /healthz
//	GET    /metrics                             when a metrics handler is set
//
// The API serves a single user. A search started while another is running
// cancels the earlier one, which answers 409.
package httpapi
