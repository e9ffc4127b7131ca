// Package http implements the HTTP request handlers of the seat efficiency
// service. Handlers are a thin layer between transport and the analysis
// service: they read the dataset from the request, delegate, and format
// the response.
//
// # Routes
//
//	POST /api/analysis          multipart field "file" (.csv or .xlsx) or a raw text/csv body
//	POST /api/analysis/export   same body, ?format=csv|xlsx|txt, answered as a file download
//	GET  /api/health            liveness summary
//	GET  /api/health/live       liveness with runtime statistics
//	GET  /api/health/ready      readiness checks, 503 when any check fails
//	GET  /api/version           build and version information
//
// # Request Flow
//
//	HTTP Request → Chi Router → Middleware → Handler → AnalysisService → Parser → Analyzer
//	                                              ↓
//	HTTP Response ← Handler ← AnalysisResult ←───┘
//
// # Error Handling
//
// All errors are answered as RFC 7807 problem details through
// internal/errors, for example a dataset without the required columns:
//
//	{
//	    "type": "/errors/analysis/invalid-format",
//	    "title": "Invalid Dataset Format",
//	    "status": 422,
//	    "detail": "CSV must contain: Year, Course, Total_Seats, Seats_Filled columns (missing: Seats_Filled)",
//	    "instance": "/api/analysis",
//	    "missing_columns": ["Seats_Filled"],
//	    "trace_id": "4bf92f3577b34da6a3ce929d0e0e4736"
//	}
//
// # Testing
//
// Handlers are tested with httptest against a testify mock of
// AnalysisService.
package http
