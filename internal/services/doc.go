// Package services implements the business logic layer of the ASRS analysis
// service. It provides a clean separation between HTTP handlers and the
// preprocessing and analysis machinery, ensuring that business rules are
// centralized and testable.
//
// # Architecture
//
// Services follow these architectural principles:
//
//	1. Interface-driven design for testability
//	2. Context propagation for cancellation and tracing
//	3. Dependency injection for loose coupling
//	4. Domain-focused methods that encapsulate business rules
//
// # Available Services
//
// The package provides these core services:
//
//	- ASRSService: preprocessing, analysis, comparison, and reporting over
//	  incident report sessions
//	- UploadService: validated file ingestion into the uploads directory
//	- HealthService: liveness, readiness, and system statistics
//	- SessionStore: TTL-bounded in-memory store of analysis sessions
//
// # Error Handling
//
// Services return sentinel errors (ErrSessionNotFound, ErrInvalidFileType,
// ErrEmptyTable, ...) that the transport layer maps onto RFC 7807 problem
// responses. Wrapping preserves the sentinel for errors.Is checks:
//
//	if err != nil {
//	    return nil, fmt.Errorf("session %q: %w", id, ErrSessionNotFound)
//	}
//
// # Testing
//
// Services are tested against real pipeline and orchestrator instances with
// small CSV fixtures written to t.TempDir(); only the Prometheus registry is
// swapped for a fresh one per test.
package services
