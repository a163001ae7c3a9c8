/*
Package observability provides Prometheus instrumentation for the tetrator service.

It counts evaluations by outcome, records how long they take and how many digits the
results have. Collectors are registered on a caller-supplied registerer so tests and
embedders can keep them off the global registry.
*/
package observability
