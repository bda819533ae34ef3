// Package driven defines the outbound ports: contracts the core depends
// on for fetching the feed, parsing it, talking to the task service and
// persisting sync records. Adapters implement these.
package driven
