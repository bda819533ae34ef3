// Package driving defines the inbound ports: the operations callers
// (CLI commands, the serve loop) can ask of the core.
package driving
