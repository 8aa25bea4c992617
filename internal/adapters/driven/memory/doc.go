// Package memory provides in-memory implementations of the driven
// ports. They back service tests and local experimentation; production
// wiring uses the discourse and github connectors instead.
package memory
