// Package services implements the core synchronisation logic: building
// the remote tree snapshot, diffing the local tree against it into an
// ordered action plan, applying the plan against the documentation
// server and migrating remote-only documentation back into the
// repository.
//
// Services implement the driving ports and depend on the driven ports,
// never on concrete adapters or connectors.
package services
