// Package services implements the core business logic for papersmith.
//
// Services implement the driving ports and depend only on domain types
// and driven port interfaces. Infrastructure (the inference client, the
// document reader, configuration) is injected at construction time.
package services
