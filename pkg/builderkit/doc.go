// Package builderkit is the runtime support imported by code that valuegen
// generates: the errors builders report, read-only views over builder storage,
// a bidirectional map, and hashing helpers consistent with the generated
// equality.
//
// Nothing in this package is safe for concurrent mutation; views observe the
// builder they were taken from and share its synchronization requirements.
package builderkit
