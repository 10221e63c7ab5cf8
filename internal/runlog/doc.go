// Package runlog persists remediation run history in a SQLite database.
//
// Every run command invocation records one row: the input and output
// paths, the planned action counts, how many seconds were cut, and the
// classified failure kind when the run did not complete. The history
// command reads them back newest first.
package runlog
