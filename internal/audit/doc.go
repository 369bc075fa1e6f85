// Package audit appends lifecycle events to per-instance JSONL files. The
// log is an operator-facing trail, not a database: each line is a complete
// event, files are only ever appended to, and a failure to record never
// fails the operation being recorded.
package audit
