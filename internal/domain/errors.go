package domain

import "fmt"

// MalformedCoordinateError reports a DMS string that does not match
// <hemisphere><deg>°<min>′<sec>″.
type MalformedCoordinateError struct {
	Value  string
	Reason string
}

func (e *MalformedCoordinateError) Error() string {
	return fmt.Sprintf("malformed coordinate %q: %s", e.Value, e.Reason)
}

// MissingFieldError reports a record that lacks a required field or carries
// a value that cannot be read as the declared type.
type MissingFieldError struct {
	Record string
	Field  string
	Reason string
}

func (e *MissingFieldError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("record %s: missing field %q", e.Record, e.Field)
	}
	return fmt.Sprintf("record %s: field %q: %s", e.Record, e.Field, e.Reason)
}

// MissingLookupError means a distance or height table has no entry for a key
// the pipeline expected to find. It points at an inconsistency between the
// mission and equipment pools and is never defaulted.
type MissingLookupError struct {
	Table string
	Key   string
}

func (e *MissingLookupError) Error() string {
	return fmt.Sprintf("%s table: no entry for %s", e.Table, e.Key)
}

// UnknownCategoryError is raised only where raw category strings enter the
// system.
type UnknownCategoryError struct {
	Kind  string
	Value string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown %s category %q", e.Kind, e.Value)
}
