package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MultiValueSeparator delimits multiple target types or domains inside a
// single textual field.
const MultiValueSeparator = "、"

// RawRecord is one named-field row handed over by a loader before it is
// turned into a typed record.
type RawRecord map[string]string

// SplitMulti splits a multi-valued field on MultiValueSeparator, dropping
// blank entries.
func SplitMulti(s string) []string {
	parts := strings.Split(s, MultiValueSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinMulti is the inverse of SplitMulti.
func JoinMulti(values []string) string {
	return strings.Join(values, MultiValueSeparator)
}

// fieldReader accumulates the first field error so constructors can read
// every field in sequence and check once.
type fieldReader struct {
	rec  RawRecord
	name string
	err  error
}

func (r *fieldReader) raw(field string) (string, bool) {
	v, ok := r.rec[field]
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (r *fieldReader) fail(field, reason string) {
	if r.err == nil {
		r.err = &MissingFieldError{Record: r.name, Field: field, Reason: reason}
	}
}

func (r *fieldReader) str(field string) string {
	v, ok := r.raw(field)
	if !ok {
		r.fail(field, "")
	}
	return v
}

func (r *fieldReader) optStr(field string) string {
	v, _ := r.raw(field)
	return v
}

func (r *fieldReader) float(field string) float64 {
	v, ok := r.raw(field)
	if !ok {
		r.fail(field, "")
		return 0
	}
	f, _ := r.parseFloat(field, v)
	return f
}

func (r *fieldReader) optFloat(field string) (float64, bool) {
	v, ok := r.raw(field)
	if !ok {
		return 0, false
	}
	return r.parseFloat(field, v)
}

// parseFloat accepts finite numbers only; strconv parses "NaN" and "Inf".
func (r *fieldReader) parseFloat(field, v string) (float64, bool) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.fail(field, fmt.Sprintf("not a number: %q", v))
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		r.fail(field, fmt.Sprintf("not a finite number: %q", v))
		return 0, false
	}
	return f, true
}

func (r *fieldReader) unit(field string) float64 {
	v, ok := r.raw(field)
	if !ok {
		r.fail(field, "")
		return 0
	}
	f, ok := r.parseFloat(field, v)
	if ok && (f < 0 || f > 1) {
		r.fail(field, fmt.Sprintf("%v outside [0,1]", f))
	}
	return f
}

func (r *fieldReader) list(field string) []string {
	v := SplitMulti(r.str(field))
	if len(v) == 0 {
		r.fail(field, "")
	}
	return v
}
