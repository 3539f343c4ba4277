package client

import (
	"fmt"
	"sort"
	"strings"
)

// maxFieldErrors caps how many field errors a summary shows.
const maxFieldErrors = 3

// RequestError is a response the service answered with a non-2xx status.
// Fields carries the service's field-error map when the body had one.
type RequestError struct {
	Op     string
	Status int
	Detail string
	Fields map[string][]string
}

func (e *RequestError) Error() string {
	msg := fmt.Sprintf("%s: server returned %d", e.Op, e.Status)
	if summary := e.Summary(); summary != "" {
		msg += ": " + summary
	}
	return msg
}

// Summary flattens the field-error map into a short, readable string,
// capped at maxFieldErrors fields.
func (e *RequestError) Summary() string {
	if len(e.Fields) == 0 {
		return e.Detail
	}
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	if len(fields) > maxFieldErrors {
		fields = fields[:maxFieldErrors]
	}
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(e.Fields[field], ", "))
	}
	return strings.Join(parts, "; ")
}

// ConnectivityError is a request that never produced a response at all.
type ConnectivityError struct {
	Op  string
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("%s: cannot reach the directory service: %v", e.Op, e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }
