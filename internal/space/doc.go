// Package space models the parameter space of a sweep: each named parameter's
// value domain (a Range) and the ordered collection of all of them (a Space).
// Ranges are pure data plus sampling and gridding logic; they perform no I/O
// and are validated once at construction, never at sampling time.
package space
