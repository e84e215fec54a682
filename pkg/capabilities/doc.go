// Package capabilities holds the static data model describing what a
// model supports: its wire name and aliases, context window, output cap,
// capability flags, and temperature constraint. It performs no I/O and
// issues no requests; providers consult it to shape outgoing calls and
// the restriction service consults it to validate configuration.
package capabilities
