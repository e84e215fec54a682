// Package sandbox validates and expands file paths a tool call may read
//. It confines access to a configured workspace root, estimates
// token costs per extension, and packs file content into a fixed token
// budget with BEGIN/END FILE delimiters, the same shape every tool's
// context assembly depends on.
package sandbox
