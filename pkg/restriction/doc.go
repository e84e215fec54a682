// Package restriction implements the process-wide model allow-list
// policy: which models each provider may expose, honoring both
// alias and canonical names. It is immutable after construction.
package restriction
