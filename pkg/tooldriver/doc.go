// Package tooldriver orchestrates one tool call end to end:
// validate and gate the request, resolve the model (concrete or
// auto-selected), compute effective temperature, assemble the prompt
// via pkg/context, call the provider, attach response metadata, and
// record continuation turns on success.
package tooldriver
