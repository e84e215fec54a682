// Package hosted implements the Hosted provider: an
// Azure-deployment-style gateway that fronts several upstream vendors'
// models behind one API surface, authenticated with an "Api-Key"
// header instead of a bearer token, and addressed through a
// per-deployment URL rather than a shared chat-completions endpoint.
package hosted
