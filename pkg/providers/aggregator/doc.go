// Package aggregator implements the Aggregator provider: a
// multiplexing back-end that proxies any model name by default,
// looking up capability records from a JSON registry and falling
// back to a generic-conservative record for names the registry does
// not recognize, so unrestricted model names still route and validate.
package aggregator
