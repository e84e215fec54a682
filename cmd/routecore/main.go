// Routecore is a multi-provider LLM routing and orchestration core.
//
// It wires provider credentials, an allow-list restriction policy, a
// TTL-bounded conversation store, and a tool driver behind a small CLI:
//
//	# Start the stdio JSON-RPC loop with default configuration
//	routecore serve
//
//	# Start with a custom configuration file
//	routecore serve --config /path/to/config.yaml
//
//	# Validate configuration and the custom-models registry without serving
//	routecore validate
//
//	# Show version information
//	routecore version
//
// For complete documentation, see: https://github.com/mercator-hq/routecore
package main

func main() {
	Execute()
}
