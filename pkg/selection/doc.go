// Package selection implements auto-mode model selection: turning
// a tool's declared ToolModelCategory into a concrete provider/model pair
// when the caller supplies no explicit model name. Selection is
// deterministic and reuses the registry's kind priority order; it never
// registers or constructs providers itself.
package selection
