// Package transport implements the line-delimited JSON-RPC 2.0 loop
// that connects a host program to the tool driver over stdio.
//
// The protocol is a four-message handshake followed by repeated tool
// invocations:
//
//  1. "initialize": the host announces itself; the server replies with
//     its name, version, and capability flags.
//  2. "notifications/initialized": a notification (no id, no reply).
//  3. "tools/list": returns every tool's name, description, and input
//     schema. When the default model is "auto", each schema's "model"
//     property is required and enumerates the currently available
//     models across providers.
//  4. "tools/call": runs one tool and returns the result envelope.
//
// Every request id round-trips unchanged. The loop never surfaces a
// bare error to the host: failures are wrapped either in a JSON-RPC
// error object (protocol-level) or in a tool result envelope with
// status "error" (tool-level).
package transport
