package transport

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/mercator-hq/routecore/pkg/capabilities"
	"github.com/mercator-hq/routecore/pkg/tooldriver"
)

// maxLineBytes bounds a single incoming JSON-RPC line. Prompts are
// capped well below this by the driver's own gate; the headroom covers
// file lists and host-side framing.
const maxLineBytes = 10 << 20

// protocolVersion is the handshake version this loop speaks.
const protocolVersion = "2024-11-05"

// ToolRunner executes one validated tool call. *tooldriver.Driver
// satisfies it.
type ToolRunner interface {
	Run(ctx context.Context, req tooldriver.Request) (*tooldriver.Response, error)
}

// ModelLister supplies the current model inventory for auto-mode tool
// schemas. *registry.Registry satisfies it.
type ModelLister interface {
	AvailableModels() map[capabilities.ProviderKind][]string
}

// Logger is the minimal logging surface the loop needs.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Server runs the stdio JSON-RPC loop. One Server serves one host
// connection; requests on the line are processed in arrival order.
type Server struct {
	runner       ToolRunner
	models       ModelLister
	defaultModel string
	name         string
	version      string
	logger       Logger

	tools   []Tool
	toolIdx map[string]int

	writeMu sync.Mutex
	out     io.Writer
}

// New builds a Server over the given runner and model inventory.
// defaultModel is either a concrete model name or the literal "auto".
func New(runner ToolRunner, models ModelLister, defaultModel, name, version string, logger Logger) *Server {
	tools := defaultTools()
	idx := make(map[string]int, len(tools))
	for i, t := range tools {
		idx[t.Name] = i
	}
	return &Server{
		runner:       runner,
		models:       models,
		defaultModel: defaultModel,
		name:         name,
		version:      version,
		logger:       logger,
		tools:        tools,
		toolIdx:      idx,
	}
}

// Serve reads line-delimited JSON-RPC requests from r and writes
// responses to w until r is exhausted or ctx is cancelled. A clean EOF
// returns nil.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	s.out = w

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		s.handleLine(ctx, line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("transport: read loop: %w", err)
	}
	return nil
}

func (s *Server) handleLine(ctx context.Context, line []byte) {
	var req rpcRequest
	if err := json.Unmarshal(line, &req); err != nil {
		s.respondError(json.RawMessage("null"), codeParseError, "parse error", nil)
		return
	}

	switch req.Method {
	case "initialize":
		s.respond(req.ID, initializeResult{
			ProtocolVersion: protocolVersion,
			ServerInfo:      serverInfo{Name: s.name, Version: s.version},
		})

	case "notifications/initialized":
		// Notification; nothing to send.

	case "tools/list":
		s.respond(req.ID, s.listTools())

	case "tools/call":
		s.handleCall(ctx, &req)

	default:
		if req.isNotification() {
			return
		}
		s.respondError(req.ID, codeMethodNotFound, fmt.Sprintf("method %q not found", req.Method), nil)
	}
}

func (s *Server) listTools() listToolsResult {
	autoMode := s.defaultModel == "auto"
	var models []string
	if autoMode {
		for _, names := range s.models.AvailableModels() {
			models = append(models, names...)
		}
	}

	result := listToolsResult{Tools: make([]toolDescriptor, 0, len(s.tools))}
	for _, t := range s.tools {
		result.Tools = append(result.Tools, toolDescriptor{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.inputSchema(autoMode, models),
		})
	}
	return result
}

func (s *Server) handleCall(ctx context.Context, req *rpcRequest) {
	var params callToolParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.respondError(req.ID, codeInvalidParams, "invalid tools/call params", nil)
		return
	}

	i, ok := s.toolIdx[params.Name]
	if !ok {
		s.respondError(req.ID, codeInvalidParams, fmt.Sprintf("unknown tool %q", params.Name), nil)
		return
	}
	tool := s.tools[i]

	var args toolArguments
	if len(params.Arguments) > 0 {
		if err := json.Unmarshal(params.Arguments, &args); err != nil {
			s.respondError(req.ID, codeInvalidParams, "invalid tool arguments", nil)
			return
		}
	}

	driverReq, err := s.buildRequest(tool, &args)
	if err != nil {
		s.respond(req.ID, errorEnvelope(tool.Name, err))
		return
	}

	resp, err := s.runner.Run(ctx, driverReq)
	if err != nil {
		s.logger.Warn("tool call failed", "tool", tool.Name, "error", err)
		s.respond(req.ID, errorEnvelope(tool.Name, err))
		return
	}
	s.respond(req.ID, successEnvelope(resp))
}

// buildRequest translates the wire arguments into a driver request,
// applying the tool's defaults and the server-wide default model.
func (s *Server) buildRequest(tool Tool, args *toolArguments) (tooldriver.Request, error) {
	req := tooldriver.Request{
		ToolName:             tool.Name,
		Prompt:               args.Prompt,
		SystemPrompt:         tool.SystemPrompt,
		Model:                args.Model,
		AutoCategory:         string(tool.Category),
		Temperature:          tool.DefaultTemperature,
		ContinuationID:       args.ContinuationID,
		Files:                args.Files,
		SupportsContinuation: tool.SupportsContinuation,
	}

	if args.Temperature != nil {
		req.Temperature = *args.Temperature
	}
	if args.ThinkingMode != "" {
		pct, ok := thinkingModePercent[args.ThinkingMode]
		if !ok {
			return tooldriver.Request{}, &tooldriver.InvalidRequestError{
				Field: "thinking_mode", Message: fmt.Sprintf("unknown tier %q", args.ThinkingMode),
			}
		}
		req.ThinkingBudgetPercent = pct
	}
	if req.Model == "" && s.defaultModel != "auto" {
		req.Model = s.defaultModel
	}

	if tool.IsPrecommit {
		if args.Path == "" {
			return tooldriver.Request{}, &tooldriver.InvalidRequestError{
				Field: "path", Message: "required for precommit",
			}
		}
		mode, ref := diffMode(args)
		req.Precommit = &tooldriver.PrecommitOptions{
			Root:       args.Path,
			Mode:       mode,
			CompareRef: ref,
		}
	}

	return req, nil
}

func (s *Server) respond(id json.RawMessage, result any) {
	s.write(rpcResponse{JSONRPC: "2.0", ID: normalizeID(id), Result: result})
}

func (s *Server) respondError(id json.RawMessage, code int, message string, data any) {
	s.write(rpcResponse{JSONRPC: "2.0", ID: normalizeID(id), Error: &rpcError{Code: code, Message: message, Data: data}})
}

func normalizeID(id json.RawMessage) json.RawMessage {
	if len(id) == 0 {
		return json.RawMessage("null")
	}
	return id
}

func (s *Server) write(resp rpcResponse) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	enc := json.NewEncoder(s.out)
	if err := enc.Encode(resp); err != nil {
		s.logger.Error("failed to write response", "error", err)
	}
}
