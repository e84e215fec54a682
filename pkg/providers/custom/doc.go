// Package custom implements the Custom provider: a back-end for
// local/self-hosted inference servers (Ollama, vLLM, LM Studio, and any
// OpenAI-compatible endpoint). It accepts registry-known custom models,
// names carrying an explicit local indicator, and vendor-prefix-free
// names, but rejects names that look like cloud models so those
// requests fall through to the Aggregator when both are configured.
package custom
