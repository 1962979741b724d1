// Package content talks to generative AI services. A Provider wraps one
// vendor SDK (Gemini, OpenAI or Anthropic); the Client builds the prompts for
// definitions, illustrations, stories and speech and applies the fallback
// rules of each operation. Decorators add a vendor fallback, an on-disk
// speech cache and a circuit breaker.
package content
