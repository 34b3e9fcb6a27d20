// Package llm provides a chat-completion client for OpenAI-compatible endpoints.
//
// Complete sends one system and one user message and classifies the reply:
//
//   - Success when choices[0].message.content is present.
//   - Failure for any other well-formed JSON body, whatever the HTTP status.
//     Failure.Display pretty-prints the payload so API errors reach the user
//     verbatim.
//   - An error for transport failures and bodies that are not JSON.
//
// Requests are not retried. The HTTP timeout comes from Config.TimeoutSeconds
// (120s when unset) and context cancellation aborts an in-flight request.
//
// HealthCheck sends a minimal prompt and succeeds only on the Success shape;
// `capsum check --llm` uses it to verify the key and model.
package llm
