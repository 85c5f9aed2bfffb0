// Package assistant defines the narrow capability contract for the external
// text/vision generation service and its implementations.
//
// The contract has exactly two operations: suggest alt text for an image
// and suggest replacement text for a link. Both may fail (timeout, service
// unavailable, empty response) and both are advisory: the remediation
// planner validates every suggestion and falls back to a deterministic
// placeholder rather than trusting the service blindly.
//
// Design decision: The engine's correctness must not depend on network or
// model availability, so the package ships a deterministic Stub alongside
// the Ollama-backed client. Tests and offline runs use the stub.
package assistant
