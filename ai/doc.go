// Package ai defines the provider contracts for optional dense ranking:
// text embedding and image description. The engine treats providers as an
// enhancement; any provider failure degrades ranking and indexing to the
// sparse TF-IDF path rather than failing the operation.
//
// The openai subpackage implements the contracts against OpenAI-compatible
// APIs; the mock subpackage provides deterministic implementations for
// tests.
package ai
