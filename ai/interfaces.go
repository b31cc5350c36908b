package ai

import "context"

// Embedder generates vector embeddings from text for dense similarity
// ranking. Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a
	// batch. The returned slice contains embeddings in the same order as
	// the input texts. Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// VisionDescriber produces a textual description of an image. The
// description is fed back into an Embedder so image files can participate
// in dense ranking. Implementations must be thread-safe.
type VisionDescriber interface {
	// Describe analyzes an image and returns a short textual description.
	// contextText carries surrounding hints (file name, folder) the model
	// may use to disambiguate.
	Describe(ctx context.Context, image []byte, mimeType, contextText string) (string, error)
}

// Provider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages Embedder and
// VisionDescriber instances, ensuring they share configuration and
// resources appropriately.
//
// Provider failures never surface as ranking failures: callers catch them
// at the boundary and degrade to the sparse TF-IDF path.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// VisionDescriber returns the image description service.
	// The returned VisionDescriber is safe for concurrent use.
	VisionDescriber() VisionDescriber

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
