/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

// MaxBatchSize is the hard per-request ceiling the backing store imposes
// on atomic batches. Chunk size requests above it are clamped, never
// rejected.
const MaxBatchSize = 100

// BatchOptions configures batch write behavior
type BatchOptions struct {
	ChunkSize     int  // Operations per chunk (default and max: MaxBatchSize)
	IgnoreVersion bool // Override every record's version tag with VersionTagAny
}

// BatchOption is a functional option for configuring batch operations
type BatchOption func(*BatchOptions)

// DefaultBatchOptions returns default batch options
func DefaultBatchOptions() BatchOptions {
	return BatchOptions{
		ChunkSize: MaxBatchSize,
	}
}

// WithChunkSize requests a smaller chunk size. Values above MaxBatchSize
// are silently clamped; zero or negative values fall back to the default.
func WithChunkSize(size int) BatchOption {
	return func(opts *BatchOptions) {
		opts.ChunkSize = size
	}
}

// WithIgnoreVersion makes every operation in the batch carry the wildcard
// version tag, bypassing optimistic concurrency checks.
func WithIgnoreVersion() BatchOption {
	return func(opts *BatchOptions) {
		opts.IgnoreVersion = true
	}
}
