package domain

// Origin tags for indexed documents. Seed documents ship with the
// deployment; uploads arrive at runtime and may be cleared.
const (
	OriginSeed   = "seed"
	OriginUpload = "upload"
)

// Chunk is a fixed-length piece of a document queued for the knowledge store.
// The ID is deterministic (origin/relative-path_index) so re-indexing the
// same tree overwrites rather than duplicates.
type Chunk struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// StoredChunk is a knowledge store entry with its embedding vector.
type StoredChunk struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Embedding []float64 `json:"embedding"`
}

// SkippedFile records a file the indexer could not read or decode.
// Skips are reported, not swallowed, so callers can log them.
type SkippedFile struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// IndexResult is the outcome of indexing one source directory.
type IndexResult struct {
	ChunkCount int           `json:"chunk_count"`
	Skipped    []SkippedFile `json:"skipped,omitempty"`
}

// Merge folds another result into this one.
func (r *IndexResult) Merge(other IndexResult) {
	r.ChunkCount += other.ChunkCount
	r.Skipped = append(r.Skipped, other.Skipped...)
}

// UploadedDocument describes a file accepted into the upload directory.
type UploadedDocument struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}
