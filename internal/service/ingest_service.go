package service

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/zinister/mentor/internal/chunker"
	"github.com/zinister/mentor/internal/config"
	"github.com/zinister/mentor/internal/domain"
	"github.com/zinister/mentor/internal/loader"
	"go.uber.org/zap"
)

// IngestService handles document uploads and knowledge store rebuilds.
type IngestService struct {
	cfg       *config.Config
	knowledge *KnowledgeService
	logger    *zap.Logger
}

// NewIngestService creates a new ingest service
func NewIngestService(cfg *config.Config, knowledge *KnowledgeService, logger *zap.Logger) *IngestService {
	return &IngestService{
		cfg:       cfg,
		knowledge: knowledge,
		logger:    logger,
	}
}

// IndexFolder walks dir recursively, chunks every readable file, and upserts
// the chunks under ids of the form prefix/relpath_index. Unreadable or
// undecodable files are recorded as skipped and never abort the rest. An
// absent directory yields a zero result.
func (s *IngestService) IndexFolder(ctx context.Context, dir, prefix string) (domain.IndexResult, error) {
	var result domain.IndexResult

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return result, nil
	}

	var pending []domain.Chunk
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			result.Skipped = append(result.Skipped, domain.SkippedFile{Path: path, Reason: err.Error()})
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		text, err := loader.Load(path)
		if err != nil {
			s.logger.Warn("skipping unreadable file", zap.String("path", path), zap.Error(err))
			result.Skipped = append(result.Skipped, domain.SkippedFile{Path: path, Reason: err.Error()})
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = d.Name()
		}
		name := filepath.ToSlash(rel)

		for i, piece := range chunker.Split(text, s.cfg.RAG.ChunkSize) {
			pending = append(pending, domain.Chunk{
				ID:      fmt.Sprintf("%s/%s_%d", prefix, name, i),
				Content: piece,
			})
		}
		return nil
	})
	if walkErr != nil {
		return result, fmt.Errorf("walking %s: %w", dir, walkErr)
	}

	if err := s.knowledge.Upsert(ctx, pending); err != nil {
		return result, fmt.Errorf("indexing %s: %w", dir, err)
	}
	result.ChunkCount = len(pending)
	return result, nil
}

// Reindex rebuilds the knowledge store wholesale: drop everything, then
// index the seed directory (if present) and the upload directory (created
// if absent). Safe to invoke at any time; unchanged sources yield the same
// store contents.
func (s *IngestService) Reindex(ctx context.Context) (domain.IndexResult, error) {
	var result domain.IndexResult

	if err := s.knowledge.DeleteAll(ctx); err != nil {
		return result, fmt.Errorf("clearing knowledge store: %w", err)
	}

	seedResult, err := s.IndexFolder(ctx, s.cfg.Storage.SeedDir, domain.OriginSeed)
	result.Merge(seedResult)
	if err != nil {
		return result, err
	}

	if err := os.MkdirAll(s.cfg.Storage.UploadDir, 0755); err != nil {
		return result, fmt.Errorf("creating upload directory: %w", err)
	}
	uploadResult, err := s.IndexFolder(ctx, s.cfg.Storage.UploadDir, domain.OriginUpload)
	result.Merge(uploadResult)
	if err != nil {
		return result, err
	}

	s.logger.Info("reindex complete",
		zap.Int("chunks", result.ChunkCount),
		zap.Int("skipped", len(result.Skipped)),
	)
	return result, nil
}

// SaveUpload stores an uploaded file in the upload directory under its
// original (sanitized) name. Only plain text, markdown and PDF are accepted.
func (s *IngestService) SaveUpload(ctx context.Context, file *multipart.FileHeader) (*domain.UploadedDocument, error) {
	fileType := loader.DetectFileType(file.Filename)
	if !loader.IsSupported(fileType) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, fileType)
	}

	// Base name only: uploads must never escape the upload directory.
	name := filepath.Base(filepath.Clean(file.Filename))
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return nil, domain.ErrInvalidRequest
	}

	if err := os.MkdirAll(s.cfg.Storage.UploadDir, 0755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("opening uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.cfg.Storage.UploadDir, name))
	if err != nil {
		return nil, fmt.Errorf("creating upload file: %w", err)
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		return nil, fmt.Errorf("saving upload: %w", err)
	}

	s.logger.Info("upload saved", zap.String("filename", name), zap.Int64("size", size))
	return &domain.UploadedDocument{Filename: name, Size: size}, nil
}

// ClearUploads removes every uploaded file. Seed documents are untouched.
func (s *IngestService) ClearUploads(ctx context.Context) error {
	entries, err := os.ReadDir(s.cfg.Storage.UploadDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading upload directory: %w", err)
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(s.cfg.Storage.UploadDir, e.Name())); err != nil {
			return fmt.Errorf("removing upload %s: %w", e.Name(), err)
		}
	}
	return nil
}

// CountUploads returns the number of files currently in the upload directory.
func (s *IngestService) CountUploads() int {
	entries, err := os.ReadDir(s.cfg.Storage.UploadDir)
	if err != nil {
		return 0
	}
	count := 0
	for _, e := range entries {
		if !e.IsDir() {
			count++
		}
	}
	return count
}
