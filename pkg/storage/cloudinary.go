// Package storage wraps Cloudinary for CV PDF uploads. Only the pointer
// (public_id) and delivery URL are kept in the database; file retention after
// account deletion is handled by a separate process, not this service.
package storage

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

var (
	ErrMissingCredentials = errors.New("cloudinary credentials are missing")
	ErrFileTooLarge       = errors.New("file size exceeds limit")
	ErrInvalidFileType    = errors.New("only PDF files are accepted")
	ErrUploadFailed       = errors.New("failed to upload file")
)

// Config holds upload constraints and destination folder.
type Config struct {
	CloudName     string
	APIKey        string
	APISecret     string
	Folder        string
	MaxFileSize   int64
	UploadTimeout time.Duration
}

// CVStore uploads candidate CV PDFs.
type CVStore struct {
	client *cloudinary.Cloudinary
	cfg    Config
	logger *zap.Logger
}

// UploadResult is what the caller persists alongside the CV row.
type UploadResult struct {
	URL      string
	PublicID string
}

func NewCVStore(cfg Config, logger *zap.Logger) (*CVStore, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, ErrMissingCredentials
	}
	if cfg.MaxFileSize == 0 {
		cfg.MaxFileSize = 10 * 1024 * 1024
	}
	if cfg.UploadTimeout == 0 {
		cfg.UploadTimeout = 30 * time.Second
	}
	if cfg.Folder == "" {
		cfg.Folder = "cv-files"
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &CVStore{client: cld, cfg: cfg, logger: logger}, nil
}

// UploadPDF validates and uploads one CV file.
func (s *CVStore) UploadPDF(ctx context.Context, file *multipart.FileHeader) (*UploadResult, error) {
	if file.Size > s.cfg.MaxFileSize {
		return nil, ErrFileTooLarge
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	contentType := file.Header.Get("Content-Type")
	if ext != ".pdf" || (contentType != "" && contentType != "application/pdf") {
		return nil, ErrInvalidFileType
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("unable to open file: %w", err)
	}
	defer src.Close()

	ctx, cancel := context.WithTimeout(ctx, s.cfg.UploadTimeout)
	defer cancel()

	start := time.Now()
	result, err := s.client.Upload.Upload(ctx, src, uploader.UploadParams{
		Folder:       s.cfg.Folder,
		ResourceType: "raw",
	})
	if err != nil {
		s.logger.Error("cv upload failed", zap.String("filename", file.Filename), zap.Error(err))
		return nil, ErrUploadFailed
	}

	s.logger.Info("cv uploaded",
		zap.String("public_id", result.PublicID),
		zap.Duration("took", time.Since(start)),
	)
	return &UploadResult{URL: result.SecureURL, PublicID: result.PublicID}, nil
}
