package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"blog-platform/logging"
	"blog-platform/models"
	"blog-platform/storage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/xid"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var allowedImageExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type UploadService interface {
	UploadImage(ctx context.Context, file *multipart.FileHeader) (*models.UploadedFile, error)
}

type uploadService struct {
	store   storage.Store
	maxSize int64
	logger  *logging.Logger
}

func NewUploadService(store storage.Store, maxSize int64, logger *logging.Logger) UploadService {
	return &uploadService{store: store, maxSize: maxSize, logger: logger.Named("upload")}
}

// UploadImage stores an image whose content, not its declared type, is one
// of jpeg, png, gif or webp.
func (s *uploadService) UploadImage(ctx context.Context, file *multipart.FileHeader) (*models.UploadedFile, error) {
	if file == nil {
		return nil, models.InvalidInput("image", "No file was uploaded")
	}
	if file.Size > s.maxSize {
		return nil, models.InvalidInput("image", fmt.Sprintf("File too large. Maximum size: %dMB", s.maxSize/(1024*1024)))
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExtensions[ext] {
		return nil, models.InvalidInput("image", "File type not allowed. Use only: JPEG, PNG, GIF, WebP")
	}

	src, err := file.Open()
	if err != nil {
		return nil, models.InvalidInput("image", "Uploaded file could not be read")
	}
	defer src.Close()

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return nil, models.InvalidInput("image", "Uploaded file could not be read")
	}
	contentType := strings.SplitN(mtype.String(), ";", 2)[0]
	if !allowedImageTypes[contentType] {
		return nil, models.InvalidInput("image", "File type not allowed. Use only: JPEG, PNG, GIF, WebP")
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, models.Internal("upload.rewind", err)
	}

	key := "image-" + xid.New().String() + ext
	url, err := s.store.Put(ctx, key, src, file.Size, contentType)
	if err != nil {
		return nil, models.Internal("upload.put", err)
	}

	s.logger.WithContext(ctx).Info("image uploaded", "key", key, "size", file.Size)
	return &models.UploadedFile{
		Filename:     key,
		OriginalName: file.Filename,
		MimeType:     contentType,
		Size:         file.Size,
		URL:          url,
	}, nil
}
