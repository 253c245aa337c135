package file

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Import for PNG decoding support
	"io"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/storage"
	"github.com/cmlabs-hris/hris-dashboard-go/internal/pkg/validator"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

const (
	avatarMaxSide    = 512
	avatarQuality    = 85
	maxAvatarBytes   = 5 << 20
	contentTypePDF   = "application/pdf"
	contentTypeXLSX  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeImage = "image/jpeg"
)

type FileService interface {
	// UploadAvatar stores a resized JPEG and returns its public URL
	UploadAvatar(ctx context.Context, employeeID int64, file io.Reader, filename string) (string, error)

	// SavePayslip archives a rendered payslip PDF and returns the stored path
	SavePayslip(ctx context.Context, employeeID int64, payslipID string, pdf []byte) (string, error)

	// SaveExport archives a spreadsheet export and returns the stored path
	SaveExport(ctx context.Context, kind string, xlsx []byte) (string, error)

	DeleteFile(ctx context.Context, path string) error
	GetFileURL(ctx context.Context, path string) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// UploadAvatar implements FileService.
func (s *fileServiceImpl) UploadAvatar(ctx context.Context, employeeID int64, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !validator.IsInSlice(ext, []string{".jpg", ".jpeg", ".png"}) {
		return "", validator.FieldError("avatar", "only jpg, jpeg, png allowed")
	}

	buffer, err := io.ReadAll(io.LimitReader(file, maxAvatarBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if len(buffer) > maxAvatarBytes {
		return "", validator.FieldError("avatar", "avatar must not exceed 5MB")
	}

	normalized, err := normalizeAvatar(buffer)
	if err != nil {
		return "", validator.FieldError("avatar", "avatar is not a readable image")
	}

	// Always output as JPEG after normalization
	id := strconv.FormatInt(employeeID, 10)
	p := path.Join("avatars", id, fmt.Sprintf("%s-%s.jpg", id, uuid.New().String()))

	uploaded, err := s.storage.Upload(ctx, bytes.NewReader(normalized), p, contentTypeImage)
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	return s.storage.GetURL(ctx, uploaded)
}

// SavePayslip implements FileService.
func (s *fileServiceImpl) SavePayslip(ctx context.Context, employeeID int64, payslipID string, pdf []byte) (string, error) {
	p := path.Join("payslips", strconv.FormatInt(employeeID, 10), payslipID+".pdf")

	uploaded, err := s.storage.Upload(ctx, bytes.NewReader(pdf), p, contentTypePDF)
	if err != nil {
		return "", fmt.Errorf("failed to archive payslip: %w", err)
	}
	return uploaded, nil
}

// SaveExport implements FileService.
func (s *fileServiceImpl) SaveExport(ctx context.Context, kind string, xlsx []byte) (string, error) {
	p := path.Join("exports", kind, uuid.New().String()+".xlsx")

	uploaded, err := s.storage.Upload(ctx, bytes.NewReader(xlsx), p, contentTypeXLSX)
	if err != nil {
		return "", fmt.Errorf("failed to archive %s export: %w", kind, err)
	}
	return uploaded, nil
}

// DeleteFile deletes a file
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

// GetFileURL generates URL to access file
func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string) (string, error) {
	return s.storage.GetURL(ctx, path)
}

// normalizeAvatar decodes a jpeg/png, scales it so the longest side is at
// most avatarMaxSide and re-encodes it as JPEG.
func normalizeAvatar(buffer []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width > avatarMaxSide || height > avatarMaxSide {
		if width >= height {
			height = height * avatarMaxSide / width
			width = avatarMaxSide
		} else {
			width = width * avatarMaxSide / height
			height = avatarMaxSide
		}
		img = resizeImage(img, max(width, 1), max(height, 1))
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: avatarQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// resizeImage resizes an image to the specified dimensions using high-quality interpolation
func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	// Use CatmullRom for high-quality downscaling
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
