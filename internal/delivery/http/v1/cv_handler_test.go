package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"go-jobboard-backend/internal/delivery/http/middleware"
	v1 "go-jobboard-backend/internal/delivery/http/v1"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()
}

type MockCVUsecase struct {
	mock.Mock
}

func (m *MockCVUsecase) CreateGenerated(ctx context.Context, userID int64, name string, cvJSON json.RawMessage) (*domain.CandidateCV, error) {
	args := m.Called(ctx, userID, name, cvJSON)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateCV), args.Error(1)
}
func (m *MockCVUsecase) AttachUploaded(ctx context.Context, userID int64, name, cvURL, publicID string) (*domain.CandidateCV, error) {
	args := m.Called(ctx, userID, name, cvURL, publicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateCV), args.Error(1)
}
func (m *MockCVUsecase) List(ctx context.Context, userID int64) ([]domain.CandidateCV, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CandidateCV), args.Error(1)
}
func (m *MockCVUsecase) Delete(ctx context.Context, userID, id int64) error {
	return m.Called(ctx, userID, id).Error(0)
}

// uploadRouter builds the CV routes behind the error middleware with a fixed
// session user, the way the real router assembles them.
func uploadRouter(cvUC domain.CVUsecase, store *storage.CVStore) *gin.Engine {
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	grp := r.Group("", func(c *gin.Context) {
		c.Set(string(domain.KeyUserID), int64(1))
	})
	v1.NewCVHandler(grp, cvUC, store)
	return r
}

func multipartFile(t *testing.T, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	hdr.Set("Content-Type", contentType)
	part, err := w.CreatePart(hdr)
	assert.NoError(t, err)
	_, err = part.Write(content)
	assert.NoError(t, err)
	assert.NoError(t, w.Close())
	return &body, w.FormDataContentType()
}

func TestUploadCVValidation(t *testing.T) {
	store, err := storage.NewCVStore(storage.Config{
		CloudName:   "demo",
		APIKey:      "key",
		APISecret:   "secret",
		MaxFileSize: 64,
	}, zap.NewNop())
	assert.NoError(t, err)

	t.Run("Should reject oversized files with 400", func(t *testing.T) {
		cvUC := new(MockCVUsecase)
		r := uploadRouter(cvUC, store)

		body, contentType := multipartFile(t, "cv.pdf", "application/pdf", bytes.Repeat([]byte("a"), 128))
		req := httptest.NewRequest(http.MethodPost, "/cvs/upload", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "upload limit")
		cvUC.AssertNotCalled(t, "AttachUploaded", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should reject non-PDF files with 400", func(t *testing.T) {
		cvUC := new(MockCVUsecase)
		r := uploadRouter(cvUC, store)

		body, contentType := multipartFile(t, "cv.txt", "text/plain", []byte("plain text"))
		req := httptest.NewRequest(http.MethodPost, "/cvs/upload", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "PDF")
		cvUC.AssertNotCalled(t, "AttachUploaded", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should reject uploads when storage is not configured", func(t *testing.T) {
		cvUC := new(MockCVUsecase)
		r := uploadRouter(cvUC, nil)

		body, contentType := multipartFile(t, "cv.pdf", "application/pdf", []byte("ok"))
		req := httptest.NewRequest(http.MethodPost, "/cvs/upload", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
