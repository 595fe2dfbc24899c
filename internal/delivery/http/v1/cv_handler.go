package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/storage"
)

type CVHandler struct {
	cvUC    domain.CVUsecase
	cvStore *storage.CVStore
}

// NewCVHandler registers candidate CV routes. cvStore may be nil when file
// storage is not configured; the upload endpoint then rejects requests.
func NewCVHandler(candidate *gin.RouterGroup, cvUC domain.CVUsecase, cvStore *storage.CVStore) {
	handler := &CVHandler{cvUC: cvUC, cvStore: cvStore}

	cvs := candidate.Group("/cvs")
	{
		cvs.GET("", handler.List)
		cvs.POST("", handler.CreateGenerated)
		cvs.POST("/upload", middleware.RateLimitMiddleware(middleware.UploadRateLimitConfig()), handler.Upload)
		cvs.DELETE("/:id", handler.Delete)
	}
}

// CreateCVRequest carries a generated CV stored as structured JSON.
type CreateCVRequest struct {
	Name   string          `json:"name" binding:"required"`
	CvJSON json.RawMessage `json:"cv_json" binding:"required"`
}

// List godoc
// @Summary      List my CVs
// @Tags         cvs
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.CandidateCV}
// @Router       /cvs [get]
// @Security     BearerAuth
func (h *CVHandler) List(c *gin.Context) {
	cvs, err := h.cvUC.List(c.Request.Context(), sessionUserID(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "CVs retrieved", cvs)
}

// CreateGenerated godoc
// @Summary      Save a generated CV
// @Description  Store a CV as structured JSON without a file
// @Tags         cvs
// @Accept       json
// @Produce      json
// @Param        body  body      CreateCVRequest  true  "CV data"
// @Success      201  {object}  response.Response{data=domain.CandidateCV}
// @Failure      400  {object}  response.Response
// @Router       /cvs [post]
// @Security     BearerAuth
func (h *CVHandler) CreateGenerated(c *gin.Context) {
	var req CreateCVRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	cv, err := h.cvUC.CreateGenerated(c.Request.Context(), sessionUserID(c), req.Name, req.CvJSON)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "CV saved", cv)
}

// Upload godoc
// @Summary      Upload a CV file
// @Description  Multipart upload of a PDF; the file goes to external storage
// @Description  and a pointer record is kept locally
// @Tags         cvs
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file    true   "PDF file"
// @Param        name  formData  string  false  "Display name, defaults to the filename"
// @Success      201  {object}  response.Response{data=domain.CandidateCV}
// @Failure      400  {object}  response.Response
// @Router       /cvs/upload [post]
// @Security     BearerAuth
func (h *CVHandler) Upload(c *gin.Context) {
	if h.cvStore == nil {
		c.Error(apperror.BadRequest("File uploads are not available"))
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.BadRequest("A file field is required"))
		return
	}

	name := c.PostForm("name")
	if name == "" {
		name = file.Filename
	}

	result, err := h.cvStore.UploadPDF(c.Request.Context(), file)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrFileTooLarge):
			c.Error(apperror.BadRequest("File size exceeds the upload limit"))
		case errors.Is(err, storage.ErrInvalidFileType):
			c.Error(apperror.BadRequest("Only PDF files are accepted"))
		default:
			c.Error(apperror.Internal(err))
		}
		return
	}

	cv, err := h.cvUC.AttachUploaded(c.Request.Context(), sessionUserID(c), name, result.URL, result.PublicID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "CV uploaded", cv)
}

// Delete godoc
// @Summary      Delete my CV
// @Description  Soft delete; applications that reference the CV keep working
// @Tags         cvs
// @Produce      json
// @Param        id   path      int  true  "CV ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /cvs/{id} [delete]
// @Security     BearerAuth
func (h *CVHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.cvUC.Delete(c.Request.Context(), sessionUserID(c), id); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "CV deleted", nil)
}
