package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewApplicationHandler registers candidate and employer application routes.
func NewApplicationHandler(candidate, employer *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	applications := candidate.Group("/applications")
	{
		applications.POST("", handler.Submit)
		applications.GET("", handler.List)
		applications.GET("/stats/summary", handler.Stats)
		applications.GET("/:id", handler.Get)
		applications.PUT("/:id", handler.Update)
		applications.DELETE("/:id", handler.Delete)
		applications.PUT("/:id/answers", handler.ReplaceAnswers)
		applications.GET("/:id/questions", handler.Questions)
	}

	employer.GET("/offers/:offerId/applications", handler.ListForOffer)
	employer.GET("/offers/:offerId/applications/export", handler.ExportForOffer)
	employer.PATCH("/applications/:id", handler.Decide)
	employer.PUT("/applications/:id/response", handler.Respond)
}

// Submit godoc
// @Summary      Submit an application
// @Description  Apply to a job offer with a CV and answers to its recruitment questions
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        body  body      domain.SubmitApplicationInput  true  "Application data"
// @Success      201  {object}  response.Response{data=domain.ApplicationAggregate}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Submit(c *gin.Context) {
	var input domain.SubmitApplicationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	agg, err := h.applicationUC.Submit(c.Request.Context(), sessionUserID(c), input)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted successfully", agg)
}

// List godoc
// @Summary      List my applications
// @Description  Paginated list of the current candidate's applications, optionally filtered by status
// @Tags         applications
// @Produce      json
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size"
// @Param        status  query     string  false  "Status filter (PENDING|ACCEPTED|REJECTED|CANCELED)"
// @Success      200  {object}  response.Response{data=response.Paginated}
// @Failure      400  {object}  response.Response
// @Router       /applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) List(c *gin.Context) {
	page, limit := pageParams(c)
	status := c.Query("status")

	apps, total, err := h.applicationUC.List(c.Request.Context(), sessionUserID(c), page, limit, status)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", response.Paginated{
		Items:      apps,
		Pagination: response.Pagination{Page: page, PageSize: limit, Total: total},
	})
}

// Get godoc
// @Summary      Get one application
// @Description  Full application detail: offer, CV, answers, employer response and meetings
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Application ID"
// @Success      200  {object}  response.Response{data=domain.ApplicationAggregate}
// @Failure      404  {object}  response.Response
// @Router       /applications/{id} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	agg, err := h.applicationUC.Get(c.Request.Context(), sessionUserID(c), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application retrieved", agg)
}

// UpdateApplicationRequest carries a candidate's partial update. The only
// status a candidate may set is CANCELED.
type UpdateApplicationRequest struct {
	Status  *string `json:"status,omitempty"`
	Message *string `json:"message,omitempty"`
}

// Update godoc
// @Summary      Update my application
// @Description  Cancel a pending application or edit its message
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      int                       true  "Application ID"
// @Param        body  body      UpdateApplicationRequest  true  "Fields to change"
// @Success      200  {object}  response.Response{data=domain.ApplicationAggregate}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/{id} [put]
// @Security     BearerAuth
func (h *ApplicationHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req UpdateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	agg, err := h.applicationUC.CandidateUpdate(c.Request.Context(), sessionUserID(c), id, req.Status, req.Message)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application updated", agg)
}

// Delete godoc
// @Summary      Delete my application
// @Description  Remove an application and its answers. Allowed only while PENDING or CANCELED.
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Application ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/{id} [delete]
// @Security     BearerAuth
func (h *ApplicationHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.applicationUC.Delete(c.Request.Context(), sessionUserID(c), id); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application deleted", nil)
}

// Stats godoc
// @Summary      Application stats
// @Description  Counts of my applications grouped by status
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.ApplicationStats}
// @Router       /applications/stats/summary [get]
// @Security     BearerAuth
func (h *ApplicationHandler) Stats(c *gin.Context) {
	stats, err := h.applicationUC.Stats(c.Request.Context(), sessionUserID(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Stats retrieved", stats)
}

// ReplaceAnswersRequest carries the full new answer set.
type ReplaceAnswersRequest struct {
	Answers []domain.AnswerInput `json:"answers" binding:"required"`
}

// ReplaceAnswers godoc
// @Summary      Replace my answers
// @Description  Atomically replace all recruitment question answers. Allowed only while PENDING.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      int                    true  "Application ID"
// @Param        body  body      ReplaceAnswersRequest  true  "New answers"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/{id}/answers [put]
// @Security     BearerAuth
func (h *ApplicationHandler) ReplaceAnswers(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req ReplaceAnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	if err := h.applicationUC.ReplaceAnswers(c.Request.Context(), sessionUserID(c), id, req.Answers); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Answers updated", nil)
}

// Questions godoc
// @Summary      Application questions
// @Description  The offer's recruitment questions with my answers and whether they are still editable
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Application ID"
// @Success      200  {object}  response.Response{data=domain.ApplicationQuestions}
// @Failure      404  {object}  response.Response
// @Router       /applications/{id}/questions [get]
// @Security     BearerAuth
func (h *ApplicationHandler) Questions(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	questions, err := h.applicationUC.Questions(c.Request.Context(), sessionUserID(c), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Questions retrieved", questions)
}

// ListForOffer godoc
// @Summary      List applications for my offer
// @Tags         employer-applications
// @Produce      json
// @Param        offerId  path      int  true  "Job offer ID"
// @Success      200  {object}  response.Response{data=[]domain.Application}
// @Failure      404  {object}  response.Response
// @Router       /employers/offers/{offerId}/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListForOffer(c *gin.Context) {
	offerID, err := pathID(c, "offerId")
	if err != nil {
		c.Error(err)
		return
	}

	apps, err := h.applicationUC.ListForOffer(c.Request.Context(), sessionUserID(c), offerID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", apps)
}

// DecideRequest carries the employer's decision.
type DecideRequest struct {
	Status string `json:"status" binding:"required,oneof=ACCEPTED REJECTED"`
}

// Decide godoc
// @Summary      Decide on an application
// @Description  Accept or reject a pending application to one of my offers
// @Tags         employer-applications
// @Accept       json
// @Produce      json
// @Param        id    path      int            true  "Application ID"
// @Param        body  body      DecideRequest  true  "Decision"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /employers/applications/{id} [patch]
// @Security     BearerAuth
func (h *ApplicationHandler) Decide(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req DecideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Status must be ACCEPTED or REJECTED"))
		return
	}

	if err := h.applicationUC.Decide(c.Request.Context(), sessionUserID(c), id, domain.ApplicationStatus(req.Status)); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application status updated", nil)
}

// RespondRequest carries the employer's free-text reply.
type RespondRequest struct {
	Response string `json:"response" binding:"required"`
}

// Respond godoc
// @Summary      Respond to an application
// @Description  Create or update the free-text employer response
// @Tags         employer-applications
// @Accept       json
// @Produce      json
// @Param        id    path      int             true  "Application ID"
// @Param        body  body      RespondRequest  true  "Response text"
// @Success      200  {object}  response.Response{data=domain.ApplicationResponse}
// @Failure      404  {object}  response.Response
// @Router       /employers/applications/{id}/response [put]
// @Security     BearerAuth
func (h *ApplicationHandler) Respond(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	resp, err := h.applicationUC.Respond(c.Request.Context(), sessionUserID(c), id, req.Response)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Response saved", resp)
}

// ExportForOffer godoc
// @Summary      Export applications as XLSX
// @Description  Download every application to one of my offers as a spreadsheet
// @Tags         employer-applications
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        offerId  path  int  true  "Job offer ID"
// @Success      200  {file}  binary
// @Failure      404  {object}  response.Response
// @Router       /employers/offers/{offerId}/applications/export [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ExportForOffer(c *gin.Context) {
	offerID, err := pathID(c, "offerId")
	if err != nil {
		c.Error(err)
		return
	}

	data, err := h.applicationUC.ExportForOffer(c.Request.Context(), sessionUserID(c), offerID)
	if err != nil {
		c.Error(err)
		return
	}

	filename := fmt.Sprintf("applications-%d-%s.xlsx", offerID, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
