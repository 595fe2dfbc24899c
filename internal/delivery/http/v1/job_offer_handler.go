package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

type JobOfferHandler struct {
	jobOfferUC domain.JobOfferUsecase
}

// NewJobOfferHandler registers public browsing routes and employer
// offer-management routes.
func NewJobOfferHandler(public, employer *gin.RouterGroup, jobOfferUC domain.JobOfferUsecase) {
	handler := &JobOfferHandler{jobOfferUC: jobOfferUC}

	offers := public.Group("/offers")
	{
		offers.GET("", handler.ListActive)
		offers.GET("/:id", handler.Get)
	}

	mine := employer.Group("/offers")
	{
		mine.GET("", handler.ListMine)
		mine.POST("", handler.Create)
		mine.PUT("/:offerId", handler.Update)
		mine.DELETE("/:offerId", handler.Deactivate)
		mine.PUT("/:offerId/questions", handler.ReplaceQuestions)
		mine.PUT("/:offerId/test", handler.AttachTest)
		mine.GET("/:offerId/test", handler.GetTest)
	}
}

// OfferRequest carries offer create/update data.
type OfferRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description" binding:"required"`
	SalaryFrom  *float64  `json:"salary_from,omitempty"`
	SalaryTo    *float64  `json:"salary_to,omitempty"`
	ExpireDate  time.Time `json:"expire_date" binding:"required"`
}

// ListActive godoc
// @Summary      Browse job offers
// @Description  Public paginated list of active, unexpired offers
// @Tags         offers
// @Produce      json
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size"
// @Success      200  {object}  response.Response{data=response.Paginated}
// @Router       /offers [get]
func (h *JobOfferHandler) ListActive(c *gin.Context) {
	page, limit := pageParams(c)

	offers, total, err := h.jobOfferUC.ListActive(c.Request.Context(), page, limit)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Offers retrieved", response.Paginated{
		Items:      offers,
		Pagination: response.Pagination{Page: page, PageSize: limit, Total: total},
	})
}

// Get godoc
// @Summary      Get one job offer
// @Tags         offers
// @Produce      json
// @Param        id   path      int  true  "Offer ID"
// @Success      200  {object}  response.Response{data=domain.JobOffer}
// @Failure      404  {object}  response.Response
// @Router       /offers/{id} [get]
func (h *JobOfferHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	offer, err := h.jobOfferUC.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Offer retrieved", offer)
}

// ListMine godoc
// @Summary      List my job offers
// @Tags         employer-offers
// @Produce      json
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size"
// @Success      200  {object}  response.Response{data=response.Paginated}
// @Router       /employers/offers [get]
// @Security     BearerAuth
func (h *JobOfferHandler) ListMine(c *gin.Context) {
	page, limit := pageParams(c)

	offers, total, err := h.jobOfferUC.ListMine(c.Request.Context(), sessionUserID(c), page, limit)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Offers retrieved", response.Paginated{
		Items:      offers,
		Pagination: response.Pagination{Page: page, PageSize: limit, Total: total},
	})
}

// Create godoc
// @Summary      Publish a job offer
// @Tags         employer-offers
// @Accept       json
// @Produce      json
// @Param        body  body      OfferRequest  true  "Offer data"
// @Success      201  {object}  response.Response{data=domain.JobOffer}
// @Failure      400  {object}  response.Response
// @Router       /employers/offers [post]
// @Security     BearerAuth
func (h *JobOfferHandler) Create(c *gin.Context) {
	var req OfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	offer := &domain.JobOffer{
		Title:       req.Title,
		Description: req.Description,
		SalaryFrom:  req.SalaryFrom,
		SalaryTo:    req.SalaryTo,
		ExpireDate:  req.ExpireDate,
	}
	if err := h.jobOfferUC.Create(c.Request.Context(), sessionUserID(c), offer); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Offer published", offer)
}

// Update godoc
// @Summary      Update my job offer
// @Tags         employer-offers
// @Accept       json
// @Produce      json
// @Param        offerId  path      int           true  "Offer ID"
// @Param        body     body      OfferRequest  true  "Offer data"
// @Success      200  {object}  response.Response{data=domain.JobOffer}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /employers/offers/{offerId} [put]
// @Security     BearerAuth
func (h *JobOfferHandler) Update(c *gin.Context) {
	offerID, err := pathID(c, "offerId")
	if err != nil {
		c.Error(err)
		return
	}

	var req OfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	offer := &domain.JobOffer{
		ID:          offerID,
		Title:       req.Title,
		Description: req.Description,
		SalaryFrom:  req.SalaryFrom,
		SalaryTo:    req.SalaryTo,
		ExpireDate:  req.ExpireDate,
	}
	if err := h.jobOfferUC.Update(c.Request.Context(), sessionUserID(c), offer); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Offer updated", offer)
}

// Deactivate godoc
// @Summary      Close my job offer
// @Description  Deactivates the offer; existing applications are kept
// @Tags         employer-offers
// @Produce      json
// @Param        offerId  path      int  true  "Offer ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /employers/offers/{offerId} [delete]
// @Security     BearerAuth
func (h *JobOfferHandler) Deactivate(c *gin.Context) {
	offerID, err := pathID(c, "offerId")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.jobOfferUC.Deactivate(c.Request.Context(), sessionUserID(c), offerID); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Offer closed", nil)
}

// ReplaceQuestionsRequest carries the new recruitment question set.
type ReplaceQuestionsRequest struct {
	Questions []domain.RecruitmentQuestion `json:"questions" binding:"required"`
}

// ReplaceQuestions godoc
// @Summary      Replace recruitment questions
// @Description  Replaces the offer's question set. Questions that already have
// @Description  candidate answers are kept.
// @Tags         employer-offers
// @Accept       json
// @Produce      json
// @Param        offerId  path      int                      true  "Offer ID"
// @Param        body     body      ReplaceQuestionsRequest  true  "Questions"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /employers/offers/{offerId}/questions [put]
// @Security     BearerAuth
func (h *JobOfferHandler) ReplaceQuestions(c *gin.Context) {
	offerID, err := pathID(c, "offerId")
	if err != nil {
		c.Error(err)
		return
	}

	var req ReplaceQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	if err := h.jobOfferUC.ReplaceQuestions(c.Request.Context(), sessionUserID(c), offerID, req.Questions); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Questions updated", nil)
}

// AttachTest godoc
// @Summary      Attach a recruitment test
// @Description  Creates or replaces the offer's recruitment test
// @Tags         employer-offers
// @Accept       json
// @Produce      json
// @Param        offerId  path      int                            true  "Offer ID"
// @Param        body     body      domain.RecruitmentTestContent  true  "Test content"
// @Success      200  {object}  response.Response{data=domain.RecruitmentTest}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /employers/offers/{offerId}/test [put]
// @Security     BearerAuth
func (h *JobOfferHandler) AttachTest(c *gin.Context) {
	offerID, err := pathID(c, "offerId")
	if err != nil {
		c.Error(err)
		return
	}

	var content domain.RecruitmentTestContent
	if err := c.ShouldBindJSON(&content); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	test, err := h.jobOfferUC.AttachTest(c.Request.Context(), sessionUserID(c), offerID, content)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Test attached", test)
}

// GetTest godoc
// @Summary      Get the recruitment test
// @Description  Returns the offer's test including correct answers; owner only
// @Tags         employer-offers
// @Produce      json
// @Param        offerId  path      int  true  "Offer ID"
// @Success      200  {object}  response.Response{data=domain.RecruitmentTest}
// @Failure      404  {object}  response.Response
// @Router       /employers/offers/{offerId}/test [get]
// @Security     BearerAuth
func (h *JobOfferHandler) GetTest(c *gin.Context) {
	offerID, err := pathID(c, "offerId")
	if err != nil {
		c.Error(err)
		return
	}

	test, err := h.jobOfferUC.GetTest(c.Request.Context(), sessionUserID(c), offerID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Test retrieved", test)
}
