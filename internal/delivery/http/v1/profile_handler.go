package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

type ProfileHandler struct {
	candidateUC domain.CandidateUsecase
	employerUC  domain.EmployerUsecase
}

// NewProfileHandler registers profile routes for both roles.
func NewProfileHandler(candidate, employer *gin.RouterGroup, candidateUC domain.CandidateUsecase, employerUC domain.EmployerUsecase) {
	handler := &ProfileHandler{candidateUC: candidateUC, employerUC: employerUC}

	candidate.GET("/profile", handler.GetCandidateProfile)
	candidate.PUT("/profile", handler.UpdateCandidateProfile)
	employer.GET("/profile", handler.GetEmployerProfile)
	employer.PUT("/profile", handler.UpdateEmployerProfile)
}

// GetCandidateProfile godoc
// @Summary      Get my candidate profile
// @Tags         profiles
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.CandidateProfile}
// @Failure      404  {object}  response.Response
// @Router       /candidates/profile [get]
// @Security     BearerAuth
func (h *ProfileHandler) GetCandidateProfile(c *gin.Context) {
	profile, err := h.candidateUC.GetProfile(c.Request.Context(), sessionUserID(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved", profile)
}

// UpdateCandidateProfile godoc
// @Summary      Update my candidate profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        body  body      domain.CandidateProfile  true  "Profile data"
// @Success      200  {object}  response.Response{data=domain.CandidateProfile}
// @Failure      400  {object}  response.Response
// @Router       /candidates/profile [put]
// @Security     BearerAuth
func (h *ProfileHandler) UpdateCandidateProfile(c *gin.Context) {
	var profile domain.CandidateProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	if err := h.candidateUC.UpdateProfile(c.Request.Context(), sessionUserID(c), &profile); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated", profile)
}

// GetEmployerProfile godoc
// @Summary      Get my employer profile
// @Tags         profiles
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.EmployerProfile}
// @Failure      404  {object}  response.Response
// @Router       /employers/profile [get]
// @Security     BearerAuth
func (h *ProfileHandler) GetEmployerProfile(c *gin.Context) {
	profile, err := h.employerUC.GetProfile(c.Request.Context(), sessionUserID(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved", profile)
}

// UpdateEmployerProfile godoc
// @Summary      Update my employer profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        body  body      domain.EmployerProfile  true  "Profile data"
// @Success      200  {object}  response.Response{data=domain.EmployerProfile}
// @Failure      400  {object}  response.Response
// @Router       /employers/profile [put]
// @Security     BearerAuth
func (h *ProfileHandler) UpdateEmployerProfile(c *gin.Context) {
	var profile domain.EmployerProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	if err := h.employerUC.UpdateProfile(c.Request.Context(), sessionUserID(c), &profile); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated", profile)
}
