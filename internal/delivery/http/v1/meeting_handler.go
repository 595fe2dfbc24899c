package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

type MeetingHandler struct {
	meetingUC domain.MeetingUsecase
}

// NewMeetingHandler registers meeting routes. All of them are employer-only;
// ownership of the parent application's offer is checked in the usecase.
func NewMeetingHandler(employer *gin.RouterGroup, meetingUC domain.MeetingUsecase) {
	handler := &MeetingHandler{meetingUC: meetingUC}

	employer.POST("/applications/:id/meetings", handler.Create)
	meetings := employer.Group("/meetings")
	{
		meetings.GET("", handler.List)
		meetings.PUT("/:id", handler.Update)
		meetings.DELETE("/:id", handler.Delete)
	}
}

// CreateMeetingRequest carries a new meeting.
type CreateMeetingRequest struct {
	DateTime         time.Time `json:"date_time" binding:"required"`
	Type             string    `json:"type" binding:"required,oneof=ONLINE OFFLINE"`
	Contributors     *string   `json:"contributors,omitempty"`
	OnlineMeetingURL *string   `json:"online_meeting_url,omitempty"`
	Message          *string   `json:"message,omitempty"`
}

// Create godoc
// @Summary      Schedule a meeting
// @Description  Attach an interview meeting to an application of one of my offers
// @Tags         meetings
// @Accept       json
// @Produce      json
// @Param        id    path      int                   true  "Application ID"
// @Param        body  body      CreateMeetingRequest  true  "Meeting data"
// @Success      201  {object}  response.Response{data=domain.Meeting}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/{id}/meetings [post]
// @Security     BearerAuth
func (h *MeetingHandler) Create(c *gin.Context) {
	applicationID, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req CreateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	meeting := &domain.Meeting{
		DateTime:         req.DateTime,
		Type:             req.Type,
		Contributors:     req.Contributors,
		OnlineMeetingURL: req.OnlineMeetingURL,
		Message:          req.Message,
	}

	created, err := h.meetingUC.Create(c.Request.Context(), sessionUserID(c), applicationID, meeting)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Meeting scheduled", created)
}

// Update godoc
// @Summary      Update a meeting
// @Description  Partial update; omitted fields keep their current value
// @Tags         meetings
// @Accept       json
// @Produce      json
// @Param        id    path      int                   true  "Meeting ID"
// @Param        body  body      domain.MeetingUpdate  true  "Fields to change"
// @Success      200  {object}  response.Response{data=domain.Meeting}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /meetings/{id} [put]
// @Security     BearerAuth
func (h *MeetingHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var update domain.MeetingUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	meeting, err := h.meetingUC.Update(c.Request.Context(), sessionUserID(c), id, update)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Meeting updated", meeting)
}

// Delete godoc
// @Summary      Cancel a meeting
// @Tags         meetings
// @Produce      json
// @Param        id   path      int  true  "Meeting ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /meetings/{id} [delete]
// @Security     BearerAuth
func (h *MeetingHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.meetingUC.Delete(c.Request.Context(), sessionUserID(c), id); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Meeting deleted", nil)
}

// List godoc
// @Summary      List my meetings
// @Description  All meetings across my offers, optionally bounded by a time range
// @Tags         meetings
// @Produce      json
// @Param        from  query     string  false  "RFC 3339 lower bound"
// @Param        to    query     string  false  "RFC 3339 upper bound"
// @Success      200  {object}  response.Response{data=[]domain.Meeting}
// @Failure      400  {object}  response.Response
// @Router       /meetings [get]
// @Security     BearerAuth
func (h *MeetingHandler) List(c *gin.Context) {
	from, err := timeQuery(c, "from")
	if err != nil {
		c.Error(err)
		return
	}
	to, err := timeQuery(c, "to")
	if err != nil {
		c.Error(err)
		return
	}

	meetings, err := h.meetingUC.List(c.Request.Context(), sessionUserID(c), from, to)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Meetings retrieved", meetings)
}

func timeQuery(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, apperror.BadRequest("Invalid " + name + " timestamp, expected RFC 3339")
	}
	return &t, nil
}
