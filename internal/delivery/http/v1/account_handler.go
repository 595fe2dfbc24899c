package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
)

type AccountHandler struct {
	accountUC domain.AccountUsecase
}

func NewAccountHandler(protected *gin.RouterGroup, accountUC domain.AccountUsecase) {
	handler := &AccountHandler{accountUC: accountUC}

	protected.DELETE("/account", handler.DeleteAccount)
}

// DeleteAccount godoc
// @Summary      Delete my account
// @Description  Anonymizes all personal data in place and invalidates the
// @Description  account. Applications and their history are kept under the
// @Description  anonymized identity. This cannot be undone.
// @Tags         account
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.AnonymizeSummary}
// @Failure      404  {object}  response.Response
// @Router       /account [delete]
// @Security     BearerAuth
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	summary, err := h.accountUC.DeleteAccount(c.Request.Context(), sessionUserID(c))
	if err != nil {
		c.Error(err)
		return
	}

	c.SetCookie("auth_token", "", -1, "/", "", true, true)
	response.Success(c, http.StatusOK, "Account deleted", summary)
}
