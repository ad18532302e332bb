package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopora/shopora/internal/api/dto"
	ierr "github.com/shopora/shopora/internal/errors"
	"github.com/shopora/shopora/internal/logger"
	"github.com/shopora/shopora/internal/service"
)

type PointsHandler struct {
	pointsService service.PointsService
	logger        *logger.Logger
}

func NewPointsHandler(pointsService service.PointsService, logger *logger.Logger) *PointsHandler {
	return &PointsHandler{
		pointsService: pointsService,
		logger:        logger,
	}
}

// @Summary Get the points balance
// @Description Retrieves the user's loyalty points balance
// @Tags Points
// @Produce json
// @Success 200 {object} dto.PointsBalanceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /points/balance [get]
func (h *PointsHandler) GetBalance(c *gin.Context) {
	userID, err := requireUserID(c)
	if err != nil {
		c.Error(err)
		return
	}

	balance, err := h.pointsService.Balance(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.PointsBalanceResponse{UserPointsBalance: balance})
}

// @Summary Get the points ledger
// @Description Lists the user's points mutations
// @Tags Points
// @Produce json
// @Success 200 {object} dto.PointsLedgerResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /points/ledger [get]
func (h *PointsHandler) GetLedger(c *gin.Context) {
	userID, err := requireUserID(c)
	if err != nil {
		c.Error(err)
		return
	}

	entries, err := h.pointsService.Ledger(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.PointsLedgerResponse{Items: entries, Total: len(entries)})
}

// @Summary Credit points
// @Description Credits loyalty points to the user
// @Tags Points
// @Accept json
// @Produce json
// @Param credit body dto.CreditPointsRequest true "Credit request"
// @Success 200 {object} dto.PointsBalanceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /points/credit [post]
func (h *PointsHandler) CreditPoints(c *gin.Context) {
	userID, err := requireUserID(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.CreditPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	ctx := c.Request.Context()
	if err := h.pointsService.Credit(ctx, userID, req.Amount, req.Reason); err != nil {
		c.Error(err)
		return
	}

	balance, err := h.pointsService.Balance(ctx, userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.PointsBalanceResponse{UserPointsBalance: balance})
}
