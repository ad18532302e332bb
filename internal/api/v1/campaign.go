package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopora/shopora/internal/api/dto"
	ierr "github.com/shopora/shopora/internal/errors"
	"github.com/shopora/shopora/internal/logger"
	"github.com/shopora/shopora/internal/service"
)

type CampaignHandler struct {
	campaignService service.CampaignService
	logger          *logger.Logger
}

func NewCampaignHandler(campaignService service.CampaignService, logger *logger.Logger) *CampaignHandler {
	return &CampaignHandler{
		campaignService: campaignService,
		logger:          logger,
	}
}

// @Summary Create a campaign
// @Description Creates a bounded voucher campaign
// @Tags Campaigns
// @Accept json
// @Produce json
// @Param campaign body dto.CreateCampaignRequest true "Campaign request"
// @Success 201 {object} dto.CampaignResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /campaigns [post]
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	var req dto.CreateCampaignRequest
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

	campaign, err := req.ToCampaign()
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.campaignService.Create(c.Request.Context(), campaign); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewCampaignResponse(campaign))
}

// @Summary Get a campaign
// @Description Retrieves a campaign by ID
// @Tags Campaigns
// @Produce json
// @Param id path string true "Campaign ID"
// @Success 200 {object} dto.CampaignResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /campaigns/{id} [get]
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("campaign ID is required").
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	campaign, err := h.campaignService.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCampaignResponse(campaign))
}

// @Summary Claim a flash sale voucher
// @Description Grants one voucher from a flash sale campaign
// @Tags Campaigns
// @Produce json
// @Param id path string true "Campaign ID"
// @Success 201 {object} dto.VoucherResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /campaigns/{id}/grant [post]
func (h *CampaignHandler) Grant(c *gin.Context) {
	userID, err := requireUserID(c)
	if err != nil {
		c.Error(err)
		return
	}

	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("campaign ID is required").
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	uv, err := h.campaignService.Grant(c.Request.Context(), id, userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewVoucherResponse(uv))
}

// @Summary Spin the lucky wheel
// @Description Consumes one spin of a lucky wheel campaign
// @Tags Campaigns
// @Produce json
// @Param id path string true "Campaign ID"
// @Success 200 {object} dto.SpinResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /campaigns/{id}/spin [post]
func (h *CampaignHandler) Spin(c *gin.Context) {
	userID, err := requireUserID(c)
	if err != nil {
		c.Error(err)
		return
	}

	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("campaign ID is required").
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	result, err := h.campaignService.Spin(c.Request.Context(), id, userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.SpinResponse{
		EntryIndex: result.EntryIndex,
		IsLucky:    result.IsLucky,
		Voucher:    result.Voucher,
	})
}
