package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/shopora/shopora/internal/api/dto"
	"github.com/shopora/shopora/internal/domain/voucher"
	ierr "github.com/shopora/shopora/internal/errors"
	"github.com/shopora/shopora/internal/logger"
	"github.com/shopora/shopora/internal/service"
	"github.com/shopora/shopora/internal/types"
)

type VoucherHandler struct {
	voucherService service.VoucherService
	logger         *logger.Logger
}

func NewVoucherHandler(voucherService service.VoucherService, logger *logger.Logger) *VoucherHandler {
	return &VoucherHandler{
		voucherService: voucherService,
		logger:         logger,
	}
}

func requireUserID(c *gin.Context) (string, error) {
	userID := types.GetUserID(c.Request.Context())
	if userID == "" {
		return "", ierr.NewError("user ID is required").
			WithHint("Provide the X-User-ID header").
			Mark(ierr.ErrValidation)
	}
	return userID, nil
}

// @Summary List available vouchers
// @Description Lists the user's unused, unexpired vouchers
// @Tags Vouchers
// @Produce json
// @Success 200 {object} dto.ListVouchersResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /vouchers [get]
func (h *VoucherHandler) ListVouchers(c *gin.Context) {
	userID, err := requireUserID(c)
	if err != nil {
		c.Error(err)
		return
	}

	vouchers, err := h.voucherService.Available(c.Request.Context(), userID, time.Now().UTC())
	if err != nil {
		c.Error(err)
		return
	}

	items := lo.Map(vouchers, func(v *voucher.UserVoucher, _ int) *dto.VoucherResponse {
		return dto.NewVoucherResponse(v)
	})
	c.JSON(http.StatusOK, dto.ListVouchersResponse{Items: items, Total: len(items)})
}

// @Summary Collect a voucher
// @Description Saves a public promotion code into the user's wallet
// @Tags Vouchers
// @Accept json
// @Produce json
// @Param voucher body dto.CollectVoucherRequest true "Code to collect"
// @Success 201 {object} dto.VoucherResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 422 {object} ierr.ErrorResponse
// @Router /vouchers [post]
func (h *VoucherHandler) CollectVoucher(c *gin.Context) {
	userID, err := requireUserID(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.CollectVoucherRequest
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

	uv, err := h.voucherService.Collect(c.Request.Context(), userID, req.Code, types.VoucherSourceCollected, time.Now().UTC())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewVoucherResponse(uv))
}
