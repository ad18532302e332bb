package dto

import (
	"github.com/shopora/shopora/internal/domain/voucher"
	"github.com/shopora/shopora/internal/validator"
)

// CollectVoucherRequest saves a public promotion code into the user's
// voucher wallet
type CollectVoucherRequest struct {
	Code string `json:"code" validate:"required"`
}

func (r *CollectVoucherRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// VoucherResponse represents a user voucher in API responses
type VoucherResponse struct {
	*voucher.UserVoucher
}

// NewVoucherResponse builds a voucher response
func NewVoucherResponse(v *voucher.UserVoucher) *VoucherResponse {
	return &VoucherResponse{UserVoucher: v}
}

// ListVouchersResponse lists the user's available vouchers
type ListVouchersResponse struct {
	Items []*VoucherResponse `json:"items"`
	Total int                `json:"total"`
}
