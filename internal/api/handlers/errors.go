package handlers

import (
	"context"
	"errors"
	"net/http"

	"bidding-engine/internal/domain"

	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Error          string           `json:"error"`
	Reason         string           `json:"reason,omitempty"`
	MinimumNextBid *decimal.Decimal `json:"minimum_next_bid,omitempty"`
}

// StatusForError maps engine and repository errors to HTTP status codes.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrAuctionHalted), errors.Is(err, domain.ErrSequenceConflict):
		return http.StatusInternalServerError
	case errors.Is(err, domain.ErrInvalidBid), errors.Is(err, domain.ErrInvalidAuction):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnknownAuction), errors.Is(err, domain.ErrAuctionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAuctionNotOpen):
		return http.StatusConflict
	case errors.Is(err, domain.ErrBidTooLow), errors.Is(err, domain.ErrSelfBid):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// NewErrorResponse hides the details of internal errors from clients.
func NewErrorResponse(err error) ErrorResponse {
	status := StatusForError(err)
	if status == http.StatusInternalServerError || status == http.StatusServiceUnavailable {
		return ErrorResponse{Error: http.StatusText(status), Reason: domain.RejectionReason(err)}
	}

	resp := ErrorResponse{Error: err.Error(), Reason: domain.RejectionReason(err)}
	var bidErr *domain.BidError
	if errors.As(err, &bidErr) && errors.Is(err, domain.ErrBidTooLow) {
		minimum := bidErr.Minimum
		resp.MinimumNextBid = &minimum
	}
	return resp
}
