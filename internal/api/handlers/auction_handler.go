package handlers

import (
	"context"
	"net/http"
	"time"

	"bidding-engine/internal/domain"
	"bidding-engine/internal/services"
	"bidding-engine/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// AuctionAdmin is the auction administration surface.
// *services.AuctionManager implements it.
type AuctionAdmin interface {
	CreateAuction(ctx context.Context, req services.CreateAuctionRequest) (*domain.Auction, error)
	GetAuction(ctx context.Context, auctionID string) (*domain.Auction, error)
	GetBids(ctx context.Context, auctionID string) ([]domain.Bid, error)
	ScheduleAuction(ctx context.Context, auctionID string) error
	CancelAuction(ctx context.Context, auctionID, reason string) error
}

type AuctionHandler struct {
	auctionManager AuctionAdmin
	log            logger.Logger
}

type CreateAuctionRequest struct {
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	SellerID         string          `json:"seller_id"`
	BasePrice        decimal.Decimal `json:"base_price"`
	MinimumIncrement decimal.Decimal `json:"minimum_increment"`
	StartTime        time.Time       `json:"start_time"`
	EndTime          time.Time       `json:"end_time"`
}

type CancelAuctionRequest struct {
	Reason string `json:"reason"`
}

type CommandResponse struct {
	AuctionID string `json:"auction_id"`
	Command   string `json:"command"`
	Status    string `json:"status"`
}

func NewAuctionHandler(auctionManager AuctionAdmin, log logger.Logger) *AuctionHandler {
	return &AuctionHandler{
		auctionManager: auctionManager,
		log:            log,
	}
}

// Register mounts the admin routes on g.
func (h *AuctionHandler) Register(g *echo.Group) {
	g.POST("/auctions", h.CreateAuction)
	g.GET("/auctions/:id", h.GetAuction)
	g.GET("/auctions/:id/bids", h.GetBids)
	g.POST("/auctions/:id/schedule", h.ScheduleAuction)
	g.POST("/auctions/:id/cancel", h.CancelAuction)
}

func (h *AuctionHandler) CreateAuction(c echo.Context) error {
	var req CreateAuctionRequest
	if err := c.Bind(&req); err != nil {
		h.log.Debug("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Reason: "invalid_auction"})
	}

	auction, err := h.auctionManager.CreateAuction(c.Request().Context(), services.CreateAuctionRequest{
		Title:            req.Title,
		Description:      req.Description,
		SellerID:         req.SellerID,
		BasePrice:        req.BasePrice,
		MinimumIncrement: req.MinimumIncrement,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
	})
	if err != nil {
		return h.fail(c, "Failed to create auction", "", err)
	}

	h.log.Info("Auction created", "auction_id", auction.ID)
	return c.JSON(http.StatusCreated, auction)
}

func (h *AuctionHandler) GetAuction(c echo.Context) error {
	auctionID := c.Param("id")

	auction, err := h.auctionManager.GetAuction(c.Request().Context(), auctionID)
	if err != nil {
		return h.fail(c, "Failed to get auction", auctionID, err)
	}
	return c.JSON(http.StatusOK, auction)
}

func (h *AuctionHandler) GetBids(c echo.Context) error {
	auctionID := c.Param("id")

	bids, err := h.auctionManager.GetBids(c.Request().Context(), auctionID)
	if err != nil {
		return h.fail(c, "Failed to get bids", auctionID, err)
	}
	if bids == nil {
		bids = []domain.Bid{}
	}
	return c.JSON(http.StatusOK, bids)
}

func (h *AuctionHandler) ScheduleAuction(c echo.Context) error {
	auctionID := c.Param("id")

	if err := h.auctionManager.ScheduleAuction(c.Request().Context(), auctionID); err != nil {
		return h.fail(c, "Failed to schedule auction", auctionID, err)
	}
	return c.JSON(http.StatusAccepted, CommandResponse{
		AuctionID: auctionID,
		Command:   string(domain.CommandSchedule),
		Status:    "sent",
	})
}

func (h *AuctionHandler) CancelAuction(c echo.Context) error {
	auctionID := c.Param("id")

	var req CancelAuctionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	if err := h.auctionManager.CancelAuction(c.Request().Context(), auctionID, req.Reason); err != nil {
		return h.fail(c, "Failed to cancel auction", auctionID, err)
	}
	return c.JSON(http.StatusAccepted, CommandResponse{
		AuctionID: auctionID,
		Command:   string(domain.CommandCancel),
		Status:    "sent",
	})
}

func (h *AuctionHandler) fail(c echo.Context, msg, auctionID string, err error) error {
	status := StatusForError(err)
	if status >= http.StatusInternalServerError {
		h.log.Error(msg, "auction_id", auctionID, "error", err)
	}
	return c.JSON(status, NewErrorResponse(err))
}
