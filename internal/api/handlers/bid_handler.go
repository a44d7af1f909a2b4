package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"bidding-engine/internal/domain"
	"bidding-engine/internal/services"
	"bidding-engine/pkg/logger"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

// BidPlacer is the bidding surface served over HTTP. *services.BidService
// implements it.
type BidPlacer interface {
	PlaceBid(ctx context.Context, auctionID, userID string, amount decimal.Decimal) (domain.Bid, error)
	AuctionState(ctx context.Context, auctionID string) (domain.Auction, error)
	BidHistory(ctx context.Context, auctionID string) ([]domain.Bid, error)
}

type PlaceBidRequest struct {
	BidderID string `json:"bidder_id"`
	// Amount is a decimal string; a JSON number is accepted as well.
	Amount json.Number `json:"amount"`
}

type AuctionStateResponse struct {
	domain.Auction
	MinimumNextBid decimal.Decimal `json:"minimum_next_bid"`
}

type BidHandler struct {
	bids BidPlacer
	log  logger.Logger
}

func NewBidHandler(bids BidPlacer, log logger.Logger) *BidHandler {
	return &BidHandler{
		bids: bids,
		log:  log,
	}
}

// Register mounts the bidding routes on r.
func (h *BidHandler) Register(r *mux.Router) {
	r.HandleFunc("/auctions/{id}", h.GetAuction).Methods(http.MethodGet)
	r.HandleFunc("/auctions/{id}/bids", h.GetBids).Methods(http.MethodGet)
	r.HandleFunc("/auctions/{id}/bids", h.PlaceBid).Methods(http.MethodPost)
}

func (h *BidHandler) PlaceBid(w http.ResponseWriter, r *http.Request) {
	auctionID := mux.Vars(r)["id"]

	var req PlaceBidRequest
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Reason: "invalid_bid"})
		return
	}

	amount, err := services.ParseAmount(req.Amount.String())
	if err != nil {
		writeError(w, err)
		return
	}

	bid, err := h.bids.PlaceBid(r.Context(), auctionID, req.BidderID, amount)
	if err != nil {
		if StatusForError(err) >= http.StatusInternalServerError {
			h.log.Error("Failed to place bid", "auction_id", auctionID, "bidder_id", req.BidderID, "error", err)
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, bid)
}

func (h *BidHandler) GetAuction(w http.ResponseWriter, r *http.Request) {
	auctionID := mux.Vars(r)["id"]

	auction, err := h.bids.AuctionState(r.Context(), auctionID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AuctionStateResponse{
		Auction:        auction,
		MinimumNextBid: auction.MinimumNextBid(),
	})
}

func (h *BidHandler) GetBids(w http.ResponseWriter, r *http.Request) {
	auctionID := mux.Vars(r)["id"]

	bids, err := h.bids.BidHistory(r.Context(), auctionID)
	if err != nil {
		writeError(w, err)
		return
	}
	if bids == nil {
		bids = []domain.Bid{}
	}

	writeJSON(w, http.StatusOK, bids)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, StatusForError(err), NewErrorResponse(err))
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
