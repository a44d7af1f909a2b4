package websocket

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"bidding-engine/internal/domain"
	"bidding-engine/internal/domain/mocks"
	"bidding-engine/internal/services"
	"bidding-engine/pkg/logger"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestConnectionManager_NotifyUserReachesEveryConnection(t *testing.T) {
	ctrl := gomock.NewController(t)
	cm := NewConnectionManager(logger.NewNop())

	first := mocks.NewMockWebSocketConnection(ctrl)
	second := mocks.NewMockWebSocketConnection(ctrl)
	other := mocks.NewMockWebSocketConnection(ctrl)

	require.NoError(t, cm.RegisterConnection("alice", "auction-1", first))
	require.NoError(t, cm.RegisterConnection("alice", "auction-2", second))
	require.NoError(t, cm.RegisterConnection("bob", "auction-1", other))

	notice := domain.OutbidNotice{Type: "outbid", AuctionID: "auction-1"}
	first.EXPECT().Send(notice).Return(nil)
	second.EXPECT().Send(notice).Return(nil)

	require.NoError(t, cm.NotifyUser("alice", notice))
	require.Len(t, cm.GetConnectionsForAuction("auction-1"), 2)
}

func TestConnectionManager_NotifyUserReportsSendFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	cm := NewConnectionManager(logger.NewNop())

	broken := mocks.NewMockWebSocketConnection(ctrl)
	broken.EXPECT().AuctionID().Return("auction-1").AnyTimes()
	broken.EXPECT().Send(gomock.Any()).Return(errors.New("broken pipe"))
	require.NoError(t, cm.RegisterConnection("alice", "auction-1", broken))

	require.Error(t, cm.NotifyUser("alice", "hello"))
	require.NoError(t, cm.NotifyUser("nobody", "hello"))
}

func TestConnectionManager_UnregisterRemovesOnlyThatConnection(t *testing.T) {
	ctrl := gomock.NewController(t)
	cm := NewConnectionManager(logger.NewNop())

	first := mocks.NewMockWebSocketConnection(ctrl)
	second := mocks.NewMockWebSocketConnection(ctrl)
	require.NoError(t, cm.RegisterConnection("alice", "auction-1", first))
	require.NoError(t, cm.RegisterConnection("alice", "auction-1", second))

	require.NoError(t, cm.UnregisterConnection("alice", "auction-1", first))

	conns := cm.GetConnectionsForUser("alice")
	require.Len(t, conns, 1)
	require.Same(t, second, conns[0])
	require.Len(t, cm.GetConnectionsForAuction("auction-1"), 1)
}

func TestConnectionManager_CloseAndUnregisterConnections(t *testing.T) {
	ctrl := gomock.NewController(t)
	cm := NewConnectionManager(logger.NewNop())

	watcher := mocks.NewMockWebSocketConnection(ctrl)
	elsewhere := mocks.NewMockWebSocketConnection(ctrl)
	watcher.EXPECT().UserID().Return("alice").AnyTimes()
	watcher.EXPECT().Close().Return(nil)

	require.NoError(t, cm.RegisterConnection("alice", "auction-1", watcher))
	require.NoError(t, cm.RegisterConnection("alice", "auction-2", elsewhere))

	require.NoError(t, cm.CloseAndUnregisterConnections("auction-1"))
	require.Empty(t, cm.GetConnectionsForAuction("auction-1"))
	require.Len(t, cm.GetConnectionsForUser("alice"), 1)
}

type fakeBidder struct {
	broadcaster *services.EventBroadcaster

	mu   sync.Mutex
	bids []domain.Bid
}

func (f *fakeBidder) PlaceBid(_ context.Context, auctionID, userID string, amount decimal.Decimal) (domain.Bid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	minimum := decimal.NewFromInt(1100)
	if amount.LessThan(minimum) {
		return domain.Bid{}, &domain.BidError{Kind: domain.ErrBidTooLow, AuctionID: auctionID, Amount: amount, Minimum: minimum}
	}
	bid := domain.Bid{AuctionID: auctionID, BidderID: userID, Amount: amount, Sequence: uint64(len(f.bids) + 1)}
	f.bids = append(f.bids, bid)
	return bid, nil
}

func (f *fakeBidder) Subscribe(_ context.Context, auctionID string) (*services.Subscription, error) {
	if auctionID != "auction-1" {
		return nil, &domain.BidError{Kind: domain.ErrUnknownAuction, AuctionID: auctionID}
	}
	return f.broadcaster.Subscribe(auctionID, domain.LifecycleEvent{
		Type:             domain.EventSnapshot,
		AuctionID:        auctionID,
		Sequence:         1,
		Status:           domain.AuctionActive,
		CurrentPrice:     decimal.NewFromInt(1000),
		MinimumIncrement: decimal.NewFromInt(100),
	}), nil
}

type socketFixture struct {
	server      *httptest.Server
	broadcaster *services.EventBroadcaster
	connManager *ConnectionManager
}

func newSocketFixture(t *testing.T) *socketFixture {
	t.Helper()
	log := logger.NewNop()

	f := &socketFixture{
		broadcaster: services.NewEventBroadcaster(16, nil, log),
		connManager: NewConnectionManager(log),
	}
	handler := NewWebSocketHandler(&fakeBidder{broadcaster: f.broadcaster}, f.connManager, []string{"*"}, log)

	router := mux.NewRouter()
	router.HandleFunc("/ws/auction/{auctionID}", handler.HandleConnection)
	f.server = httptest.NewServer(router)
	t.Cleanup(f.server.Close)
	t.Cleanup(f.broadcaster.Close)
	return f
}

func (f *socketFixture) dial(t *testing.T, path string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + path
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Cleanup(func() { _ = conn.Close() })
	}
	return conn, resp, err
}

func readJSON(t *testing.T, conn *websocket.Conn, v interface{}) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(v))
}

func TestWebSocketHandler_SnapshotThenEvents(t *testing.T) {
	f := newSocketFixture(t)
	conn, _, err := f.dial(t, "/ws/auction/auction-1?user_id=alice")
	require.NoError(t, err)

	var first EventMessage
	readJSON(t, conn, &first)
	require.Equal(t, MessageAuctionEvent, first.Type)
	require.Equal(t, domain.EventSnapshot, first.Event.Type)
	require.True(t, first.Event.CurrentPrice.Equal(decimal.NewFromInt(1000)))

	require.Eventually(t, func() bool {
		return f.broadcaster.SubscriberCount("auction-1") == 1
	}, 2*time.Second, 10*time.Millisecond)

	f.broadcaster.Publish(domain.LifecycleEvent{
		Type:         domain.EventBidAccepted,
		AuctionID:    "auction-1",
		Sequence:     2,
		Status:       domain.AuctionActive,
		CurrentPrice: decimal.NewFromInt(1100),
	})

	var next EventMessage
	readJSON(t, conn, &next)
	require.Equal(t, domain.EventBidAccepted, next.Event.Type)
	require.Equal(t, uint64(2), next.Event.Sequence)
}

func TestWebSocketHandler_PlaceBid(t *testing.T) {
	f := newSocketFixture(t)
	conn, _, err := f.dial(t, "/ws/auction/auction-1?user_id=alice")
	require.NoError(t, err)

	var snapshot EventMessage
	readJSON(t, conn, &snapshot)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "place_bid", "amount": "1050", "request_id": "r1"}))
	var rejected BidResultMessage
	readJSON(t, conn, &rejected)
	require.Equal(t, MessageBidResult, rejected.Type)
	require.Equal(t, "r1", rejected.RequestID)
	require.False(t, rejected.Accepted)
	require.Equal(t, "bid_too_low", rejected.Reason)
	require.NotNil(t, rejected.MinimumNextBid)
	require.True(t, rejected.MinimumNextBid.Equal(decimal.NewFromInt(1100)))

	require.NoError(t, conn.WriteJSON(map[string]interface{}{"type": "place_bid", "amount": 1100, "request_id": "r2"}))
	var accepted BidResultMessage
	readJSON(t, conn, &accepted)
	require.True(t, accepted.Accepted)
	require.NotNil(t, accepted.Bid)
	require.Equal(t, "alice", accepted.Bid.BidderID)
	require.Equal(t, uint64(1), accepted.Bid.Sequence)
}

func TestWebSocketHandler_PingAndMalformed(t *testing.T) {
	f := newSocketFixture(t)
	conn, _, err := f.dial(t, "/ws/auction/auction-1?user_id=alice")
	require.NoError(t, err)

	var snapshot EventMessage
	readJSON(t, conn, &snapshot)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "ping"}))
	var pong map[string]string
	readJSON(t, conn, &pong)
	require.Equal(t, MessagePong, pong["type"])

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	var malformed ErrorMessage
	readJSON(t, conn, &malformed)
	require.Equal(t, MessageError, malformed.Type)
}

func TestWebSocketHandler_OutbidNoticeReachesUser(t *testing.T) {
	f := newSocketFixture(t)
	conn, _, err := f.dial(t, "/ws/auction/auction-1?user_id=alice")
	require.NoError(t, err)

	var snapshot EventMessage
	readJSON(t, conn, &snapshot)

	require.Eventually(t, func() bool {
		return len(f.connManager.GetConnectionsForUser("alice")) == 1
	}, 2*time.Second, 10*time.Millisecond)

	notifier := NewWebSocketNotifier(f.connManager)
	require.NoError(t, notifier.NotifyUser(context.Background(), "alice", domain.OutbidNotice{
		Type:      "outbid",
		AuctionID: "auction-1",
		Sequence:  3,
	}))

	var notice domain.OutbidNotice
	readJSON(t, conn, &notice)
	require.Equal(t, "outbid", notice.Type)
	require.Equal(t, uint64(3), notice.Sequence)
}

func TestWebSocketHandler_DisconnectUnregisters(t *testing.T) {
	f := newSocketFixture(t)
	conn, _, err := f.dial(t, "/ws/auction/auction-1?user_id=alice")
	require.NoError(t, err)

	var snapshot EventMessage
	readJSON(t, conn, &snapshot)
	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool {
		return len(f.connManager.GetConnectionsForUser("alice")) == 0 &&
			f.broadcaster.SubscriberCount("auction-1") == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWebSocketHandler_RejectsBadRequests(t *testing.T) {
	f := newSocketFixture(t)

	_, resp, err := f.dial(t, "/ws/auction/auction-9?user_id=alice")
	require.Error(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	_, resp, err = f.dial(t, "/ws/auction/auction-1")
	require.Error(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
