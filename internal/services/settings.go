package services

import (
	"fmt"
	"strings"
	"time"

	"bidding-engine/internal/config"

	"github.com/shopspring/decimal"
)

type SelfBidPolicy string

const (
	SelfBidAllow SelfBidPolicy = "allow"
	SelfBidDeny  SelfBidPolicy = "deny"
)

// DeliveryMode orders persistence against publication of lifecycle events.
type DeliveryMode string

const (
	// DeliveryOptimistic publishes first and persists afterwards.
	DeliveryOptimistic DeliveryMode = "optimistic"
	// DeliveryConfirmed persists first; events are published with Durable set.
	DeliveryConfirmed DeliveryMode = "confirmed"
)

type Settings struct {
	MinimumIncrementDefault decimal.Decimal
	AntiSnipeWindow         time.Duration
	AntiSnipeExtension      time.Duration
	SelfBidPolicy           SelfBidPolicy
	DeliveryMode            DeliveryMode
	ReapGracePeriod         time.Duration
	SubscriberBuffer        int
	MailboxSize             int
	PersistMaxRetries       uint64
	PublishMaxRetries       uint64
}

func DefaultSettings() Settings {
	return Settings{
		MinimumIncrementDefault: decimal.NewFromInt(1),
		AntiSnipeWindow:         2 * time.Minute,
		AntiSnipeExtension:      2 * time.Minute,
		SelfBidPolicy:           SelfBidDeny,
		DeliveryMode:            DeliveryOptimistic,
		ReapGracePeriod:         30 * time.Second,
		SubscriberBuffer:        64,
		MailboxSize:             128,
		PersistMaxRetries:       3,
		PublishMaxRetries:       3,
	}
}

// NewSettings converts the validated engine section of the config.
func NewSettings(cfg config.EngineConfig) (Settings, error) {
	s := DefaultSettings()

	inc, err := decimal.NewFromString(cfg.MinimumIncrementDefault)
	if err != nil {
		return s, fmt.Errorf("minimum increment default: %w", err)
	}
	s.MinimumIncrementDefault = inc
	s.AntiSnipeWindow = cfg.AntiSnipeWindow
	s.AntiSnipeExtension = cfg.AntiSnipeExtension
	s.SelfBidPolicy = SelfBidPolicy(strings.ToLower(cfg.SelfBidPolicy))
	s.DeliveryMode = DeliveryMode(strings.ToLower(cfg.DeliveryMode))
	s.ReapGracePeriod = cfg.ReapGracePeriod
	if cfg.SubscriberBuffer > 0 {
		s.SubscriberBuffer = cfg.SubscriberBuffer
	}
	if cfg.MailboxSize > 0 {
		s.MailboxSize = cfg.MailboxSize
	}
	s.PersistMaxRetries = cfg.PersistMaxRetries
	s.PublishMaxRetries = cfg.PublishMaxRetries
	return s, nil
}
