package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"bidding-engine/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Redis     RedisConfig     `mapstructure:"redis"`
	MySQL     MySQLConfig     `mapstructure:"mysql"`
	Leader    LeaderConfig    `mapstructure:"leader"`
	Instance  InstanceConfig  `mapstructure:"instance"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Engine    EngineConfig    `mapstructure:"engine"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	AuctionPort    int      `mapstructure:"auction_port"`
	BiddingPort    int      `mapstructure:"bidding_port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RedisConfig struct {
	Address         string `mapstructure:"address"`
	Password        string `mapstructure:"password"`
	DB              int    `mapstructure:"db"`
	EventsChannel   string `mapstructure:"events_channel"`
	CommandsChannel string `mapstructure:"commands_channel"`
}

type MySQLConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type LeaderConfig struct {
	Key string        `mapstructure:"key"`
	TTL time.Duration `mapstructure:"ttl"`
}

type InstanceConfig struct {
	ID string `mapstructure:"id"`
}

type SchedulerConfig struct {
	// SweepSpec is a robfig/cron spec (seconds enabled) for the pending job sweep.
	SweepSpec string `mapstructure:"sweep_spec"`
}

type EngineConfig struct {
	MinimumIncrementDefault string        `mapstructure:"minimum_increment_default"`
	AntiSnipeWindow         time.Duration `mapstructure:"anti_snipe_window"`
	AntiSnipeExtension      time.Duration `mapstructure:"anti_snipe_extension"`
	SelfBidPolicy           string        `mapstructure:"self_bid_policy"`
	DeliveryMode            string        `mapstructure:"delivery_mode"`
	ReapGracePeriod         time.Duration `mapstructure:"reap_grace_period"`
	SubscriberBuffer        int           `mapstructure:"subscriber_buffer"`
	MailboxSize             int           `mapstructure:"mailbox_size"`
	PersistMaxRetries       uint64        `mapstructure:"persist_max_retries"`
	PublishMaxRetries       uint64        `mapstructure:"publish_max_retries"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

var envBindings = map[string]string{
	"server.host":                      "SERVER_HOST",
	"server.auction_port":              "AUCTION_SERVER_PORT",
	"server.bidding_port":              "BIDDING_SERVER_PORT",
	"redis.address":                    "REDIS_ADDRESS",
	"redis.password":                   "REDIS_PASSWORD",
	"redis.db":                         "REDIS_DB",
	"mysql.dsn":                        "MYSQL_DSN",
	"mysql.max_open_conns":             "MYSQL_MAX_OPEN_CONNS",
	"mysql.max_idle_conns":             "MYSQL_MAX_IDLE_CONNS",
	"mysql.conn_max_lifetime":          "MYSQL_CONN_MAX_LIFETIME",
	"leader.ttl":                       "LEADER_TTL",
	"instance.id":                      "INSTANCE_ID",
	"scheduler.sweep_spec":             "SCHEDULER_SWEEP_SPEC",
	"engine.minimum_increment_default": "ENGINE_MINIMUM_INCREMENT_DEFAULT",
	"engine.anti_snipe_window":         "ENGINE_ANTI_SNIPE_WINDOW",
	"engine.anti_snipe_extension":      "ENGINE_ANTI_SNIPE_EXTENSION",
	"engine.self_bid_policy":           "ENGINE_SELF_BID_POLICY",
	"engine.delivery_mode":             "ENGINE_DELIVERY_MODE",
	"engine.reap_grace_period":         "ENGINE_REAP_GRACE_PERIOD",
	"log.level":                        "LOG_LEVEL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.auction_port", 8080)
	v.SetDefault("server.bidding_port", 8081)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.events_channel", "auction_events")
	v.SetDefault("redis.commands_channel", "auction_commands")
	v.SetDefault("mysql.dsn", "auction_user:auction_pass@tcp(localhost:3306)/auction_db?parseTime=true")
	v.SetDefault("mysql.max_open_conns", 25)
	v.SetDefault("mysql.max_idle_conns", 10)
	v.SetDefault("mysql.conn_max_lifetime", 5*time.Minute)
	v.SetDefault("leader.key", "auction_leader")
	v.SetDefault("leader.ttl", 30*time.Second)
	v.SetDefault("instance.id", "bidding-service-1")
	v.SetDefault("scheduler.sweep_spec", "@every 30s")
	v.SetDefault("engine.minimum_increment_default", "1")
	v.SetDefault("engine.anti_snipe_window", 2*time.Minute)
	v.SetDefault("engine.anti_snipe_extension", 2*time.Minute)
	v.SetDefault("engine.self_bid_policy", "deny")
	v.SetDefault("engine.delivery_mode", "optimistic")
	v.SetDefault("engine.reap_grace_period", 30*time.Second)
	v.SetDefault("engine.subscriber_buffer", 64)
	v.SetDefault("engine.mailbox_size", 128)
	v.SetDefault("engine.persist_max_retries", 3)
	v.SetDefault("engine.publish_max_retries", 3)
	v.SetDefault("log.level", "info")
}

func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Configuration file settings
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/bidding-engine/")

	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	// Read configuration file (optional - will use defaults/env vars if not found)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	return unmarshal(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate rejects engine settings the bidding engine cannot honour.
func (c *Config) Validate() error {
	e := c.Engine
	inc, err := decimal.NewFromString(e.MinimumIncrementDefault)
	if err != nil {
		return fmt.Errorf("engine.minimum_increment_default: %w", err)
	}
	if !inc.IsPositive() {
		return fmt.Errorf("engine.minimum_increment_default must be positive, got %s", inc)
	}
	if !domain.FitsMoneyScale(inc) {
		return fmt.Errorf("engine.minimum_increment_default takes at most %d decimal places, got %s",
			domain.MoneyScale, inc)
	}
	if e.AntiSnipeWindow < 0 || e.AntiSnipeExtension < 0 {
		return errors.New("engine anti-snipe durations must not be negative")
	}
	// An extension shorter than the window could pull the deadline backwards.
	if e.AntiSnipeWindow > 0 && e.AntiSnipeExtension < e.AntiSnipeWindow {
		return fmt.Errorf("engine.anti_snipe_extension (%s) must be >= anti_snipe_window (%s)",
			e.AntiSnipeExtension, e.AntiSnipeWindow)
	}
	switch strings.ToLower(e.SelfBidPolicy) {
	case "allow", "deny":
	default:
		return fmt.Errorf("engine.self_bid_policy must be allow or deny, got %q", e.SelfBidPolicy)
	}
	switch strings.ToLower(e.DeliveryMode) {
	case "optimistic", "confirmed":
	default:
		return fmt.Errorf("engine.delivery_mode must be optimistic or confirmed, got %q", e.DeliveryMode)
	}
	if e.ReapGracePeriod < 0 {
		return errors.New("engine.reap_grace_period must not be negative")
	}
	return nil
}

// GetConfigString returns a formatted string representation of the config
func (c *Config) GetConfigString() string {
	return fmt.Sprintf(
		"Server: %s:%d/%d, Redis: %s, Instance: %s, Engine: increment=%s window=%s extension=%s self_bid=%s delivery=%s",
		c.Server.Host,
		c.Server.AuctionPort,
		c.Server.BiddingPort,
		c.Redis.Address,
		c.Instance.ID,
		c.Engine.MinimumIncrementDefault,
		c.Engine.AntiSnipeWindow,
		c.Engine.AntiSnipeExtension,
		c.Engine.SelfBidPolicy,
		c.Engine.DeliveryMode,
	)
}
