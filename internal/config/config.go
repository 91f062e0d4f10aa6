// Package config loads and validates the engine's runtime configuration:
// confidence thresholds, priority weights, concurrency/timeout knobs, quality
// assurance toggles, and per-platform publishing limits (spec §6).
package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/viper"

	"github.com/socialpulse/engine/internal/socialmodel"
)

// ConfidenceThresholds gates routing between auto-response, suggestion, and
// human review. Must be monotonically decreasing.
type ConfidenceThresholds struct {
	AutoResponse float64 `mapstructure:"auto_response"`
	Suggestion   float64 `mapstructure:"suggestion"`
	HumanReview  float64 `mapstructure:"human_review"`
}

// PriorityWeights weights the five raw PriorityComponents into the composite
// score. Must sum to 1.0 within 1e-6.
type PriorityWeights struct {
	Urgency   float64 `mapstructure:"urgency"`
	Impact    float64 `mapstructure:"impact"`
	Sentiment float64 `mapstructure:"sentiment"`
	Reach     float64 `mapstructure:"reach"`
	BrandRisk float64 `mapstructure:"brand_risk"`
}

// Sum returns the sum of all five weights.
func (w PriorityWeights) Sum() float64 {
	return w.Urgency + w.Impact + w.Sentiment + w.Reach + w.BrandRisk
}

// Engine holds the decision pipeline's concurrency and caching knobs.
type Engine struct {
	MaxConcurrentDecisions int  `mapstructure:"max_concurrent_decisions"`
	DecisionTimeoutMs      int  `mapstructure:"decision_timeout_ms"`
	EnableDecisionCaching  bool `mapstructure:"enable_decision_caching"`
	CacheExpirationMs      int  `mapstructure:"cache_expiration_ms"`
}

// QualityAssurance toggles validation and audit behavior around every
// decision.
type QualityAssurance struct {
	EnableValidation        bool    `mapstructure:"enable_validation"`
	RequireMinimumConfidence float64 `mapstructure:"require_minimum_confidence"`
	EnableAuditLogging      bool    `mapstructure:"enable_audit_logging"`
}

// PlatformLimit bounds how much content a brand may publish to one platform.
type PlatformLimit struct {
	DailyLimit         int `mapstructure:"daily_limit"`
	HourlyLimit        int `mapstructure:"hourly_limit"`
	MinIntervalMinutes int `mapstructure:"min_interval_minutes"`
}

// Config is the full validated configuration tree for the engine.
type Config struct {
	Environment string
	LogLevel    string
	APIPort     int

	DatabaseURL string
	RedisURL    string

	ConfidenceThresholds ConfidenceThresholds
	PriorityWeights      PriorityWeights
	Engine               Engine
	QualityAssurance     QualityAssurance
	PlatformLimits       map[socialmodel.Platform]PlatformLimit

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string

	SlackWebhookURL string
	DiscordBotToken string

	OpenAIAPIKey string
}

// Load reads configuration from config.yaml (if present), environment
// variables, and built-in defaults, then validates every numeric
// invariant the spec requires before returning.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	cfg := &Config{
		Environment: v.GetString("environment"),
		LogLevel:    v.GetString("log_level"),
		APIPort:     v.GetInt("api_port"),
		DatabaseURL: v.GetString("database_url"),
		RedisURL:    v.GetString("redis_url"),

		ConfidenceThresholds: ConfidenceThresholds{
			AutoResponse: v.GetFloat64("confidence_thresholds.auto_response"),
			Suggestion:   v.GetFloat64("confidence_thresholds.suggestion"),
			HumanReview:  v.GetFloat64("confidence_thresholds.human_review"),
		},
		PriorityWeights: PriorityWeights{
			Urgency:   v.GetFloat64("priority.weights.urgency"),
			Impact:    v.GetFloat64("priority.weights.impact"),
			Sentiment: v.GetFloat64("priority.weights.sentiment"),
			Reach:     v.GetFloat64("priority.weights.reach"),
			BrandRisk: v.GetFloat64("priority.weights.brand_risk"),
		},
		Engine: Engine{
			MaxConcurrentDecisions: v.GetInt("engine.max_concurrent_decisions"),
			DecisionTimeoutMs:      v.GetInt("engine.decision_timeout_ms"),
			EnableDecisionCaching:  v.GetBool("engine.enable_decision_caching"),
			CacheExpirationMs:      v.GetInt("engine.cache_expiration_ms"),
		},
		QualityAssurance: QualityAssurance{
			EnableValidation:         v.GetBool("quality_assurance.enable_validation"),
			RequireMinimumConfidence: v.GetFloat64("quality_assurance.require_minimum_confidence"),
			EnableAuditLogging:       v.GetBool("quality_assurance.enable_audit_logging"),
		},

		SMTPHost:     v.GetString("smtp.host"),
		SMTPPort:     v.GetInt("smtp.port"),
		SMTPUser:     v.GetString("smtp.user"),
		SMTPPassword: v.GetString("smtp.password"),

		SlackWebhookURL: v.GetString("slack_webhook_url"),
		DiscordBotToken: v.GetString("discord_bot_token"),
		OpenAIAPIKey:    v.GetString("openai_api_key"),
	}

	cfg.PlatformLimits = make(map[socialmodel.Platform]PlatformLimit, len(socialmodel.Platforms))
	for _, p := range socialmodel.Platforms {
		prefix := "platform_limits." + string(p) + "."
		cfg.PlatformLimits[p] = PlatformLimit{
			DailyLimit:         v.GetInt(prefix + "daily_limit"),
			HourlyLimit:        v.GetInt(prefix + "hourly_limit"),
			MinIntervalMinutes: v.GetInt(prefix + "min_interval_minutes"),
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("api_port", 8080)
	v.SetDefault("redis_url", "redis://localhost:6379")

	v.SetDefault("confidence_thresholds.auto_response", 0.9)
	v.SetDefault("confidence_thresholds.suggestion", 0.7)
	v.SetDefault("confidence_thresholds.human_review", 0.4)

	v.SetDefault("priority.weights.urgency", 0.30)
	v.SetDefault("priority.weights.impact", 0.25)
	v.SetDefault("priority.weights.sentiment", 0.20)
	v.SetDefault("priority.weights.reach", 0.15)
	v.SetDefault("priority.weights.brand_risk", 0.10)

	v.SetDefault("engine.max_concurrent_decisions", 50)
	v.SetDefault("engine.decision_timeout_ms", 5000)
	v.SetDefault("engine.enable_decision_caching", true)
	v.SetDefault("engine.cache_expiration_ms", 300000)

	v.SetDefault("quality_assurance.enable_validation", true)
	v.SetDefault("quality_assurance.require_minimum_confidence", 0.5)
	v.SetDefault("quality_assurance.enable_audit_logging", true)

	for _, p := range socialmodel.Platforms {
		prefix := "platform_limits." + string(p) + "."
		v.SetDefault(prefix+"daily_limit", 20)
		v.SetDefault(prefix+"hourly_limit", 5)
		v.SetDefault(prefix+"min_interval_minutes", 10)
	}

	v.SetDefault("smtp.port", 587)
}

const epsilon = 1e-6

// Validate checks every numeric invariant the spec requires of the
// configuration: threshold monotonicity, weight normalization, and
// per-platform limit sanity. It is called by Load and is exported so tests
// can validate ad-hoc Config values directly.
func (c *Config) Validate() error {
	ct := c.ConfidenceThresholds
	if !(ct.AutoResponse >= ct.Suggestion && ct.Suggestion >= ct.HumanReview) {
		return socialmodel.NewError(socialmodel.KindValidation,
			"confidenceThresholds must be monotonically decreasing: autoResponse=%.3f suggestion=%.3f humanReview=%.3f",
			ct.AutoResponse, ct.Suggestion, ct.HumanReview)
	}
	for name, val := range map[string]float64{
		"autoResponse": ct.AutoResponse,
		"suggestion":   ct.Suggestion,
		"humanReview":  ct.HumanReview,
	} {
		if val < 0 || val > 1 {
			return socialmodel.NewError(socialmodel.KindValidation, "confidenceThresholds.%s must be in [0,1], got %.3f", name, val)
		}
	}

	if sum := c.PriorityWeights.Sum(); math.Abs(sum-1.0) > epsilon {
		return socialmodel.NewError(socialmodel.KindValidation, "priority.weights must sum to 1.0 +/-1e-6, got %.9f", sum)
	}

	if c.Engine.MaxConcurrentDecisions <= 0 {
		return socialmodel.NewError(socialmodel.KindValidation, "engine.maxConcurrentDecisions must be positive, got %d", c.Engine.MaxConcurrentDecisions)
	}
	if c.Engine.DecisionTimeoutMs <= 0 {
		return socialmodel.NewError(socialmodel.KindValidation, "engine.decisionTimeoutMs must be positive, got %d", c.Engine.DecisionTimeoutMs)
	}

	if c.QualityAssurance.RequireMinimumConfidence < 0 || c.QualityAssurance.RequireMinimumConfidence > 1 {
		return socialmodel.NewError(socialmodel.KindValidation, "qualityAssurance.requireMinimumConfidence must be in [0,1], got %.3f", c.QualityAssurance.RequireMinimumConfidence)
	}

	if len(c.PlatformLimits) != len(socialmodel.Platforms) {
		return socialmodel.NewError(socialmodel.KindValidation, "platformLimits must cover every platform, got %d of %d", len(c.PlatformLimits), len(socialmodel.Platforms))
	}
	for _, p := range socialmodel.Platforms {
		lim, ok := c.PlatformLimits[p]
		if !ok {
			return socialmodel.NewError(socialmodel.KindValidation, "platformLimits missing entry for platform %q", p)
		}
		if lim.DailyLimit <= 0 || lim.HourlyLimit <= 0 || lim.MinIntervalMinutes < 0 {
			return socialmodel.NewError(socialmodel.KindValidation, "platformLimits[%s] has non-positive limit: daily=%d hourly=%d minInterval=%d", p, lim.DailyLimit, lim.HourlyLimit, lim.MinIntervalMinutes)
		}
	}

	return nil
}

func (c *Config) IsDevelopment() bool { return c.Environment == "development" }
func (c *Config) IsProduction() bool  { return c.Environment == "production" }
