package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	openai "github.com/sashabaranov/go-openai"

	"github.com/socialpulse/engine/internal/action"
	"github.com/socialpulse/engine/internal/audit"
	"github.com/socialpulse/engine/internal/config"
	"github.com/socialpulse/engine/internal/decision"
	"github.com/socialpulse/engine/internal/httpapi"
	"github.com/socialpulse/engine/internal/intent"
	"github.com/socialpulse/engine/internal/notifications"
	"github.com/socialpulse/engine/internal/priority"
	"github.com/socialpulse/engine/internal/publishing"
	"github.com/socialpulse/engine/internal/repository"
	"github.com/socialpulse/engine/internal/routing"
	"github.com/socialpulse/engine/internal/scheduling"
	"github.com/socialpulse/engine/internal/sentiment"
	"github.com/socialpulse/engine/internal/socialmodel"
	"github.com/socialpulse/engine/internal/topics"
	"github.com/socialpulse/engine/pkg/clock"
	"github.com/socialpulse/engine/pkg/logger"
)

// topicVocabulary seeds the topic engine's bag-of-words vectorizer (spec
// §4.3). In production this would be refreshed from a corpus; a fixed
// starter vocabulary keeps the engine usable out of the box.
var topicVocabulary = []string{
	"shipping", "delivery", "delayed", "refund", "broken", "quality",
	"price", "expensive", "cheap", "support", "service", "love", "hate",
	"amazing", "terrible", "bug", "crash", "feature", "update", "launch",
}

func main() {
	log := logger.New()
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalw("failed to load configuration", "error", err)
	}

	clk := clock.NewReal()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repository.NewPostgresDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalw("invalid redis url", "error", err)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalw("failed to connect to redis", "error", err)
	}

	schedulingRepo := repository.NewSchedulingRepository(db)
	publishingRepo := repository.NewPublishingRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	// Notifications: email/Slack/Discord, delivered through the same
	// Service for both schedule events and escalations.
	var emailCfg *notifications.EmailConfig
	if cfg.SMTPHost != "" {
		emailCfg = &notifications.EmailConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPUser,
		}
	}
	var slackCfg *notifications.SlackConfig
	if cfg.SlackWebhookURL != "" {
		slackCfg = &notifications.SlackConfig{WebhookURL: cfg.SlackWebhookURL}
	}
	var discordCfg *notifications.DiscordConfig
	if cfg.DiscordBotToken != "" {
		discordCfg = &notifications.DiscordConfig{WebhookURL: cfg.DiscordBotToken}
	}
	notifySvc := notifications.NewService(emailCfg, slackCfg, discordCfg, log)
	scheduleNotifier := notifications.NewScheduleAdapter(notifySvc, notifications.ChannelEmail, notifications.ChannelSlack)
	escalationNotifier := notifications.NewEscalationAdapter(notifySvc)

	// Per-platform webhook endpoints for outbound publishing/responses.
	// Unconfigured platforms simply fail validation rather than panic.
	publishEndpoints := map[socialmodel.Platform]string{}
	respondEndpoints := map[socialmodel.Platform]string{}
	for _, p := range socialmodel.Platforms {
		if url := os.Getenv("PUBLISH_WEBHOOK_" + string(p)); url != "" {
			publishEndpoints[p] = url
		}
		if url := os.Getenv("RESPOND_WEBHOOK_" + string(p)); url != "" {
			respondEndpoints[p] = url
		}
	}
	publisher := newWebhookPublisher(publishEndpoints, log)
	responder := newWebhookResponder(respondEndpoints, log)

	// C1 Sentiment: lexical backend always on, optional OpenAI-backed
	// second opinion when an API key is configured.
	sentimentBackends := []sentiment.ModelBackend{sentiment.NewLexicalBackend()}
	if cfg.OpenAIAPIKey != "" {
		openaiClient := openai.NewClient(cfg.OpenAIAPIKey)
		sentimentBackends = append(sentimentBackends, sentiment.NewProviderModelBackend(openaiClient, "gpt-4o-mini"))
	}
	sentimentAnalyzer := sentiment.New(sentiment.DefaultConfig(), sentimentBackends...)

	// C2 Intent: no provider backend wired; the classifier falls back to
	// its rule-based path when provider is nil.
	intentClassifier := intent.New(nil)

	// C3 Topics: batch-oriented, fed from the HTTP ingest path below.
	vectorizer := topics.NewVectorizer(topicVocabulary)
	topicsEngine := topics.NewEngine(topics.DefaultConfig(), vectorizer, nil)
	topicsBatch := newTopicsBatcher(topicsEngine, clk, log)
	go topicsBatch.Run(ctx, 5*time.Minute)

	// C4 Priority.
	priorityScorer := priority.NewScorer(priority.DefaultConfig(), priority.Weights{
		Urgency:   cfg.PriorityWeights.Urgency,
		Impact:    cfg.PriorityWeights.Impact,
		Sentiment: cfg.PriorityWeights.Sentiment,
		Reach:     cfg.PriorityWeights.Reach,
		BrandRisk: cfg.PriorityWeights.BrandRisk,
	})

	// C5 Routing.
	router := routing.NewRouter(routing.DefaultConfig(routing.Thresholds{
		AutoResponse: cfg.ConfidenceThresholds.AutoResponse,
		Suggestion:   cfg.ConfidenceThresholds.Suggestion,
		HumanReview:  cfg.ConfidenceThresholds.HumanReview,
	}))

	// C6 Action execution.
	executor := action.NewExecutor(responder, escalationNotifier)

	// C7 Decision Engine: orchestrates C1-C6 with caching and an audit
	// trail.
	decisionEngine := decision.New(decision.Config{
		MaxConcurrentDecisions:   cfg.Engine.MaxConcurrentDecisions,
		DecisionTimeout:          time.Duration(cfg.Engine.DecisionTimeoutMs) * time.Millisecond,
		EnableDecisionCaching:    cfg.Engine.EnableDecisionCaching,
		CacheExpiration:          time.Duration(cfg.Engine.CacheExpirationMs) * time.Millisecond,
		EnableValidation:         cfg.QualityAssurance.EnableValidation,
		RequireMinimumConfidence: cfg.QualityAssurance.RequireMinimumConfidence,
		EnableAuditLogging:       cfg.QualityAssurance.EnableAuditLogging,
	}, clk, sentimentAnalyzer, intentClassifier, priorityScorer, router, executor, decision.NewRedisCache(redisClient))

	// C8 Scheduling. OptimalTimingService is an out-of-scope external
	// collaborator (see internal/scheduling/repository.go); nil falls back
	// to even time distribution.
	schedulingLimits := make(map[socialmodel.Platform]scheduling.PlatformLimit, len(cfg.PlatformLimits))
	for p, lim := range cfg.PlatformLimits {
		schedulingLimits[p] = scheduling.PlatformLimit{
			DailyLimit:         lim.DailyLimit,
			HourlyLimit:        lim.HourlyLimit,
			MinIntervalMinutes: lim.MinIntervalMinutes,
		}
	}
	schedulingCfg := scheduling.DefaultConfig()
	schedulingCfg.PlatformLimits = schedulingLimits
	schedulingEngine := scheduling.New(schedulingRepo, nil, schedulingRepo, schedulingCfg, clk)

	// C9 Publishing Manager: dispatch loop polling for due schedules.
	publishingDispatcher := publishing.New(publishingRepo, publisher, scheduleNotifier, publishing.DefaultConfig(), clk, log, 10)
	if err := publishingDispatcher.Start(ctx); err != nil {
		log.Fatalw("failed to start publishing dispatcher", "error", err)
	}
	defer publishingDispatcher.Stop()

	// C11 audit trail.
	auditMetrics := audit.NewMetrics(prometheus.DefaultRegisterer)
	auditRecorder := audit.NewRecorder(log, auditRepo, auditMetrics)

	// C12 HTTP boundary.
	handlers := httpapi.Handlers{
		Health:   httpapi.NewHealthHandler(db, redisPinger{redisClient}, log),
		Events:   httpapi.NewEventsHandler(decisionEngine, auditRecorder, topicsBatch, log),
		Schedule: httpapi.NewScheduleHandler(schedulingEngine, log),
	}
	mux := httpapi.NewRouter(handlers, log)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.APIPort),
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infow("starting social decisioning engine", "port", cfg.APIPort, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

// redisPinger adapts redis.Client's Ping (which returns *redis.StatusCmd)
// to the httpapi.Pinger seam.
type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}
