package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	adminapp "github.com/assessly-hq/assessly-services/api/internal/admin/application"
	"github.com/assessly-hq/assessly-services/api/internal/auth"
	"github.com/assessly-hq/assessly-services/api/internal/billing"
	"github.com/assessly-hq/assessly-services/api/internal/captcha"
	"github.com/assessly-hq/assessly-services/api/internal/config"
	mongodoc "github.com/assessly-hq/assessly-services/api/internal/infrastructure/mongo"
	adminhttp "github.com/assessly-hq/assessly-services/api/internal/interfaces/http/admin"
	commonhttp "github.com/assessly-hq/assessly-services/api/internal/interfaces/http/common"
	publichttp "github.com/assessly-hq/assessly-services/api/internal/interfaces/http/public"
	"github.com/assessly-hq/assessly-services/api/internal/mail"
	publicapp "github.com/assessly-hq/assessly-services/api/internal/public/application"
	"github.com/assessly-hq/assessly-services/api/internal/scoring"
)

// Server manages the HTTP lifecycle and acts as the composition root:
// repositories, application services and handlers are assembled here and
// nowhere else.
type Server struct {
	logger   *zap.Logger
	client   *mongo.Client
	database *mongo.Database

	users       *mongo.Collection
	invitations *mongo.Collection

	authService       publicapp.AuthService
	assessmentService publicapp.AssessmentService
	invitationService publicapp.InvitationService
	responseService   publicapp.ResponseService
	contactService    publicapp.ContactService
	scorer            *scoring.Engine

	adminStatsService   adminapp.StatsService
	adminContactService adminapp.ContactService

	billingClient *billing.ProviderClient
	billingSyncer *billing.Syncer

	jwtConfigs     []config.JWTConfig
	jwtAudience    string
	webhookSecret  []byte
	dashboardURL   string
	addr           string
	allowedOrigins []string
}

// New assembles a Server from config and a connected Mongo client.
func New(cfg config.Config, logger *zap.Logger, client *mongo.Client) *Server {
	srv := &Server{
		logger:         logger,
		client:         client,
		database:       client.Database(cfg.MongoDatabase),
		jwtConfigs:     append([]config.JWTConfig(nil), cfg.JWTConfigs...),
		jwtAudience:    cfg.JWTAudience,
		webhookSecret:  cfg.BillingWebhookSecret,
		dashboardURL:   cfg.DashboardURL,
		addr:           cfg.Addr,
		allowedOrigins: append([]string(nil), cfg.AllowedOrigins...),
	}
	srv.users = srv.database.Collection(cfg.UserCollection)
	srv.invitations = srv.database.Collection(cfg.InvitationCollection)

	userRepo := mongodoc.NewUserRepository(srv.database, cfg.UserCollection)
	orgRepo := mongodoc.NewOrganizationRepository(srv.database, cfg.OrganizationCollection)
	assessmentRepo := mongodoc.NewAssessmentRepository(srv.database, cfg.AssessmentCollection)
	invitationRepo := mongodoc.NewInvitationRepository(srv.database, cfg.InvitationCollection)
	responseRepo := mongodoc.NewResponseRepository(srv.database, cfg.ResponseCollection)
	contactRepo := mongodoc.NewContactRepository(srv.database, cfg.ContactCollection)
	statsRepo := mongodoc.NewStatsRepository(srv.database, cfg.UserCollection, cfg.OrganizationCollection, cfg.AssessmentCollection, cfg.ResponseCollection)
	failureStore := mongodoc.NewNotificationFailureStore(srv.database, cfg.FailedNotificationCollection, logger)

	mailer := mail.New(cfg.SMTPAddr, cfg.MailFrom, cfg.SMTPUsername, cfg.SMTPPassword, failureStore, logger)
	captchaVerifier := captcha.New(cfg.CaptchaEndpoint, cfg.CaptchaSecret, 5*time.Second)

	srv.scorer = buildScorer(cfg, logger)

	srv.authService = publicapp.NewAuthService(userRepo, orgRepo, cfg.JWTConfigs[0], cfg.JWTAudience, cfg.TokenTTL)
	srv.assessmentService = publicapp.NewAssessmentService(assessmentRepo)
	srv.invitationService = publicapp.NewInvitationService(invitationRepo, assessmentRepo, mailer, cfg.DashboardURL, logger)
	srv.responseService = publicapp.NewResponseService(invitationRepo, assessmentRepo, responseRepo, srv.scorer)
	srv.contactService = publicapp.NewContactService(contactRepo, captchaVerifier, mailer, cfg.SalesEmail, logger)

	srv.adminStatsService = adminapp.NewStatsService(statsRepo)
	srv.adminContactService = adminapp.NewContactService(contactRepo)

	srv.billingClient = billing.NewProviderClient(cfg.BillingEndpoint, cfg.BillingTimeout)
	srv.billingSyncer = billing.NewSyncer(orgRepo, logger)

	return srv
}

// buildScorer wires the scoring engine. The Gemini grader and the Redis
// cache are both optional; the heuristic plus an in-process cache is the
// floor the engine never drops below.
func buildScorer(cfg config.Config, logger *zap.Logger) *scoring.Engine {
	var grader scoring.Grader
	if cfg.GeminiAPIKey != "" {
		g, err := scoring.NewGeminiGrader(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Warn("gemini grader unavailable, scoring stays local", zap.Error(err))
		} else {
			grader = g
		}
	}

	var cache scoring.Cache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		cache = scoring.NewRedisCache(client, cfg.ScoreCacheTTL, logger)
	}

	return scoring.NewEngine(grader, cache, logger)
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run() error {
	if err := s.ensureIndexes(context.Background()); err != nil {
		s.logger.Warn("index creation failed", zap.Error(err))
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(s.requestLogger)
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))

	router.Get("/healthz", s.healthHandler())

	publicHandler := publichttp.NewHandler(publichttp.Config{
		Logger:        s.logger,
		Auth:          s.authService,
		Assessments:   s.assessmentService,
		Invitations:   s.invitationService,
		Responses:     s.responseService,
		Contacts:      s.contactService,
		Scorer:        s.scorer,
		BillingClient: s.billingClient,
		BillingSyncer: s.billingSyncer,
		WebhookSecret: s.webhookSecret,
		DashboardURL:  s.dashboardURL,
	})
	router.Route("/api", func(r chi.Router) {
		publicHandler.Register(r, s.authMiddleware)
	})

	adminHandler := adminhttp.NewHandler(adminhttp.Config{
		Logger:         s.logger,
		StatsService:   s.adminStatsService,
		ContactService: s.adminContactService,
	})
	router.Route("/admin", func(r chi.Router) {
		r.Use(s.authMiddleware)
		adminHandler.Register(r)
	})

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", zap.String("addr", s.addr))
		errChan <- httpServer.ListenAndServe()
	}()

	waitForShutdown(httpServer, errChan, s)
	return nil
}

// ensureIndexes creates the uniqueness guarantees the application relies
// on: one account per email, one invitation per token.
func (s *Server) ensureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = s.invitations.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "token", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("requestId", middleware.GetReqID(r.Context())),
		)
	})
}

// withCORS grants the configured origins access; "*" allows any origin.
func withCORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{})
	allowAll := false
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" || (!allowAll && len(allowed) > 0 && !originAllowed(origin, allowed)) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PATCH,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type,X-Billing-Signature")
			w.Header().Set("Access-Control-Max-Age", "300")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(origin string, allowed map[string]struct{}) bool {
	if len(allowed) == 0 {
		return true
	}
	_, ok := allowed[origin]
	return ok
}

// healthHandler reports Mongo connectivity for load balancers and monitors.
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
			commonhttp.WriteJSON(s.logger, w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}

		commonhttp.WriteJSON(s.logger, w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

// authMiddleware verifies the bearer token and stores the principal in the
// request context. Both the public and admin surfaces stack on it.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
		if authHeader == "" {
			commonhttp.WriteError(s.logger, w, http.StatusUnauthorized, "missing Authorization header")
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			commonhttp.WriteError(s.logger, w, http.StatusUnauthorized, "a Bearer token is required")
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		if tokenString == "" {
			commonhttp.WriteError(s.logger, w, http.StatusUnauthorized, "access token is empty")
			return
		}

		claims, err := auth.ParseToken(tokenString, s.jwtConfigs, s.jwtAudience)
		if err != nil {
			commonhttp.WriteError(s.logger, w, http.StatusUnauthorized, err.Error())
			return
		}

		user := commonhttp.AuthenticatedUser{
			ID:             claims.Subject,
			Email:          claims.Email,
			Name:           claims.Name,
			Role:           claims.Role,
			OrganizationID: claims.OrganizationID,
		}
		ctx := commonhttp.ContextWithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// shutdown disconnects the Mongo client with a timeout.
func (s *Server) shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(shutdownCtx); err != nil {
		s.logger.Warn("mongo disconnect errored", zap.Error(err))
	}
}

// waitForShutdown watches ListenAndServe and OS signals and drains the
// server gracefully.
func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.logger.Fatal("server exited abnormally", zap.Error(err))
		}
	case sig := <-sigChan:
		srv.logger.Info("signal received, shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.Warn("server shutdown errored", zap.Error(err))
		}
	}

	srv.shutdown(context.Background())
}
