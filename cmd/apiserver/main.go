package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/stemwithlyn/booking/internal/apiserver/database"
	"github.com/stemwithlyn/booking/internal/apiserver/handler"
	"github.com/stemwithlyn/booking/internal/apiserver/middleware"
	"github.com/stemwithlyn/booking/internal/auth/jwt"
	"github.com/stemwithlyn/booking/internal/booking"
	"github.com/stemwithlyn/booking/internal/common/cnst"
	"github.com/stemwithlyn/booking/internal/common/config"
	"github.com/stemwithlyn/booking/internal/common/errorx"
	"github.com/stemwithlyn/booking/internal/i18n"
	"github.com/stemwithlyn/booking/internal/notifier"
	"github.com/stemwithlyn/booking/internal/payment"
	"github.com/stemwithlyn/booking/pkg/logger"
	"github.com/stemwithlyn/booking/pkg/metrics"
	"github.com/stemwithlyn/booking/pkg/trace"
	"github.com/stemwithlyn/booking/pkg/version"
)

const shutdownTimeout = 10 * time.Second

var (
	configPath    string
	tokenUsername string

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of apiserver",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("apiserver version %s\n", version.Get())
		},
	}

	tokenCmd = &cobra.Command{
		Use:   "token",
		Short: "Mint an operator token for an existing admin user",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			db := initDatabase(zap.NewNop(), &cfg.Database)
			defer db.Close()

			token, err := mintToken(cmd.Context(), db, cfg.JWT, tokenUsername)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	rootCmd = &cobra.Command{
		Use:   cnst.CommandName,
		Short: "Appointment booking API server",
		Long:  `Serves the booking form, the operator calendar, the client portal and payment reconciliation`,
		Run: func(cmd *cobra.Command, args []string) {
			run()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "conf", "c", cnst.DefaultAPIServerConfigPath, "path to configuration file")
	tokenCmd.Flags().StringVarP(&tokenUsername, "username", "u", "", "admin username")
	_ = tokenCmd.MarkFlagRequired("username")
	rootCmd.AddCommand(versionCmd, tokenCmd)
}

func initLogger(cfg *config.APIServerConfig) *zap.Logger {
	lg, err := logger.NewLogger(&cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	return lg
}

func initDatabase(lg *zap.Logger, cfg *config.DatabaseConfig) database.Database {
	db, err := database.NewDatabase(cfg)
	if err != nil {
		lg.Fatal("Failed to initialize database", zap.String("type", cfg.Type), zap.Error(err))
	}
	return db
}

func initNotifier(ctx context.Context, lg *zap.Logger, cfg *config.NotifierConfig) notifier.Notifier {
	ntf, err := notifier.NewNotifier(ctx, lg, cfg)
	if err != nil {
		lg.Fatal("Failed to initialize notifier", zap.String("type", cfg.Type), zap.Error(err))
	}
	return ntf
}

// initI18n loads translations, responses fall back to message ids without them
func initI18n(lg *zap.Logger, cfg *config.I18nConfig) {
	i18n.SetDefaultLanguage(cfg.DefaultLang)
	if err := i18n.InitTranslator(cfg.Path); err != nil {
		lg.Warn("Failed to load translations", zap.String("path", cfg.Path), zap.Error(err))
	}
}

func initRouter(ctx context.Context, db database.Database, ntf notifier.Notifier, cfg *config.APIServerConfig, lg *zap.Logger) (*gin.Engine, error) {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	jwtService, err := jwt.NewService(cfg.JWT)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize jwt service: %w", err)
	}

	opts := []booking.Option{booking.WithNotifier(ntf, cfg.Notifier.Staff)}
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics)
		opts = append(opts, booking.WithMetrics(m))
	}
	if cfg.Payment.Enabled {
		pc, err := payment.NewClient(ctx, &cfg.Payment, lg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize payment client: %w", err)
		}
		opts = append(opts, booking.WithPaymentVerifier(pc))
	}
	svc := booking.NewService(db, cfg.Booking, lg, opts...)
	eh := errorx.NewErrorHandler(lg, handler.MapBookingError)

	r := gin.New()
	r.Use(eh.RecoveryMiddleware())
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	r.Use(i18n.Middleware())
	if m != nil {
		r.Use(m.Middleware())
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	authH := handler.NewAuth(db, jwtService, eh, lg)
	apptH := handler.NewAppointment(svc, eh)
	portalH := handler.NewPortal(svc, eh)
	payH := handler.NewPayment(svc, eh)
	schedH := handler.NewSchedule(svc, eh)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": version.Get()})
	})

	// public
	r.POST("/api/auth/login", authH.Login)
	r.POST("/api/finalize-payment-and-book", payH.Finalize)
	r.GET("/availability", schedH.Availability)
	r.POST("/appointments", middleware.OptionalJWTMiddleware(jwtService, eh), apptH.Create)

	// operator
	operator := r.Group("", middleware.JWTAuthMiddleware(jwtService, eh), middleware.AdminOnly(eh))
	{
		operator.POST("/api/users", authH.InviteUser)

		operator.GET("/appointments", apptH.List)
		operator.GET("/appointments/:id", apptH.Get)
		operator.PATCH("/appointments/:id", apptH.Update)
		operator.DELETE("/appointments/:id", apptH.Delete)
		operator.PATCH("/appointments/:id/paid", apptH.SetPaid)

		operator.POST("/schedule-blocks", schedH.CreateBlock)
		operator.GET("/schedule-blocks", schedH.ListBlocks)
		operator.DELETE("/schedule-blocks/:id", schedH.DeleteBlock)
		operator.POST("/weekly-availability", schedH.SaveWeekly)
		operator.GET("/weekly-availability", schedH.ListWeekly)
	}

	// client portal
	portal := r.Group("/client/appointments", middleware.ClientIdentity(db, eh))
	{
		portal.GET("", portalH.List)
		portal.POST("/:id/cancel", portalH.Cancel)
		portal.POST("/:id/reschedule", portalH.Reschedule)
	}

	return r, nil
}

// mintToken issues a token for username, which must be an admin
func mintToken(ctx context.Context, db database.Database, cfg config.JWTConfig, username string) (string, error) {
	user, err := db.GetUserByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("failed to find user %q: %w", username, err)
	}
	if user.Role != cnst.RoleAdmin {
		return "", fmt.Errorf("user %q is not an admin", username)
	}
	jwtService, err := jwt.NewService(cfg)
	if err != nil {
		return "", err
	}
	return jwtService.GenerateToken(user.ID, user.Username, user.Role)
}

func run() {
	cfg, cfgPath, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration from %s: %v", cfgPath, err)
	}

	lg := initLogger(cfg)
	defer lg.Sync()
	lg.Info("Starting apiserver", zap.String("version", version.Get()), zap.String("config", cfgPath))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := trace.InitTracing(ctx, &cfg.Tracing, lg)
	if err != nil {
		lg.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	initI18n(lg, &cfg.I18n)

	db := initDatabase(lg, &cfg.Database)
	defer db.Close()

	if admin, created, err := database.InitSuperAdmin(ctx, db, &cfg.SuperAdmin); err != nil {
		lg.Fatal("Failed to seed super admin", zap.Error(err))
	} else if created {
		lg.Info("Super admin created", zap.String("username", admin.Username))
	}

	ntf := initNotifier(ctx, lg, &cfg.Notifier)
	defer ntf.Close()

	r, err := initRouter(ctx, db, ntf, cfg, lg)
	if err != nil {
		lg.Fatal("Failed to initialize router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		lg.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("Server stopped unexpectedly", zap.Error(err))
		}
	}()

	<-ctx.Done()
	lg.Info("Shutting down apiserver")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("Failed to shutdown server", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		lg.Error("Failed to shutdown tracing", zap.Error(err))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
