package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc/reflection"

	grpcctx "github.com/dtroode/lobby-server/internal/api/grpc/context"
	"github.com/dtroode/lobby-server/internal/api/grpc/router"
	grpcServer "github.com/dtroode/lobby-server/internal/api/grpc/server"
	"github.com/dtroode/lobby-server/internal/config"
	"github.com/dtroode/lobby-server/internal/logger"
	"github.com/dtroode/lobby-server/internal/model"
	"github.com/dtroode/lobby-server/internal/presence"
	"github.com/dtroode/lobby-server/internal/repository/pebblestore"
	"github.com/dtroode/lobby-server/internal/repository/postgres"
	"github.com/dtroode/lobby-server/internal/server"
	"github.com/dtroode/lobby-server/internal/service"
	"github.com/dtroode/lobby-server/internal/token"

	"github.com/dtroode/lobby-server/database"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "lobby-server",
		Short:         "Lobby identity reservation and matchmaking queue server",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the gRPC server",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runServe(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply PostgreSQL migrations",
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := config.NewConfig()
				if err != nil {
					return err
				}
				if err := database.Migrate(cmd.Context(), cfg.Database.DSN); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
				return nil
			},
		},
		newTokenCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print build information",
			Run: func(cmd *cobra.Command, _ []string) {
				logAppVersion()
			},
		},
	)

	return rootCmd
}

func newTokenCmd() *cobra.Command {
	var (
		uid      string
		email    string
		verified bool
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development access token for a caller",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.NewConfig()
			if err != nil {
				return err
			}

			access, err := token.NewJWT(cfg.JWT.Secret).GenerateAccessToken(model.Caller{
				ID:            uid,
				Email:         email,
				EmailVerified: verified,
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), access)
			return nil
		},
	}

	cmd.Flags().StringVar(&uid, "uid", "", "caller ID")
	cmd.Flags().StringVar(&email, "email", "", "caller email")
	cmd.Flags().BoolVar(&verified, "verified", true, "whether the email is verified")
	_ = cmd.MarkFlagRequired("uid")

	return cmd
}

type stores struct {
	identity model.IdentityStore
	queue    model.QueueStore
	close    func() error
}

func openStores(ctx context.Context, cfg *config.Config) (stores, error) {
	switch cfg.Database.Driver {
	case config.DriverPebble:
		db, err := pebblestore.Open(pebblestore.Options{DataDir: cfg.Database.PebbleDir, Sync: true})
		if err != nil {
			return stores{}, err
		}
		return stores{
			identity: pebblestore.NewIdentityStore(db),
			queue:    pebblestore.NewQueueStore(db),
			close:    db.Close,
		}, nil
	default:
		conn, err := postgres.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			return stores{}, err
		}
		return stores{
			identity: postgres.NewIdentityRepository(conn),
			queue:    postgres.NewQueueRepository(conn),
			close:    conn.Close,
		}, nil
	}
}

func runServe(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	lg := logger.NewWithWriter(os.Stdout, cfg.LogLevel, cfg.LogJSON)

	st, err := openStores(ctx, cfg)
	if err != nil {
		lg.Fatal("failed to initialize storage", "driver", cfg.Database.Driver, "error", err)
	}
	defer func() {
		if err := st.close(); err != nil {
			lg.Error("failed to close storage", "error", err)
		}
	}()

	presenceChecker, err := presence.NewChecker(ctx, presence.Options{
		Addr:     cfg.Presence.Addr,
		Password: cfg.Presence.Password,
		DB:       cfg.Presence.DB,
		Prefix:   cfg.Presence.Prefix,
	})
	if err != nil {
		lg.Fatal("failed to connect to presence store", "error", err)
	}
	defer presenceChecker.Close()

	identityService := service.NewIdentity(st.identity, service.IdentityConfig{
		ReserveAttempts: cfg.Protocol.ReserveAttempts,
	}, lg)
	queueService := service.NewQueue(st.queue, presenceChecker, service.QueueConfig{
		LeaveAttempts:   cfg.Protocol.LeaveAttempts,
		LeaveRetryDelay: cfg.Protocol.LeaveRetryDelay,
	}, lg)

	tokenManager := token.NewJWT(cfg.JWT.Secret)
	ctxMgr := grpcctx.NewManager()

	r := router.New(identityService, queueService, tokenManager, ctxMgr, lg)
	s := r.Register()
	reflection.Register(s)

	srv := grpcServer.NewGRPCServer(s, fmt.Sprintf(":%s", cfg.GRPC.Port), lg)
	sl := server.NewSecurityLayer(cfg.GRPC)

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		lg.Info("Starting server on", "address", s.Address(), "driver", cfg.Database.Driver)
		if err := s.Start(sl); err != nil {
			lg.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	lg.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		lg.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	lg.Info("shutdown complete")
	return nil
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
