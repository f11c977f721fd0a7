package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/kevinkasson/boardsim/internal/config"
	"github.com/kevinkasson/boardsim/internal/logging"
	"github.com/kevinkasson/boardsim/internal/server"
	"github.com/kevinkasson/boardsim/internal/store"
)

func main() {
	env, err := config.ParseEnv()
	logger := logging.New(os.Stderr, env.LogLevel, "boardsim")
	if err != nil {
		logger.Fatal("parse env", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loader := config.NewLoader(env.ConfigDir)
	if _, err := loader.Load(env.Profile); err != nil {
		logger.Fatal("load config", "dir", env.ConfigDir, "profile", env.Profile, "err", err)
	}
	config.WatchLoader(ctx, loader, env.Profile, 2*time.Second, logger)

	opts := server.Options{Loader: loader, Profile: env.Profile, Logger: logger}
	if env.DBPath != "" {
		db, err := store.OpenSQLite(env.DBPath)
		if err != nil {
			logger.Fatal("open store", "path", env.DBPath, "err", err)
		}
		defer db.Close()
		opts.Runs = store.NewRuns(db)
	}
	srv := server.New(opts)

	httpSrv := &http.Server{
		Addr:              env.HTTPAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	grpcSrv := grpc.NewServer()
	server.RegisterSimulatorServer(grpcSrv, srv.GRPC())

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		logger.Info("http listening", "addr", env.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		lis, err := net.Listen("tcp", env.GRPCAddr)
		if err != nil {
			return err
		}
		logger.Info("grpc listening", "addr", env.GRPCAddr)
		return grpcSrv.Serve(lis)
	})
	eg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		grpcSrv.GracefulStop()
		return httpSrv.Shutdown(shutdownCtx)
	})

	if err := eg.Wait(); err != nil {
		logger.Fatal("serve", "err", err)
	}
	logger.Info("stopped")
}
