package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/godfreydekew/car-parking-crm/internal/config"
	"github.com/godfreydekew/car-parking-crm/internal/gateway"
	consolehttp "github.com/godfreydekew/car-parking-crm/internal/http"
	"github.com/godfreydekew/car-parking-crm/internal/http/handlers"
	"github.com/godfreydekew/car-parking-crm/internal/store"
)

func main() {
	env := config.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	gw := gateway.NewClient(env.GatewayBaseURL, env.GatewayTimeout)
	st := store.New(gw)
	h := handlers.New(st, gw)

	router := consolehttp.NewRouter(env, h)

	srv := &http.Server{
		Addr:         env.AppAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  90 * time.Second,
	}

	go func() {
		log.Printf("parking console listening on %s (gateway %s)", env.AppAddr, env.GatewayBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("server stopped")
}
