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

	"github.com/existflow/irontodo/internal/fakeapi"
	"github.com/existflow/irontodo/internal/model"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	srv := fakeapi.New()

	// Optional demo account so the client can log in straight away
	if email := os.Getenv("MOCK_EMAIL"); email != "" {
		password := os.Getenv("MOCK_PASSWORD")
		if password == "" {
			password = "password"
		}
		if _, err := srv.AddUser("Demo", email, password); err != nil {
			log.Fatalf("Failed to seed user: %v", err)
		}
		for _, title := range []string{"Try the todo list", "Mark this one done"} {
			if _, err := srv.AddTodo(email, title, model.StatusPending); err != nil {
				log.Fatalf("Failed to seed todos: %v", err)
			}
		}
		log.Printf("Seeded demo account %s", email)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down: %v", err)
		}
	}()

	log.Printf("IronTodo mock API starting on :%s", port)
	if err := srv.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}
}
