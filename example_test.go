package session_test

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/goliatone/go-session"
)

func Example() {
	cfg := session.DefaultConfig()
	cfg.BaseURL = "https://shop.example.com/api"

	store, err := session.NewFileStore(filepath.Join("/var/lib/admin", "session.json"))
	if err != nil {
		log.Fatal(err)
	}

	manager, err := session.NewManager(session.NewClient(cfg), store)
	if err != nil {
		log.Fatal(err)
	}
	manager.WithTokenInspector(session.JWTInspector{Leeway: 30 * time.Second})

	unsubscribe := manager.Subscribe(func(s session.State) {
		fmt.Println("session is now", s.Status)
	})
	defer unsubscribe()

	state, err := manager.Initialize(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	if !state.IsAuthenticated() {
		state = manager.Login(context.Background(), "admin@example.com", "secret")
	}

	if state.LastError != "" {
		fmt.Println(state.LastError)
		manager.ClearError()
	}
}
