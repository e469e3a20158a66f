// Package main is the MealForge terminal client. It talks to a running
// API server and drives the same state store the web client uses.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mealforge/mealforge/internal/tui"
)

func main() {
	var (
		serverURL = flag.String("server", "http://localhost:3000", "base URL of the MealForge API")
		username  = flag.String("user", "", "username to sign in with (omit for a guest session)")
		password  = flag.String("password", "", "password for -user")
		register  = flag.Bool("register", false, "create the account before signing in")
	)
	flag.Parse()

	client := tui.NewClient(*serverURL)

	if *username != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		var token string
		var err error
		if *register {
			token, err = client.Register(ctx, *username, *password)
		} else {
			token, err = client.Login(ctx, *username, *password)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "sign-in failed: %v\n", err)
			os.Exit(1)
		}
		client.SetToken(token)
	}

	p := tea.NewProgram(tui.NewModel(client, *username), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
