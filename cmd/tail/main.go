// Command tail follows the staff dashboard from a terminal: it logs in, prints
// the current messages and reprints the view on every live change.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/onurcolak/listener-text-service/environments"
	"github.com/onurcolak/listener-text-service/pkg/dashboard"
	"github.com/onurcolak/listener-text-service/pkg/logger"
)

const maxShown = 20

func main() {
	_ = godotenv.Load()

	logger.Init(environments.GetEnv("LOG_LEVEL", "warn"))

	client, err := dashboard.NewClient(dashboard.Config{
		BaseURL:    environments.GetEnv("DASHBOARD_URL", "http://localhost:8080"),
		Username:   environments.GetEnv("AUTH_USERNAME", ""),
		Password:   environments.GetEnv("AUTH_PASSWORD", ""),
		Timeout:    environments.GetEnvAsDuration("DASHBOARD_TIMEOUT", 0),
		MinBackoff: environments.GetEnvAsDuration("DASHBOARD_MIN_BACKOFF", 0),
		MaxBackoff: environments.GetEnvAsDuration("DASHBOARD_MAX_BACKOFF", 0),
	})
	if err != nil {
		logger.Fatalf("Failed to create dashboard client: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := client.Login(ctx); err != nil {
		logger.Fatalf("Login failed: %v", err)
	}

	err = client.Run(ctx, render)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatalf("Dashboard stream stopped: %v", err)
	}
}

func render(view dashboard.View) {
	var b strings.Builder

	// clear screen, cursor home
	b.WriteString("\033[H\033[2J")

	status := "ON"
	if !view.MessagingEnabled {
		status = "OFF"
	}
	fmt.Fprintf(&b, "(%d) Listener texts  |  messaging %s\n\n", view.Unread, status)

	if len(view.Messages) == 0 {
		b.WriteString("No messages yet.\n")
	}

	for i, msg := range view.Messages {
		if i == maxShown {
			fmt.Fprintf(&b, "... %d more\n", len(view.Messages)-maxShown)
			break
		}

		marker := " "
		if !msg.Read {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %s  %-16s %s\n", marker, msg.Timestamp.Local().Format("15:04"), msg.Phone, msg.Text)
		if msg.Replied && msg.ReplyText != nil {
			fmt.Fprintf(&b, "    ↳ %s\n", *msg.ReplyText)
		}
	}

	fmt.Fprint(os.Stdout, b.String())
}
