// PlanForge: procedural floor plan generator
//
// Lays out a room program inside a rectangular envelope, places doors and
// windows, builds wall and floor geometry, and exports plan documents.
//
// Build:
//   go build -ldflags "-X main.version=$(git describe --tags)" -o planforge ./cmd/planforge
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o planforge.exe ./cmd/planforge
//   GOOS=darwin  GOARCH=arm64 go build -o planforge-darwin ./cmd/planforge

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ArvindGuruRK/construction-3d-plan/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cli.SetVersion(version, commit, date)
	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
