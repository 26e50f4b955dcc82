package main

import (
	"fmt"
	"os"
	"syscall"

	"github.com/stemsi/registry/internal/config"
	"github.com/stemsi/registry/internal/logger"
	"github.com/stemsi/registry/internal/service"
	"golang.org/x/term"
)

const minPasswordLength = 8

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	authService := service.NewAuthService(cfg)

	// ─── CLI Input ─────────────────────────────────────────────────────
	fmt.Fprintln(os.Stderr, "=== Hash Admin Password ===")

	password, err := prompt("Enter Password: ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read password")
	}
	if len(password) < minPasswordLength {
		fmt.Fprintf(os.Stderr, "Error: Password must be at least %d characters\n", minPasswordLength)
		os.Exit(1)
	}

	confirm, err := prompt("Confirm Password: ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read password")
	}
	if confirm != password {
		fmt.Fprintln(os.Stderr, "Error: Passwords do not match")
		os.Exit(1)
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	hash, err := authService.HashPassword(password)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	// Single quotes keep godotenv from expanding the $ segments of the hash.
	fmt.Fprintln(os.Stderr, "\nAdd this line to your .env:")
	fmt.Printf("ADMIN_PASSWORD_HASH='%s'\n", hash)
}

// prompt reads one line from the terminal without echo.
func prompt(label string) (string, error) {
	fmt.Fprint(os.Stderr, label)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr) // Newline after password input
	if err != nil {
		return "", err
	}
	return string(b), nil
}
