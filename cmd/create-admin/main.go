package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/campushq/faculty-api/internal/models"
	"github.com/campushq/faculty-api/internal/repository"
	"github.com/campushq/faculty-api/pkg/config"
	"github.com/campushq/faculty-api/pkg/database"
	"github.com/campushq/faculty-api/pkg/password"
)

const minPasswordLength = 6

// create-admin provisions the first administrator account from the terminal.
// The password is read with echo disabled.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	reader := bufio.NewReader(os.Stdin)

	email := prompt(reader, "Admin email: ")
	if email == "" || !strings.Contains(email, "@") {
		log.Fatal("a valid email is required")
	}
	name := prompt(reader, "Admin name: ")
	if name == "" {
		log.Fatal("a name is required")
	}

	fmt.Print("Password (hidden): ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		log.Fatalf("failed to read password: %v", err)
	}
	if len(raw) < minPasswordLength {
		log.Fatalf("password must be at least %d characters", minPasswordLength)
	}

	fmt.Print("Confirm password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		log.Fatalf("failed to read password: %v", err)
	}
	if string(raw) != string(confirm) {
		log.Fatal("passwords do not match")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo := repository.NewAdminRepository(db)
	exists, err := repo.EmailExists(ctx, email)
	if err != nil {
		log.Fatalf("failed to check email: %v", err)
	}
	if exists {
		log.Fatalf("an admin with email %s already exists", email)
	}

	hash, err := password.Hash(string(raw))
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	admin := &models.AdminUser{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Active:       true,
	}
	if err := repo.Create(ctx, admin); err != nil {
		log.Fatalf("failed to create admin: %v", err)
	}

	fmt.Printf("Admin %s (%s) created.\n", name, email)
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, err := reader.ReadString('\n')
	if err != nil {
		log.Fatalf("failed to read input: %v", err)
	}
	return strings.TrimSpace(line)
}
