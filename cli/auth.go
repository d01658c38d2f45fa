// ABOUTME: Login and logout CLI commands
// ABOUTME: Exchanges credentials for a session token and manages local state
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/harperreed/stride/db"
	"github.com/harperreed/stride/ourpr"
)

// LoginCommand authenticates against the OurPR API and stores the session
// token. With a single plan on the account it becomes the active plan
// automatically.
func LoginCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "OurPR account email")
	_ = fs.Parse(args)

	cfg, err := ourpr.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	address := *email
	reader := bufio.NewReader(os.Stdin)
	if address == "" {
		fmt.Print("Email: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read email: %w", err)
		}
		address = strings.TrimSpace(line)
	}
	if address == "" {
		return fmt.Errorf("email is required")
	}

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	ctx := context.Background()
	client := ourpr.NewClient(cfg.Server)

	session, err := client.Login(ctx, address, string(password))
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if err := ourpr.SaveSession(session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	if cfg.DeviceID == "" {
		cfg.DeviceID = ourpr.GenerateDeviceID()
	}

	fmt.Printf("✓ Logged in as %s\n", address)

	// Pick the active plan up front so the first command just works
	plans, err := client.ListPlans(ctx)
	if err == nil {
		switch {
		case len(plans) == 1:
			cfg.ActivePlanID = plans[0].ID
			fmt.Printf("✓ Active plan: %s (%s on %s)\n", plans[0].RaceName, plans[0].RaceDistance, plans[0].RaceDate)
		case len(plans) > 1 && cfg.ActivePlanID == "":
			fmt.Printf("\nYou have %d plans. Run 'stride plans' to list them and 'stride plans --use <id>' to pick one.\n", len(plans))
		}
	}

	if err := ourpr.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}

// LogoutCommand clears the stored session and the offline plan cache.
func LogoutCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("logout", flag.ExitOnError)
	_ = fs.Parse(args)

	if err := ourpr.ClearSession(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	if err := db.ClearPlanSnapshots(database); err != nil {
		return fmt.Errorf("failed to clear cached plans: %w", err)
	}

	fmt.Println("✓ Logged out. Cached plans cleared.")
	return nil
}
