package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/marlowekitchens/kitchen-roster/internal/config"
	"github.com/marlowekitchens/kitchen-roster/pkg/core/calendar"
	"github.com/marlowekitchens/kitchen-roster/pkg/core/services"
	"github.com/marlowekitchens/kitchen-roster/pkg/postgres"
	"github.com/marlowekitchens/kitchen-roster/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg      *config.Config
	database *postgres.DB
	logger   *zap.Logger
	ctx      context.Context
}

var (
	env string
	app *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Kitchen Roster CLI - Generate and validate kitchen shift rosters",
		Long:  `A CLI tool for generating monthly kitchen shift rosters and checking individual assignments against the labor rules.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.logger != nil {
				app.logger.Sync()
			}
			if app != nil && app.database != nil {
				app.database.Close()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "dev", "Environment name, used for log file prefixes")

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(generateRosterCmd())
	rootCmd.AddCommand(checkAssignmentCmd())
	rootCmd.AddCommand(listEmployeesCmd())
	rootCmd.AddCommand(viewRosterCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config and database
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	app.logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Info("Starting application", zap.String("environment", env))

	app.cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded successfully")

	app.database, err = postgres.NewDB(app.ctx, app.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.logger.Debug("Database connection established")

	return nil
}

func parseMonthArgs(args []string) (int, time.Month, error) {
	year, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("year must be a number: %w", err)
	}
	monthNum, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("month must be a number: %w", err)
	}
	if monthNum < 1 || monthNum > 12 {
		return 0, 0, fmt.Errorf("month must be between 1 and 12, got %d", monthNum)
	}
	return year, time.Month(monthNum), nil
}

// Command definitions

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.database.RunMigrations(app.ctx); err != nil {
				return err
			}
			fmt.Println("Migrations applied.")
			return nil
		},
	}
}

func generateRosterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generateRoster <year> <month>",
		Short: "Generate a full month of shift assignments",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := parseMonthArgs(args)
			if err != nil {
				return err
			}

			seed, _ := cmd.Flags().GetInt64("seed")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			if !cmd.Flags().Changed("seed") {
				seed = time.Now().UnixNano()
			}

			policy, err := services.PolicyForMonth(app.cfg, year, month)
			if err != nil {
				return err
			}

			result, err := services.GenerateRoster(app.ctx, app.database, app.logger, policy, year, month, seed, dryRun)
			if err != nil {
				return err
			}

			fmt.Printf("\nGenerated %d assignments for %d-%02d (seed %d)\n", len(result.Assignments), year, month, seed)
			if dryRun {
				fmt.Println("Dry run: nothing was persisted.")
			}
			if understaffed := result.Understaffed(); understaffed > 0 {
				fmt.Printf("%d days are understaffed:\n", understaffed)
			}
			for _, line := range result.Log {
				fmt.Printf("  %s\n", line)
			}

			return nil
		},
	}

	cmd.Flags().Int64("seed", 0, "Seed for candidate tie-breaking (defaults to current time)")
	cmd.Flags().Bool("dry-run", false, "Run without saving to database")

	return cmd
}

func checkAssignmentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkAssignment <employee_id> <date> <morning|afternoon>",
		Short: "Check whether an assignment would be legal",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			decision, err := services.CheckAssignment(app.ctx, app.database, app.logger, args[0], args[1], args[2])
			if err != nil {
				return err
			}

			if decision.OK {
				fmt.Printf("OK: %s may work the %s shift on %s\n", args[0], args[2], args[1])
			} else {
				fmt.Printf("Not allowed: %s\n", decision.Reason)
			}
			return nil
		},
	}
}

func listEmployeesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listEmployees",
		Short: "List all employees on the roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			employees, err := app.database.ListEmployees(app.ctx)
			if err != nil {
				return fmt.Errorf("failed to list employees: %w", err)
			}

			fmt.Printf("\nFound %d employees:\n\n", len(employees))
			for _, e := range employees {
				fmt.Printf("- %s (%s) - %s - %d vacation days booked\n",
					e.Name, e.ID, e.Role, len(e.VacationDates))
			}
			return nil
		},
	}
}

func viewRosterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "viewRoster <year> <month>",
		Short: "Show the persisted roster for a month",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := parseMonthArgs(args)
			if err != nil {
				return err
			}

			from := calendar.NewDate(year, month, 1)
			to := calendar.NewDate(year, month, calendar.DaysInMonth(year, month))
			assignments, err := app.database.GetAssignmentsBetween(app.ctx, from.String(), to.String())
			if err != nil {
				return fmt.Errorf("failed to fetch roster: %w", err)
			}

			employees, err := app.database.ListEmployees(app.ctx)
			if err != nil {
				return fmt.Errorf("failed to list employees: %w", err)
			}
			names := make(map[string]string, len(employees))
			for _, e := range employees {
				names[e.ID] = e.Name
			}

			byDate := make(map[string][]string)
			for _, a := range assignments {
				name := names[a.EmployeeID]
				if name == "" {
					name = a.EmployeeID
				}
				byDate[a.Date] = append(byDate[a.Date], fmt.Sprintf("%-10s %s", a.ShiftType, name))
			}

			dates := make([]string, 0, len(byDate))
			for d := range byDate {
				dates = append(dates, d)
			}
			sort.Strings(dates)

			fmt.Printf("\nRoster for %04d-%02d (%d assignments):\n\n", year, month, len(assignments))
			for _, d := range dates {
				fmt.Printf("%s\n", d)
				for _, line := range byDate[d] {
					fmt.Printf("  %s\n", line)
				}
			}
			return nil
		},
	}
}
