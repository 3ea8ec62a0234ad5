package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"fichaje/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// UserEnv holds the default user id for the day commands
const UserEnv = "FICHAJE_USER"

// AppFactory builds the application once the configuration is known
type AppFactory func(cfg *config.Config) (*App, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd        *cobra.Command
	newApp     AppFactory
	config     *config.Config
	app        *App
	configFile string
	user       string
}

// NewRootCommand creates the root cobra command with global flags. Command
// output goes to out and structured logs to logOut.
func NewRootCommand(out, logOut io.Writer) *RootCommand {
	return NewRootCommandWithFactory(func(cfg *config.Config) (*App, error) {
		return NewApp(cfg, out, logOut)
	})
}

// NewRootCommandWithFactory creates the root command over a custom application factory
func NewRootCommandWithFactory(factory AppFactory) *RootCommand {
	root := &RootCommand{newApp: factory}

	root.cmd = &cobra.Command{
		Use:   "fichaje",
		Short: "Workday time tracking from Telegram or the terminal",
		Long: `fichaje records the start, pauses and end of each workday and estimates
the exit time and the balance against the required daily hours.

EXAMPLES:
  fichaje serve                              # Run the Telegram bot
  fichaje start --user 42                    # Start today's workday
  fichaje pause --user 42                    # Start a pause
  fichaje resume --user 42                   # End the open pause
  fichaje end --user 42                      # End the day and show the balance
  fichaje summary --balance --user 42        # Summary with balance
  fichaje edit entrada 08:00 --user 42       # Correct the start time
  fichaje edit pausa-fin 1 10:30 --user 42   # Correct the end of the first pause

CONFIGURATION:
  Configuration follows this priority order: flags > environment variables > config file > defaults

  FICHAJE_CONFIG                  YAML configuration file
  FICHAJE_BOT_TOKEN, BOT_TOKEN    Telegram bot token
  FICHAJE_BOT_WORKERS             Concurrent update workers (default: 4)
  FICHAJE_STORE_BACKEND           buntdb or sqlite (default: buntdb)
  FICHAJE_STORE_DIR               Store directory (default: ~/.fichaje)
  FICHAJE_STORE_FILENAME          Store filename, ":memory:" for RAM (default: fichaje.db)
  FICHAJE_TIMEZONE                IANA timezone for calendar dates (default: local)
  FICHAJE_REDUCED_MONTHS          Months with the reduced schedule (default: 7,8)
  FICHAJE_APP_TIMEOUT             Per-interaction timeout (default: 30s)
  FICHAJE_LOG_FORMAT              json or text (default: json)
  FICHAJE_USER                    Default --user for the day commands`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.loadConfig(cmd.Flags())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return root.close()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Command returns the underlying cobra command
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx as the parent of every interaction
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	err := r.cmd.ExecuteContext(ctx)
	if closeErr := r.close(); err == nil {
		err = closeErr
	}
	return err
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.StringVar(&r.configFile, "config", "", "YAML configuration file (overrides FICHAJE_CONFIG)")
	flags.StringVar(&r.user, "user", os.Getenv(UserEnv), "User id the day commands act on (defaults to FICHAJE_USER)")

	// Bot configuration
	flags.String("bot-token", "", "Telegram bot token (overrides FICHAJE_BOT_TOKEN)")
	flags.Int("workers", 0, "Concurrent update workers (overrides FICHAJE_BOT_WORKERS)")

	// Store configuration
	flags.String("store-backend", "", "Store backend, buntdb or sqlite (overrides FICHAJE_STORE_BACKEND)")
	flags.String("store-dir", "", "Store directory (overrides FICHAJE_STORE_DIR)")
	flags.String("store-filename", "", "Store filename (overrides FICHAJE_STORE_FILENAME)")
	flags.Duration("store-query-timeout", 0, "Store read timeout (overrides FICHAJE_STORE_QUERY_TIMEOUT)")
	flags.Duration("store-write-timeout", 0, "Store write timeout (overrides FICHAJE_STORE_WRITE_TIMEOUT)")

	// Schedule configuration
	flags.String("timezone", "", "IANA timezone for calendar dates (overrides FICHAJE_TIMEZONE)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Per-interaction timeout (overrides FICHAJE_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable debug logging (overrides FICHAJE_APP_VERBOSE)")
	flags.String("log-format", "", "Log format, json or text (overrides FICHAJE_LOG_FORMAT)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the Telegram bot",
		Long:  "Long-poll Telegram for updates and answer them until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.getApp()
			if err != nil {
				return err
			}
			return NewErrorHandler().Handle("serve", app.registry.Execute(cmd.Context(), "serve", args))
		},
	}

	startCmd := r.dayCommand("start", "Start today's workday",
		"Record the start of today's workday and show the estimated exit time. Starting twice keeps the first start.")
	pauseCmd := r.dayCommand("pause", "Start a pause", "Open a pause. Fails when a pause is already open.")
	resumeCmd := r.dayCommand("resume", "End the open pause", "Close the open pause.")
	endCmd := r.dayCommand("end", "End today's workday", "Record the end of the workday and show the summary and balance.")

	var withBalance bool
	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Show today's summary",
		Long:  "Show the start, pauses and worked time of today's record. --balance adds the balance against the required hours.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "summary"
			if withBalance {
				name = "balance"
			}
			return r.runForUser(cmd, name, nil)
		},
	}
	summaryCmd.Flags().BoolVar(&withBalance, "balance", false, "Include the balance against the required hours")

	editCmd := &cobra.Command{
		Use:   "edit <entrada|salida|pausa-inicio|pausa-fin> [N] HH:MM",
		Short: "Correct a recorded time",
		Long: `Overwrite one recorded time of today's workday.

Examples:
  fichaje edit entrada 08:00         # Correct the start
  fichaje edit salida 15:15          # Correct the end
  fichaje edit pausa-inicio 1 10:00  # Correct the start of the first pause
  fichaje edit pausa-fin 1 10:30     # Correct the end of the first pause`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runForUser(cmd, "edit", args)
		},
	}

	r.cmd.AddCommand(
		serveCmd,
		startCmd,
		pauseCmd,
		resumeCmd,
		endCmd,
		summaryCmd,
		editCmd,
	)
}

func (r *RootCommand) dayCommand(name, short, long string) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Long:  long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runForUser(cmd, name, nil)
		},
	}
}

// runForUser executes a registered command with the --user id as first argument
func (r *RootCommand) runForUser(cmd *cobra.Command, name string, args []string) error {
	if r.user == "" {
		return NewErrorHandler().Handle(name, fmt.Errorf("no user given: use --user or set %s", UserEnv))
	}
	app, err := r.getApp()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
	defer cancel()

	return NewErrorHandler().Handle(name, app.registry.Execute(ctx, name, append([]string{r.user}, args...)))
}

// getApp builds the application on first use so help and completion never open the store
func (r *RootCommand) getApp() (*App, error) {
	if r.app != nil {
		return r.app, nil
	}
	if r.config == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}
	app, err := r.newApp(r.config)
	if err != nil {
		return nil, NewErrorHandler().Handle("open store", err)
	}
	r.app = app
	return app, nil
}

func (r *RootCommand) close() error {
	if r.app == nil {
		return nil
	}
	err := r.app.Close()
	r.app = nil
	return err
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil {
		return r.config.Application.Timeout
	}
	return 30 * time.Second
}

// loadConfig runs the configuration cascade with the flags the user set
func (r *RootCommand) loadConfig(flags *pflag.FlagSet) error {
	cfg, err := config.NewLoader().
		WithFile(r.configFile).
		LoadWithOverrides(overridesFromFlags(flags))
	if err != nil {
		return NewErrorHandler().Handle("load configuration", err)
	}
	r.config = cfg
	return nil
}

// overridesFromFlags collects the flags explicitly set on the command line
func overridesFromFlags(flags *pflag.FlagSet) *config.ConfigOverrides {
	overrides := &config.ConfigOverrides{}

	if flags.Changed("bot-token") {
		v, _ := flags.GetString("bot-token")
		overrides.BotToken = &v
	}
	if flags.Changed("workers") {
		v, _ := flags.GetInt("workers")
		overrides.Workers = &v
	}

	if flags.Changed("store-backend") {
		v, _ := flags.GetString("store-backend")
		overrides.StoreBackend = &v
	}
	if flags.Changed("store-dir") {
		v, _ := flags.GetString("store-dir")
		overrides.StoreDir = &v
	}
	if flags.Changed("store-filename") {
		v, _ := flags.GetString("store-filename")
		overrides.StoreFilename = &v
	}
	if flags.Changed("store-query-timeout") {
		v, _ := flags.GetDuration("store-query-timeout")
		overrides.StoreQueryTimeout = &v
	}
	if flags.Changed("store-write-timeout") {
		v, _ := flags.GetDuration("store-write-timeout")
		overrides.StoreWriteTimeout = &v
	}

	if flags.Changed("timezone") {
		v, _ := flags.GetString("timezone")
		overrides.Timezone = &v
	}

	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}
	if flags.Changed("log-format") {
		v, _ := flags.GetString("log-format")
		overrides.LogFormat = &v
	}

	return overrides
}
