package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/maloquacious/semver"
	"github.com/spf13/cobra"

	"github.com/maloquacious/solicitreview/internal/logger"
	"github.com/maloquacious/solicitreview/internal/prompt"
	"github.com/maloquacious/solicitreview/internal/review"
	"github.com/maloquacious/solicitreview/internal/surface"
)

var (
	version       = semver.Version{Minor: 1, PreRelease: "alpha", Build: semver.Commit()}
	schemaVersion = "0.1"
	buildDate     = ""
)

var (
	adminPort  int
	shutdownTO time.Duration
	exitAfter  time.Duration

	checkpointFlag int
	appVersionFlag string
	storeFlag      string
	storePathFlag  string

	answerYes bool
	answerNo  bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Default.Error("%v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "app",
		Short:         "Decide when to ask users to review the app",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags override SOLICIT_* environment settings.
	rootCmd.PersistentFlags().IntVar(&checkpointFlag, "checkpoint", 3, "engagement count at which the prompt is shown (<= 0 disables)")
	rootCmd.PersistentFlags().StringVar(&appVersionFlag, "app-version", "", "current app version (overrides the bundle file)")
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "sqlite", "state backend: sqlite, redis or memory")
	rootCmd.PersistentFlags().StringVar(&storePathFlag, "store-path", ".", "directory holding the sqlite datastore")

	launchCmd := &cobra.Command{
		Use:   "launch",
		Short: "Record an app launch; resets the counter when the version changed",
		RunE:  runLaunch,
	}
	engageCmd := &cobra.Command{
		Use:   "engage",
		Short: "Record an engagement and ask for a review when eligible",
		RunE:  runEngage,
	}
	engageCmd.Flags().BoolVar(&answerYes, "yes", false, "accept the confirmation without asking")
	engageCmd.Flags().BoolVar(&answerNo, "no", false, "decline the confirmation without asking")
	engageCmd.MarkFlagsMutuallyExclusive("yes", "no")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Record an engagement and print whether a prompt is due",
		RunE:  runCheck,
	}
	promptedCmd := &cobra.Command{
		Use:   "prompted",
		Short: "Record that the native review was shown for the current version",
		RunE:  runPrompted,
	}
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Print the tracker state as JSON",
		RunE:  runStatus,
	}
	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Zero the engagement counter (testing only)",
		RunE:  runReset,
	}
	reviewURLCmd := &cobra.Command{
		Use:   "review-url",
		Short: "Print the store review page for SOLICIT_APP_STORE_ID",
		RunE:  runReviewURL,
	}
	shareCmd := &cobra.Command{
		Use:   "share",
		Short: "Print the share sheet for the app",
		RunE:  runShare,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tracker over loopback JSON",
		RunE:  runServe,
	}
	serveCmd.Flags().IntVar(&adminPort, "admin-port", 8383, "admin HTTP port (JSON, loopback only)")
	serveCmd.Flags().DurationVar(&shutdownTO, "shutdown-timeout", 15*time.Second, "graceful shutdown timeout")
	serveCmd.Flags().DurationVar(&exitAfter, "exit-after", 0, "optional runtime; if set, server exits after this duration (testing)")

	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Datastore management commands",
	}
	dbCreateCmd := &cobra.Command{
		Use:   "create",
		Short: "Create and initialize the datastore",
		RunE:  runDBCreate,
	}
	dbUpgradeCmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Apply migrations to current schema version",
		RunE:  runDBUpgrade,
	}
	dbVerifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify schema integrity and version",
		RunE:  runDBVerify,
	}
	dbCmd.AddCommand(dbCreateCmd, dbUpgradeCmd, dbVerifyCmd)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s (schema %s) %s\n", version.String(), schemaVersion, buildDate)
		},
	}

	rootCmd.AddCommand(launchCmd, engageCmd, checkCmd, promptedCmd, statusCmd, resetCmd,
		reviewURLCmd, shareCmd, serveCmd, dbCmd, versionCmd)

	return rootCmd
}

func runLaunch(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	current := a.tracker.CurrentVersion()
	reset, err := a.tracker.Launch(cmd.Context())
	if err != nil {
		return err
	}
	if reset {
		fmt.Fprintf(cmd.OutOrStdout(), "new version %q: engagement counter reset\n", current)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "version %q unchanged\n", current)
	}
	return nil
}

func runEngage(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	var s review.Surface
	switch {
	case answerYes:
		s = surface.Scripted{Accept: true}
	case answerNo:
		s = surface.Scripted{Accept: false}
	default:
		url, err := prompt.ReviewURL(a.cfg.AppStoreID)
		if err != nil {
			a.log.Debug("SOLICIT_APP_STORE_ID unset, review link omitted: %v", err)
		}
		s = surface.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout(), url)
	}

	reviewed, err := a.tracker.RequestReview(cmd.Context(), s, prompt.New(a.lang, a.appName))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "reviewed: %t\n", reviewed)
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ok, err := a.tracker.ShouldPrompt(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), ok)
	return nil
}

func runPrompted(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	return a.tracker.MarkPrompted(cmd.Context())
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	st, err := a.tracker.Status(cmd.Context())
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(st)
}

func runReset(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	return a.tracker.Reset(cmd.Context())
}

func runReviewURL(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	url, err := prompt.ReviewURL(cfg.AppStoreID)
	if err != nil {
		return fmt.Errorf("SOLICIT_APP_STORE_ID: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), url)
	return nil
}

func runShare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	url, err := prompt.ReviewURL(cfg.AppStoreID)
	if err != nil {
		return fmt.Errorf("SOLICIT_APP_STORE_ID: %w", err)
	}
	term := surface.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout(), url)
	return term.Share(cmd.Context(), prompt.NewShare(cfg.LanguageTag(), resolveAppName(cfg), url))
}
