package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yashrajoria/storefront-client/app"
	"github.com/yashrajoria/storefront-client/config"
	"github.com/yashrajoria/storefront-client/logger"
	"github.com/yashrajoria/storefront-client/notify"
	"github.com/yashrajoria/storefront-client/session"
	"github.com/yashrajoria/storefront-client/ui"
)

var (
	// Global flags
	verbose        bool
	apiURL         string
	storageBackend string

	shell *app.App
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront client: browse, manage your cart, sign in",
	Long: `storefront talks to the shop's HTTP API.

While signed out, items you add are kept in a local cart. Signing in merges
that cart into your account's cart on the server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Annotations["offline"] == "true" {
			return nil
		}
		cfg := config.Load()
		if apiURL != "" {
			cfg.APIURL = apiURL
		}
		if storageBackend != "" {
			cfg.Storage = storageBackend
		}
		log := logger.Initialize(cfg.Env, verbose)

		out := cmd.OutOrStdout()
		a, err := app.New(cmd.Context(), cfg, app.Options{
			Notifier: notify.Multi{notify.NewWriterNotifier(out), notify.NewLogNotifier(log)},
			Badge:    ui.NewWriterBadge(out),
			Redirect: session.RedirectFunc(func(path string) {
				fmt.Fprintf(out, "→ %s\n", path)
			}),
			Logger: log,
		})
		if err != nil {
			return err
		}
		shell = a
		shell.Session.Init(cmd.Context())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "Storefront API base URL (overrides STOREFRONT_API_URL)")
	rootCmd.PersistentFlags().StringVar(&storageBackend, "storage", "", "State backend: memory, file, redis, dynamodb")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
	rootCmd.AddCommand(itemsCmd, categoriesCmd)
	rootCmd.AddCommand(cartCmd)
	rootCmd.AddCommand(validateCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	teardown()
	if err != nil {
		logger.Log.Debug("command failed", zap.Error(err))
		os.Exit(1)
	}
}

// teardown runs after every command, failed ones included, so a pending
// logout redirect is still shown.
func teardown() {
	if shell != nil {
		shell.Teardown()
	}
}

// reportAPIError shows err as a notice and returns it so cobra exits non-zero
func reportAPIError(ctx context.Context, err error, defaultMessage string) error {
	shell.Errors.Handle(ctx, err, defaultMessage)
	return err
}
