package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"krishiconnect/internal/client"
	"krishiconnect/internal/i18n"
	"krishiconnect/internal/telemetry"
	"krishiconnect/internal/voice"

	"github.com/spf13/cobra"
)

// app is the per-invocation wiring shared by all commands
type app struct {
	serverURL string
	statePath string
	timeout   time.Duration

	state   *client.State
	api     *client.API
	catalog *i18n.Catalog
	guide   *voice.Guide
	out     io.Writer
}

func defaultStatePath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "krishi", "state.yaml")
	}
	return ".krishi-state.yaml"
}

func defaultServerURL() string {
	if u := os.Getenv("KRISHI_SERVER"); u != "" {
		return u
	}
	return "http://localhost:5000/api"
}

func newRootCmd(transport http.RoundTripper) *cobra.Command {
	a := &app{catalog: i18n.MustLoad()}

	rootCmd := &cobra.Command{
		Use:           "krishi",
		Short:         "KrishiConnect marketplace client",
		Long:          `Buy and sell produce from the terminal. Farmers list products and manage orders; buyers fill a cart and check out.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			st, err := client.LoadState(a.statePath)
			if err != nil {
				return err
			}
			a.state = st
			a.out = cmd.OutOrStdout()
			a.api = client.NewAPI(a.serverURL, telemetry.NewTracedHTTPClient(transport))
			a.api.SetToken(st.Token)
			speaker := voice.TerminalSpeaker{W: cmd.ErrOrStderr()}
			a.guide = voice.NewGuide(a.catalog, voice.NewAnnouncer(speaker, st.VoiceEnabled))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.state.Save()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.serverURL, "server", defaultServerURL(), "API base URL (or set KRISHI_SERVER)")
	rootCmd.PersistentFlags().StringVar(&a.statePath, "state", defaultStatePath(), "Client state file")
	rootCmd.PersistentFlags().DurationVar(&a.timeout, "timeout", 15*time.Second, "Request timeout")

	rootCmd.AddCommand(
		a.langCmd(),
		a.voiceCmd(),
		a.screenCmd(),
		a.registerCmd(),
		a.loginCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.dashboardCmd(),
		a.productsCmd(),
		a.cartCmd(),
		a.checkoutCmd(),
		a.ordersCmd(),
		a.chatCmd(),
	)
	return rootCmd
}

func (a *app) ctx(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), a.timeout)
}

func (a *app) t(key string) string {
	return a.catalog.T(a.state.Language, key)
}

// say announces a string-table key; speech failures never fail a command
func (a *app) say(cmd *cobra.Command, key string) {
	_ = a.guide.Say(cmd.Context(), a.state.Language, key)
}

// fail turns err into a message in the user's language and announces it
func (a *app) fail(cmd *cobra.Command, err error) error {
	key := client.ErrorKey(err)
	msg := a.t(key)

	var apiErr *client.APIError
	if errors.As(err, &apiErr) && key == "error.generic" && apiErr.Status < http.StatusInternalServerError {
		msg = apiErr.Message
	}
	if errors.As(err, &apiErr) && apiErr.Role != "" {
		msg = fmt.Sprintf("%s (%s)", msg, apiErr.Role)
	}

	a.say(cmd, key)
	return errors.New(msg)
}

func (a *app) requireSignIn() error {
	if !a.state.SignedIn() {
		return client.ErrNotSignedIn
	}
	return nil
}

func main() {
	shutdown, err := telemetry.Init("krishi-cli", os.Getenv("TRACING_ENABLED") == "true", os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tracing disabled:", err)
	}

	cmd := newRootCmd(nil)
	runErr := cmd.Execute()

	if shutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		_ = shutdown(ctx)
		cancel()
	}
	if runErr != nil {
		fmt.Fprintln(os.Stderr, "❌", runErr)
		os.Exit(1)
	}
}
