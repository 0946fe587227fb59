package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/sagarc03/filegate"
	"github.com/sagarc03/filegate/config"
)

var signCmd = &cobra.Command{
	Use:   "sign <url-path>",
	Short: "Print a signed URL for a file",
	Long: `Print a time-limited signed URL for a file under the mount.

The path must be the URL path as a client would request it, including the
mount prefix, for example /static/reports/q3.pdf.

Examples:
  filegate sign /static/reports/q3.pdf
  filegate sign /static/reports/q3.pdf --ttl 600 --base-url https://files.example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runSign,
}

func init() {
	signCmd.Flags().Int("ttl", 3600, "seconds until the URL expires")
	signCmd.Flags().String("base-url", "", "scheme and host prepended to the signed path")

	rootCmd.AddCommand(signCmd)
}

func runSign(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}

	opts, err := cfg.ServeOptions()
	if err != nil {
		return fmt.Errorf("build serve options: %w", err)
	}
	if len(opts.Secret) == 0 {
		return errors.New("no signing secret configured: set signing.secret or signing.secret_file")
	}

	serveConfig, err := filegate.NewServeConfig(opts)
	if err != nil {
		return err
	}
	defer func() { _ = serveConfig.Close() }()

	expires := time.Now().Add(time.Duration(cfg.Signing.TTL) * time.Second)

	signed, err := serveConfig.SignURL(ctx, args[0], expires)
	if err != nil {
		return err
	}

	baseURL, _ := cmd.Flags().GetString("base-url")
	if baseURL != "" {
		signed = strings.TrimRight(baseURL, "/") + signed
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, signed)
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "expires %s (%s)\n",
		humanize.Time(expires), expires.UTC().Format(time.RFC3339))

	return nil
}
