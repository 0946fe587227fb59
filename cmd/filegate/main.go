package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarc03/filegate/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "filegate",
	Short:   "Static file server with signed URL support",
	Long: `Filegate serves files from a directory under a URL prefix.

Requests it cannot serve fall through to a plain error page, so the same
engine can sit in front of another handler. Files can be protected with
time-limited HMAC signed URLs.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		files, _ := cmd.Flags().GetStringSlice("config")

		cfg, err := config.Load(files, cmd.Flags())
		if err != nil {
			return err
		}

		setupLogging(cmd.ErrOrStderr(), cfg)
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringSlice("config", nil, "config file path, repeatable (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("root", "", "directory to serve (default: ./public, env: FILEGATE_SERVE_ROOT)")
	rootCmd.PersistentFlags().String("mount", "", "URL prefix to serve under (default: /static, env: FILEGATE_SERVE_MOUNT)")
	rootCmd.PersistentFlags().String("secret-file", "", "file holding the signing secret (env: FILEGATE_SIGNING_SECRET_FILE)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (default: info)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
