package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var configPath string

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "quizhall",
		Short: "QuizHall multi-role quiz server",
		Long: `quizhall runs the QuizHall web application.

Players register and take a short multiple-choice quiz; admins manage
the question bank. Use "serve" to run the server and "create-admin" to
provision an admin account.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to YAML config file (env: QUIZHALL_CONFIG)")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newCreateAdminCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return os.Getenv("QUIZHALL_CONFIG")
}
