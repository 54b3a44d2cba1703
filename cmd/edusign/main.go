package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"edusign/internal/config"
	"edusign/internal/logging"
)

var version = "dev"

// cli carries what PersistentPreRunE loads for every subcommand.
type cli struct {
	cfg     *config.Config
	logger  *zap.Logger
	envFile string
	noColor bool
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "edusign",
		Short:         "EduSign badge wallet and AI course advisor",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(c.envFile); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("loading %s: %w", c.envFile, err)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			c.cfg = cfg

			logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			c.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&c.envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	root.PersistentFlags().BoolVar(&c.noColor, "no-color", os.Getenv("NO_COLOR") != "", "disable colored output")

	root.AddCommand(c.serveCmd())
	root.AddCommand(c.mcpCmd())
	root.AddCommand(c.badgesCmd())
	root.AddCommand(c.darkModeCmd())
	root.AddCommand(c.askCmd())
	return root
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		noColor, _ := root.PersistentFlags().GetBool("no-color")
		printError(noColor, "%v", err)
		os.Exit(1)
	}
}
