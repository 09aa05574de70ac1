package main

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eas-tools/alerts-utils/logging"
	"github.com/eas-tools/alerts-utils/slack"
	"github.com/eas-tools/alerts-utils/zendesk"
)

const appName = "alertutil"

type config struct {
	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
	Signing struct {
		Enabled bool   `mapstructure:"enabled"`
		Key     string `mapstructure:"key"`
		Cert    string `mapstructure:"cert"`
	} `mapstructure:"signing"`
	Slack   slack.Config   `mapstructure:"slack"`
	Zendesk zendesk.Config `mapstructure:"zendesk"`
}

// app carries the configuration shared by the subcommands.
type app struct {
	v      *viper.Viper
	config config
	logger zerolog.Logger
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("ALERTUTIL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", logging.FormatJSON)
	v.SetDefault("signing.enabled", false)
	v.SetDefault("signing.key", "")
	v.SetDefault("signing.cert", "")
	v.SetDefault("slack.webhook", "")
	v.SetDefault("zendesk.api-key", "")
	return v
}

func newRootCommand() *cobra.Command {
	a := &app{v: newViper(), logger: zerolog.Nop()}
	var configFile string

	rootCmd := &cobra.Command{
		Use:          appName,
		Short:        "Emergency alert tools",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (yaml, toml or json)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level")
	rootCmd.PersistentFlags().String("log-format", logging.FormatJSON, "Log format, json or console")
	cobra.CheckErr(a.v.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level")))
	cobra.CheckErr(a.v.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format")))

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return a.load(cmd, configFile)
	}

	rootCmd.AddCommand(
		xmlCommand(a),
		countCommand(a),
		notifyCommand(a),
		ticketCommand(a),
		idCommand(),
	)
	return rootCmd
}

func (a *app) load(cmd *cobra.Command, configFile string) error {
	if configFile != "" {
		a.v.SetConfigFile(configFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("cannot read config: %w", err)
		}
	}
	if err := a.v.Unmarshal(&a.config); err != nil {
		return fmt.Errorf("cannot decode config: %w", err)
	}

	logger, err := logging.New(logging.Config{
		Level:   a.config.Log.Level,
		AppName: appName,
		Format:  a.config.Log.Format,
		Output:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}
