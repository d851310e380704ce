/*
Copyright 2026 the Kiosk API Tests Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/orderwithinfi/kiosk-api-tests/pkg/availability"
	"github.com/orderwithinfi/kiosk-api-tests/pkg/constants"
	"github.com/orderwithinfi/kiosk-api-tests/pkg/kiosk"
)

// EnvPrefix namespaces environment overrides of command line flags, for
// example KIOSK_BASE_URL for --base-url.
const EnvPrefix = "KIOSK"

var (
	// ErrUnavailable is returned by commands that found the API down, so
	// scripts see a non zero exit.
	ErrUnavailable = errors.New("API unavailable")

	// ErrInvalidOutput is returned for an unknown --output format.
	ErrInvalidOutput = errors.New("invalid output format")
)

// Options are the global settings shared by every subcommand.
type Options struct {
	viper *viper.Viper

	configFile string

	// Config is resolved from the environment, .env, a config file and
	// flags, in increasing order of precedence.
	Config  kiosk.Config
	Token   string
	Verbose bool
	Output  string
	Logger  *zap.Logger
}

func newOptions() *Options {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return &Options{
		viper: v,
	}
}

// AddFlags registers the global flags.
func (o *Options) AddFlags(flags *pflag.FlagSet) {
	flags.StringVar(&o.configFile, "config", "", "config file (yaml, keys match flag names)")
	flags.String("base-url", "", "kiosk API base URL (defaults to BASE_URL or the staging API)")
	flags.String("realm-id", "", "realm identifier (defaults to REALM_ID)")
	flags.String("appz-id", "", "application identifier (defaults to APPZ_ID)")
	flags.String("token", "", "bearer token sent with every request")
	flags.Duration("timeout", 0, "per request timeout (defaults to TEST_TIMEOUT)")
	flags.BoolP("verbose", "v", false, "verbose output (sets log level to debug)")
	flags.StringP("output", "o", "table", "output format, table or json")
}

// Complete resolves the configuration once flags have been parsed.
func (o *Options) Complete(flags *pflag.FlagSet) error {
	if err := o.viper.BindPFlags(flags); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	if o.configFile != "" {
		o.viper.SetConfigFile(o.configFile)

		if err := o.viper.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", o.configFile, err)
		}
	}

	o.Config = kiosk.LoadConfig()

	if value := o.viper.GetString("base-url"); value != "" {
		o.Config.BaseURL = value
	}

	if value := o.viper.GetString("realm-id"); value != "" {
		o.Config.RealmID = value
	}

	if value := o.viper.GetString("appz-id"); value != "" {
		o.Config.AppzID = value
	}

	if value := o.viper.GetDuration("timeout"); value > 0 {
		o.Config.TestTimeout = value
	}

	o.Token = o.viper.GetString("token")
	o.Verbose = o.viper.GetBool("verbose")
	o.Output = o.viper.GetString("output")

	if o.Output != "table" && o.Output != "json" {
		return fmt.Errorf("%w: %q", ErrInvalidOutput, o.Output)
	}

	if o.Logger == nil {
		logger, err := newLogger(o.Verbose)
		if err != nil {
			return err
		}

		o.Logger = logger
	}

	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)

	if verbose {
		config = zap.NewDevelopmentConfig()
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	return logger.With(zap.String("application", constants.Application)), nil
}

// NewValidator returns a fresh validator for the resolved configuration.
func (o *Options) NewValidator() *availability.Validator {
	return availability.New(o.Config.BaseURL,
		availability.WithProbeTimeout(o.Config.TestTimeout),
		availability.WithHeaders(o.Config.AuthHeaders(o.Token)),
		availability.WithLogger(o.Logger),
	)
}

// NewRootCommand creates the kiosk-api-monitor command tree.
func NewRootCommand() *cobra.Command {
	o := newOptions()

	cmd := &cobra.Command{
		Use:   "kiosk-api-monitor",
		Short: "Check, discover and monitor the kiosk shopping API",
		Long: `Check, discover and monitor the kiosk shopping API.

Settings are read from the environment (BASE_URL, REALM_ID, APPZ_ID,
TEST_TIMEOUT), a .env file, an optional config file and flags.  Flags may
also be set as ` + EnvPrefix + `_<FLAG> environment variables.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return o.Complete(cmd.Flags())
		},
	}

	o.AddFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		NewStatusCommand(o),
		NewDiscoverCommand(o),
		NewMonitorCommand(o),
		NewReportCommand(o),
		NewVersionCommand(),
	)

	return cmd
}
