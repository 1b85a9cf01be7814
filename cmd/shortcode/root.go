package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/paraglidehq/shortcode"
)

type rootOptions struct {
	configPath        string
	preset            string
	alphabet          string
	secondaryAlphabet string
	useSecondary      bool
	offset            int64
	strict            bool
	logLevel          string
	logFile           string

	codec *shortcode.Codec
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "shortcode",
		Short: "Convert integers to short codes and back",
		Long: `Convert non-negative integers (e.g. database row IDs) to short codes
over a configurable alphabet, and short codes back to integers.

Settings are read from a TOML file (--config), then SHORTCODE_* environment
variables, then command line flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			setFlagsFromEnvVars(cmd)
			if err := initLog(o.logLevel, o.logFile, cmd.ErrOrStderr()); err != nil {
				return fmt.Errorf("failed initializing log: %w", err)
			}
			cfg, err := o.config(cmd)
			if err != nil {
				return err
			}
			o.codec, err = shortcode.New(cfg)
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			log.WithFields(log.Fields{
				"base":          o.codec.Base(),
				"offset":        o.codec.Offset(),
				"use_secondary": cfg.UseSecondary,
				"strict":        cfg.Strict,
			}).Debug("codec ready")
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&o.configPath, "config", "c", "", "path to TOML configuration file")
	flags.StringVarP(&o.preset, "preset", "p", "", "primary alphabet preset name, as listed by the alphabet command")
	flags.StringVarP(&o.alphabet, "alphabet", "a", "", "primary alphabet, overrides --preset")
	flags.StringVar(&o.secondaryAlphabet, "secondary-alphabet", "", "secondary alphabet")
	flags.BoolVarP(&o.useSecondary, "use-secondary", "s", false, "use the secondary alphabet")
	flags.Int64VarP(&o.offset, "offset", "o", 0, "offset added before encoding and subtracted after decoding")
	flags.BoolVar(&o.strict, "strict", false, "reject codes with a leading zero symbol")
	flags.StringVar(&o.logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	flags.StringVar(&o.logFile, "log-file", "console", "log file path, or console")

	cmd.AddCommand(
		newEncodeCmd(o),
		newDecodeCmd(o),
		newAlphabetCmd(o),
		newConfigCmd(o),
		newMigrateCmd(o),
	)
	return cmd
}

// config layers explicitly set flags (including those filled from the
// environment) over the configuration file.
func (o *rootOptions) config(cmd *cobra.Command) (shortcode.Config, error) {
	var cfg shortcode.Config
	if o.configPath != "" {
		var err error
		cfg, err = shortcode.LoadConfig(o.configPath)
		if err != nil {
			return cfg, err
		}
		log.Debugf("loaded configuration from %s", o.configPath)
	}

	flags := cmd.Flags()
	if flags.Changed("preset") {
		a, ok := shortcode.Preset(o.preset)
		if !ok {
			return cfg, fmt.Errorf("unknown alphabet preset %q", o.preset)
		}
		cfg.Alphabet = a.String()
	}
	if flags.Changed("alphabet") {
		cfg.Alphabet = o.alphabet
	}
	if flags.Changed("secondary-alphabet") {
		cfg.SecondaryAlphabet = o.secondaryAlphabet
	}
	if flags.Changed("use-secondary") {
		cfg.UseSecondary = o.useSecondary
	}
	if flags.Changed("offset") {
		cfg.Offset = o.offset
	}
	if flags.Changed("strict") {
		cfg.Strict = o.strict
	}
	return cfg, nil
}
