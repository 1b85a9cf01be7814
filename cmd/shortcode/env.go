package main

import (
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const envPrefix = "SHORTCODE_"

// setFlagsFromEnvVars fills flags that were not given on the command line
// from SHORTCODE_* environment variables, e.g. --use-secondary from
// SHORTCODE_USE_SECONDARY.
func setFlagsFromEnvVars(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			return
		}
		envName := envPrefix + flagNameToUpper(f.Name)
		value, present := os.LookupEnv(envName)
		if !present {
			return
		}
		if err := flags.Set(f.Name, value); err != nil {
			log.Infof("unable to configure flag %s using variable %s, err: %v", f.Name, envName, err)
		}
	})
}

// flagNameToUpper converts a flag name to its corresponding base env name
// replacing dashes by underscores and making the result uppercase
// E.g. use-secondary -> USE_SECONDARY
func flagNameToUpper(cmdFlag string) string {
	return strings.ToUpper(strings.ReplaceAll(cmdFlag, "-", "_"))
}
