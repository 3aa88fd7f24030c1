package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/ogccite/csw-dgiwg-contract-tests/framework"
)

const (
	envPrefix          = "CSWTEST"
	defaultTimeout     = time.Second * 30
	defaultStartupWait = time.Second * 10
)

type commandParams struct {
	capabilitiesURL  string
	capabilitiesFile string
	schemaDir        string
	timeout          time.Duration
	startupWait      time.Duration
	sampleSize       ldvalue.OptionalInt
	filters          framework.RegexFilters
	debug            bool
	debugAll         bool
	verbose          bool
	reportFile       string
}

func addFlags(fs *pflag.FlagSet) {
	fs.String("url", "", "GetCapabilities URL of the catalogue under test")
	fs.String("capabilities-file", "", "read the capabilities document from a file instead of --url")
	fs.String("schemas", "", "directory containing the CSW and ISO 19139 schemas (default: the bundled copies)")
	fs.Duration("timeout", defaultTimeout, "timeout for each request to the catalogue")
	fs.Duration("wait", defaultStartupWait, "how long to retry the capabilities request before giving up")
	fs.Int("sample-size", 0, "number of records to sample from the catalogue (default 10)")
	fs.StringArray("run", nil, "regex pattern(s) to select tests to run")
	fs.StringArray("skip", nil, "regex pattern(s) to select tests not to run")
	fs.Bool("debug", false, "enable debug logging for failed tests")
	fs.Bool("debug-all", false, "enable debug logging for all tests")
	fs.String("report", "", "write a YAML report of the results to this file")
	fs.String("config", "", "YAML configuration file")
	fs.BoolP("verbose", "v", false, "enable verbose logging")
}

// newConfig binds the flags to a viper instance that also reads CSWTEST_*
// environment variables and the configuration file, if one is given.
func newConfig(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("cannot read configuration file: %w", err)
		}
	}
	return v, nil
}

func readParams(v *viper.Viper, fs *pflag.FlagSet) (commandParams, error) {
	c := commandParams{
		capabilitiesURL:  v.GetString("url"),
		capabilitiesFile: v.GetString("capabilities-file"),
		schemaDir:        v.GetString("schemas"),
		timeout:          v.GetDuration("timeout"),
		startupWait:      v.GetDuration("wait"),
		debug:            v.GetBool("debug"),
		debugAll:         v.GetBool("debug-all"),
		verbose:          v.GetBool("verbose"),
		reportFile:       v.GetString("report"),
	}
	if c.capabilitiesURL == "" && c.capabilitiesFile == "" {
		return c, fmt.Errorf("--url or --capabilities-file is required")
	}
	if c.timeout <= 0 {
		return c, fmt.Errorf("--timeout must be positive")
	}
	if v.IsSet("sample-size") {
		n := v.GetInt("sample-size")
		if n <= 0 {
			return c, fmt.Errorf("--sample-size must be positive")
		}
		c.sampleSize = ldvalue.NewOptionalInt(n)
	}
	for _, p := range patterns(v, fs, "run") {
		if err := c.filters.MustMatch.Set(p); err != nil {
			return c, err
		}
	}
	for _, p := range patterns(v, fs, "skip") {
		if err := c.filters.MustNotMatch.Set(p); err != nil {
			return c, err
		}
	}
	return c, nil
}

// patterns returns the values of a repeatable pattern option. Values given on the
// command line are used as they are, since a pattern may contain commas.
func patterns(v *viper.Viper, fs *pflag.FlagSet, name string) []string {
	if f := fs.Lookup(name); f != nil && f.Changed {
		values, err := fs.GetStringArray(name)
		if err == nil {
			return values
		}
	}
	return v.GetStringSlice(name)
}
