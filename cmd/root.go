/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/xsdinfer/internal/iofs"
	"github.com/gnames/xsdinfer/internal/iologger"
	app "github.com/gnames/xsdinfer/pkg"
	"github.com/gnames/xsdinfer/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the base command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "xsdinfer",
		Short:   "XSDinfer infers an XML Schema from sample documents",
		Long: `XSDinfer reads a set of sample XML documents and creates an XML
Schema (XSD) that describes all of them.

Every element position in the samples gets its own type first. Types
that look alike are then merged, and the result is written as a single
XSD document. Which types are merged is decided by comparators that
are set in the configuration file.

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (XSDINFER_*)
  3. Config file (~/.config/xsdinfer/config.yaml)
  4. Built-in defaults

Environment Variables:
  Nested fields use underscores (infer.max_enum_values becomes
  XSDINFER_INFER_MAX_ENUM_VALUES).

    XSDINFER_INFER_TYPE_NAME_SEPARATOR
    XSDINFER_INFER_CHILDREN_PATTERN_COMPARATOR
    XSDINFER_INFER_MIN_ENUM_VALUES
    XSDINFER_INFER_MAX_ENUM_VALUES
    XSDINFER_INFER_REPORT_FORMAT
    XSDINFER_LOG_LEVEL
    XSDINFER_JOBS_NUMBER`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "xsdinfer version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for xsdinfer")

	rootCmd.AddCommand(getInferCmd())
	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings and proper log file location
	if err = reconfigureLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded", "config_file", config.ConfigFilePath(homeDir))

	return nil
}

// reconfigureLogging reinitializes the logger with the loaded configuration.
func reconfigureLogging(cfg *config.Config) error {
	logDir := config.LogDir(cfg.HomeDir)
	return iologger.Init(logDir, cfg.Log)
}

func runRoot(cmd *cobra.Command, args []string) error {
	versionFlag(cmd)
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := getRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	// A key binds to XSDINFER_ + upper-cased key with dots replaced by
	// underscores.
	v.SetEnvPrefix("XSDINFER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	keys := []string{
		// Inference configuration
		"infer.type_name_separator",
		"infer.children_pattern_comparator",
		"infer.same_name_children_pattern_comparator",
		"infer.attribute_list_comparator",
		"infer.same_name_attribute_list_comparator",
		"infer.enum_comparator",
		"infer.same_name_enum_comparator",
		"infer.min_enum_values",
		"infer.max_enum_values",
		"infer.report_format",

		// Log configuration
		"log.level",
		"log.format",
		"log.destination",

		// General configuration
		"jobs_number",
	}
	for _, k := range keys {
		v.BindEnv(k)
	}

	v.AutomaticEnv()
}
