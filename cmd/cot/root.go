package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/threatflux/cot/internal/config"
	"github.com/threatflux/cot/internal/editops"
	"github.com/threatflux/cot/internal/errors"
	"github.com/threatflux/cot/internal/helpers"
	"github.com/threatflux/cot/internal/metrics"
	"github.com/threatflux/cot/internal/ovfpkg"
	"github.com/threatflux/cot/internal/session"
	"github.com/threatflux/cot/pkg/logger"
)

var (
	flagConfig  string
	flagForce   bool
	flagQuiet   bool
	flagVerbose bool
	flagDebug   bool
	flagOutput  string
)

var rootCmd = &cobra.Command{
	Use:           "cot",
	Short:         "Edit OVF/OVA virtual appliance packages",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().BoolVar(&flagForce, "force", false, "auto-confirm every warning")
	rootCmd.PersistentFlags().BoolVar(&flagQuiet, "quiet", false, "suppress informational logging")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagOutput, "output", "", "output package path (directory or .ova)")
}

// Execute runs the cot command tree and returns the error the caller
// should derive an exit code from.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig builds the process configuration from defaults, overlaid
// with the --config file and then environment overrides when --config
// is set; without --config, environment overrides are not applied.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if flagConfig != "" {
		loader := config.NewYAMLLoader(flagConfig)
		if err := loader.LoadFromFile(flagConfig, cfg); err != nil {
			return nil, errors.WrapWithKind(err, errors.KindInvalidInput, "load config %q", flagConfig)
		}
		if err := loader.LoadWithOverrides(cfg); err != nil {
			return nil, err
		}
	}
	if flagForce {
		cfg.Output.Force = true
	}
	if err := config.Validate(cfg); err != nil {
		return nil, errors.WrapWithKind(err, errors.KindInvalidInput, "validate config")
	}
	return cfg, nil
}

// loggingLevel resolves the effective zap level name from the quiet/
// verbose/debug flags, most specific flag winning.
func loggingLevel(cfg *config.Config) string {
	switch {
	case flagDebug:
		return "debug"
	case flagVerbose:
		return "info"
	case flagQuiet:
		return "error"
	default:
		return cfg.Logging.Level
	}
}

// newSession wires config, logger, metrics, and the --force/confirm
// policy into a ready-to-use edit session.
func newSession() (*session.Session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	cfg.Logging.Level = loggingLevel(cfg)

	log, err := logger.NewZapLogger(cfg.Logging)
	if err != nil {
		return nil, errors.WrapWithKind(err, errors.KindEnvironmental, "initialize logger")
	}

	opts := []session.Option{
		session.WithMetrics(metrics.NewCollector("prometheus", log)),
	}
	if flagForce || cfg.Output.Force {
		opts = append(opts, session.WithAutoConfirm(true))
	} else {
		opts = append(opts, session.WithConfirm(confirmOnStderr))
	}

	return session.New(cfg, log, opts...)
}

// confirmOnStderr is the interactive confirmation callback used when
// --force is not set: it prints the warning and declines, since cot's
// non-interactive CLI invocation has no controlling terminal to prompt
// on by default. Re-run with --force to proceed past warnings.
func confirmOnStderr(message string) bool {
	fmt.Fprintln(os.Stderr, "cot: warning:", message, "(declined; pass --force to proceed)")
	return false
}

func newHelperRegistry(sess *session.Session) *helpers.Registry {
	return helpers.NewRegistry(sess.Config.Helpers).WithMetrics(sess.Metrics)
}

// resolveOutput picks the output path and package form for a mutating
// command: an explicit --output wins; its extension picks the form
// (".ova" => TAR, anything else => directory). Without --output, the
// input package is overwritten in place, keeping its original form.
func resolveOutput(inputPath string, inputForm ovfpkg.Form) (string, ovfpkg.Form) {
	if flagOutput == "" {
		return inputPath, inputForm
	}
	if strings.EqualFold(filepath.Ext(flagOutput), ".ova") {
		return flagOutput, ovfpkg.FormTAR
	}
	return flagOutput, ovfpkg.FormDirectory
}

// runEdit is the shared tail of every mutating subcommand: given a
// loaded Context and the file IDs it staged from the local filesystem,
// it writes the result to the resolved output path and closes the
// session.
func runEdit(sess *session.Session, ctx *editops.Context, inputPath string, staged map[string]string) error {
	defer sess.Close()
	outPath, form := resolveOutput(inputPath, ctx.Package.Form)
	return ctx.WriteOutput(outPath, form, staged)
}

// loadContext opens and parses the package at pkgPath into an editable
// Context under sess.
func loadContext(sess *session.Session, pkgPath string) (*editops.Context, error) {
	return editops.Load(sess, pkgPath)
}
