/**************************************************************************************************
** Configuration and environment management for the datetool CLI application.
** Handles logger configuration, environment variable loading, and global configuration state.
**************************************************************************************************/

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/majorfi/datetool/pkg/organizer"
	"github.com/majorfi/datetool/pkg/pattern"
	"github.com/majorfi/datetool/pkg/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Global configuration variables
var sources string
var targets string
var sourceTemplate string
var targetTemplate string
var extensions string
var sidecarExtensions string
var outputRoot string
var metadataBackend string
var exiftoolPath string
var defaultDate string
var dryRun bool

/**************************************************************************************************
** config is the resolved configuration shared by the commands.
**************************************************************************************************/
type config struct {
	options      organizer.Options
	backend      string
	exiftoolPath string
}

/**************************************************************************************************
** Binds the configuration flags on the root command. String flags default to empty so that an
** unset flag falls back to its environment variable, then to the built-in default.
**
** @param cmd - Root command
**************************************************************************************************/
func bindFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&sources, "source", "", "Time sources by priority: metadata, path, modifyTime (or set SOURCE env var)")
	flags.StringVar(&targets, "target", "", "Timestamps of the copies to update: metadata, modifyTime (or set TARGET env var)")
	flags.StringVar(&sourceTemplate, "source-template", "", "Template matched against input paths (or set SOURCE_TEMPLATE env var)")
	flags.StringVar(&targetTemplate, "target-template", "", "Template of output paths (or set TARGET_TEMPLATE env var)")
	flags.StringVar(&extensions, "ext", "", "Extensions to process, empty for all (or set EXTENSIONS env var)")
	flags.StringVar(&sidecarExtensions, "sidecar-ext", "", "Sidecar extensions carrying metadata (or set SIDECAR_EXTENSIONS env var)")
	flags.StringVar(&outputRoot, "out", "", "Output root directory (or set OUTPUT_ROOT env var)")
	flags.StringVar(&metadataBackend, "metadata-backend", "", "Metadata backend: exiftool, goexif, none (or set METADATA_BACKEND env var)")
	flags.StringVar(&exiftoolPath, "exiftool-path", "", "Path of the exiftool binary (or set EXIFTOOL_PATH env var)")
	flags.StringVar(&defaultDate, "default-date", "", "Date filling the fields a path does not set, yyyy-MM-dd (or set DEFAULT_DATE env var)")
	flags.BoolVar(&dryRun, "dry-run", false, "Log what would be done without writing anything (or set DRY_RUN=true)")
}

/**************************************************************************************************
** Configures the logger based on environment variables. Sets up the log level and format
** according to LOG_LEVEL and LOG_FORMAT environment variables.
**
** @return *logrus.Logger - Configured logger instance
**************************************************************************************************/
func configureLogger() *logrus.Logger {
	return configureLoggerWithOutput(os.Stderr)
}

func configureLoggerWithOutput(output io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(output)

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		if parsedLevel, err := logrus.ParseLevel(level); err == nil {
			logger.SetLevel(parsedLevel)
		} else {
			logger.Warnf("Invalid LOG_LEVEL '%s', using default 'info'", level)
			logger.SetLevel(logrus.InfoLevel)
		}
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	if format := os.Getenv("LOG_FORMAT"); format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: true,
			FullTimestamp:    false,
			TimestampFormat:  time.RFC3339,
		})
	}

	return logger
}

// envOr returns value when set, else the environment variable key, else fallback.
func envOr(value, key, fallback string) string {
	if value != "" {
		return value
	}
	if env, ok := os.LookupEnv(key); ok {
		return env
	}
	return fallback
}

/**************************************************************************************************
** Loads environment variables and command-line flags, with flags taking precedence over env
** variables, and resolves them into the run configuration. Nothing is fatal here.
**
** @param logger - Logger instance for outputting configuration status
** @return config - Resolved configuration
** @return error - Unknown time source, target or backend, or malformed default date
**************************************************************************************************/
func resolveConfig(logger *logrus.Logger) (config, error) {
	var cfg config

	sourceList, err := utils.ParseTimeSources(utils.SplitList(envOr(sources, "SOURCE", utils.DefaultSourcesString)))
	if err != nil {
		return cfg, err
	}
	if len(sourceList) == 0 {
		return cfg, fmt.Errorf("at least one time source is required")
	}
	targetSet, err := utils.ParseTimeTargets(utils.SplitList(envOr(targets, "TARGET", utils.DefaultTargetsString)))
	if err != nil {
		return cfg, err
	}

	base, err := time.ParseInLocation(utils.DefaultDateFormat, envOr(defaultDate, "DEFAULT_DATE", utils.DefaultDate), time.Local)
	if err != nil {
		return cfg, fmt.Errorf("invalid default date: %w", err)
	}

	root, err := filepath.Abs(envOr(outputRoot, "OUTPUT_ROOT", utils.DefaultOutputRoot))
	if err != nil {
		return cfg, fmt.Errorf("invalid output root: %w", err)
	}

	if !dryRun {
		dryRun = os.Getenv("DRY_RUN") == "true"
	}
	if dryRun {
		logger.Info("DRY_RUN is set to true, no changes will be applied")
	}

	cfg.options = organizer.Options{
		Sources:           sourceList,
		Targets:           targetSet,
		SourceTemplate:    pattern.CompileSource(envOr(sourceTemplate, "SOURCE_TEMPLATE", utils.DefaultSourceTemplate)),
		TargetTemplate:    pattern.CompileTarget(envOr(targetTemplate, "TARGET_TEMPLATE", utils.DefaultTargetTemplate)),
		Extensions:        utils.NormalizeExtensions(utils.SplitList(envOr(extensions, "EXTENSIONS", utils.DefaultExtensionsString))),
		SidecarExtensions: utils.NormalizeExtensions(utils.SplitList(envOr(sidecarExtensions, "SIDECAR_EXTENSIONS", utils.DefaultSidecarExtensionsString))),
		OutputRoot:        root,
		DryRun:            dryRun,
		DefaultDate:       base,
	}

	cfg.backend = strings.ToLower(envOr(metadataBackend, "METADATA_BACKEND", utils.BackendExiftool))
	switch cfg.backend {
	case utils.BackendExiftool, utils.BackendGoexif, utils.BackendNone:
	default:
		return cfg, fmt.Errorf("unknown metadata backend %q", cfg.backend)
	}
	cfg.exiftoolPath = envOr(exiftoolPath, "EXIFTOOL_PATH", "")

	return cfg, nil
}

func toStrings(list []utils.TTimeSource) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = string(s)
	}
	return out
}

/**************************************************************************************************
** Logs a one-line summary of the configuration. The text format gets a compact line, the json
** format structured fields.
**
** @param logger - Logger instance for output
** @param cfg - Resolved configuration
**************************************************************************************************/
func logStartupSummary(logger *logrus.Logger, cfg config) {
	opts := cfg.options
	if _, ok := logger.Formatter.(*logrus.JSONFormatter); ok {
		logger.WithFields(logrus.Fields{
			"sources":        toStrings(opts.Sources),
			"sourceTemplate": opts.SourceTemplate.Raw,
			"targetTemplate": opts.TargetTemplate.Raw,
			"outputRoot":     opts.OutputRoot,
			"backend":        cfg.backend,
			"dryRun":         opts.DryRun,
			"logLevel":       logger.GetLevel().String(),
		}).Info("Configuration loaded")
		return
	}
	logger.Infof("Starting with config: sources=%s source-template=%s target-template=%s out=%s backend=%s dry-run=%t level=%s",
		strings.Join(toStrings(opts.Sources), ","), opts.SourceTemplate.Raw, opts.TargetTemplate.Raw,
		opts.OutputRoot, cfg.backend, opts.DryRun, logger.GetLevel())
}

/**************************************************************************************************
** Loads the .env file, configures the logger and resolves the configuration. A configuration
** error is fatal.
**
** @return *logrus.Logger - Configured logger
** @return config - Resolved configuration
**************************************************************************************************/
func loadEnv() (*logrus.Logger, config) {
	_ = godotenv.Load()
	logger := configureLogger()
	cfg, err := resolveConfig(logger)
	if err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}
	logStartupSummary(logger, cfg)
	return logger, cfg
}
