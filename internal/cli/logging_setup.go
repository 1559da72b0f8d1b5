package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/holocron/internal/config"
	"github.com/rshade/holocron/internal/logging"
	"github.com/rshade/holocron/internal/tui"
)

// setupLogging configures logging based on config file, environment, and CLI flags.
func setupLogging(cmd *cobra.Command, debug bool) logging.LogPathResult {
	loggingCfg := config.GetLoggingConfig()
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = logging.FormatConsole
	}

	// The browser owns the screen, so its log lines must go to a file.
	tuiSession := cmd.Annotations[annotationTUI] != "" &&
		tui.DetectOutputMode(false, false, false) == tui.OutputModeInteractive
	if tuiSession && loggingCfg.File == "" {
		if path, err := config.DefaultLogFile(); err == nil {
			loggingCfg.File = path
		}
	}

	logCfg := loggingCfg.ToLoggingConfig()
	if tuiSession && logCfg.Output != logging.OutputFile {
		logCfg.Output = logging.OutputDiscard
	}

	result := logging.NewLoggerWithPath(logCfg)
	if tuiSession && result.FallbackUsed {
		logCfg.Output = logging.OutputDiscard
		result = logging.NewLoggerWithPath(logCfg)
	}
	baseLogger = result.Logger
	logger = logging.ComponentLogger(result.Logger, "cli")

	if result.UsingFile && !tuiSession {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Debug().Ctx(ctx).Str("command", cmd.Name()).Msg("command started")

	return result
}
