package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"fyne.io/fyne/v2/app"
	"github.com/gogpu/gg"
	"github.com/tartampluch/go-yearprogress/internal/chart"
	"github.com/tartampluch/go-yearprogress/internal/config"
	"github.com/tartampluch/go-yearprogress/internal/dashboard"
	"github.com/tartampluch/go-yearprogress/internal/engine"
	"github.com/tartampluch/go-yearprogress/internal/server"
	"github.com/tartampluch/go-yearprogress/internal/ui"
)

// main is the application entry point.
// It delegates execution to runMain to ensure that deferred function calls
// (like closing log files) are executed before the process terminates.
// os.Exit() does not run defers, so we must return an integer code first.
func main() {
	os.Exit(runMain())
}

// runMain manages the application lifecycle, argument parsing, and exit codes.
// Returns config.ExitCodeSuccess on success, config.ExitCodeError on failure.
func runMain() int {
	// -------------------------------------------------------------------------
	// 1. CLI Argument Parsing
	// -------------------------------------------------------------------------
	showVersion := flag.Bool(config.FlagVersion, false, config.FlagDescVersion)
	debugMode := flag.Bool(config.FlagDebug, false, config.FlagDescDebug)
	seedDate := flag.String(config.FlagDate, "", config.FlagDescDate)
	renderPath := flag.String(config.FlagRender, "", config.FlagDescRender)
	flag.Parse()

	if *showVersion {
		printVersion()
		return config.ExitCodeSuccess
	}

	// -------------------------------------------------------------------------
	// 2. Logging Initialization
	// -------------------------------------------------------------------------
	logCloser := setupLogging(*debugMode)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close() // Best effort close
		}()
	}

	// .env values only fill variables the environment does not already set.
	if err := config.LoadEnv(); err != nil {
		slog.Warn(config.ErrEnvLoad,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyFile, config.EnvFile,
			config.LogKeyError, err,
		)
	}

	msgs, err := dashboard.NewMessages(config.DefaultLanguage)
	if err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	if *renderPath != "" {
		if err := renderToFile(os.Stdout, msgs, *renderPath, *seedDate); err != nil {
			slog.Error(config.ErrRenderOutput,
				config.LogKeyComponent, config.CompMain,
				config.LogKeyFile, *renderPath,
				config.LogKeyError, err,
			)
			return config.ExitCodeError
		}
		return config.ExitCodeSuccess
	}

	// -------------------------------------------------------------------------
	// 3. Context & Signal Handling
	// -------------------------------------------------------------------------
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	// -------------------------------------------------------------------------
	// 4. Application Logic
	// -------------------------------------------------------------------------
	if err := run(ctx, msgs, *seedDate); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// run initializes the Fyne application, wires dependencies, and starts the UI loop.
func run(ctx context.Context, msgs *dashboard.Messages, seedDate string) error {
	a := app.NewWithID(config.AppID)

	// Record the version for potential migration logic in future updates.
	a.Preferences().SetString(config.PrefLastRun, config.Version)

	srv := server.NewWidgetServer(config.DefaultPort, msgs)

	gui := ui.NewYearProgressApp(a, ctx, srv, msgs)
	gui.SeedDate = seedDate

	// Watch for context cancellation to quit the UI gracefully.
	go func() {
		<-ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
		a.Quit()
	}()

	// Blocks until the application quits.
	gui.Run()

	return nil
}

// renderToFile writes the pie chart of date (today when empty) to path and
// prints the result text to out.
func renderToFile(out io.Writer, msgs *dashboard.Messages, path, date string) error {
	if date == "" {
		date = engine.Today(engine.RealClock{}).String()
	}

	p, err := engine.ComputeYearProgress(date)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := chart.RenderPNG(&buf, config.ChartDefaultSize, p.PercentPassed); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), config.FilePermUserRW); err != nil {
		return fmt.Errorf("%s: %w", config.ErrRenderOutput, err)
	}

	snap := dashboard.Snapshot(msgs, date, "", false, nil)
	for _, line := range snap.Result {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(out, snap.Countdown); err != nil {
		return err
	}

	slog.Info(config.MsgRenderDone,
		config.LogKeyComponent, config.CompMain,
		config.LogKeyFile, path,
		config.LogKeyDate, date,
		config.LogKeySizeBytes, buf.Len(),
	)
	return nil
}

// printVersion outputs the build information to stdout and exits.
func printVersion() {
	fmt.Printf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger and hands it to the
// drawing library.
func setupLogging(debugMode bool) io.Closer {
	var writers []io.Writer
	var logFile *os.File

	writers = append(writers, os.Stdout)

	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts))
	slog.SetDefault(logger)
	gg.SetLogger(logger.With(config.LogKeyComponent, config.CompChart))

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)

	// Ensure the directory exists with restricted permissions (700).
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
