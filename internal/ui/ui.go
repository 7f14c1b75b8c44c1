package ui

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/tartampluch/go-yearprogress/internal/chart"
	"github.com/tartampluch/go-yearprogress/internal/config"
	"github.com/tartampluch/go-yearprogress/internal/dashboard"
	"github.com/tartampluch/go-yearprogress/internal/engine"
	"github.com/tartampluch/go-yearprogress/internal/server"
)

// YearProgressApp encapsulates the UI state, preferences, and background logic.
type YearProgressApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	Messages    *dashboard.Messages
	Ctx         context.Context

	Server    *server.WidgetServer
	Clock     engine.Clock          // Injected clock for testability
	Scheduler engine.FrameScheduler // Animation frames; a queue in tests

	// SeedDate replaces today's date on first load when set.
	SeedDate string

	Display    *FyneDisplay
	Controller *dashboard.Controller

	Tray desktop.App
	Menu *fyne.Menu

	TrayStatusItem   *fyne.MenuItem
	TrayOpenItem     *fyne.MenuItem
	TraySettingsItem *fyne.MenuItem

	settingsWindow fyne.Window
	configChan     chan string

	serverMu     sync.Mutex
	serverCancel context.CancelFunc
	serverDone   chan struct{}
}

// NewYearProgressApp constructs the application and wires dependencies.
func NewYearProgressApp(a fyne.App, ctx context.Context, srv *server.WidgetServer, msgs *dashboard.Messages) *YearProgressApp {
	app := &YearProgressApp{
		App:         a,
		Preferences: a.Preferences(),
		Messages:    msgs,
		Ctx:         ctx,
		Server:      srv,
		Clock:       engine.RealClock{},
		Scheduler:   frameTicker{},
		configChan:  make(chan string, config.ChannelBufferSize),
	}
	if icon, err := app.renderIcon(); err == nil {
		a.SetIcon(icon)
	}
	return app
}

// Run launches the application services and the main UI loop.
func (app *YearProgressApp) Run() {
	app.watchPreferences()
	app.restartServer()

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(app.App.Icon())
		app.setupTrayMenu()
	} else {
		slog.Warn(config.ErrTrayNotSupport,
			config.LogKeyComponent, config.CompUI)
	}

	app.ShowMainWindow()

	go app.backgroundWorker()
	app.App.Run()
}

// ShowMainWindow opens the widget window, or focuses it when already built.
func (app *YearProgressApp) ShowMainWindow() {
	if app.Window != nil {
		app.Window.Show()
		app.Window.RequestFocus()
		return
	}

	slog.Info(config.MsgWindowOpen, config.LogKeyComponent, config.CompUI)
	w := app.App.NewWindow(app.Messages.Get(config.TKeyWinTitle))
	app.Window = w

	d := NewFyneDisplay(app.App)
	d.DateEntry.PlaceHolder = app.Messages.Get(config.TKeyDatePlaceholder)
	d.DateEntry.Validator = func(s string) error {
		if _, err := engine.ParseCalendarDate(s); err != nil {
			return fmt.Errorf("%s: %w", app.Messages.Get(config.TKeyErrDateFormat), err)
		}
		return nil
	}

	c := dashboard.NewController(d, app.Scheduler, app.Messages)
	d.onDateChanged = c.HandleDateChange
	app.Display = d
	app.Controller = c

	// The background comes from the theme, so a theme switch needs a new
	// contrast decision.
	app.App.Settings().AddListener(func(fyne.Settings) {
		fyne.Do(func() { c.AdjustTextColor() })
	})

	w.SetContent(d.Content(app.Messages.Get(config.TKeyLblDate)))
	w.Resize(fyne.NewSize(config.MainWindowWidth, config.MainWindowHeight))

	// With a tray the window only hides; the tray keeps the app alive.
	if app.Tray != nil {
		w.SetCloseIntercept(w.Hide)
	} else {
		w.SetMaster()
	}

	if app.SeedDate != "" {
		d.SetDateInput(app.SeedDate)
		c.HandleDateChange()
	} else {
		c.Load(app.Clock.Now())
	}
	w.Show()
}

// watchPreferences monitors changes to settings to trigger immediate updates.
func (app *YearProgressApp) watchPreferences() {
	app.Preferences.AddChangeListener(func() {
		select {
		case app.configChan <- config.PrefInterval:
		default:
		}
	})
}

// setupTrayMenu constructs the system tray menu.
func (app *YearProgressApp) setupTrayMenu() {
	app.TrayStatusItem = fyne.NewMenuItem(config.FallbackTrayLabel, app.ShowMainWindow)

	app.TrayOpenItem = fyne.NewMenuItem(app.Messages.Get(config.TKeyMenuOpen), app.ShowMainWindow)

	app.TraySettingsItem = fyne.NewMenuItem(app.Messages.Get(config.TKeyMenuSettings), func() {
		app.ShowSettingsWindow()
	})

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayStatusItem,
		fyne.NewMenuItemSeparator(),
		app.TrayOpenItem,
		app.TraySettingsItem,
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
}

// refreshInterval reads the worker period; zero or negative falls back to
// the default.
func (app *YearProgressApp) refreshInterval() time.Duration {
	val := app.Preferences.IntWithFallback(config.PrefInterval, config.DefaultRefreshMin)
	if val <= 0 {
		val = config.DefaultRefreshMin
	}
	return time.Duration(val) * time.Minute
}

// backgroundWorker keeps today's snapshot, tray label and tray icon current.
func (app *YearProgressApp) backgroundWorker() {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	app.performRefresh()

	currentDuration := app.refreshInterval()
	ticker := time.NewTicker(currentDuration)
	defer ticker.Stop()

	log.Info(config.MsgWorkerStart, config.LogKeyInterval, currentDuration)

	for {
		select {
		case <-app.Ctx.Done():
			log.Info(config.MsgWorkerStop)
			return

		case <-app.configChan:
			newDuration := app.refreshInterval()
			if newDuration != currentDuration {
				log.Info(config.MsgUpdateInterval, config.LogKeyOld, currentDuration, config.LogKeyNew, newDuration)
				currentDuration = newDuration
				ticker.Reset(currentDuration)
			}

		case <-ticker.C:
			app.performRefresh()
		}
	}
}

// performRefresh recomputes today's progress for the tray and the server
// snapshot. UI writes are handed to the UI goroutine.
func (app *YearProgressApp) performRefresh() {
	today := engine.Today(app.Clock)
	p := engine.ProgressOf(today)

	slog.Info(config.MsgSnapshotRefresh,
		config.LogKeyComponent, config.CompWorker,
		config.LogKeyDate, today.String(),
		config.LogKeyPercent, p.PercentPassed)

	if app.Server != nil {
		if err := app.Server.Refresh(); err != nil {
			slog.Error(config.ErrSnapshot,
				config.LogKeyComponent, config.CompWorker,
				config.LogKeyError, err)
		}
	}

	icon, err := app.renderIcon()
	if err != nil {
		slog.Error(config.ErrChartRender,
			config.LogKeyComponent, config.CompWorker,
			config.LogKeyError, err)
	}

	label := config.FallbackTrayError
	if err == nil {
		label = app.Messages.TrayStatus(p)
	}

	fyne.Do(func() {
		if icon != nil && app.Tray != nil {
			app.Tray.SetSystemTrayIcon(icon)
		}
		app.updateTrayStatus(label)
	})
}

// updateTrayStatus updates the top menu item with today's progress.
func (app *YearProgressApp) updateTrayStatus(label string) {
	if app.Menu == nil || app.TrayStatusItem == nil {
		return
	}
	app.TrayStatusItem.Label = label
	app.Menu.Refresh()
}

// renderIcon draws today's pie chart as the application icon.
func (app *YearProgressApp) renderIcon() (fyne.Resource, error) {
	p := engine.ProgressOf(engine.Today(app.Clock))

	var buf bytes.Buffer
	if err := chart.RenderPNG(&buf, config.IconSize, p.PercentPassed); err != nil {
		return nil, err
	}
	return fyne.NewStaticResource(config.IconFile, buf.Bytes()), nil
}

// serverEnabled reads the preference, overridden by the environment.
func (app *YearProgressApp) serverEnabled() bool {
	pref := app.Preferences.BoolWithFallback(config.PrefServerEnabled, config.DefaultServerEnabled)
	return config.EnvBool(config.EnvServer, pref)
}

// serverPort reads the preference, overridden by the environment.
func (app *YearProgressApp) serverPort() string {
	pref := app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort)
	return config.EnvString(config.EnvPort, pref)
}

// restartServer stops the running widget server, if any, and starts it
// again with the current settings when enabled.
func (app *YearProgressApp) restartServer() {
	if app.Server == nil {
		return
	}

	app.serverMu.Lock()
	defer app.serverMu.Unlock()

	if app.serverCancel != nil {
		app.serverCancel()
		select {
		case <-app.serverDone:
		case <-time.After(config.ShutdownTimeout):
		}
		app.serverCancel = nil
	}

	if !app.serverEnabled() {
		slog.Info(config.MsgServerDisabled, config.LogKeyComponent, config.CompUI)
		return
	}

	ctx, cancel := context.WithCancel(app.Ctx)
	done := make(chan struct{})
	app.serverCancel = cancel
	app.serverDone = done
	app.Server.Port = app.serverPort()
	port := app.Server.Port

	go func() {
		defer close(done)
		if err := app.Server.Start(ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, port)))
		}
	}()
}
