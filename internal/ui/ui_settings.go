package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-yearprogress/internal/config"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	checkServer   *widget.Check
	entryPort     *NumericalEntry
	entryInterval *NumericalEntry
}

// ShowSettingsWindow displays the configuration dialog.
func (app *YearProgressApp) ShowSettingsWindow() {
	if app.settingsWindow != nil {
		slog.Debug(config.MsgSettingsFocus, config.LogKeyComponent, config.CompUISet)
		app.settingsWindow.RequestFocus()
		return
	}

	slog.Info(config.MsgSettingsOpen, config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.Messages.Get(config.TKeyWinSettings))
	app.settingsWindow = w

	sw := app.newSettingsWidgets()

	saveAction := func() {
		if err := sw.validate(); err != nil {
			dialog.ShowError(err, w)
			return
		}
		app.saveSettings(sw)
		w.Close()
	}

	btnSave := widget.NewButtonWithIcon(app.Messages.Get(config.TKeyBtnSave), theme.DocumentSaveIcon(), saveAction)
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.Messages.Get(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	footerLabel := widget.NewLabel(fmt.Sprintf(config.FormatFooter, config.AppName, config.Version))
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	paddedContent := container.NewPadded(container.NewVBox(
		app.buildSettingsForm(sw),
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	w.SetContent(paddedContent)
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.settingsWindow = nil })
	w.Resize(fyne.NewSize(config.SettingsWindowWidth, paddedContent.MinSize().Height))
	w.Show()
}

// newSettingsWidgets creates the inputs pre-filled from preferences.
func (app *YearProgressApp) newSettingsWidgets() *settingsWidgets {
	sw := &settingsWidgets{}

	sw.checkServer = widget.NewCheck(app.Messages.Get(config.TKeyLblServer), nil)
	sw.checkServer.SetChecked(app.Preferences.BoolWithFallback(config.PrefServerEnabled, config.DefaultServerEnabled))

	// Port: Numerical only, but requires strict Validation (Range 1-65535).
	sw.entryPort = NewNumericalEntry()
	sw.entryPort.SetText(app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort))
	sw.entryPort.Validator = app.validatePort

	// Interval: "0" or empty fall back to the default in the worker.
	sw.entryInterval = NewNumericalEntry()
	sw.entryInterval.SetText(strconv.Itoa(app.Preferences.IntWithFallback(config.PrefInterval, config.DefaultRefreshMin)))

	return sw
}

// validate reports the first blocking error. The port only matters while
// the server is enabled.
func (sw *settingsWidgets) validate() error {
	if !sw.checkServer.Checked {
		return nil
	}
	return sw.entryPort.Validate()
}

// validatePort checks the port entry against the allowed range.
func (app *YearProgressApp) validatePort(s string) error {
	if s == "" {
		return errors.New(app.Messages.Get(config.TKeyErrPortReq))
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return errors.New(app.Messages.Get(config.TKeyErrPortNum))
	}
	if port < config.MinPort || port > config.MaxPort {
		return errors.New(app.Messages.Get(config.TKeyErrPortRange))
	}
	return nil
}

// buildSettingsForm lays out the server and refresh settings.
func (app *YearProgressApp) buildSettingsForm(sw *settingsWidgets) *widget.Card {
	itemPort := widget.NewFormItem(app.Messages.Get(config.TKeyLblPort), sw.entryPort)
	itemPort.HintText = app.Messages.Get(config.TKeyHelpPort)

	widInterval := container.NewBorder(nil, nil, nil, widget.NewLabel(app.Messages.Get(config.TKeyLblMinutes)), sw.entryInterval)
	itemInterval := widget.NewFormItem(app.Messages.Get(config.TKeyLblRefresh), widInterval)
	itemInterval.HintText = app.Messages.Get(config.TKeyHelpInterval)

	sw.checkServer.OnChanged = func(b bool) {
		if b {
			sw.entryPort.Enable()
		} else {
			sw.entryPort.Disable()
		}
	}
	if !sw.checkServer.Checked {
		sw.entryPort.Disable()
	}

	form := widget.NewForm(itemPort, itemInterval)
	return widget.NewCard(app.Messages.Get(config.TKeyWinSettings), "", container.NewVBox(sw.checkServer, form))
}

// saveSettings persists the values, restarts the server and refreshes the
// tray.
func (app *YearProgressApp) saveSettings(sw *settingsWidgets) {
	app.Preferences.SetBool(config.PrefServerEnabled, sw.checkServer.Checked)

	if sw.entryPort.Text != "" {
		app.Preferences.SetString(config.PrefServerPort, sw.entryPort.Text)
	}

	// If empty or 0, the worker treats it as the default interval.
	intervalText := sw.entryInterval.Text
	if intervalText == "" {
		app.Preferences.SetInt(config.PrefInterval, config.DisabledInterval)
	} else if i, err := strconv.Atoi(intervalText); err == nil {
		app.Preferences.SetInt(config.PrefInterval, i)
	}

	slog.Info(config.MsgSettingsSaved,
		config.LogKeyComponent, config.CompUISet,
		config.LogKeyPort, sw.entryPort.Text,
		config.LogKeyInterval, intervalText)

	go func() {
		app.restartServer()
		app.performRefresh()
	}()
}
