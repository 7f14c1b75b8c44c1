package config

import (
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// ServerHeader identifies the widget HTTP server.
var ServerHeader = "Go-YearProgress/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Year Progress"
	AppID             = "com.github.tartampluch.go-yearprogress"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	IconFile          = "Icon.png"
	IconSize          = 64
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagDate         = "date"
	FlagRender       = "render"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescDate     = "Seed the widget with this date (YYYY-MM-DD) instead of today"
	FlagDescRender   = "Render the pie chart to this PNG file, print the summary and exit"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Environment Overrides
// -----------------------------------------------------------------------------

const (
	EnvPort    = "YEARPROGRESS_PORT"
	EnvServer  = "YEARPROGRESS_SERVER"
	EnvFile    = ".env"
	EnvTrueStr = "true"
	EnvOneStr  = "1"
)

// LoadEnv reads an optional .env file into the process environment.
// A missing file is not an error; variables already set win.
func LoadEnv() error {
	if _, err := os.Stat(EnvFile); err != nil {
		return nil
	}
	return godotenv.Load(EnvFile)
}

// EnvString returns the environment value for key, or fallback when unset.
func EnvString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// EnvBool reports whether key is set to a truthy value, or fallback when unset.
func EnvBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	return v == EnvTrueStr || v == EnvOneStr
}

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	MainWindowWidth     = 420
	MainWindowHeight    = 620
	SettingsWindowWidth = 480
	ChartMinSize        = 240
	ResultTextSize      = 14
	CountdownTextSize   = 16
	LayoutColumnsDouble = 2
	FormatFooter        = "%s v%s"

	// Preference Keys
	PrefServerEnabled = "server_enabled"
	PrefServerPort    = "server_port"
	PrefInterval      = "refresh_interval_min"
	PrefLastRun       = "last_run_version"
)

// -----------------------------------------------------------------------------
// Translation Keys (message catalog)
// -----------------------------------------------------------------------------

const (
	TKeyResultSummary   = "result_summary"      // Requires Month, Day, Year, DayOfYear, Percent
	TKeyResultDegrees   = "result_degrees"      // Requires Degrees
	TKeyResultLeap      = "result_leap"         // Leap year sentence
	TKeyResultNotLeap   = "result_not_leap"     // Non-leap year sentence
	TKeyInvalidDate     = "invalid_date"        // Replaces the result block
	TKeyCountdown       = "countdown_remaining" // Plural, requires Count
	TKeyCountdownError  = "countdown_invalid"   // Replaces the countdown line
	TKeyTrayStatus      = "tray_status"         // Requires Year, Percent
	TKeyMenuOpen        = "menu_open"
	TKeyMenuSettings    = "menu_settings"
	TKeyWinTitle        = "win_title"
	TKeyWinSettings     = "win_settings_title"
	TKeyLblDate         = "lbl_date"
	TKeyLblServer       = "lbl_server_enabled"
	TKeyLblPort         = "lbl_server_port"
	TKeyHelpPort        = "help_port"
	TKeyLblRefresh      = "lbl_refresh_interval"
	TKeyHelpInterval    = "help_interval"
	TKeyLblMinutes      = "lbl_minutes_suffix"
	TKeyBtnSave         = "btn_save"
	TKeyBtnCancel       = "btn_cancel"
	TKeyErrPortReq      = "err_port_required"
	TKeyErrPortNum      = "err_port_number"
	TKeyErrPortRange    = "err_port_range"
	TKeyErrDateFormat   = "err_date_format"
	TKeyDatePlaceholder = "date_placeholder"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultPort          = "18081"
	DefaultRefreshMin    = 60
	DefaultServerEnabled = true
	DefaultLanguage      = "en"
	DisabledInterval     = 0

	// Calendar arithmetic
	DaysInCommonYear = 365
	DaysInLeapYear   = 366
	FullCircleDeg    = 360.0
	PercentScale     = 100.0
	MillisPerDay     = 24 * 60 * 60 * 1000

	// Animation
	EaseFactor      = 0.1
	SettleThreshold = 0.5
	FrameInterval   = 16 * time.Millisecond
	MaxBarWidth     = 100.0

	// Contrast (ITU-R BT.601 weights)
	LumaWeightR        = 0.299
	LumaWeightG        = 0.587
	LumaWeightB        = 0.114
	LuminanceThreshold = 128.0
	TextColorWhite     = "#ffffff"
	TextColorBlack     = "#000000"
	CSSColorFormat     = "rgba(%d, %d, %d, %s)"

	// Pie chart
	ChartRadiusRatio    = 0.8
	ChartBackground     = "#ddd"
	ChartGradientStart  = "#4CAF50"
	ChartGradientEnd    = "#2E7D32"
	ChartDefaultSize    = 200
	ChartMinRenderSize  = 16
	ChartMaxRenderSize  = 1024
	ChartStartAngleDeg  = -90.0
	ChartPercentDecimal = 6
	ChartDegreeDecimal  = 2
)

// -----------------------------------------------------------------------------
// Data Formats & Limits
// -----------------------------------------------------------------------------

const (
	DateSeparator   = "-"
	DateYearDigits  = 4
	DateMonthDigits = 2
	DateDayDigits   = 2

	// Limits
	MinPort = 1
	MaxPort = 65535
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	ShutdownTimeout    = 5 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	AllowedMethods     = "GET, HEAD"
	AddrSeparator      = ":"

	RouteRoot     = "/"
	RouteChart    = "/chart.png"
	RouteProgress = "/api/progress"
	RouteHealth   = "/health"

	QueryDate  = "date"
	QuerySize  = "size"
	QueryBG    = "bg"
	QueryEmbed = "embed"

	SecFetchDestIframe = "iframe"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderServer          = "Server"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"
	HeaderSecFetchDest    = "Sec-Fetch-Dest"

	MimePNG             = "image/png"
	MimeJSON            = "application/json"
	MimeHTML            = "text/html; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`

	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeInternal   = "INTERNAL_ERROR"
	HealthStatusOK    = "ok"
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrInvalidDate    = "invalid date"
	ErrServerStartup  = "server startup failed"
	ErrServerShutdown = "server shutdown failed"
	ErrPortRequired   = "server port is required"
	ErrChartRender    = "failed to render pie chart"
	ErrChartEncode    = "failed to encode pie chart"
	ErrChartSize      = "chart size out of range"
	ErrLogFile        = "failed to open log file"
	ErrCacheDir       = "could not determine user cache dir"
	ErrCreateDir      = "could not create app cache dir"
	ErrAppFailed      = "application failed unexpectedly"
	ErrWriteResp      = "failed to write response body"
	ErrLocalesAccess  = "failed to access embedded locales"
	ErrLocaleLoad     = "failed to load locale file"
	ErrTrayNotSupport = "system tray not supported on this platform/driver"
	ErrEnvLoad        = "failed to load environment file"
	ErrRenderOutput   = "failed to write rendered chart"
	ErrSnapshot       = "failed to refresh today's snapshot"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgInternalErr  = "Internal Server Error"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackTrayLabel = "Go Year Progress"
	FallbackTrayError = "Go Year Progress: Render Error"

	TitleStartupError = "Startup Error"

	MsgPortBusy        = "Port %s is busy or unavailable."
	MsgWorkerStart     = "Background worker started"
	MsgWorkerStop      = "Worker stopping due to context cancellation"
	MsgUpdateInterval  = "Updating refresh interval"
	MsgAppStop         = "Application stopped gracefully"
	MsgCtxCancel       = "Context cancelled, shutting down UI"
	MsgAppStarting     = "Starting application"
	MsgServerListen    = "HTTP server listening"
	MsgServerStop      = "Shutting down HTTP server..."
	MsgServerDisabled  = "Widget server disabled"
	MsgCacheUpdated    = "Chart snapshot updated"
	MsgLocaleSkip      = "Skipping non-locale file"
	MsgLocaleBadName   = "Skipping malformed locale filename"
	MsgLocaleLoaded    = "Locale loaded successfully"
	MsgTransMissing    = "Missing translation key"
	MsgLogWarning      = "Warning: %s at %s: %v\n"
	MsgDateChanged     = "Date changed"
	MsgDateInvalid     = "Rejected invalid date"
	MsgProgress        = "Year progress computed"
	MsgCountdown       = "Countdown computed"
	MsgContrast        = "Text color adjusted"
	MsgAnimStart       = "Progress bar animation started"
	MsgAnimRetarget    = "Progress bar animation retargeted"
	MsgAnimSettled     = "Progress bar animation settled"
	MsgSettingsOpen    = "Opening settings window"
	MsgSettingsFocus   = "Settings window already open, requesting focus"
	MsgSettingsSaved   = "Settings saved"
	MsgSnapshotRefresh = "Refreshing today's snapshot"
	MsgRenderDone      = "Chart rendered to file"
	MsgHTTPRequest     = "http request"
	MsgWindowOpen      = "Opening main window"
	MsgChartRendered   = "Pie chart rendered"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyInterval  = "interval"
	LogKeyOld       = "old"
	LogKeyNew       = "new"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyValue     = "value"
	LogKeyDate      = "date"
	LogKeyDayOfYear = "day_of_year"
	LogKeyPercent   = "percent"
	LogKeyDays      = "days_remaining"
	LogKeyTarget    = "target"
	LogKeyFrames    = "frames"
	LogKeyColor     = "color"
	LogKeyBG        = "background"
	LogKeyLuminance = "luminance"
	LogKeyAlpha     = "alpha"
	LogKeyEmbedded  = "embedded"
	LogKeyReason    = "reason"
	LogKeyMethod    = "method"
	LogKeyPath      = "path"
	LogKeyStatus    = "status"
	LogKeyDuration  = "duration_ms"
	LogKeyRequestID = "request_id"
	LogKeySize      = "size"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI        = "ui"
	CompUISet     = "ui_settings"
	CompAnimator  = "animator"
	CompChart     = "chart"
	CompDashboard = "dashboard"
	CompServer    = "server"
	CompWorker    = "worker"
	CompMain      = "main"
	CompI18n      = "i18n"
)
