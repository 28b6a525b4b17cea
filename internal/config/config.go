package config

import (
	"io/fs"
	"time"
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

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go SoftClock"
	AppID             = "com.github.tartampluch.go-softclock"
	CommandName       = "go-softclock"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	DefaultEnvFile    = ".env"
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
	FlagDebug     = "debug"
	FlagEnvFile   = "env-file"
	FlagSpeed     = "speed"
	FlagPort      = "port"
	FlagLang      = "lang"
	FlagPoll      = "poll"
	FlagDescDebug = "Enable debug logging to stdout"
	FlagDescEnv   = "Path to an env file with SOFTCLOCK_* settings"
	FlagDescSpeed = "Clock acceleration factor (1, 10, 50 or 100)"
	FlagDescPort  = "Local HTTP port for the status endpoint (empty disables it)"
	FlagDescLang  = "Language used for weekday and month names"
	FlagDescPoll  = "Interval between two clock polls"

	MsgVersionOutput = "%s version %s (core %s, %s/%s)\n"
)

// -----------------------------------------------------------------------------
// Environment Keys
// -----------------------------------------------------------------------------

const (
	EnvSpeed = "SOFTCLOCK_SPEED"
	EnvPort  = "SOFTCLOCK_PORT"
	EnvLang  = "SOFTCLOCK_LANG"
	EnvPoll  = "SOFTCLOCK_POLL"
	EnvDebug = "SOFTCLOCK_DEBUG"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultSpeed    = 1
	DefaultPort     = "18081"
	DefaultLanguage = "en"

	// DefaultPollInterval keeps at least ten polls per simulated second at x100.
	DefaultPollInterval = 1 * time.Millisecond

	// MaxPollInterval is the slowest cadence that still sees every second at x1.
	MaxPollInterval = 1 * time.Second
)

// SupportedLanguages defines the list of available display languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Standards: iCalendar
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go SoftClock//Feed//EN"
	ICalCalName = "Simulated Clock"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "softclock"

	PropUID      = "UID"
	PropSummary  = "SUMMARY"
	PropDTStart  = "DTSTART"
	PropDTStamp  = "DTSTAMP"
	PropVersion  = "VERSION"
	PropProdid   = "PRODID"
	PropXWRName  = "X-WR-CALNAME"
	PropCalScale = "CALSCALE"
	PropSpeed    = "X-SOFTCLOCK-SPEED"
	PropTimeSet  = "X-SOFTCLOCK-TIME-SET"

	FormatUID     = "%s@%s"
	FormatUIDDate = "20060102"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	ShutdownTimeout    = 5 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	RetryAfterSeconds  = "1"
	AllowedMethods     = "GET, HEAD"
	RouteRoot          = "/"
	RouteCalendar      = "/calendar.ics"
	AddrSeparator      = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeTextPlain       = "text/plain; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrServerStartup  = "server startup failed"
	ErrServerShutdown = "server shutdown failed"
	ErrPortRequired   = "server port is required"
	ErrEnvFile        = "failed to load env file"
	ErrEnvValue       = "invalid environment value"
	ErrFlagValue      = "invalid flag value"
	ErrArgValue       = "invalid argument"
	ErrYearRange      = "year outside the supported 2000-2099 range"
	ErrICalEncode     = "failed to encode iCalendar data"
	ErrFeedRender     = "failed to render snapshot"
	ErrLogFile        = "failed to open log file"
	ErrCacheDir       = "could not determine user cache dir"
	ErrCreateDir      = "could not create app cache dir"
	ErrAppFailed      = "application failed unexpectedly"
	ErrWriteResp      = "failed to write response body"
	ErrLocalesAccess  = "failed to access embedded locales"
	ErrLocaleLoad     = "failed to load locale file"
	ErrLanguage       = "unsupported language"
	ErrPollInterval   = "poll interval must be positive"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Clock initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Log & Output Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting   = "Starting application"
	MsgAppStop       = "Application stopped gracefully"
	MsgRunnerStart   = "Clock runner started"
	MsgRunnerStop    = "Runner stopping due to context cancellation"
	MsgSecondEdge    = "Second edge"
	MsgMinuteEdge    = "Minute edge"
	MsgDayChange     = "Day rollover"
	MsgSinkFailed    = "Snapshot sink failed"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgServerOff     = "HTTP server disabled (no port)"
	MsgCacheUpdated  = "Snapshot cache updated"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgEnvSkipped    = "Default env file not found, using process environment"
	MsgSettings      = "Settings resolved"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
	MsgPollTooSlow   = "Poll interval slower than one simulated second, seconds will be lost"
	MsgElapsedFormat = "%s elapsed time=%dmS. "

	OutLeap    = "%d leap=%t\n"
	OutDOY     = "%04d-%02d-%02d ordinal=%d\n"
	OutDate    = "%d ordinal %d -> %04d-%02d-%02d\n"
	OutWeekday = "%04d-%02d-%02d weekday=%d (%s)\n"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWeekdayPrefix = "weekday_" // weekday_0 (Sunday) .. weekday_6
	TKeyMonthPrefix   = "month_"   // month_1 (January) .. month_12
	TKeyStatusLine    = "status_line"
	TKeyTimeNotSet    = "time_not_set"
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
	LogKeySpeed     = "speed"
	LogKeyDivisor   = "one_second_micro"
	LogKeyInterval  = "interval"
	LogKeyClock     = "clock"
	LogKeyWeekday   = "weekday"
	LogKeySink      = "sink"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyCore    = "core_version"
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
	CompMain    = "main"
	CompCLI     = "cli"
	CompConfig  = "config"
	CompRunner  = "runner"
	CompServer  = "server"
	CompFeed    = "feed"
	CompDisplay = "display"
)
