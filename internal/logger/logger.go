package logger

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"openpims-golang/gateway/internal/config"
	jsonpkg "openpims-golang/gateway/internal/pkg/json"
)

type LogLevel int

const (
	LogOff  LogLevel = 0 // basic logs only
	LogLow  LogLevel = 1 // + per-request rewrite decisions
	LogHigh LogLevel = 2 // + upstream header dumps
)

const (
	ColorReset  = "\x1b[0m"
	ColorGreen  = "\x1b[32m"
	ColorYellow = "\x1b[33m"
	ColorRed    = "\x1b[31m"
	ColorCyan   = "\x1b[36m"
	ColorGray   = "\x1b[90m"
	ColorBlue   = "\x1b[34m"
)

var currentLogLevel LogLevel

func Init() {
	cfg := config.Get()
	currentLogLevel = parseLogLevel(cfg.Debug)
}

func parseLogLevel(debug string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(debug)) {
	case "low":
		return LogLow
	case "high":
		return LogHigh
	default:
		return LogOff
	}
}

func GetLevel() LogLevel {
	return currentLogLevel
}

func Info(format string, args ...any) {
	timestamp := time.Now().Format("15:04:05")
	msg := fmt.Sprintf(format, args...)
	fmt.Printf("%s%s%s %s[info]%s %s\n", ColorGray, timestamp, ColorReset, ColorGreen, ColorReset, msg)
}

func Warn(format string, args ...any) {
	timestamp := time.Now().Format("15:04:05")
	msg := fmt.Sprintf(format, args...)
	fmt.Printf("%s%s%s %s[warn]%s %s\n", ColorGray, timestamp, ColorReset, ColorYellow, ColorReset, msg)
}

func Error(format string, args ...any) {
	timestamp := time.Now().Format("15:04:05")
	msg := fmt.Sprintf(format, args...)
	fmt.Printf("%s%s%s %s[error]%s %s\n", ColorGray, timestamp, ColorReset, ColorRed, ColorReset, msg)
}

func Debug(format string, args ...any) {
	if currentLogLevel < LogLow {
		return
	}
	timestamp := time.Now().Format("15:04:05")
	msg := fmt.Sprintf(format, args...)
	fmt.Printf("%s%s%s %s[debug]%s %s\n", ColorGray, timestamp, ColorReset, ColorBlue, ColorReset, msg)
}

func Request(method, target string, status int, duration time.Duration) {
	statusColor := ColorGreen
	if status >= 500 {
		statusColor = ColorRed
	} else if status >= 400 {
		statusColor = ColorYellow
	}

	fmt.Printf("%s[%s]%s %s %s%d%s %s%dms%s\n",
		ColorCyan, method, ColorReset,
		target,
		statusColor, status, ColorReset,
		ColorGray, duration.Milliseconds(), ColorReset)
}

// UpstreamHeaders dumps the final outbound header set at the high debug
// level, with credential-bearing values redacted.
func UpstreamHeaders(target string, headers http.Header) {
	if currentLogLevel < LogHigh {
		return
	}
	fmt.Printf("%s[upstream]%s %s\n", ColorYellow, ColorReset, target)
	printJSON(redactHeaders(headers))
}

func redactHeaders(h http.Header) http.Header {
	out := make(http.Header, len(h))
	for k, v := range h {
		kl := strings.ToLower(k)
		if kl == "authorization" || kl == "proxy-authorization" || kl == "cookie" {
			out[k] = []string{"***"}
			continue
		}
		out[k] = append([]string(nil), v...)
	}
	return out
}

func Banner(addr, serverURL string) {
	fmt.Printf(`
%s╔════════════════════════════════════════════════════════════╗
║                  %sOpenPIMS Gateway%s                          ║
╚════════════════════════════════════════════════════════════╝%s
`, ColorCyan, ColorGreen, ColorCyan, ColorReset)

	Info("Proxy listening on %s", addr)
	Info("Login server: %s", serverURL)
	Info("Debug level: %s", config.Get().Debug)

	fmt.Println()
}

func printJSON(v any) {
	b, err := jsonpkg.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}
