package types

import (
	"io"
	"log"
	"strings"
)

// Log levels
const (
	LogDebug = "DEBUG"
	LogInfo  = "INFO"
	LogWarn  = "WARN"
	LogError = "ERROR"
)

const (
	TimeFormat = "2006-01-02T15:04:05.999999"

	StateOperational = "operational"
	StateMaintenance = "maintenance"
	StateCritical    = "critical"
	StateOutage      = "outage"
	StateDegraded    = "degraded"
)

type Logger struct {
	DebugLog *log.Logger
	InfoLog  *log.Logger
	WarnLog  *log.Logger
	ErrorLog *log.Logger
}

// NewLogger writes every level at or above level to w and discards the rest.
// An unrecognised level behaves like INFO.
func NewLogger(w io.Writer, level string) *Logger {
	threshold := levelRank(level)
	pick := func(l string) io.Writer {
		if levelRank(l) < threshold {
			return io.Discard
		}
		return w
	}
	flags := log.LstdFlags
	return &Logger{
		DebugLog: log.New(pick(LogDebug), LogDebug+": ", flags),
		InfoLog:  log.New(pick(LogInfo), LogInfo+": ", flags),
		WarnLog:  log.New(pick(LogWarn), LogWarn+": ", flags),
		ErrorLog: log.New(pick(LogError), LogError+": ", flags|log.Lshortfile),
	}
}

// DiscardLogger drops all output
func DiscardLogger() *Logger {
	return &Logger{
		DebugLog: log.New(io.Discard, "", 0),
		InfoLog:  log.New(io.Discard, "", 0),
		WarnLog:  log.New(io.Discard, "", 0),
		ErrorLog: log.New(io.Discard, "", 0),
	}
}

func levelRank(level string) int {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case LogDebug:
		return 0
	case LogWarn, "WARNING":
		return 2
	case LogError:
		return 3
	default:
		return 1
	}
}

type IncidentDetails struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Components  []string `json:"components"`
	URL         string   `json:"url"`
}

type IncidentHistory struct {
	ID           int             `json:"id"`
	IncidentID   int             `json:"incident_id"`
	RecordedAt   string          `json:"recorded_at"`
	Service      string          `json:"service"`
	PrevState    string          `json:"previous_state"`
	CurrentState string          `json:"current_state"`
	Incident     IncidentDetails `json:"incident"`
}

type Incident struct {
	ID           int               `json:"id"`
	Service      string            `json:"service"`
	PrevState    string            `json:"previous_state"`
	CurrentState string            `json:"current_state"`
	CreatedAt    string            `json:"created_at"`
	Incident     IncidentDetails   `json:"incident"`
	History      []IncidentHistory `json:"history"`
}
