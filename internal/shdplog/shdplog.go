// Package shdplog sets up the module's shared logger. Grounded on
// kryptco-kr's logging.go: same op/go-logging backend/formatter/module
// level pattern, retargeted to SHDP's own env var and prefix.
package shdplog

import (
	"os"

	"github.com/op/go-logging"
)

// Log is the package-wide logger every SHDP package writes through.
var Log = logging.MustGetLogger("shdp")

var stderrFormat = logging.MustStringFormatter(
	`%{color}%{time:15:04:05.000} %{level:.4s} shdp ▶ %{message}%{color:reset}`,
)

func init() {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatted := logging.NewBackendFormatter(backend, stderrFormat)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(levelFromEnv(logging.WARNING), "shdp")
	logging.SetBackend(leveled)
}

// levelFromEnv reads SHDP_LOG_LEVEL, falling back to def when unset or
// unrecognized.
func levelFromEnv(def logging.Level) logging.Level {
	switch os.Getenv("SHDP_LOG_LEVEL") {
	case "CRITICAL":
		return logging.CRITICAL
	case "ERROR":
		return logging.ERROR
	case "WARNING":
		return logging.WARNING
	case "NOTICE":
		return logging.NOTICE
	case "INFO":
		return logging.INFO
	case "DEBUG":
		return logging.DEBUG
	default:
		return def
	}
}
