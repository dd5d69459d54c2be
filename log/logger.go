package log

import (
	"os"
	"path/filepath"
	"time"

	"github.com/CMSgov/edi834-app/conf"
	"github.com/CMSgov/edi834-app/edi834/constants"
	"github.com/sirupsen/logrus"
)

var (
	Parser  logrus.FieldLogger
	Export  logrus.FieldLogger
	Storage logrus.FieldLogger
	CLI     logrus.FieldLogger
)

func init() {
	SetupLoggers()
}

// SetupLoggers (re)builds the package loggers from the current configuration.
func SetupLoggers() {
	env := environment()

	Parser = Logger(logrus.New(), conf.GetEnv("EDI834_PARSER_LOG"), "parser", env)
	Export = Logger(logrus.New(), conf.GetEnv("EDI834_EXPORT_LOG"), "export", env)
	Storage = Logger(logrus.New(), conf.GetEnv("EDI834_STORAGE_LOG"), "storage", env)
	CLI = Logger(logrus.New(), conf.GetEnv("EDI834_CLI_LOG"), "cli", env)
}

// environment names the deployment in log entries. ENVIRONMENT wins over
// DEPLOYMENT_TARGET, which also names the New Relic application.
func environment() string {
	if env := conf.GetEnv("ENVIRONMENT"); env != "" {
		return env
	}
	return conf.GetEnv("DEPLOYMENT_TARGET")
}

// Logger configures logger for JSON output to outputFile, or stderr when outputFile is
// empty or cannot be opened, and returns it with the common fields attached.
func Logger(logger *logrus.Logger, outputFile string,
	application, environment string) logrus.FieldLogger {

	logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})

	if outputFile != "" {
		if file, err := os.OpenFile(filepath.Clean(outputFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640); err == nil {
			logger.SetOutput(file)
		} else {
			logger.Infof("Failed to open output file %s. Will use stderr. %s",
				outputFile, err.Error())
		}
	}

	return logger.WithFields(logrus.Fields{
		"application": application,
		"environment": environment,
		"version":     constants.Version})
}
