package logger

import (
	"net"
	"os"
	"strings"

	logstash "github.com/bshuster-repo/logrus-logstash-hook"
	"github.com/sirupsen/logrus"
)

type Logger interface {
	SetLogLevel(level string)

	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Fatal(msg string, fields ...Field)
	Debug(msg string, fields ...Field)

	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
	Debugf(format string, args ...interface{})

	SweetenFields(args []interface{}) []Field
}

type ELKLogger struct {
	logger *logrus.Logger
}

var _ Logger = (*ELKLogger)(nil)

// NewELKLogger returns a logrus backed logger tagged with appName. When
// logstashAddr is set, entries are also shipped to logstash over tcp.
func NewELKLogger(appName string, logstashAddr string) (Logger, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if logstashAddr != "" {
		conn, err := net.Dial("tcp", logstashAddr)
		if err != nil {
			return nil, err
		}
		hook := logstash.New(conn, logstash.DefaultFormatter(logrus.Fields{
			"app_name": appName,
		}))
		logger.Hooks.Add(hook)
	}

	return &ELKLogger{logger: logger}, nil
}

// SetLogLevel falls back to info for names logrus does not know.
func (l *ELKLogger) SetLogLevel(level string) {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.logger.SetLevel(lvl)
}

func (l *ELKLogger) entry(fields []Field) *logrus.Entry {
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key] = f.Val
	}
	return l.logger.WithFields(data)
}

func (l *ELKLogger) Info(msg string, fields ...Field)  { l.entry(fields).Info(msg) }
func (l *ELKLogger) Warn(msg string, fields ...Field)  { l.entry(fields).Warn(msg) }
func (l *ELKLogger) Error(msg string, fields ...Field) { l.entry(fields).Error(msg) }
func (l *ELKLogger) Fatal(msg string, fields ...Field) { l.entry(fields).Fatal(msg) }
func (l *ELKLogger) Debug(msg string, fields ...Field) { l.entry(fields).Debug(msg) }

func (l *ELKLogger) Infof(format string, args ...interface{})  { l.logger.Infof(format, args...) }
func (l *ELKLogger) Warnf(format string, args ...interface{})  { l.logger.Warnf(format, args...) }
func (l *ELKLogger) Errorf(format string, args ...interface{}) { l.logger.Errorf(format, args...) }
func (l *ELKLogger) Fatalf(format string, args ...interface{}) { l.logger.Fatalf(format, args...) }
func (l *ELKLogger) Debugf(format string, args ...interface{}) { l.logger.Debugf(format, args...) }

// SweetenFields turns loosely typed key/value pairs into Fields. A bare error
// becomes the "error" field; a trailing key without value is dropped.
func (l *ELKLogger) SweetenFields(args []interface{}) []Field {
	return sweetenFields(args)
}

func sweetenFields(args []interface{}) []Field {
	if len(args) == 0 {
		return []Field{}
	}

	var (
		fields    = make([]Field, 0, len(args))
		seenError bool
	)

	for i := 0; i < len(args); {
		if f, ok := args[i].(Field); ok {
			fields = append(fields, f)
			i++
			continue
		}

		if err, ok := args[i].(error); ok {
			if !seenError {
				seenError = true
				fields = append(fields, WithField("error", err))
			}
			i++
			continue
		}
		if i == len(args)-1 {
			break
		}

		key, val := args[i], args[i+1]
		if keyStr, ok := key.(string); ok {
			fields = append(fields, WithField(keyStr, val))
		}
		i += 2
	}
	return fields
}
