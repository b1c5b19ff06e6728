package logger

import (
	"fmt"
	"sync"
)

var (
	once          sync.Once
	mockELKLogger *MockELKLogger
)

// MockELKLogger prints to stdout and never exits, Fatal included.
type MockELKLogger struct{}

var _ Logger = (*MockELKLogger)(nil)

func NewMockELKLogger() Logger {
	once.Do(func() {
		mockELKLogger = &MockELKLogger{}
	})
	return mockELKLogger
}

func (m *MockELKLogger) print(level, msg string, fields []Field) {
	fmt.Printf("[%s] %s %+v\n", level, msg, fields)
}

func (m *MockELKLogger) printf(level, format string, args []interface{}) {
	fmt.Printf("["+level+"] "+format+"\n", args...)
}

func (m *MockELKLogger) SetLogLevel(string) {}

func (m *MockELKLogger) Info(msg string, fields ...Field)  { m.print("info", msg, fields) }
func (m *MockELKLogger) Warn(msg string, fields ...Field)  { m.print("warn", msg, fields) }
func (m *MockELKLogger) Error(msg string, fields ...Field) { m.print("error", msg, fields) }
func (m *MockELKLogger) Fatal(msg string, fields ...Field) { m.print("fatal", msg, fields) }
func (m *MockELKLogger) Debug(msg string, fields ...Field) { m.print("debug", msg, fields) }

func (m *MockELKLogger) Infof(format string, args ...interface{})  { m.printf("info", format, args) }
func (m *MockELKLogger) Warnf(format string, args ...interface{})  { m.printf("warn", format, args) }
func (m *MockELKLogger) Errorf(format string, args ...interface{}) { m.printf("error", format, args) }
func (m *MockELKLogger) Fatalf(format string, args ...interface{}) { m.printf("fatal", format, args) }
func (m *MockELKLogger) Debugf(format string, args ...interface{}) { m.printf("debug", format, args) }

func (m *MockELKLogger) SweetenFields(args []interface{}) []Field {
	return sweetenFields(args)
}
