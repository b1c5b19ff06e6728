package logger

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogging(t *testing.T) {
	l, err := NewELKLogger("babel-test", "")
	require.NoError(t, err)
	l.SetLogLevel("debug")
	l.Info("this is a info log test")
	l.Warn("this is a warn log test")
	l.Error("this is a error log test", WithField("tokenId", 1234), WithField("account", "0xabc"))
	l.Debug("this is a debug log test")
}

func TestSetLogLevel(t *testing.T) {
	var tests = map[string]logrus.Level{
		"debug":   logrus.DebugLevel,
		" WARN ":  logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
		"verbose": logrus.InfoLevel,
		"":        logrus.InfoLevel,
	}
	for level, want := range tests {
		t.Run(level, func(t *testing.T) {
			l, err := NewELKLogger("babel-test", "")
			require.NoError(t, err)
			l.SetLogLevel(level)
			assert.Equal(t, want, l.(*ELKLogger).logger.GetLevel())
		})
	}
}

func TestLogstashUnreachable(t *testing.T) {
	_, err := NewELKLogger("babel-test", "127.0.0.1:1")
	assert.Error(t, err)
}

func TestSweetenFields(t *testing.T) {
	cause := errors.New("boom")
	var tests = map[string]struct {
		args []interface{}
		want []Field
	}{
		"empty": {
			args: nil,
			want: []Field{},
		},
		"key value pairs": {
			args: []interface{}{"tokenId", 1, "account", "0x1"},
			want: []Field{WithField("tokenId", 1), WithField("account", "0x1")},
		},
		"only first error kept": {
			args: []interface{}{cause, errors.New("second")},
			want: []Field{WithField("error", cause)},
		},
		"dangling key dropped": {
			args: []interface{}{WithField("a", 1), "b"},
			want: []Field{WithField("a", 1)},
		},
		"non string key skipped": {
			args: []interface{}{42, "v", "k", "v"},
			want: []Field{WithField("k", "v")},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewMockELKLogger().SweetenFields(tt.args))
		})
	}
}
