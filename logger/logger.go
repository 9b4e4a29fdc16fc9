// Package logger provides a process wide logger. Logs are discarded unless SetOutput is called.
package logger

import (
	"io"
	"io/ioutil"
	"log"
)

const defaultPrefix = "cenum: "

var (
	defaultLogger = newDefaultLogger()
	enabled       bool
)

func newDefaultLogger() *log.Logger {
	return log.New(ioutil.Discard, defaultPrefix, 0)
}

func SetOutput(w io.Writer) {
	enabled = w != ioutil.Discard
	defaultLogger.SetOutput(w)
}

func SetPrefix(p string) {
	defaultLogger.SetPrefix(p)
}

// Reset restores the initial state. It is mainly used from tests.
func Reset() {
	enabled = false
	defaultLogger = newDefaultLogger()
}

func Println(v ...interface{}) {
	defaultLogger.Println(v...)
}

func Printf(format string, v ...interface{}) {
	defaultLogger.Printf(format, v...)
}

// Scriptln calls f and logs its results only if the output is enabled.
// It is used for expensive log messages such as dumps of descriptors.
func Scriptln(f func() []interface{}) {
	if !enabled {
		return
	}
	defaultLogger.Println(f()...)
}

func Fatal(v ...interface{}) {
	defaultLogger.Fatal(v...)
}

func Fatalf(format string, v ...interface{}) {
	defaultLogger.Fatalf(format, v...)
}
