package log

import (
	"fmt"
	"io"
	glog "log"
	"os"
	"path"
	"runtime"
	"sync/atomic"
)

var infoLogger, warningLogger, errorLogger, debugLogger *glog.Logger

var debug atomic.Bool

func init() {
	infoLogger = glog.New(os.Stdout, "INFO: ", glog.Ldate|glog.Ltime)
	warningLogger = glog.New(os.Stdout, "WARNING: ", glog.Ldate|glog.Ltime)
	errorLogger = glog.New(os.Stdout, "ERROR: ", glog.Ldate|glog.Ltime)
	debugLogger = glog.New(os.Stdout, "DEBUG: ", glog.Ldate|glog.Ltime)
}

// SetOutput redirects every level to w.
func SetOutput(w io.Writer) {
	for _, l := range []*glog.Logger{infoLogger, warningLogger, errorLogger, debugLogger} {
		l.SetOutput(w)
	}
}

// SetDebug toggles Debug and Debugf output.
func SetDebug(on bool) { debug.Store(on) }

// DebugEnabled reports whether debug output is on.
func DebugEnabled() bool { return debug.Load() }

func formatNormal(args ...interface{}) string {
	_, file, line, _ := runtime.Caller(2)
	out := fmt.Sprintf("%s:%d: ", path.Base(file), line)
	out += fmt.Sprint(args...)
	return out
}

func formatFormat(fstr string, args ...interface{}) string {
	_, file, line, _ := runtime.Caller(2)
	out := fmt.Sprintf("%s:%d: ", path.Base(file), line)
	out += fmt.Sprintf(fstr, args...)
	return out
}

func Info(args ...interface{}) { infoLogger.Println(formatNormal(args...)) }
func Infof(f string, args ...interface{}) {
	infoLogger.Println(formatFormat(f, args...))
}
func Warning(args ...interface{}) { warningLogger.Println(formatNormal(args...)) }
func Warningf(f string, args ...interface{}) {
	warningLogger.Println(formatFormat(f, args...))
}
func Error(args ...interface{}) { errorLogger.Println(formatNormal(args...)) }
func Errorf(f string, args ...interface{}) {
	errorLogger.Println(formatFormat(f, args...))
}
func Debug(args ...interface{}) {
	if debug.Load() {
		debugLogger.Println(formatNormal(args...))
	}
}
func Debugf(f string, args ...interface{}) {
	if debug.Load() {
		debugLogger.Println(formatFormat(f, args...))
	}
}

// DebugfWhen logs like Debugf, and also when on is set with debug disabled.
// Subsystems use it for their own debug switch.
func DebugfWhen(on bool, f string, args ...interface{}) {
	if on || debug.Load() {
		debugLogger.Println(formatFormat(f, args...))
	}
}
