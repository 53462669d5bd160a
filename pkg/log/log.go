// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package log provides leveled logging for the index containers.
//
// Time/Date are not logged because systemd adds them for us (default, can be
// changed with SetLogDateTime). Uses these prefixes:
// https://www.freedesktop.org/software/systemd/man/sd-daemon.html
package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

var logDateTime bool

var (
	DebugWriter io.Writer = os.Stderr
	InfoWriter  io.Writer = os.Stderr
	WarnWriter  io.Writer = os.Stderr
	ErrWriter   io.Writer = os.Stderr
)

var (
	DebugPrefix string = "<7>[DEBUG]    "
	InfoPrefix  string = "<6>[INFO]     "
	WarnPrefix  string = "<4>[WARNING]  "
	ErrPrefix   string = "<3>[ERROR]    "
)

var (
	debugLog     = log.New(DebugWriter, DebugPrefix, 0)
	infoLog      = log.New(InfoWriter, InfoPrefix, 0)
	warnLog      = log.New(WarnWriter, WarnPrefix, log.Lshortfile)
	errLog       = log.New(ErrWriter, ErrPrefix, log.Llongfile)
	debugTimeLog = log.New(DebugWriter, DebugPrefix, log.LstdFlags)
	infoTimeLog  = log.New(InfoWriter, InfoPrefix, log.LstdFlags)
	warnTimeLog  = log.New(WarnWriter, WarnPrefix, log.LstdFlags|log.Lshortfile)
	errTimeLog   = log.New(ErrWriter, ErrPrefix, log.LstdFlags|log.Llongfile)
)

// SetLogLevel mutes loggers below lvl by redirecting their writer to
// io.Discard. Valid values: "debug", "info", "warn", "err"/"fatal".
func SetLogLevel(lvl string) {
	switch lvl {
	case "err", "fatal":
		WarnWriter = io.Discard
		fallthrough
	case "warn":
		InfoWriter = io.Discard
		fallthrough
	case "info":
		DebugWriter = io.Discard
	case "debug":
		// nothing to mute
	default:
		fmt.Printf("pkg/log: invalid loglevel %q, using \"debug\"\n", lvl)
		SetLogLevel("debug")
		return
	}
}

func SetLogDateTime(logdate bool) {
	logDateTime = logdate
}

// Fields is a small key/value bag attached to a structural log line;
// DebugFields appends it to a Debug line without building a dependency on
// a full structured-logging library.
type Fields map[string]any

func (f Fields) String() string {
	if len(f) == 0 {
		return ""
	}
	parts := make([]string, 0, len(f))
	for k, v := range f {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	return " {" + strings.Join(parts, ", ") + "}"
}

func output(discard io.Writer, plain, timed *log.Logger, msg string) {
	if discard == io.Discard {
		return
	}
	if logDateTime {
		timed.Output(3, msg)
	} else {
		plain.Output(3, msg)
	}
}

func Debug(v ...any)                 { output(DebugWriter, debugLog, debugTimeLog, fmt.Sprint(v...)) }
func Debugf(format string, v ...any) { output(DebugWriter, debugLog, debugTimeLog, fmt.Sprintf(format, v...)) }
func DebugFields(msg string, f Fields) {
	output(DebugWriter, debugLog, debugTimeLog, msg+f.String())
}

func Info(v ...any)                 { output(InfoWriter, infoLog, infoTimeLog, fmt.Sprint(v...)) }
func Infof(format string, v ...any) { output(InfoWriter, infoLog, infoTimeLog, fmt.Sprintf(format, v...)) }

func Warn(v ...any)                 { output(WarnWriter, warnLog, warnTimeLog, fmt.Sprint(v...)) }
func Warnf(format string, v ...any) { output(WarnWriter, warnLog, warnTimeLog, fmt.Sprintf(format, v...)) }

func Error(v ...any)                 { output(ErrWriter, errLog, errTimeLog, fmt.Sprint(v...)) }
func Errorf(format string, v ...any) { output(ErrWriter, errLog, errTimeLog, fmt.Sprintf(format, v...)) }

// Fatal logs at error level and terminates the process.
func Fatal(v ...any) {
	Error(v...)
	os.Exit(1)
}

func Fatalf(format string, v ...any) {
	Errorf(format, v...)
	os.Exit(1)
}
