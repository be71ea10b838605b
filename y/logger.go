/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package y

import (
	"io"
	"log"
	"os"
)

// Logger is implemented by any logging system that is used for standard logs.
type Logger interface {
	Errorf(string, ...interface{})
	Warningf(string, ...interface{})
	Infof(string, ...interface{})
	Debugf(string, ...interface{})
}

type defaultLog struct {
	*log.Logger
	debug bool
}

var defaultLogger = &defaultLog{Logger: log.New(os.Stderr, "zipfbench ", log.LstdFlags)}

// DefaultLogger returns the process wide logger writing to stderr. Debug
// messages are dropped.
func DefaultLogger() Logger {
	return defaultLogger
}

// NewLogger returns a Logger writing to w. Debugf output is emitted only
// when debug is set.
func NewLogger(w io.Writer, debug bool) Logger {
	return &defaultLog{Logger: log.New(w, "zipfbench ", log.LstdFlags), debug: debug}
}

func (l *defaultLog) Errorf(f string, v ...interface{}) {
	l.Printf("ERROR: "+f, v...)
}

func (l *defaultLog) Warningf(f string, v ...interface{}) {
	l.Printf("WARNING: "+f, v...)
}

func (l *defaultLog) Infof(f string, v ...interface{}) {
	l.Printf("INFO: "+f, v...)
}

func (l *defaultLog) Debugf(f string, v ...interface{}) {
	if !l.debug {
		return
	}
	l.Printf("DEBUG: "+f, v...)
}
