package main

import (
	"io"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// initLog parses and sets the log level, and sends output to a rotated
// file unless logPath is empty or "console".
func initLog(logLevel string, logPath string, stderr io.Writer) error {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return err
	}

	if logPath != "" && logPath != "console" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   filepath.ToSlash(logPath),
			MaxSize:    5, // MB
			MaxBackups: 10,
			MaxAge:     30, // days
			Compress:   true,
		})
	} else {
		log.SetOutput(stderr)
	}

	log.SetFormatter(&log.TextFormatter{DisableColors: true, FullTimestamp: true})
	log.SetLevel(level)
	return nil
}
