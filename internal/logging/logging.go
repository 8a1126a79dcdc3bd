/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package logging configures the process-wide logrus logger for the
// errcatalog daemon and derives request-scoped entries from a context.
//
// Library packages of this module never touch the global logger; they take a
// logrus.FieldLogger. Only binaries call Init.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

// Config selects the formatter, the level and optional file output.
type Config struct {
	Format       string     `yaml:"format" mapstructure:"format"`
	Level        string     `yaml:"level" mapstructure:"level"`
	ReportCaller bool       `yaml:"report_caller" mapstructure:"report_caller"`
	File         FileConfig `yaml:"file" mapstructure:"file"`
}

// FileConfig enables a daily rotated log file next to stdout.
type FileConfig struct {
	Enabled      bool   `yaml:"enabled" mapstructure:"enabled"`
	Dir          string `yaml:"dir" mapstructure:"dir"`
	Filename     string `yaml:"filename" mapstructure:"filename"`
	MaxAgeDays   int    `yaml:"max_age_days" mapstructure:"max_age_days"`
	RotationDays int    `yaml:"rotation_days" mapstructure:"rotation_days"`
}

// Init applies cfg to l. An unknown level falls back to info with a warning.
func Init(l *log.Logger, cfg Config) error {
	switch cfg.Format {
	case "text":
		l.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		l.SetFormatter(&log.JSONFormatter{})
	}

	if lvl, err := log.ParseLevel(cfg.Level); err == nil {
		l.SetLevel(lvl)
	} else {
		l.SetLevel(log.InfoLevel)
		l.Warnf("invalid log level %q, fallback to info", cfg.Level)
	}

	l.SetReportCaller(cfg.ReportCaller)

	if !cfg.File.Enabled {
		return nil
	}
	w, err := rotating(cfg.File)
	if err != nil {
		return err
	}
	l.SetOutput(io.MultiWriter(os.Stdout, w))
	return nil
}

func rotating(fc FileConfig) (io.Writer, error) {
	dir := fc.Dir
	if dir == "" {
		dir = "./logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("logging: create log dir: %w", err)
	}
	name := fc.Filename
	if name == "" {
		name = "errcatalogd"
	}
	maxAge := fc.MaxAgeDays
	if maxAge <= 0 {
		maxAge = 7
	}
	rotation := fc.RotationDays
	if rotation <= 0 {
		rotation = 1
	}

	w, err := rotatelogs.New(
		filepath.Join(dir, name+".%Y%m%d.log"),
		rotatelogs.WithLinkName(filepath.Join(dir, name+".log")),
		rotatelogs.WithMaxAge(time.Duration(maxAge)*24*time.Hour),
		rotatelogs.WithRotationTime(time.Duration(rotation)*24*time.Hour),
	)
	if err != nil {
		return nil, fmt.Errorf("logging: rotate logs: %w", err)
	}
	return w, nil
}

// TraceFields returns trace_id and span_id of the OpenTelemetry span in ctx,
// or nil when there is none.
func TraceFields(ctx context.Context) log.Fields {
	if ctx == nil {
		return nil
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return nil
	}
	return log.Fields{
		"trace_id": sc.TraceID().String(),
		"span_id":  sc.SpanID().String(),
	}
}

// FromContext returns an entry of l bound to ctx and carrying its trace
// fields.
func FromContext(ctx context.Context, l log.FieldLogger) *log.Entry {
	var e *log.Entry
	switch v := l.(type) {
	case *log.Entry:
		e = v
	case *log.Logger:
		e = log.NewEntry(v)
	default:
		e = l.WithFields(nil)
	}
	if ctx != nil {
		e = e.WithContext(ctx)
	}
	if f := TraceFields(ctx); f != nil {
		e = e.WithFields(f)
	}
	return e
}
