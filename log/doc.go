// Package log provides the structured logger used across kitrun.
//
// It is a thin layer over github.com/go-kit/log: the Logger interface, With
// and the timestamp and caller valuers come straight from there. What this
// package adds is the choice of output format by name, so that the command
// and the configuration can select logfmt, JSON or logrus text output
// without importing each encoder.
//
// Log output never goes to the console writer the runtime prints program
// output to. Program lines are data; log lines are diagnostics.
package log
