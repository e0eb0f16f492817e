// Package logger is the leveled logging pipeline of the application.
//
// Every line goes through the same steps:
//
//	level filter -> redaction -> "time | LEVEL | module | message" -> console -> file sink
//
// Lines below the minimum level are dropped before any work is done. Messages
// are masked with a redact.Redactor (the baseline rules unless WithRedactor
// says otherwise), written synchronously to the console (ANSI colored when
// enabled) and handed to a Sink, normally a *logfile.Queue, which appends
// them to the process log file in order.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithLevel(logger.LevelInfo),
//	    logger.WithSink(queue),
//	)
//	api := log.Module("Api")
//	api.Info("Authorization: Bearer abc")  // ... | INFO  | Api          | Authorization: Bearer ******
//
//	log.SetLevel(logger.LevelWarn)         // affects every module
//
// # slog
//
// Slog(module) returns a *slog.Logger backed by the same pipeline, for code
// that expects the standard structured logger (migrations, the CLI, stores).
// Attributes are appended as key=value after the message and masked with it.
// WithContextValue and WithContextExtractors inject request-scoped values
// into those records through ContextHandler.
//
// # Retention
//
// PruneLogs runs a logfile.Rotator sweep and logs one INFO line per removed
// entry.
package logger
