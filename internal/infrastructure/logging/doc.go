// Package logging provides structured logging using uber/zap.
//
// Two modes:
//   - Production: JSON output for machine parsing
//   - Development: colored console output at debug level
//
// Components name their logger (remote, session, upstream, api) so a single
// auto run can be followed across layers by the session and request IDs
// attached as fields.
//
// Example Usage:
//
//	logger := logging.NewDefault().Named("remote")
//	logger.Info("feed finished", zap.Int("fed", 3))
//	logger.Warn("learn failed", zap.Error(err))
package logging
