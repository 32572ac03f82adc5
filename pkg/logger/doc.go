// Package logger provides shared slog attribute constructors so log
// records use consistent keys across the module.
//
// All helpers return an empty slog.Attr for zero values, which slog drops
// silently, so call sites never need nil or empty checks:
//
//	log.LogAttrs(ctx, slog.LevelWarn, "channel delivery failed",
//	    logger.NotificationID(n.ID),
//	    logger.Channel(string(ch)),
//	    logger.Error(err),
//	)
package logger
