// Package sl holds small helpers for building slog attributes.
package sl

import "log/slog"

// Err returns a slog.Attr with key "error" and the error text as value,
// so error logging looks the same everywhere.
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
