package log

import "log/slog"

// OmitEmpty builds an attribute with the given constructor,
// or an empty attribute that the logger skips
// if value is the zero value for its type.
//
//	log.Info("done", log.OmitEmpty(slog.Int, "skipped", n))
func OmitEmpty[T comparable](fn func(string, T) slog.Attr, name string, value T) slog.Attr {
	var zero T
	if value == zero {
		return slog.Attr{}
	}
	return fn(name, value)
}
