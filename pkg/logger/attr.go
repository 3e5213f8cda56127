package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Errors groups non-nil errors under "errors". All-nil input yields an
// empty Attr, which slog drops.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error logs err under "error", or nothing when err is nil.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

func RequestID(id string) slog.Attr { return slog.String("request_id", id) }

func VisitorID(id string) slog.Attr { return slog.String("visitor_id", id) }

// Role is empty for anonymous visitors; an empty role is still logged so
// access denials can be told apart from missing data.
func Role(role string) slog.Attr { return slog.String("role", role) }

func ItemID(id string) slog.Attr { return slog.String("item_id", id) }

func Route(path string) slog.Attr { return slog.String("route", path) }

func Component(name string) slog.Attr { return slog.String("component", name) }

func Duration(d time.Duration) slog.Attr { return slog.Duration("duration", d) }
