package log

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/olusolaa/netbox-reconciler/internal/core/ports"
	apperrors "github.com/olusolaa/netbox-reconciler/internal/errors"
)

type zerologAdapter struct {
	logger zerolog.Logger
}

// NewLogger builds a logger writing to stderr. Stdout is reserved for the
// result document read by the automation host.
func NewLogger(cfg Config) (ports.Logger, error) {
	return NewLoggerWithWriter(cfg, os.Stderr)
}

func NewLoggerWithWriter(cfg Config, w io.Writer) (ports.Logger, error) {
	var level zerolog.Level
	switch cfg.Level {
	case LevelDebug:
		level = zerolog.DebugLevel
	case LevelInfo:
		level = zerolog.InfoLevel
	case LevelWarn:
		level = zerolog.WarnLevel
	case LevelError:
		level = zerolog.ErrorLevel
	default:
		level = zerolog.InfoLevel
	}

	output := w
	switch cfg.Format {
	case FormatJSON:
	case FormatText:
		fallthrough
	default:
		console := zerolog.NewConsoleWriter()
		console.Out = w
		console.NoColor = true
		console.TimeFormat = time.RFC3339
		output = console
	}

	logger := zerolog.New(output).Level(level).With().Timestamp().Logger()
	return &zerologAdapter{logger: logger}, nil
}

// NewNop returns a logger that discards everything.
func NewNop() ports.Logger {
	return &zerologAdapter{logger: zerolog.Nop()}
}

func (z *zerologAdapter) log(ctx context.Context, event *zerolog.Event, err error, format string, args ...any) {
	if event == nil {
		return
	}
	if ctx != nil {
		event = event.Ctx(ctx)
	}

	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			event = event.Str("error_code", string(appErr.Code))
			if appErr.InternalDetails != "" {
				event = event.Str("error_details", appErr.InternalDetails)
			}
			if appErr.WrappedError != nil {
				event = event.Str("error_wrapped", appErr.WrappedError.Error())
			}
		} else {
			event = event.Err(err)
		}
	}

	if len(args) > 0 {
		event.Msgf(format, args...)
		return
	}
	event.Msg(format)
}

func (z *zerologAdapter) Debugf(ctx context.Context, format string, args ...any) {
	z.log(ctx, z.logger.Debug(), nil, format, args...)
}

func (z *zerologAdapter) Infof(ctx context.Context, format string, args ...any) {
	z.log(ctx, z.logger.Info(), nil, format, args...)
}

func (z *zerologAdapter) Warnf(ctx context.Context, format string, args ...any) {
	z.log(ctx, z.logger.Warn(), nil, format, args...)
}

func (z *zerologAdapter) Errorf(ctx context.Context, err error, format string, args ...any) {
	z.log(ctx, z.logger.Error(), err, format, args...)
}

func (z *zerologAdapter) WithFields(fields map[string]any) ports.Logger {
	builder := z.logger.With()
	for k, v := range fields {
		builder = builder.Interface(k, v)
	}
	return &zerologAdapter{logger: builder.Logger()}
}
