package observes

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/ncobase/taskapi"

type Layer int

const (
	LayerUnknown Layer = iota
	LayerHandler
	LayerService
	LayerRepo
)

func (l Layer) String() string {
	switch l {
	case LayerHandler:
		return "Handler"
	case LayerService:
		return "Service"
	case LayerRepo:
		return "Repository"
	default:
		return "Unknown"
	}
}

// Span wraps a trace.Span with the layer it was opened in.
type Span struct {
	trace.Span
}

// StartSpan opens a span named "<Layer>.<name>".
func StartSpan(ctx context.Context, layer Layer, name string, attrs ...attribute.KeyValue) (context.Context, *Span) {
	attrs = append(attrs, attribute.String("layer", layer.String()))
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, layer.String()+"."+name, trace.WithAttributes(attrs...))
	return ctx, &Span{Span: span}
}

// End records err, when non-nil, then ends the span.
func (s *Span) End(err error) {
	if err != nil {
		s.RecordError(err)
		s.SetStatus(codes.Error, err.Error())
	} else {
		s.SetStatus(codes.Ok, "")
	}
	s.Span.End()
}
