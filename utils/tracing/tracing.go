// Package tracing envuelve OpenTelemetry para trazar el manejo de interrupciones del kernel.
package tracing

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/cpu-warriors/so-emulador"

var (
	providerOnce sync.Once
	providerErr  error
)

// Init configura el exportador stdout. output vacío deja el provider no-op global,
// "stdout" escribe a os.Stdout y cualquier otro valor se toma como path de archivo.
// La función devuelta vacía los spans pendientes y cierra el archivo.
func Init(serviceName, serviceVersion, output string) (func(context.Context) error, error) {
	if output == "" {
		return func(context.Context) error { return nil }, nil
	}

	var (
		w       io.Writer = os.Stdout
		archivo *os.File
	)
	if output != "stdout" {
		f, err := os.Create(output)
		if err != nil {
			return nil, err
		}
		archivo = f
		w = f
	}

	cerrarArchivo := func() error {
		if archivo == nil {
			return nil
		}
		return archivo.Close()
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, errors.Join(err, cerrarArchivo())
	}

	tp, err := instalar(serviceName, serviceVersion, exporter)
	if err != nil {
		return nil, errors.Join(err, cerrarArchivo())
	}

	return func(ctx context.Context) error {
		var errShutdown error
		if tp != nil {
			errShutdown = tp.Shutdown(ctx)
		}
		return errors.Join(errShutdown, cerrarArchivo())
	}, nil
}

// InitWithExporter registra el exportador como provider global. Sólo la primera llamada tiene efecto.
func InitWithExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) error {
	_, err := instalar(serviceName, serviceVersion, exporter)
	return err
}

// instalar devuelve el provider sólo si esta llamada fue la que lo registró.
func instalar(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) (*sdktrace.TracerProvider, error) {
	if exporter == nil {
		return nil, nil
	}

	var instalado *sdktrace.TracerProvider
	providerOnce.Do(func() {
		res, err := resource.New(context.Background(),
			resource.WithAttributes(
				attribute.String("service.name", serviceName),
				attribute.String("service.version", serviceVersion),
			),
		)
		if err != nil {
			providerErr = err
			return
		}

		instalado = sdktrace.NewTracerProvider(
			sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
			sdktrace.WithResource(res),
		)
		otel.SetTracerProvider(instalado)
	})

	return instalado, providerErr
}

type Span struct {
	span trace.Span
}

func (s *Span) WithInt(key string, value int) *Span {
	if s == nil {
		return s
	}
	s.span.SetAttributes(attribute.Int(key, value))
	return s
}

func (s *Span) WithString(key, value string) *Span {
	if s == nil {
		return s
	}
	s.span.SetAttributes(attribute.String(key, value))
	return s
}

func StartSpan(ctx context.Context, name string) (context.Context, *Span) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
	return ctx, &Span{span: span}
}

// EndSpan cierra el span registrando el error, si lo hubo.
func EndSpan(sp *Span, err error) {
	if sp == nil {
		return
	}
	if err != nil {
		sp.span.RecordError(err)
		sp.span.SetStatus(codes.Error, err.Error())
	} else {
		sp.span.SetStatus(codes.Ok, "")
	}
	sp.span.End()
}
