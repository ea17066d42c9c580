package crewportal

import (
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// instrument wraps every portal request in a span. Request bodies carry
// credentials, so only the method, path and status are recorded.
func instrument(client *resty.Client) {
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		ctx, span := tracer.Start(req.Context(), "portal:"+req.Method)
		span.SetAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.path", req.URL),
		)
		req.SetContext(ctx)
		return nil
	})

	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		span := trace.SpanFromContext(res.Request.Context())
		span.SetAttributes(attribute.Int("http.status_code", res.StatusCode()))
		if res.StatusCode() >= 400 {
			span.SetStatus(codes.Error, res.Status())
		}
		span.End()
		return nil
	})

	client.OnError(func(req *resty.Request, err error) {
		span := trace.SpanFromContext(req.Context())
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		span.End()
	})
}
