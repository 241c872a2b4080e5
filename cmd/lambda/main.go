package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/wolfman30/yt-re-growth-api/cmd/mainconfig"
)

func main() {
	cfg, logger := mainconfig.Load()
	api, cleanup := mainconfig.BuildAPI(context.Background(), cfg, logger)
	defer cleanup()

	logger.Info("lambda handler ready", "storage_driver", cfg.StorageDriver)

	lambda.Start(func(ctx context.Context, evt events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		return handle(ctx, api, evt)
	})
}

// waiter is implemented by handlers that start background work which must
// finish before the invocation returns and the runtime freezes.
type waiter interface {
	Wait()
}

// handle serves an API Gateway v2 event through the in-process router.
func handle(ctx context.Context, handler http.Handler, evt events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	method := strings.ToUpper(strings.TrimSpace(evt.RequestContext.HTTP.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := strings.TrimSpace(evt.RawPath)
	if path == "" {
		path = strings.TrimSpace(evt.RequestContext.HTTP.Path)
	}
	if path == "" {
		path = "/"
	}

	body, err := decodeBody(evt)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{StatusCode: http.StatusBadRequest, Body: "invalid body"}, nil
	}

	target := path
	if qs := strings.TrimSpace(evt.RawQueryString); qs != "" {
		target += "?" + qs
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(body))
	if err != nil {
		return events.APIGatewayV2HTTPResponse{StatusCode: http.StatusBadRequest, Body: "invalid request"}, nil
	}
	for k, v := range evt.Headers {
		req.Header.Set(k, v)
	}
	if len(evt.Cookies) > 0 {
		req.Header.Set("Cookie", strings.Join(evt.Cookies, "; "))
	}
	if host := strings.TrimSpace(evt.RequestContext.DomainName); host != "" {
		req.Host = host
	}
	if ip := strings.TrimSpace(evt.RequestContext.HTTP.SourceIP); ip != "" {
		req.RemoteAddr = ip
		if headerValue(evt.Headers, "x-real-ip") == "" {
			req.Header.Set("X-Real-Ip", ip)
		}
	}
	if id := strings.TrimSpace(evt.RequestContext.RequestID); id != "" && headerValue(evt.Headers, "x-request-id") == "" {
		req.Header.Set("X-Request-Id", id)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if w, ok := handler.(waiter); ok {
		w.Wait()
	}
	result := rec.Result()

	out := events.APIGatewayV2HTTPResponse{
		StatusCode: result.StatusCode,
		Body:       rec.Body.String(),
		Headers:    map[string]string{},
	}
	// Compressed bodies are binary and must cross the gateway base64 encoded.
	if result.Header.Get("Content-Encoding") != "" {
		out.Body = base64.StdEncoding.EncodeToString(rec.Body.Bytes())
		out.IsBase64Encoded = true
	}
	for k, values := range result.Header {
		if len(values) == 0 {
			continue
		}
		if strings.EqualFold(k, "Set-Cookie") {
			out.Cookies = append(out.Cookies, values...)
			continue
		}
		out.Headers[strings.ToLower(k)] = strings.Join(values, ", ")
	}
	return out, nil
}

func decodeBody(evt events.APIGatewayV2HTTPRequest) ([]byte, error) {
	if !evt.IsBase64Encoded {
		return []byte(evt.Body), nil
	}
	decoded, err := base64.StdEncoding.DecodeString(evt.Body)
	if err != nil {
		return nil, err
	}
	return decoded, nil
}

func headerValue(headers map[string]string, key string) string {
	for k, v := range headers {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}
