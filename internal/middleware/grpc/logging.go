// Package grpc holds the server interceptors of the catalog gRPC surface.
package grpc

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const requestIDHeader = "x-request-id"

type requestIDKey struct{}

// RequestID returns the request id attached by the logging interceptors
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// LoggingInterceptor creates a new unary logging interceptor.
func LoggingInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()

		requestID := extractRequestID(ctx)
		ctx = context.WithValue(ctx, requestIDKey{}, requestID)

		reqLogger := logger.With(
			zap.String("request_id", requestID),
			zap.String("method", info.FullMethod),
		)
		reqLogger.Debug("gRPC request started")

		resp, err := handler(ctx, req)

		code := codeOf(err)
		if err != nil {
			reqLogger.Error("gRPC request failed",
				zap.Error(err),
				zap.String("code", code.String()),
				zap.Duration("duration", time.Since(start)),
			)
		} else {
			reqLogger.Info("gRPC request completed",
				zap.String("code", code.String()),
				zap.Duration("duration", time.Since(start)),
			)
		}

		return resp, err
	}
}

// StreamLoggingInterceptor creates a new stream logging interceptor.
func StreamLoggingInterceptor(logger *zap.Logger) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()

		requestID := extractRequestID(ss.Context())
		reqLogger := logger.With(
			zap.String("request_id", requestID),
			zap.String("method", info.FullMethod),
			zap.Bool("is_client_stream", info.IsClientStream),
			zap.Bool("is_server_stream", info.IsServerStream),
		)
		reqLogger.Debug("gRPC stream started")

		err := handler(srv, &loggingServerStream{
			ServerStream: ss,
			ctx:          context.WithValue(ss.Context(), requestIDKey{}, requestID),
		})

		if err != nil {
			reqLogger.Error("gRPC stream failed",
				zap.Error(err),
				zap.String("code", codeOf(err).String()),
				zap.Duration("duration", time.Since(start)),
			)
		} else {
			reqLogger.Info("gRPC stream completed", zap.Duration("duration", time.Since(start)))
		}

		return err
	}
}

// loggingServerStream carries the request id in its context
type loggingServerStream struct {
	grpc.ServerStream

	ctx context.Context
}

func (s *loggingServerStream) Context() context.Context {
	return s.ctx
}

func codeOf(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	if st, ok := status.FromError(err); ok {
		return st.Code()
	}
	return codes.Unknown
}

// extractRequestID reads x-request-id from the incoming metadata or generates one
func extractRequestID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(requestIDHeader); len(values) > 0 && values[0] != "" {
			return values[0]
		}
	}
	return uuid.NewString()
}
