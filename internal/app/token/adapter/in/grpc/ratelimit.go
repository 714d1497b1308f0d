package grpc

import (
	"context"

	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// RateLimitInterceptor 以 token bucket 限制整個服務的請求速率
// 超出速率的請求直接回 ResourceExhausted，不排隊等待
func RateLimitInterceptor(limiter *rate.Limiter) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if !limiter.Allow() {
			return nil, status.Errorf(codes.ResourceExhausted, "%s is rejected by rate limiter, please retry later", info.FullMethod)
		}
		return handler(ctx, req)
	}
}
