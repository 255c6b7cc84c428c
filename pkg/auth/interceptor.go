package auth

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// UserContextKey is the key for user data in context.
type UserContextKey struct{}

// UserContext holds the acting user identity and role set. Role checks are the
// caller's responsibility; services receive the resolved identity only.
type UserContext struct {
	UserID uint64
	Email  string
	Roles  []string
	Token  string
}

// HasRole reports whether the user carries the given role.
func (u *UserContext) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// TokenValidator resolves an opaque bearer token into a user context.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*UserContext, error)
}

// UnaryServerInterceptor returns a unary server interceptor that authenticates
// requests via the provided validator.
func UnaryServerInterceptor(validator TokenValidator) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		if shouldSkipAuth(info.FullMethod) {
			return handler(ctx, req)
		}

		userCtx, err := authenticate(ctx, validator)
		if err != nil {
			return nil, err
		}

		return handler(context.WithValue(ctx, UserContextKey{}, userCtx), req)
	}
}

// StreamServerInterceptor returns a stream server interceptor that
// authenticates streams via the provided validator.
func StreamServerInterceptor(validator TokenValidator) grpc.StreamServerInterceptor {
	return func(
		srv interface{},
		stream grpc.ServerStream,
		info *grpc.StreamServerInfo,
		handler grpc.StreamHandler,
	) error {
		if shouldSkipAuth(info.FullMethod) {
			return handler(srv, stream)
		}

		userCtx, err := authenticate(stream.Context(), validator)
		if err != nil {
			return err
		}

		wrapped := &wrappedServerStream{
			ServerStream: stream,
			ctx:          context.WithValue(stream.Context(), UserContextKey{}, userCtx),
		}
		return handler(srv, wrapped)
	}
}

func authenticate(ctx context.Context, validator TokenValidator) (*UserContext, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing metadata")
	}

	authHeader := md.Get("authorization")
	if len(authHeader) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing authorization header")
	}

	token := extractToken(authHeader[0])
	if token == "" {
		return nil, status.Error(codes.Unauthenticated, "invalid authorization header format")
	}

	userCtx, err := validator.ValidateToken(ctx, token)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, fmt.Sprintf("invalid token: %v", err))
	}
	return userCtx, nil
}

// extractToken extracts the token from "Bearer <token>" format.
func extractToken(authHeader string) string {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return parts[1]
}

// shouldSkipAuth checks if authentication should be skipped for a method.
func shouldSkipAuth(fullMethod string) bool {
	publicMethods := []string{
		"/grpc.health.v1.Health/Check",
		"/grpc.health.v1.Health/Watch",
	}

	for _, method := range publicMethods {
		if fullMethod == method {
			return true
		}
	}
	return false
}

// GetUserFromContext retrieves the user context from the context.
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	userCtx, ok := ctx.Value(UserContextKey{}).(*UserContext)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "user context not found")
	}
	return userCtx, nil
}

// wrappedServerStream wraps grpc.ServerStream to override context.
type wrappedServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (w *wrappedServerStream) Context() context.Context {
	return w.ctx
}
