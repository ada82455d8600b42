package http

import (
	"context"

	"github.com/altayburakhan/ClassroomDB/internal/application"
)

type contextKey string

const (
	principalContextKey      contextKey = "principal"
	reservationIDContextKey  contextKey = "reservation_id"
	classroomIDContextKey    contextKey = "classroom_id"
	termIDContextKey         contextKey = "term_id"
	notificationIDContextKey contextKey = "notification_id"
)

// ContextWithPrincipal returns a derived context containing the
// authenticated principal.
func ContextWithPrincipal(ctx context.Context, principal application.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, principal)
}

// PrincipalFromContext extracts the authenticated principal from the context
// if available.
func PrincipalFromContext(ctx context.Context) (application.Principal, bool) {
	principal, ok := ctx.Value(principalContextKey).(application.Principal)
	return principal, ok
}

// ContextWithReservationID injects the reservation identifier resolved from
// the request path.
func ContextWithReservationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, reservationIDContextKey, id)
}

// ReservationIDFromContext extracts a reservation identifier previously
// associated with the context.
func ReservationIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(reservationIDContextKey).(string)
	return id, ok
}

// ContextWithClassroomID injects the classroom identifier resolved from the
// request path.
func ContextWithClassroomID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, classroomIDContextKey, id)
}

// ClassroomIDFromContext extracts a classroom identifier previously
// associated with the context.
func ClassroomIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(classroomIDContextKey).(string)
	return id, ok
}

// ContextWithTermID injects the term identifier resolved from the request
// path.
func ContextWithTermID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, termIDContextKey, id)
}

// TermIDFromContext extracts a term identifier previously associated with
// the context.
func TermIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(termIDContextKey).(string)
	return id, ok
}

// ContextWithNotificationID injects the notification identifier resolved
// from the request path.
func ContextWithNotificationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, notificationIDContextKey, id)
}

// NotificationIDFromContext extracts a notification identifier previously
// associated with the context.
func NotificationIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(notificationIDContextKey).(string)
	return id, ok
}
