package testfixtures

import (
	"log/slog"
	"time"

	"github.com/altayburakhan/ClassroomDB/internal/application"
)

// ServiceFactory assists tests with constructing application services using
// deterministic identifiers and clocks.
type ServiceFactory struct {
	Clock       *Clock
	IDGenerator *IDGenerator
}

// ServiceFactoryOption configures a ServiceFactory instance.
type ServiceFactoryOption func(*ServiceFactory)

// NewServiceFactory constructs a ServiceFactory with defaults.
func NewServiceFactory(opts ...ServiceFactoryOption) *ServiceFactory {
	factory := &ServiceFactory{
		Clock:       NewClock(time.Time{}),
		IDGenerator: NewIDGenerator("id"),
	}
	for _, opt := range opts {
		opt(factory)
	}
	if factory.Clock == nil {
		factory.Clock = NewClock(time.Time{})
	}
	if factory.IDGenerator == nil {
		factory.IDGenerator = NewIDGenerator("id")
	}
	return factory
}

// WithClock overrides the clock used by the factory.
func WithClock(clock *Clock) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Clock = clock
	}
}

// WithIDGenerator overrides the identifier generator used by the factory.
func WithIDGenerator(generator *IDGenerator) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.IDGenerator = generator
	}
}

// NewReservationService builds a reservation service, filling the identifier
// generator and clock from the factory defaults when absent.
func (f *ServiceFactory) NewReservationService(deps application.ReservationServiceDeps) *application.ReservationService {
	if deps.IDGenerator == nil {
		deps.IDGenerator = f.IDGenerator.NextFunc()
	}
	if deps.Now == nil {
		deps.Now = f.Clock.NowFunc()
	}
	return application.NewReservationService(deps)
}

// NewFeedbackService builds a feedback service using the factory defaults for
// any absent identifier generator or clock.
func (f *ServiceFactory) NewFeedbackService(deps application.FeedbackServiceDeps) *application.FeedbackService {
	if deps.IDGenerator == nil {
		deps.IDGenerator = f.IDGenerator.NextFunc()
	}
	if deps.Now == nil {
		deps.Now = f.Clock.NowFunc()
	}
	return application.NewFeedbackService(deps)
}

// ClassroomServiceDeps captures dependencies for constructing a classroom service.
type ClassroomServiceDeps struct {
	Classrooms  application.ClassroomStore
	IDGenerator func() string
	Now         func() time.Time
	Logger      *slog.Logger
}

// NewClassroomService builds a classroom service using the supplied dependencies.
func (f *ServiceFactory) NewClassroomService(deps ClassroomServiceDeps) *application.ClassroomService {
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = f.IDGenerator.NextFunc()
	}
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	return application.NewClassroomServiceWithLogger(
		deps.Classrooms,
		idGen,
		now,
		deps.Logger,
	)
}

// TermServiceDeps captures dependencies for constructing a term service.
type TermServiceDeps struct {
	Terms       application.TermStore
	IDGenerator func() string
	Now         func() time.Time
	Logger      *slog.Logger
}

// NewTermService builds a term service using the supplied dependencies.
func (f *ServiceFactory) NewTermService(deps TermServiceDeps) *application.TermService {
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = f.IDGenerator.NextFunc()
	}
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	return application.NewTermServiceWithLogger(
		deps.Terms,
		idGen,
		now,
		deps.Logger,
	)
}

// UserServiceDeps captures dependencies for constructing a user service.
type UserServiceDeps struct {
	Users        application.UserStore
	HashPassword application.PasswordHasher
	IDGenerator  func() string
	Now          func() time.Time
	Logger       *slog.Logger
}

// NewUserService builds a user service using the supplied dependencies.
func (f *ServiceFactory) NewUserService(deps UserServiceDeps) *application.UserService {
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = f.IDGenerator.NextFunc()
	}
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	return application.NewUserServiceWithLogger(
		deps.Users,
		deps.HashPassword,
		idGen,
		now,
		deps.Logger,
	)
}

// AuthServiceDeps captures dependencies for constructing an auth service.
type AuthServiceDeps struct {
	Credentials    application.CredentialStore
	Sessions       application.SessionStore
	PasswordVerify application.PasswordVerifier
	TokenGenerator func() string
	Now            func() time.Time
	SessionTTL     time.Duration
	Logger         *slog.Logger
}

// NewAuthService builds an auth service using the supplied dependencies.
func (f *ServiceFactory) NewAuthService(deps AuthServiceDeps) *application.AuthService {
	token := deps.TokenGenerator
	if token == nil {
		token = f.IDGenerator.NextFunc()
	}
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	return application.NewAuthServiceWithLogger(
		deps.Credentials,
		deps.Sessions,
		deps.PasswordVerify,
		token,
		now,
		deps.SessionTTL,
		deps.Logger,
	)
}

// NewNotificationService builds a notification service over the supplied store.
func (f *ServiceFactory) NewNotificationService(store application.NotificationStore, logger *slog.Logger) *application.NotificationService {
	return application.NewNotificationService(store, logger)
}
