package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/altayburakhan/ClassroomDB/internal/application"
	"github.com/altayburakhan/ClassroomDB/internal/config"
	"github.com/altayburakhan/ClassroomDB/internal/holiday"
	httptransport "github.com/altayburakhan/ClassroomDB/internal/http"
	"github.com/altayburakhan/ClassroomDB/internal/logging"
	"github.com/altayburakhan/ClassroomDB/internal/notify"
	"github.com/altayburakhan/ClassroomDB/internal/persistence"
	"github.com/altayburakhan/ClassroomDB/internal/persistence/sqlite"
)

func main() {
	_ = godotenv.Load()

	logger := logging.New(os.Stdout, slog.LevelInfo)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	pool, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := pool.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	idGenerator := uuid.NewString
	tokenGenerator := uuid.NewString
	now := time.Now

	users := newUserStoreAdapter(sqlite.NewUserRepository(pool))
	classrooms := newClassroomStoreAdapter(sqlite.NewClassroomRepository(pool))
	terms := newTermStoreAdapter(sqlite.NewTermRepository(pool))
	reservations := newReservationStoreAdapter(sqlite.NewReservationRepository(pool))
	feedback := newFeedbackStoreAdapter(sqlite.NewFeedbackRepository(pool))
	notifications := newNotificationStoreAdapter(sqlite.NewNotificationRepository(pool))
	sessions := newSessionStoreAdapter(sqlite.NewSessionRepository(pool))
	credentials := newCredentialStoreAdapter(sqlite.NewUserRepository(pool))

	holidayService := holiday.NewService(holiday.ServiceOptions{
		Remote: holiday.NewRemoteSource(cfg.HolidayAPIBaseURL, cfg.HolidayCountry, &http.Client{
			Timeout: cfg.HolidayTimeout,
		}),
		Now:    now,
		Logger: logging.WithComponent(logger, "holiday"),
	})

	sink := notify.NewStoreSink(notify.StoreSinkDeps{
		Writer:      notifications,
		IDGenerator: idGenerator,
		Now:         now,
		Logger:      logging.WithComponent(logger, "notify"),
	})

	termService := application.NewTermServiceWithLogger(terms, idGenerator, now, logger)
	classroomService := application.NewClassroomServiceWithLogger(classrooms, idGenerator, now, logger)
	userService := application.NewUserServiceWithLogger(users, nil, idGenerator, now, logger)
	authService := application.NewAuthServiceWithLogger(credentials, sessions, nil, tokenGenerator, now, cfg.SessionTTL, logger)
	notificationService := application.NewNotificationService(notifications, logger)
	reservationService := application.NewReservationService(application.ReservationServiceDeps{
		Store:       reservations,
		Classrooms:  classrooms,
		Terms:       termService,
		Users:       users,
		Holidays:    newHolidayAdvisorAdapter(holidayService),
		Sink:        sink,
		IDGenerator: idGenerator,
		Now:         now,
		Hours:       cfg.BusinessHours,
		MaxDuration: cfg.MaxReservationTime,
		Logger:      logger,
	})
	feedbackService := application.NewFeedbackService(application.FeedbackServiceDeps{
		Feedback:            feedback,
		Classrooms:          classrooms,
		Reservations:        reservations,
		IDGenerator:         idGenerator,
		Now:                 now,
		RequireApprovedStay: cfg.FeedbackRequiresStay,
		Logger:              logger,
	})

	if err := seedInitialAdmin(ctx, users, cfg, idGenerator, now, logger); err != nil {
		logger.Error("failed to seed initial administrator", "error", err)
		os.Exit(1)
	}

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Auth:          httptransport.NewAuthHandler(authService, logger),
		Reservations:  httptransport.NewReservationHandler(reservationService, logger),
		Classrooms:    httptransport.NewClassroomHandler(classroomService, logger),
		Terms:         httptransport.NewTermHandler(termService, logger),
		Feedback:      httptransport.NewFeedbackHandler(feedbackService, logger),
		Notifications: httptransport.NewNotificationHandler(notificationService, logger),
		Holidays:      httptransport.NewHolidayHandler(holidayService, logger),
		Users:         httptransport.NewUserHandler(userService, logger),
		Protect:       httptransport.RequireSession(authService, logger),
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
		},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("classroom reservation API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

// seedInitialAdmin creates the first administrator account when the user
// table is empty. Without it no one could sign in to create accounts.
func seedInitialAdmin(ctx context.Context, users *userStoreAdapter, cfg config.Config, idGenerator func() string, now func() time.Time, logger *slog.Logger) error {
	if cfg.AdminPassword == "" {
		return nil
	}

	existing, err := users.ListUsers(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	hash, err := application.CreatePasswordHash(cfg.AdminPassword, application.DefaultArgon2idParams)
	if err != nil {
		return err
	}

	created := now().UTC()
	admin, err := users.CreateUser(ctx, application.User{
		ID:          idGenerator(),
		Email:       cfg.AdminEmail,
		DisplayName: cfg.AdminName,
		IsAdmin:     true,
		CreatedAt:   created,
		UpdatedAt:   created,
	}, hash)
	if err != nil {
		return err
	}

	logger.Info("seeded initial administrator", "user_id", admin.ID, "email", admin.Email)
	return nil
}

type userStoreAdapter struct {
	repo persistence.UserRepository
}

func newUserStoreAdapter(repo persistence.UserRepository) *userStoreAdapter {
	return &userStoreAdapter{repo: repo}
}

func (a *userStoreAdapter) CreateUser(ctx context.Context, user application.User, passwordHash string) (application.User, error) {
	if err := a.repo.CreateUser(ctx, toPersistenceUser(user, passwordHash)); err != nil {
		return application.User{}, err
	}
	stored, err := a.repo.GetUser(ctx, user.ID)
	if err != nil {
		return application.User{}, err
	}
	return toApplicationUser(stored), nil
}

func (a *userStoreAdapter) GetUser(ctx context.Context, id string) (application.User, error) {
	stored, err := a.repo.GetUser(ctx, id)
	if err != nil {
		return application.User{}, err
	}
	return toApplicationUser(stored), nil
}

func (a *userStoreAdapter) UpdateUser(ctx context.Context, user application.User) (application.User, error) {
	current, err := a.repo.GetUser(ctx, user.ID)
	if err != nil {
		return application.User{}, err
	}
	if err := a.repo.UpdateUser(ctx, toPersistenceUser(user, current.PasswordHash)); err != nil {
		return application.User{}, err
	}
	stored, err := a.repo.GetUser(ctx, user.ID)
	if err != nil {
		return application.User{}, err
	}
	return toApplicationUser(stored), nil
}

func (a *userStoreAdapter) ListUsers(ctx context.Context) ([]application.User, error) {
	models, err := a.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	users := make([]application.User, 0, len(models))
	for _, model := range models {
		users = append(users, toApplicationUser(model))
	}
	return users, nil
}

type credentialStoreAdapter struct {
	repo persistence.UserRepository
}

func newCredentialStoreAdapter(repo persistence.UserRepository) *credentialStoreAdapter {
	return &credentialStoreAdapter{repo: repo}
}

func (a *credentialStoreAdapter) GetUserCredentialsByEmail(ctx context.Context, email string) (application.UserCredentials, error) {
	stored, err := a.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return application.UserCredentials{}, err
	}
	return application.UserCredentials{
		User:         toApplicationUser(stored),
		PasswordHash: stored.PasswordHash,
	}, nil
}

func (a *credentialStoreAdapter) GetUser(ctx context.Context, id string) (application.User, error) {
	stored, err := a.repo.GetUser(ctx, id)
	if err != nil {
		return application.User{}, err
	}
	return toApplicationUser(stored), nil
}

type classroomStoreAdapter struct {
	repo persistence.ClassroomRepository
}

func newClassroomStoreAdapter(repo persistence.ClassroomRepository) *classroomStoreAdapter {
	return &classroomStoreAdapter{repo: repo}
}

func (a *classroomStoreAdapter) CreateClassroom(ctx context.Context, classroom application.Classroom) (application.Classroom, error) {
	if err := a.repo.CreateClassroom(ctx, toPersistenceClassroom(classroom)); err != nil {
		return application.Classroom{}, err
	}
	stored, err := a.repo.GetClassroom(ctx, classroom.ID)
	if err != nil {
		return application.Classroom{}, err
	}
	return toApplicationClassroom(stored), nil
}

func (a *classroomStoreAdapter) UpdateClassroom(ctx context.Context, classroom application.Classroom) (application.Classroom, error) {
	if err := a.repo.UpdateClassroom(ctx, toPersistenceClassroom(classroom)); err != nil {
		return application.Classroom{}, err
	}
	stored, err := a.repo.GetClassroom(ctx, classroom.ID)
	if err != nil {
		return application.Classroom{}, err
	}
	return toApplicationClassroom(stored), nil
}

func (a *classroomStoreAdapter) GetClassroom(ctx context.Context, id string) (application.Classroom, error) {
	stored, err := a.repo.GetClassroom(ctx, id)
	if err != nil {
		return application.Classroom{}, err
	}
	return toApplicationClassroom(stored), nil
}

func (a *classroomStoreAdapter) ListClassrooms(ctx context.Context, includeInactive bool) ([]application.Classroom, error) {
	models, err := a.repo.ListClassrooms(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	classrooms := make([]application.Classroom, 0, len(models))
	for _, model := range models {
		classrooms = append(classrooms, toApplicationClassroom(model))
	}
	return classrooms, nil
}

type termStoreAdapter struct {
	repo persistence.TermRepository
}

func newTermStoreAdapter(repo persistence.TermRepository) *termStoreAdapter {
	return &termStoreAdapter{repo: repo}
}

func (a *termStoreAdapter) CreateTerm(ctx context.Context, term application.Term) (application.Term, error) {
	if err := a.repo.CreateTerm(ctx, toPersistenceTerm(term)); err != nil {
		return application.Term{}, err
	}
	stored, err := a.repo.GetTerm(ctx, term.ID)
	if err != nil {
		return application.Term{}, err
	}
	return toApplicationTerm(stored), nil
}

func (a *termStoreAdapter) UpdateTerm(ctx context.Context, term application.Term) (application.Term, error) {
	if err := a.repo.UpdateTerm(ctx, toPersistenceTerm(term)); err != nil {
		return application.Term{}, err
	}
	stored, err := a.repo.GetTerm(ctx, term.ID)
	if err != nil {
		return application.Term{}, err
	}
	return toApplicationTerm(stored), nil
}

func (a *termStoreAdapter) GetTerm(ctx context.Context, id string) (application.Term, error) {
	stored, err := a.repo.GetTerm(ctx, id)
	if err != nil {
		return application.Term{}, err
	}
	return toApplicationTerm(stored), nil
}

func (a *termStoreAdapter) ListTerms(ctx context.Context) ([]application.Term, error) {
	models, err := a.repo.ListTerms(ctx)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	terms := make([]application.Term, 0, len(models))
	for _, model := range models {
		terms = append(terms, toApplicationTerm(model))
	}
	return terms, nil
}

type reservationStoreAdapter struct {
	repo persistence.ReservationRepository
}

func newReservationStoreAdapter(repo persistence.ReservationRepository) *reservationStoreAdapter {
	return &reservationStoreAdapter{repo: repo}
}

func (a *reservationStoreAdapter) CreateReservation(ctx context.Context, reservation application.Reservation) (application.Reservation, error) {
	if err := a.repo.CreateReservation(ctx, toPersistenceReservation(reservation)); err != nil {
		return application.Reservation{}, err
	}
	stored, err := a.repo.GetReservation(ctx, reservation.ID)
	if err != nil {
		return application.Reservation{}, err
	}
	return toApplicationReservation(stored), nil
}

func (a *reservationStoreAdapter) GetReservation(ctx context.Context, id string) (application.Reservation, error) {
	stored, err := a.repo.GetReservation(ctx, id)
	if err != nil {
		return application.Reservation{}, err
	}
	return toApplicationReservation(stored), nil
}

func (a *reservationStoreAdapter) ListReservations(ctx context.Context, filter application.ReservationStoreFilter) ([]application.Reservation, error) {
	statuses := make([]string, 0, len(filter.Statuses))
	for _, status := range filter.Statuses {
		statuses = append(statuses, string(status))
	}
	models, err := a.repo.ListReservations(ctx, persistence.ReservationFilter{
		ClassroomID:  filter.ClassroomID,
		RequesterID:  filter.RequesterID,
		Statuses:     statuses,
		StartsBefore: cloneTime(filter.To),
		EndsAfter:    cloneTime(filter.From),
		ExcludeID:    filter.ExcludeID,
	})
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	reservations := make([]application.Reservation, 0, len(models))
	for _, model := range models {
		reservations = append(reservations, toApplicationReservation(model))
	}
	return reservations, nil
}

func (a *reservationStoreAdapter) UpdateReservationStatus(ctx context.Context, id string, expected application.ReservationStatus, change application.StatusChange) (application.Reservation, error) {
	update := persistence.StatusUpdate{
		Status:          string(change.Status),
		RejectionReason: cloneString(change.RejectionReason),
		UpdatedAt:       change.UpdatedAt,
	}
	if err := a.repo.UpdateReservationStatus(ctx, id, string(expected), update); err != nil {
		return application.Reservation{}, err
	}
	stored, err := a.repo.GetReservation(ctx, id)
	if err != nil {
		return application.Reservation{}, err
	}
	return toApplicationReservation(stored), nil
}

type feedbackStoreAdapter struct {
	repo persistence.FeedbackRepository
}

func newFeedbackStoreAdapter(repo persistence.FeedbackRepository) *feedbackStoreAdapter {
	return &feedbackStoreAdapter{repo: repo}
}

func (a *feedbackStoreAdapter) CreateFeedback(ctx context.Context, feedback application.Feedback) (application.Feedback, error) {
	if err := a.repo.CreateFeedback(ctx, toPersistenceFeedback(feedback)); err != nil {
		return application.Feedback{}, err
	}
	return feedback, nil
}

func (a *feedbackStoreAdapter) ListFeedbackForClassroom(ctx context.Context, classroomID string) ([]application.Feedback, error) {
	models, err := a.repo.ListFeedbackForClassroom(ctx, classroomID)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	feedback := make([]application.Feedback, 0, len(models))
	for _, model := range models {
		feedback = append(feedback, toApplicationFeedback(model))
	}
	return feedback, nil
}

type notificationStoreAdapter struct {
	repo persistence.NotificationRepository
}

func newNotificationStoreAdapter(repo persistence.NotificationRepository) *notificationStoreAdapter {
	return &notificationStoreAdapter{repo: repo}
}

func (a *notificationStoreAdapter) CreateNotification(ctx context.Context, notification application.Notification) (application.Notification, error) {
	if err := a.repo.CreateNotification(ctx, toPersistenceNotification(notification)); err != nil {
		return application.Notification{}, err
	}
	return notification, nil
}

func (a *notificationStoreAdapter) GetNotification(ctx context.Context, id string) (application.Notification, error) {
	stored, err := a.repo.GetNotification(ctx, id)
	if err != nil {
		return application.Notification{}, err
	}
	return toApplicationNotification(stored), nil
}

func (a *notificationStoreAdapter) ListNotificationsForUser(ctx context.Context, userID string) ([]application.Notification, error) {
	models, err := a.repo.ListNotificationsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	notifications := make([]application.Notification, 0, len(models))
	for _, model := range models {
		notifications = append(notifications, toApplicationNotification(model))
	}
	return notifications, nil
}

func (a *notificationStoreAdapter) MarkNotificationRead(ctx context.Context, id string) (application.Notification, error) {
	stored, err := a.repo.MarkNotificationRead(ctx, id)
	if err != nil {
		return application.Notification{}, err
	}
	return toApplicationNotification(stored), nil
}

type sessionStoreAdapter struct {
	repo persistence.SessionRepository
}

func newSessionStoreAdapter(repo persistence.SessionRepository) *sessionStoreAdapter {
	return &sessionStoreAdapter{repo: repo}
}

func (a *sessionStoreAdapter) CreateSession(ctx context.Context, session application.Session) (application.Session, error) {
	stored, err := a.repo.CreateSession(ctx, toPersistenceSession(session))
	if err != nil {
		return application.Session{}, err
	}
	return toApplicationSession(stored), nil
}

func (a *sessionStoreAdapter) GetSession(ctx context.Context, token string) (application.Session, error) {
	stored, err := a.repo.GetSession(ctx, token)
	if err != nil {
		return application.Session{}, err
	}
	return toApplicationSession(stored), nil
}

func (a *sessionStoreAdapter) RevokeSession(ctx context.Context, token string, revokedAt time.Time) (application.Session, error) {
	stored, err := a.repo.RevokeSession(ctx, token, revokedAt)
	if err != nil {
		return application.Session{}, err
	}
	return toApplicationSession(stored), nil
}

func (a *sessionStoreAdapter) DeleteExpiredSessions(ctx context.Context, reference time.Time) error {
	return a.repo.DeleteExpiredSessions(ctx, reference)
}

type holidayAdvisorAdapter struct {
	service *holiday.Service
}

func newHolidayAdvisorAdapter(service *holiday.Service) *holidayAdvisorAdapter {
	return &holidayAdvisorAdapter{service: service}
}

func (a *holidayAdvisorAdapter) HolidaysInRange(ctx context.Context, start, end time.Time) ([]application.HolidayWarning, error) {
	holidays, err := a.service.HolidaysInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if len(holidays) == 0 {
		return nil, nil
	}
	warnings := make([]application.HolidayWarning, 0, len(holidays))
	for _, entry := range holidays {
		warnings = append(warnings, application.HolidayWarning{Date: entry.Date, Name: entry.Name})
	}
	return warnings, nil
}

func toApplicationUser(model persistence.User) application.User {
	return application.User{
		ID:          model.ID,
		Email:       model.Email,
		DisplayName: model.DisplayName,
		IsAdmin:     model.IsAdmin,
		Disabled:    model.Disabled,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func toPersistenceUser(user application.User, passwordHash string) persistence.User {
	return persistence.User{
		ID:           user.ID,
		Email:        user.Email,
		DisplayName:  user.DisplayName,
		PasswordHash: passwordHash,
		IsAdmin:      user.IsAdmin,
		Disabled:     user.Disabled,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

func toApplicationClassroom(model persistence.Classroom) application.Classroom {
	roomNumber := ""
	if model.RoomNumber != nil {
		roomNumber = *model.RoomNumber
	}
	building := ""
	if model.Building != nil {
		building = *model.Building
	}
	return application.Classroom{
		ID:          model.ID,
		Name:        model.Name,
		RoomNumber:  roomNumber,
		Building:    building,
		Floor:       model.Floor,
		Capacity:    model.Capacity,
		Features:    cloneString(model.Features),
		Description: cloneString(model.Description),
		IsActive:    model.IsActive,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func toPersistenceClassroom(classroom application.Classroom) persistence.Classroom {
	var roomNumber *string
	if strings.TrimSpace(classroom.RoomNumber) != "" {
		roomNumber = cloneString(&classroom.RoomNumber)
	}
	var building *string
	if strings.TrimSpace(classroom.Building) != "" {
		building = cloneString(&classroom.Building)
	}
	return persistence.Classroom{
		ID:          classroom.ID,
		Name:        classroom.Name,
		RoomNumber:  roomNumber,
		Building:    building,
		Floor:       classroom.Floor,
		Capacity:    classroom.Capacity,
		Features:    cloneString(classroom.Features),
		Description: cloneString(classroom.Description),
		IsActive:    classroom.IsActive,
		CreatedAt:   classroom.CreatedAt,
		UpdatedAt:   classroom.UpdatedAt,
	}
}

func toApplicationTerm(model persistence.Term) application.Term {
	return application.Term{
		ID:          model.ID,
		Name:        model.Name,
		StartDate:   model.StartDate,
		EndDate:     model.EndDate,
		IsActive:    model.IsActive,
		Description: cloneString(model.Description),
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func toPersistenceTerm(term application.Term) persistence.Term {
	return persistence.Term{
		ID:          term.ID,
		Name:        term.Name,
		StartDate:   term.StartDate,
		EndDate:     term.EndDate,
		IsActive:    term.IsActive,
		Description: cloneString(term.Description),
		CreatedAt:   term.CreatedAt,
		UpdatedAt:   term.UpdatedAt,
	}
}

func toApplicationReservation(model persistence.Reservation) application.Reservation {
	return application.Reservation{
		ID:                model.ID,
		ClassroomID:       model.ClassroomID,
		RequesterID:       model.RequesterID,
		TermID:            model.TermID,
		Start:             model.Start,
		End:               model.End,
		Purpose:           model.Purpose,
		Status:            application.ReservationStatus(model.Status),
		RejectionReason:   cloneString(model.RejectionReason),
		Notes:             cloneString(model.Notes),
		IsRecurring:       model.IsRecurring,
		RecurrencePattern: cloneString(model.RecurrencePattern),
		RecurrenceEndDate: cloneTime(model.RecurrenceEndDate),
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}
}

func toPersistenceReservation(reservation application.Reservation) persistence.Reservation {
	return persistence.Reservation{
		ID:                reservation.ID,
		ClassroomID:       reservation.ClassroomID,
		RequesterID:       reservation.RequesterID,
		TermID:            reservation.TermID,
		Start:             reservation.Start,
		End:               reservation.End,
		Purpose:           reservation.Purpose,
		Status:            string(reservation.Status),
		RejectionReason:   cloneString(reservation.RejectionReason),
		Notes:             cloneString(reservation.Notes),
		IsRecurring:       reservation.IsRecurring,
		RecurrencePattern: cloneString(reservation.RecurrencePattern),
		RecurrenceEndDate: cloneTime(reservation.RecurrenceEndDate),
		CreatedAt:         reservation.CreatedAt,
		UpdatedAt:         reservation.UpdatedAt,
	}
}

func toApplicationFeedback(model persistence.Feedback) application.Feedback {
	return application.Feedback{
		ID:          model.ID,
		AuthorID:    model.AuthorID,
		ClassroomID: model.ClassroomID,
		Rating:      model.Rating,
		Comment:     model.Comment,
		CreatedAt:   model.CreatedAt,
	}
}

func toPersistenceFeedback(feedback application.Feedback) persistence.Feedback {
	return persistence.Feedback{
		ID:          feedback.ID,
		AuthorID:    feedback.AuthorID,
		ClassroomID: feedback.ClassroomID,
		Rating:      feedback.Rating,
		Comment:     feedback.Comment,
		CreatedAt:   feedback.CreatedAt,
	}
}

func toApplicationNotification(model persistence.Notification) application.Notification {
	return application.Notification{
		ID:            model.ID,
		UserID:        model.UserID,
		Title:         model.Title,
		Message:       model.Message,
		Type:          model.Type,
		ReservationID: cloneString(model.ReservationID),
		IsRead:        model.IsRead,
		CreatedAt:     model.CreatedAt,
	}
}

func toPersistenceNotification(notification application.Notification) persistence.Notification {
	return persistence.Notification{
		ID:            notification.ID,
		UserID:        notification.UserID,
		Title:         notification.Title,
		Message:       notification.Message,
		Type:          notification.Type,
		ReservationID: cloneString(notification.ReservationID),
		IsRead:        notification.IsRead,
		CreatedAt:     notification.CreatedAt,
	}
}

func toApplicationSession(model persistence.Session) application.Session {
	return application.Session{
		ID:        model.ID,
		UserID:    model.UserID,
		Token:     model.Token,
		ExpiresAt: model.ExpiresAt,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
		RevokedAt: cloneTime(model.RevokedAt),
	}
}

func toPersistenceSession(session application.Session) persistence.Session {
	return persistence.Session{
		ID:        session.ID,
		UserID:    session.UserID,
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
		RevokedAt: cloneTime(session.RevokedAt),
	}
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	clone := *value
	return &clone
}

func cloneTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	clone := *value
	return &clone
}
