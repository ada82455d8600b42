package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/altayburakhan/ClassroomDB/internal/application"
	"github.com/altayburakhan/ClassroomDB/internal/persistence"
)

var (
	userCounter         uint64
	classroomCounter    uint64
	termCounter         uint64
	reservationCounter  uint64
	feedbackCounter     uint64
	notificationCounter uint64
)

// referenceTime is a Monday morning inside the default term fixture, within
// business hours.
var referenceTime = time.Date(2025, time.September, 15, 9, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// ----------------------------- User fixtures -----------------------------

// UserFixture represents a deterministic user record that can be materialised
// for application or persistence tests.
type UserFixture struct {
	ID           string
	Email        string
	DisplayName  string
	Password     string
	PasswordHash string
	IsAdmin      bool
	Disabled     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserOption configures the generated user fixture.
type UserOption func(*UserFixture)

// NewUserFixture returns a deterministic user fixture with optional overrides.
func NewUserFixture(opts ...UserOption) UserFixture {
	idx := atomic.AddUint64(&userCounter, 1)
	id := fmt.Sprintf("user-%03d", idx)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := UserFixture{
		ID:           id,
		Email:        fmt.Sprintf("%s@campus.example", id),
		DisplayName:  fmt.Sprintf("User %03d", idx),
		Password:     fmt.Sprintf("password-%03d", idx),
		PasswordHash: fmt.Sprintf("hash-%03d", idx),
		IsAdmin:      false,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithUserID overrides the generated user ID.
func WithUserID(id string) UserOption {
	return func(f *UserFixture) {
		f.ID = id
	}
}

// WithUserEmail overrides the generated email address.
func WithUserEmail(email string) UserOption {
	return func(f *UserFixture) {
		f.Email = email
	}
}

// WithUserDisplayName overrides the generated display name.
func WithUserDisplayName(name string) UserOption {
	return func(f *UserFixture) {
		f.DisplayName = name
	}
}

// WithUserPasswordHash overrides the generated password hash.
func WithUserPasswordHash(hash string) UserOption {
	return func(f *UserFixture) {
		f.PasswordHash = hash
	}
}

// WithUserAdmin sets the admin flag on the generated fixture.
func WithUserAdmin(isAdmin bool) UserOption {
	return func(f *UserFixture) {
		f.IsAdmin = isAdmin
	}
}

// WithUserDisabled sets the disabled flag on the generated fixture.
func WithUserDisabled(disabled bool) UserOption {
	return func(f *UserFixture) {
		f.Disabled = disabled
	}
}

// WithUserTimestamps sets both created and updated timestamps on the fixture.
func WithUserTimestamps(created, updated time.Time) UserOption {
	return func(f *UserFixture) {
		f.CreatedAt = created
		f.UpdatedAt = updated
	}
}

// Application returns the fixture as an application.User value.
func (f UserFixture) Application() application.User {
	return application.User{
		ID:          f.ID,
		Email:       f.Email,
		DisplayName: f.DisplayName,
		IsAdmin:     f.IsAdmin,
		Disabled:    f.Disabled,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// Credentials returns the fixture as application.UserCredentials.
func (f UserFixture) Credentials() application.UserCredentials {
	return application.UserCredentials{
		User:         f.Application(),
		PasswordHash: f.PasswordHash,
	}
}

// Principal returns an application.Principal derived from the fixture.
func (f UserFixture) Principal() application.Principal {
	return application.Principal{UserID: f.ID, IsAdmin: f.IsAdmin}
}

// Persistence returns the fixture as a persistence.User value.
func (f UserFixture) Persistence() persistence.User {
	return persistence.User{
		ID:           f.ID,
		Email:        f.Email,
		DisplayName:  f.DisplayName,
		PasswordHash: f.PasswordHash,
		IsAdmin:      f.IsAdmin,
		Disabled:     f.Disabled,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

// Input returns the fixture as an application.UserInput.
func (f UserFixture) Input() application.UserInput {
	return application.UserInput{
		Email:       f.Email,
		DisplayName: f.DisplayName,
		Password:    f.Password,
		IsAdmin:     f.IsAdmin,
	}
}

// -------------------------- Classroom fixtures ----------------------------

// ClassroomFixture represents a deterministic classroom catalog entry.
type ClassroomFixture struct {
	ID          string
	Name        string
	RoomNumber  string
	Building    string
	Floor       int
	Capacity    int
	Features    *string
	Description *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ClassroomOption configures the generated classroom fixture.
type ClassroomOption func(*ClassroomFixture)

// NewClassroomFixture returns a deterministic classroom fixture with optional
// overrides.
func NewClassroomFixture(opts ...ClassroomOption) ClassroomFixture {
	idx := atomic.AddUint64(&classroomCounter, 1)
	id := fmt.Sprintf("room-%03d", idx)
	created := referenceTime.Add(time.Duration(idx) * time.Hour)
	fixture := ClassroomFixture{
		ID:         id,
		Name:       fmt.Sprintf("Classroom %03d", idx),
		RoomNumber: fmt.Sprintf("%03d", idx),
		Building:   "Science Hall",
		Floor:      int(1 + idx%4),
		Capacity:   int(20 + idx%4*10),
		IsActive:   true,
		CreatedAt:  created,
		UpdatedAt:  created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithClassroomID overrides the generated classroom ID.
func WithClassroomID(id string) ClassroomOption {
	return func(f *ClassroomFixture) {
		f.ID = id
	}
}

// WithClassroomName overrides the generated name.
func WithClassroomName(name string) ClassroomOption {
	return func(f *ClassroomFixture) {
		f.Name = name
	}
}

// WithClassroomCapacity overrides the generated capacity.
func WithClassroomCapacity(capacity int) ClassroomOption {
	return func(f *ClassroomFixture) {
		f.Capacity = capacity
	}
}

// WithClassroomFeatures sets the features description on the fixture.
func WithClassroomFeatures(features string) ClassroomOption {
	return func(f *ClassroomFixture) {
		value := features
		f.Features = &value
	}
}

// WithClassroomActive sets the active flag on the generated fixture.
func WithClassroomActive(active bool) ClassroomOption {
	return func(f *ClassroomFixture) {
		f.IsActive = active
	}
}

// Application returns the fixture as an application.Classroom value.
func (f ClassroomFixture) Application() application.Classroom {
	return application.Classroom{
		ID:          f.ID,
		Name:        f.Name,
		RoomNumber:  f.RoomNumber,
		Building:    f.Building,
		Floor:       f.Floor,
		Capacity:    f.Capacity,
		Features:    cloneString(f.Features),
		Description: cloneString(f.Description),
		IsActive:    f.IsActive,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// Persistence returns the fixture as a persistence.Classroom value. Blank
// room numbers and buildings map to NULL columns.
func (f ClassroomFixture) Persistence() persistence.Classroom {
	return persistence.Classroom{
		ID:          f.ID,
		Name:        f.Name,
		RoomNumber:  optionalString(f.RoomNumber),
		Building:    optionalString(f.Building),
		Floor:       f.Floor,
		Capacity:    f.Capacity,
		Features:    cloneString(f.Features),
		Description: cloneString(f.Description),
		IsActive:    f.IsActive,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// Input returns the fixture as an application.ClassroomInput.
func (f ClassroomFixture) Input() application.ClassroomInput {
	return application.ClassroomInput{
		Name:        f.Name,
		RoomNumber:  f.RoomNumber,
		Building:    f.Building,
		Floor:       f.Floor,
		Capacity:    f.Capacity,
		Features:    cloneString(f.Features),
		Description: cloneString(f.Description),
	}
}

// ----------------------------- Term fixtures -----------------------------

// TermFixture represents a deterministic academic term. The default range
// covers ReferenceTime.
type TermFixture struct {
	ID          string
	Name        string
	StartDate   time.Time
	EndDate     time.Time
	IsActive    bool
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TermOption configures the generated term fixture.
type TermOption func(*TermFixture)

// NewTermFixture returns a deterministic term fixture with optional overrides.
func NewTermFixture(opts ...TermOption) TermFixture {
	idx := atomic.AddUint64(&termCounter, 1)
	id := fmt.Sprintf("term-%03d", idx)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := TermFixture{
		ID:        id,
		Name:      fmt.Sprintf("Term %03d", idx),
		StartDate: time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, time.December, 19, 0, 0, 0, 0, time.UTC),
		IsActive:  true,
		CreatedAt: created,
		UpdatedAt: created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithTermID overrides the generated term ID.
func WithTermID(id string) TermOption {
	return func(f *TermFixture) {
		f.ID = id
	}
}

// WithTermDates sets the start and end dates on the fixture.
func WithTermDates(start, end time.Time) TermOption {
	return func(f *TermFixture) {
		f.StartDate = start
		f.EndDate = end
	}
}

// WithTermActive sets the active flag on the generated fixture.
func WithTermActive(active bool) TermOption {
	return func(f *TermFixture) {
		f.IsActive = active
	}
}

// Application returns the fixture as an application.Term value.
func (f TermFixture) Application() application.Term {
	return application.Term{
		ID:          f.ID,
		Name:        f.Name,
		StartDate:   f.StartDate,
		EndDate:     f.EndDate,
		IsActive:    f.IsActive,
		Description: cloneString(f.Description),
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// Persistence returns the fixture as a persistence.Term value.
func (f TermFixture) Persistence() persistence.Term {
	return persistence.Term{
		ID:          f.ID,
		Name:        f.Name,
		StartDate:   f.StartDate,
		EndDate:     f.EndDate,
		IsActive:    f.IsActive,
		Description: cloneString(f.Description),
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// Input returns the fixture as an application.TermInput.
func (f TermFixture) Input() application.TermInput {
	return application.TermInput{
		Name:        f.Name,
		StartDate:   f.StartDate,
		EndDate:     f.EndDate,
		IsActive:    f.IsActive,
		Description: cloneString(f.Description),
	}
}

// -------------------------- Reservation fixtures --------------------------

// ReservationFixture represents a deterministic reservation. Each fixture
// lands on its own day so generated reservations never overlap by default.
type ReservationFixture struct {
	ID                string
	ClassroomID       string
	RequesterID       string
	TermID            string
	Start             time.Time
	End               time.Time
	Purpose           string
	Status            application.ReservationStatus
	RejectionReason   *string
	Notes             *string
	IsRecurring       bool
	RecurrencePattern *string
	RecurrenceEndDate *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ReservationOption configures the generated reservation fixture.
type ReservationOption func(*ReservationFixture)

// NewReservationFixture returns a deterministic reservation fixture with
// optional overrides.
func NewReservationFixture(opts ...ReservationOption) ReservationFixture {
	idx := atomic.AddUint64(&reservationCounter, 1)
	id := fmt.Sprintf("res-%03d", idx)
	start := referenceTime.AddDate(0, 0, int(idx)%60)
	created := referenceTime.Add(time.Duration(idx) * time.Second)
	fixture := ReservationFixture{
		ID:          id,
		ClassroomID: "room-001",
		RequesterID: "user-001",
		TermID:      "term-001",
		Start:       start,
		End:         start.Add(2 * time.Hour),
		Purpose:     fmt.Sprintf("Lecture %03d", idx),
		Status:      application.StatusPending,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithReservationID overrides the generated reservation ID.
func WithReservationID(id string) ReservationOption {
	return func(f *ReservationFixture) {
		f.ID = id
	}
}

// WithReservationClassroom sets the classroom the reservation targets.
func WithReservationClassroom(classroomID string) ReservationOption {
	return func(f *ReservationFixture) {
		f.ClassroomID = classroomID
	}
}

// WithReservationRequester sets the requesting user.
func WithReservationRequester(userID string) ReservationOption {
	return func(f *ReservationFixture) {
		f.RequesterID = userID
	}
}

// WithReservationTerm sets the covering term.
func WithReservationTerm(termID string) ReservationOption {
	return func(f *ReservationFixture) {
		f.TermID = termID
	}
}

// WithReservationWindow sets the start and end instants on the fixture.
func WithReservationWindow(start, end time.Time) ReservationOption {
	return func(f *ReservationFixture) {
		f.Start = start
		f.End = end
	}
}

// WithReservationStatus sets the lifecycle status on the fixture.
func WithReservationStatus(status application.ReservationStatus) ReservationOption {
	return func(f *ReservationFixture) {
		f.Status = status
	}
}

// WithReservationRejectionReason sets the rejection reason on the fixture.
func WithReservationRejectionReason(reason string) ReservationOption {
	return func(f *ReservationFixture) {
		value := reason
		f.RejectionReason = &value
	}
}

// WithReservationRecurrence marks the fixture recurring with the supplied
// pattern and end date.
func WithReservationRecurrence(pattern string, endDate time.Time) ReservationOption {
	return func(f *ReservationFixture) {
		value := pattern
		end := endDate
		f.IsRecurring = true
		f.RecurrencePattern = &value
		f.RecurrenceEndDate = &end
	}
}

// Application returns the fixture as an application.Reservation value.
func (f ReservationFixture) Application() application.Reservation {
	return application.Reservation{
		ID:                f.ID,
		ClassroomID:       f.ClassroomID,
		RequesterID:       f.RequesterID,
		TermID:            f.TermID,
		Start:             f.Start,
		End:               f.End,
		Purpose:           f.Purpose,
		Status:            f.Status,
		RejectionReason:   cloneString(f.RejectionReason),
		Notes:             cloneString(f.Notes),
		IsRecurring:       f.IsRecurring,
		RecurrencePattern: cloneString(f.RecurrencePattern),
		RecurrenceEndDate: cloneTime(f.RecurrenceEndDate),
		CreatedAt:         f.CreatedAt,
		UpdatedAt:         f.UpdatedAt,
	}
}

// Persistence returns the fixture as a persistence.Reservation value.
func (f ReservationFixture) Persistence() persistence.Reservation {
	return persistence.Reservation{
		ID:                f.ID,
		ClassroomID:       f.ClassroomID,
		RequesterID:       f.RequesterID,
		TermID:            f.TermID,
		Start:             f.Start,
		End:               f.End,
		Purpose:           f.Purpose,
		Status:            string(f.Status),
		RejectionReason:   cloneString(f.RejectionReason),
		Notes:             cloneString(f.Notes),
		IsRecurring:       f.IsRecurring,
		RecurrencePattern: cloneString(f.RecurrencePattern),
		RecurrenceEndDate: cloneTime(f.RecurrenceEndDate),
		CreatedAt:         f.CreatedAt,
		UpdatedAt:         f.UpdatedAt,
	}
}

// Input returns the fixture as an application.ReservationInput.
func (f ReservationFixture) Input() application.ReservationInput {
	input := application.ReservationInput{
		ClassroomID: f.ClassroomID,
		RequesterID: f.RequesterID,
		Start:       f.Start,
		End:         f.End,
		Purpose:     f.Purpose,
		IsRecurring: f.IsRecurring,
	}
	if f.Notes != nil {
		input.Notes = *f.Notes
	}
	if f.RecurrencePattern != nil {
		input.RecurrencePattern = *f.RecurrencePattern
	}
	input.RecurrenceEndDate = cloneTime(f.RecurrenceEndDate)
	return input
}

// --------------------------- Feedback fixtures ----------------------------

// FeedbackFixture represents a deterministic classroom feedback entry.
type FeedbackFixture struct {
	ID          string
	AuthorID    string
	ClassroomID string
	Rating      int
	Comment     string
	CreatedAt   time.Time
}

// FeedbackOption configures the generated feedback fixture.
type FeedbackOption func(*FeedbackFixture)

// NewFeedbackFixture returns a deterministic feedback fixture with optional
// overrides.
func NewFeedbackFixture(opts ...FeedbackOption) FeedbackFixture {
	idx := atomic.AddUint64(&feedbackCounter, 1)
	fixture := FeedbackFixture{
		ID:          fmt.Sprintf("fb-%03d", idx),
		AuthorID:    "user-001",
		ClassroomID: "room-001",
		Rating:      int(1 + idx%5),
		Comment:     fmt.Sprintf("Comment %03d", idx),
		CreatedAt:   referenceTime.Add(time.Duration(idx) * time.Minute),
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithFeedbackAuthor sets the author on the fixture.
func WithFeedbackAuthor(userID string) FeedbackOption {
	return func(f *FeedbackFixture) {
		f.AuthorID = userID
	}
}

// WithFeedbackClassroom sets the classroom on the fixture.
func WithFeedbackClassroom(classroomID string) FeedbackOption {
	return func(f *FeedbackFixture) {
		f.ClassroomID = classroomID
	}
}

// WithFeedbackRating sets the rating on the fixture.
func WithFeedbackRating(rating int) FeedbackOption {
	return func(f *FeedbackFixture) {
		f.Rating = rating
	}
}

// Application returns the fixture as an application.Feedback value.
func (f FeedbackFixture) Application() application.Feedback {
	return application.Feedback{
		ID:          f.ID,
		AuthorID:    f.AuthorID,
		ClassroomID: f.ClassroomID,
		Rating:      f.Rating,
		Comment:     f.Comment,
		CreatedAt:   f.CreatedAt,
	}
}

// Persistence returns the fixture as a persistence.Feedback value.
func (f FeedbackFixture) Persistence() persistence.Feedback {
	return persistence.Feedback{
		ID:          f.ID,
		AuthorID:    f.AuthorID,
		ClassroomID: f.ClassroomID,
		Rating:      f.Rating,
		Comment:     f.Comment,
		CreatedAt:   f.CreatedAt,
	}
}

// Input returns the fixture as an application.FeedbackInput.
func (f FeedbackFixture) Input() application.FeedbackInput {
	return application.FeedbackInput{
		ClassroomID: f.ClassroomID,
		Rating:      f.Rating,
		Comment:     f.Comment,
	}
}

// ------------------------- Notification fixtures --------------------------

// NotificationFixture represents a deterministic notification row.
type NotificationFixture struct {
	ID            string
	UserID        string
	Title         string
	Message       string
	Type          string
	ReservationID *string
	IsRead        bool
	CreatedAt     time.Time
}

// NotificationOption configures the generated notification fixture.
type NotificationOption func(*NotificationFixture)

// NewNotificationFixture returns a deterministic notification fixture with
// optional overrides.
func NewNotificationFixture(opts ...NotificationOption) NotificationFixture {
	idx := atomic.AddUint64(&notificationCounter, 1)
	fixture := NotificationFixture{
		ID:        fmt.Sprintf("ntf-%03d", idx),
		UserID:    "user-001",
		Title:     fmt.Sprintf("Notification %03d", idx),
		Message:   fmt.Sprintf("Message %03d", idx),
		Type:      "reservation_created",
		CreatedAt: referenceTime.Add(time.Duration(idx) * time.Second),
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithNotificationUser sets the recipient on the fixture.
func WithNotificationUser(userID string) NotificationOption {
	return func(f *NotificationFixture) {
		f.UserID = userID
	}
}

// WithNotificationReservation links the fixture to a reservation.
func WithNotificationReservation(reservationID string) NotificationOption {
	return func(f *NotificationFixture) {
		value := reservationID
		f.ReservationID = &value
	}
}

// WithNotificationRead sets the read flag on the fixture.
func WithNotificationRead(read bool) NotificationOption {
	return func(f *NotificationFixture) {
		f.IsRead = read
	}
}

// Application returns the fixture as an application.Notification value.
func (f NotificationFixture) Application() application.Notification {
	return application.Notification{
		ID:            f.ID,
		UserID:        f.UserID,
		Title:         f.Title,
		Message:       f.Message,
		Type:          f.Type,
		ReservationID: cloneString(f.ReservationID),
		IsRead:        f.IsRead,
		CreatedAt:     f.CreatedAt,
	}
}

// Persistence returns the fixture as a persistence.Notification value.
func (f NotificationFixture) Persistence() persistence.Notification {
	return persistence.Notification{
		ID:            f.ID,
		UserID:        f.UserID,
		Title:         f.Title,
		Message:       f.Message,
		Type:          f.Type,
		ReservationID: cloneString(f.ReservationID),
		IsRead:        f.IsRead,
		CreatedAt:     f.CreatedAt,
	}
}

// ------------------------------ Helpers -----------------------------------

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}

func cloneTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
