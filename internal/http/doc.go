// Package http provides the HTTP handlers and middleware of the classroom
// reservation API.
//
// The router exposes the following endpoints:
//   - POST /sessions, DELETE /sessions/current: session issue and revocation.
//     Login returns {"token","expires_at"} with the token also surfaced via
//     the X-Session-Token header and a session_token cookie.
//   - GET /reservations, POST /reservations, GET /reservations/{id},
//     POST /reservations/{id}/approve, POST /reservations/{id}/reject,
//     POST /reservations/{id}/cancel: reservation lifecycle endpoints.
//     Creation responses carry advisory holiday warnings.
//   - POST /reservations/occurrences: previews the occurrences a recurring
//     reservation request would produce, without persisting anything.
//   - GET /classrooms, POST /classrooms, GET /classrooms/{id},
//     PUT /classrooms/{id}, DELETE /classrooms/{id}: classroom catalog.
//     DELETE deactivates; the record and its reservation history remain.
//   - GET /terms, POST /terms, PUT /terms/{id}: academic term management.
//   - GET /feedback?classroom_id=, POST /feedback: classroom feedback.
//   - GET /notifications, POST /notifications/{id}/read: the caller's
//     notification feed.
//   - GET /holidays?from=&to=: holiday calendar lookup over a date range.
//   - GET /users, POST /users: administrator controlled account management.
//
// Request DTOs live alongside their handlers and are validated with
// go-playground/validator before reaching the services.
package http
