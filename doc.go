// Package hobbies implements a small JSON REST backend for user accounts and
// their hobby associations: registration, credential login with JWT issuance,
// server-side token revocation on logout, profile update/delete with soft
// deletion, and a many-to-many hobbies relation with listing-by-hobby.
//
// Response contract:
//   - Every success body is the uniform envelope {status, data, message?} with
//     optional pagination metadata; data is never null.
//   - Every failure body is {errors: [{status, message}]}, produced by the
//     error classifier regardless of which layer failed (handler, middleware,
//     or router). Clients never see transport-native error pages.
//
// Persistence is Bun over a relational store. Uniqueness for email and phone
// is scoped to non-deleted rows, so a soft-deleted account frees its email and
// phone for new registrations.
package hobbies
