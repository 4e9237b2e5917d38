// Package store provides persistent storage for tollgate user records using SQLite.
//
// # Architecture
//
// UserStore is the only interface the HTTP handlers depend on. SQLiteStore
// implements it on top of modernc.org/sqlite (pure Go, no cgo); MockStore is
// an in-memory implementation for handler tests.
//
// The rate limiters and token codec never touch the store. Handlers resolve
// a user here, then pass the user ID to the token codec as the subject.
//
// # Data Model
//
//   - User: ID (UUID), Email (unique, stored lower-cased), PasswordHash
//     (bcrypt), CreatedAt
//
// # Errors
//
//   - ErrNotFound: no user matches the lookup
//   - ErrEmailExists: CreateUser hit the unique email index
//
// # Usage
//
//	s, err := store.NewSQLiteStore("/var/lib/tollgate/tollgate.db")
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	err = s.CreateUser(ctx, &store.User{ID: id, Email: email, PasswordHash: hash, CreatedAt: now})
//	u, err := s.GetUserByEmail(ctx, email)
package store
