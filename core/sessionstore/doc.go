// Package sessionstore implements session.Persister on several backends:
// process memory, a directory of JSON files, SQLite, Redis and Postgres.
//
// Every backend stores the same JSON payload,
// {"token":"...","user":{"id":1,"nom":"...","email":"...","role":"etudiant"}}
// or {"token":null,"user":null}, under the session key. Payloads that fail to
// decode are reported as session.ErrCorruptSnapshot.
package sessionstore
