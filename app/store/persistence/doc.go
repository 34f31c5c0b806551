// Package persistence implements SQLite-backed durable storage
// for the task table, the focus pointer and the attempt history.
package persistence
