// Package storage provides persistent state of the bot on top of the sql engine.
// The storage engine is a wrapper around sqlx.DB with additional functionality to work with the various types of database engines.
// Each table is represented by a struct, and each struct has a method to work the table with business logic for this data type.
// All records are scoped by the group id of the engine, so a few bot instances can share the same database.
package storage
