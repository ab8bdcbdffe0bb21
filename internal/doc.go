// Package internal documents the Planora server internals.
//
// The internal tree is organized by responsibility:
// - api: HTTP handlers, middleware, pagination, problems, and routing
// - domain: business logic and domain models per marketplace entity
// - storage: database access and repositories (pgx + Postgres)
// - uploads: object-storage uploads
// - email: transactional email delivery
// - auth, config, metrics, sanitize, validation: shared infrastructure
//
// Code in internal/ is not meant for external import.
package internal
