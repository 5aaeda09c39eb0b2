// Package domain defines the core domain types and interfaces.
//
// This package contains concept-oriented files (category.go, session.go,
// timestamp.go) with shared types and repository contracts. No implementation
// code - just contracts. Keeping interfaces here prevents circular imports
// between the services and the database layer.
package domain
