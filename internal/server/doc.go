// Package server wires the HTTP surface: server-rendered pages for sessions
// and categories, form POST endpoints that redirect back with 303, the CSV
// export, and the observability endpoints.
package server
