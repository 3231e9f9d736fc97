// Package db provides the embedded database schema and seed catalog.
package db

import _ "embed"

// Schema contains the DDL statements for all application tables.
//
//go:embed migrations/001_schema.sql
var Schema string

// SeedCatalog is the JSON document with the starter products, collections
// and lookbook entries.
//
//go:embed seed/catalog.json
var SeedCatalog []byte
