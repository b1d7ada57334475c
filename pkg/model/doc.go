// Package model describes persisted records declaratively so forms can be
// inferred from them. A Schema lists typed Columns (char, integer, foreign key,
// many to many, ...) using the same vocabulary as relational model layers.
// Schemas can be declared in Go, loaded from YAML/JSON files with LoadFS, or
// derived from an OpenAPI component with FromOpenAPI.
//
// Labels follow the conventions used across the module: TitleLabel produces
// "First Name" from "first_name" and VerboseLabel produces "First name".
package model
