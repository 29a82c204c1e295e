// Package jsonschema implements a JSON Schema compiler and validator
// covering drafts 4, 6, 7, 2019-09, and 2020-12. A schema is parsed and
// its references resolved once via Compiler.Compile; the resulting
// *Schema is then safe to call Validate on repeatedly and concurrently.
//
// Credit to https://github.com/santhosh-tekuri/jsonschema for format validators.
package jsonschema
