// Package file loads docbridge configuration from a TOML file.
//
// The core only consumes resolved values (domain.RunInputs plus
// connector credentials); all parsing and defaulting happens here.
package file
