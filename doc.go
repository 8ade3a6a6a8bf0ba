// Package argbind turns a plain Go struct into a command-line interface. Exported fields become
// flags and positional arguments, pointer-to-struct fields become subcommands, and after parsing
// the struct is populated with the results.
//
// The package layers on top of the standard library flag package rather than replacing it: every
// field is registered on a [flag.FlagSet] and parsing, type conversion errors, and unknown-flag
// handling follow the standard semantics. What argbind adds is the declarative surface: field
// introspection, short-alias generation, boolean flag pairing (--verbose / --no-verbose),
// multi-value flags, colorized help, and one-line or tabular printing of the parsed result.
package argbind
