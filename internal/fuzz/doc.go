// Package fuzztests holds fuzz harnesses for the program pipeline
// (source -> lexer -> parser -> validator -> interpreter). They look for
// panics and runaway allocation on arbitrary input; the diagnostics
// themselves are not checked.
package fuzztests
