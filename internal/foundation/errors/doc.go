// Package errors provides the classified error primitives used across symdoc.
//
// A ClassifiedError carries a category (config, input, graph, render, ...), a
// severity and a retry hint together with structured context. Errors are built
// with the fluent ErrorBuilder:
//
//	err := errors.NewError(errors.CategoryGraph, "reference cycle").
//		Fatal().
//		WithContext("longname", n.Longname).
//		Build()
//
// The CLI and HTTP adapters translate classified errors into exit codes and
// status codes respectively.
package errors
