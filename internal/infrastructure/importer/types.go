// Package importer turns spreadsheet and API-collection exports into
// raw parameter material for normalization. Parsers here never touch
// storage; they produce tagged trees and declared rows that the import
// service feeds through the normalizer and persists.
package importer

import (
	"io"

	"github.com/apitest/backend/internal/domain/spec"
)

// ParseFunc is the shared signature of the import parsers
type ParseFunc func(io.Reader) (*ParseResult, error)

// TaggedTree is one nested parameter tree tagged with a single location.
// OptionalKeys lists the dotted keys the source explicitly marked
// optional; every other leaf present in the example is required.
type TaggedTree struct {
	Location     spec.ParamLocation
	Tree         map[string]any
	OptionalKeys []string
}

// DeclaredParam is one explicitly declared parameter row, as produced by
// spreadsheet sources that state type and constraints instead of
// examples alone.
type DeclaredParam struct {
	Name       string
	Location   spec.ParamLocation
	DataType   string
	Required   bool
	Example    string
	Constraint string
}

// ParsedInterface is one interface extracted from an import source
type ParsedInterface struct {
	Name           string
	URL            string
	Method         string
	DefaultHeaders map[string]string
	Trees          []TaggedTree    // nested example payloads (collection sources)
	Declared       []DeclaredParam // declared rows (spreadsheet sources)
}

// ParseResult is the outcome of parsing one import file
type ParseResult struct {
	Interfaces []ParsedInterface
	Warnings   []string
}
