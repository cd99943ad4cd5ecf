package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/apitest/backend/internal/domain/shared"
	"github.com/apitest/backend/internal/domain/spec"
	"github.com/xuri/excelize/v2"
)

// Expected column layout of an interface spreadsheet, one parameter per
// row. Rows for the same interface name accumulate onto one interface.
//
//	A interface name | B url | C method | D param name | E location
//	F data type      | G required | H example | I constraint
const (
	colInterfaceName = 0
	colURL           = 1
	colMethod        = 2
	colParamName     = 3
	colLocation      = 4
	colDataType      = 5
	colRequired      = 6
	colExample       = 7
	colConstraint    = 8
)

// ParseExcel reads an interface spreadsheet from the first sheet of an
// xlsx workbook. A row with an unknown location is skipped with a
// warning, not a fatal error.
func ParseExcel(r io.Reader) (*ParseResult, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, shared.NewDomainError("PARSE_ERROR", fmt.Sprintf("Cannot open workbook: %v", err))
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, shared.NewDomainError("PARSE_ERROR", "Workbook has no sheets")
	}
	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, shared.NewDomainError("PARSE_ERROR", fmt.Sprintf("Cannot read sheet %q: %v", sheets[0], err))
	}
	if len(rows) < 2 {
		return nil, shared.NewDomainError("PARSE_ERROR", "Sheet has no data rows")
	}

	result := &ParseResult{}
	index := make(map[string]int) // interface name -> position in result.Interfaces

	for i, row := range rows[1:] { // skip header
		rowNum := i + 2
		name := cell(row, colInterfaceName)
		if name == "" {
			continue
		}

		pos, seen := index[name]
		if !seen {
			result.Interfaces = append(result.Interfaces, ParsedInterface{
				Name:   name,
				URL:    cell(row, colURL),
				Method: cell(row, colMethod),
			})
			pos = len(result.Interfaces) - 1
			index[name] = pos
		}

		paramName := cell(row, colParamName)
		if paramName == "" {
			continue // interface-only row
		}

		location, ok := parseLocation(cell(row, colLocation))
		if !ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("row %d: unknown location %q for parameter %q", rowNum, cell(row, colLocation), paramName))
			continue
		}

		result.Interfaces[pos].Declared = append(result.Interfaces[pos].Declared, DeclaredParam{
			Name:       paramName,
			Location:   location,
			DataType:   cell(row, colDataType),
			Required:   parseRequired(cell(row, colRequired)),
			Example:    cell(row, colExample),
			Constraint: cell(row, colConstraint),
		})
	}

	if len(result.Interfaces) == 0 {
		return nil, shared.NewDomainError("PARSE_ERROR", "Sheet contains no interfaces")
	}
	return result, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseLocation(s string) (spec.ParamLocation, bool) {
	switch spec.ParamLocation(strings.ToUpper(strings.TrimSpace(s))) {
	case spec.LocationPath:
		return spec.LocationPath, true
	case spec.LocationQuery:
		return spec.LocationQuery, true
	case spec.LocationBody:
		return spec.LocationBody, true
	case spec.LocationHeader:
		return spec.LocationHeader, true
	case spec.LocationResponse:
		return spec.LocationResponse, true
	default:
		return "", false
	}
}

func parseRequired(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1", "required":
		return true
	default:
		return false
	}
}
