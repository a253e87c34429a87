// Package importer reads room programs (how many rooms of each type, with
// optional per-room sizes) from CSV and Excel files. It supports automatic
// delimiter detection, flexible column mapping, and case-insensitive header
// recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ArvindGuruRK/construction-3d-plan/internal/model"
)

// ImportResult holds the results of an import operation. Request is usable
// only when Errors is empty; TotalArea is zero unless the file carried a
// total row.
type ImportResult struct {
	Request  model.RoomRequest
	Rooms    int
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Type  int
	Count int
	Size  int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"type":  {"type", "room", "room type", "kind", "name", "space"},
	"count": {"count", "quantity", "qty", "num", "number", "rooms", "n"},
	"size":  {"size", "area", "room size", "sqft", "sqm", "size hint"},
}

// totalAliases name the optional row that carries the total area budget in the size column.
var totalAliases = map[string]bool{"total": true, "total area": true, "budget": true, "house": true}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or the positional
// mapping Type, Count, Size and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Type: -1, Count: -1, Size: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "type":
					if mapping.Type == -1 {
						mapping.Type = i
					}
				case "count":
					if mapping.Count == -1 {
						mapping.Count = i
					}
				case "size":
					if mapping.Size == -1 {
						mapping.Size = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Type: 0, Count: 1, Size: 2}, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parsedRow is one data row of a room program.
type parsedRow struct {
	total   bool
	typ     model.RoomType
	count   int
	size    float64
	hasSize bool
}

// parseRow extracts one program line using the given column mapping.
// Returns the row and any error message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (parsedRow, string) {
	typeStr := getCell(row, mapping.Type)
	if typeStr == "" {
		return parsedRow{}, fmt.Sprintf("%s: Missing room type", rowLabel)
	}

	sizeStr := getCell(row, mapping.Size)
	var size float64
	if sizeStr != "" {
		v, err := strconv.ParseFloat(sizeStr, 64)
		if err != nil {
			return parsedRow{}, fmt.Sprintf("%s: Invalid size '%s'", rowLabel, sizeStr)
		}
		if v <= 0 {
			return parsedRow{}, fmt.Sprintf("%s: Size must be positive", rowLabel)
		}
		size = v
	}

	if totalAliases[strings.ToLower(typeStr)] {
		if sizeStr == "" {
			return parsedRow{}, fmt.Sprintf("%s: Total row needs an area in the size column", rowLabel)
		}
		return parsedRow{total: true, size: size, hasSize: true}, ""
	}

	rt, ok := model.ParseRoomType(typeStr)
	if !ok {
		return parsedRow{}, fmt.Sprintf("%s: Unknown room type '%s'", rowLabel, typeStr)
	}

	count := 1
	if countStr := getCell(row, mapping.Count); countStr != "" {
		n, err := strconv.Atoi(countStr)
		if err != nil {
			return parsedRow{}, fmt.Sprintf("%s: Invalid count '%s'", rowLabel, countStr)
		}
		if n < 0 {
			return parsedRow{}, fmt.Sprintf("%s: Count must not be negative", rowLabel)
		}
		count = n
	}

	return parsedRow{typ: rt, count: count, size: size, hasSize: sizeStr != ""}, ""
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports a room program from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	records, err := readCSV(bytes.NewReader(data), delimiter)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}
	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", warnings)
}

// ImportCSVFromReader imports a room program from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	records, err := readCSV(reader, delimiter)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}
	if len(records) == 0 {
		return ImportResult{Errors: []string{"File is empty"}}
	}
	return importFromRows(records, "Line", nil)
}

func readCSV(r io.Reader, delimiter rune) ([][]string, error) {
	csvReader := csv.NewReader(r)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1
	csvReader.Comment = '#'
	return csvReader.ReadAll()
}

// ImportExcel imports a room program from the first sheet of an Excel file.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// ImportFile dispatches on the file extension: .xlsx and .xlsm go to
// ImportExcel, everything else is read as CSV.
func ImportFile(path string) ImportResult {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xlsm") {
		return ImportExcel(path)
	}
	return ImportCSV(path)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// Repeated room types add up their counts; a later size for the same type
// replaces an earlier one with a warning.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
		Request:  model.RoomRequest{RoomCounts: map[model.RoomType]int{}},
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		if mapping.Type == -1 {
			result.Errors = append(result.Errors, "Required columns not found in header: Type")
			return result
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		pr, errMsg := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}

		if pr.total {
			if result.Request.TotalArea > 0 {
				result.Warnings = append(result.Warnings, fmt.Sprintf("%s: Total area given again, using %.2f", rowLabel, pr.size))
			}
			result.Request.TotalArea = pr.size
			continue
		}

		if _, seen := result.Request.RoomCounts[pr.typ]; seen {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s listed more than once, counts added", rowLabel, pr.typ.DisplayName()))
		}
		result.Request.RoomCounts[pr.typ] += pr.count
		result.Rooms += pr.count

		if pr.hasSize {
			if result.Request.RoomSizeHints == nil {
				result.Request.RoomSizeHints = map[model.RoomType]float64{}
			}
			if prev, ok := result.Request.RoomSizeHints[pr.typ]; ok && prev != pr.size {
				result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s size %.2f replaces %.2f", rowLabel, pr.typ.DisplayName(), pr.size, prev))
			}
			result.Request.RoomSizeHints[pr.typ] = pr.size
		}
	}

	if len(result.Request.RoomCounts) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No rooms found")
	}
	return result
}
