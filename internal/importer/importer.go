// Package importer reads cargo manifests from JSON or Excel sources and
// produces []model.CargoSpec, adapted from the teacher's CSV/Excel
// internal/importer. It never consults internal/planner or
// internal/packer; it only ever produces CargoSpecs, never consumes a
// PackResult.
package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/loadplan/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the outcome of a manifest import: the specs that
// parsed cleanly, plus any per-row problems that did not abort the
// whole import.
type ImportResult struct {
	Specs    []model.CargoSpec
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic manifest fields to their column indices
// in a spreadsheet row.
type ColumnMapping struct {
	Name        int
	Quantity    int
	Length      int
	Width       int
	Height      int
	Weight      int
	Unstackable int
}

// headerAliases maps canonical manifest fields to their accepted
// spreadsheet header spellings (all lowercase).
var headerAliases = map[string][]string{
	"name":        {"name", "label", "item", "description", "desc", "cargo", "part"},
	"quantity":    {"qty", "quantity", "count", "num", "amount", "pcs", "pieces"},
	"length":      {"l", "length", "len"},
	"width":       {"w", "width"},
	"height":      {"h", "height"},
	"weight":      {"weight", "wt", "kg", "mass"},
	"unstackable": {"unstackable", "no_stack", "nostack", "fragile", "do_not_stack"},
}

// rawRecord mirrors the JSON object shape from spec §6: an array whose
// objects carry name, qty, l, w, h, weight and an optional unstackable
// flag.
type rawRecord struct {
	Name        string `json:"name"`
	Quantity    int    `json:"qty"`
	Length      int    `json:"l"`
	Width       int    `json:"w"`
	Height      int    `json:"h"`
	Weight      int    `json:"weight"`
	Unstackable bool   `json:"unstackable"`
}

// ImportJSONFile reads a manifest file that may be raw JSON, or prose
// with one or more fenced code blocks containing JSON.
func ImportJSONFile(path string) ImportResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("cannot open file: %v", err)}}
	}
	return ImportJSON(data)
}

// ImportJSON parses manifest content leniently, per spec §6: a fenced
// ```json code block is preferred when present, a bare top-level array
// is accepted as-is, and a last-resort scan for the outermost [...]
// span is tried before giving up.
func ImportJSON(data []byte) ImportResult {
	if fenced, ok := extractFencedJSON(data); ok {
		if result, ok := decodeRecords(fenced); ok {
			return result
		}
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if result, ok := decodeRecords(trimmed); ok {
			return result
		}
	}

	if scanned, ok := bracketScan(data); ok {
		if result, ok := decodeRecords(scanned); ok {
			return result
		}
	}

	return ImportResult{Errors: []string{"no parseable JSON array found in manifest"}}
}

// extractFencedJSON returns the content of the first ``` fenced block
// in data, with a leading "json" (or empty) language tag stripped. A
// block with any other language tag is still the one returned, tag
// line included; later blocks are not searched.
func extractFencedJSON(data []byte) ([]byte, bool) {
	text := string(data)
	const marker = "```"
	start := strings.Index(text, marker)
	if start == -1 {
		return nil, false
	}
	rest := text[start+len(marker):]
	if idx := strings.IndexByte(rest, '\n'); idx != -1 {
		lang := strings.TrimSpace(rest[:idx])
		if lang == "" || strings.EqualFold(lang, "json") {
			rest = rest[idx+1:]
		}
	}
	end := strings.Index(rest, marker)
	if end == -1 {
		return nil, false
	}
	return []byte(strings.TrimSpace(rest[:end])), true
}

// bracketScan finds the first top-level [...] span in data by tracking
// bracket depth, ignoring brackets inside string literals.
func bracketScan(data []byte) ([]byte, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false
	for i, c := range data {
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[':
			if depth == 0 {
				start = i
			}
			depth++
		case ']':
			depth--
			if depth == 0 && start != -1 {
				return data[start : i+1], true
			}
		}
	}
	return nil, false
}

// decodeRecords unmarshals a JSON array of manifest records into
// CargoSpecs. Every record must carry a positive length, width and
// height; quantity defaults to 1 when zero or absent.
func decodeRecords(data []byte) (ImportResult, bool) {
	var records []rawRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return ImportResult{}, false
	}

	result := ImportResult{}
	for i, rec := range records {
		rowLabel := fmt.Sprintf("Record %d", i+1)
		if rec.Length <= 0 || rec.Width <= 0 || rec.Height <= 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: length, width and height must be positive", rowLabel))
			continue
		}
		qty := rec.Quantity
		if qty == 0 {
			qty = 1
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: missing quantity, defaulting to 1", rowLabel))
		}
		if qty < 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: quantity must not be negative", rowLabel))
			continue
		}
		name := rec.Name
		if name == "" {
			name = fmt.Sprintf("Item %d", i+1)
		}
		spec := model.NewCargoSpec(name, rec.Length, rec.Width, rec.Height, rec.Weight, qty)
		spec.Unstackable = rec.Unstackable
		result.Specs = append(result.Specs, spec)
	}
	return result, true
}

// ImportExcel imports a cargo manifest from the first sheet of an
// Excel (.xlsx) file, auto-detecting column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cannot open Excel file: %v", err))
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
		result.Errors = append(result.Errors, fmt.Sprintf("cannot read Excel data: %v", err))
		return result
	}
	if len(rows) == 0 {
		result.Errors = append(result.Errors, "sheet is empty")
		return result
	}

	return importFromRows(rows)
}

// DetectColumns examines a header row and returns a ColumnMapping,
// matching case-insensitively against headerAliases. Returns the
// mapping and true if a header was recognized, or a default positional
// mapping and false otherwise.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Name: -1, Quantity: -1, Length: -1, Width: -1, Height: -1, Weight: -1, Unstackable: -1}

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
				case "name":
					if mapping.Name == -1 {
						mapping.Name = i
					}
				case "quantity":
					if mapping.Quantity == -1 {
						mapping.Quantity = i
					}
				case "length":
					if mapping.Length == -1 {
						mapping.Length = i
					}
				case "width":
					if mapping.Width == -1 {
						mapping.Width = i
					}
				case "height":
					if mapping.Height == -1 {
						mapping.Height = i
					}
				case "weight":
					if mapping.Weight == -1 {
						mapping.Weight = i
					}
				case "unstackable":
					if mapping.Unstackable == -1 {
						mapping.Unstackable = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Name: 0, Quantity: 1, Length: 2, Width: 3, Height: 4, Weight: 5, Unstackable: 6}, false
	}
	return mapping, true
}

func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseBool recognizes the common spreadsheet spellings of a boolean
// flag; defaults to false when the cell is empty or unrecognized.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y":
		return true
	default:
		return false
	}
}

// parseRow extracts a CargoSpec from one spreadsheet row using the
// given column mapping.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, rowIndex int) (model.CargoSpec, string, string) {
	name := getCell(row, mapping.Name)
	if name == "" {
		name = fmt.Sprintf("Item %d", rowIndex+1)
	}

	length, errMsg := parseDim(row, mapping.Length, "length", rowLabel)
	if errMsg != "" {
		return model.CargoSpec{}, errMsg, ""
	}
	width, errMsg := parseDim(row, mapping.Width, "width", rowLabel)
	if errMsg != "" {
		return model.CargoSpec{}, errMsg, ""
	}
	height, errMsg := parseDim(row, mapping.Height, "height", rowLabel)
	if errMsg != "" {
		return model.CargoSpec{}, errMsg, ""
	}

	weightStr := getCell(row, mapping.Weight)
	weight := 0
	if weightStr != "" {
		w, err := strconv.Atoi(weightStr)
		if err != nil {
			return model.CargoSpec{}, fmt.Sprintf("%s: invalid weight %q", rowLabel, weightStr), ""
		}
		weight = w
	}

	var warning string
	qtyStr := getCell(row, mapping.Quantity)
	qty := 1
	if qtyStr != "" {
		q, err := strconv.Atoi(qtyStr)
		if err != nil {
			return model.CargoSpec{}, fmt.Sprintf("%s: invalid quantity %q", rowLabel, qtyStr), ""
		}
		qty = q
	} else {
		warning = fmt.Sprintf("%s: missing quantity, defaulting to 1", rowLabel)
	}
	if qty <= 0 {
		return model.CargoSpec{}, fmt.Sprintf("%s: quantity must be positive", rowLabel), ""
	}

	spec := model.NewCargoSpec(name, length, width, height, weight, qty)
	spec.Unstackable = parseBool(getCell(row, mapping.Unstackable))
	return spec, "", warning
}

func parseDim(row []string, idx int, field, rowLabel string) (int, string) {
	raw := getCell(row, idx)
	if raw == "" {
		return 0, fmt.Sprintf("%s: missing %s value", rowLabel, field)
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Sprintf("%s: invalid %s %q", rowLabel, field, raw)
	}
	return v, ""
}

// importFromRows is the shared row-walking logic for spreadsheet
// sources: detect the header, validate required columns, then parse
// each remaining row into a CargoSpec.
func importFromRows(rows [][]string) ImportResult {
	result := ImportResult{}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "detected header row, skipping")

		var missing []string
		if mapping.Length == -1 {
			missing = append(missing, "Length")
		}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Height == -1 {
			missing = append(missing, "Height")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		rowLabel := fmt.Sprintf("Row %d", i+1)
		spec, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Specs))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		result.Specs = append(result.Specs, spec)
	}

	return result
}
