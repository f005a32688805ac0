package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jhoicas/bom-inventario-api/internal/application/dto"
)

var requiredColumns = []string{"part_number", "component_name", "current_stock", "min_stock", "unit_cost"}

type csvRow struct {
	line int
	item dto.CreateInventoryItemRequest
}

// decoderFor devuelve el lector que convierte a UTF-8 según charset.
func decoderFor(r io.Reader, charset string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	case "iso-8859-1", "iso8859-1", "latin1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "utf-8", "utf8", "":
		// Excel agrega BOM al exportar en UTF-8
		return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())), nil
	}
	return nil, fmt.Errorf("charset no soportado: %q", charset)
}

// parseCSV lee el archivo completo. Acepta ',' o ';' como separador (Excel en es-CO usa ';').
func parseCSV(r io.Reader, charset string) ([]csvRow, error) {
	dec, err := decoderFor(r, charset)
	if err != nil {
		return nil, err
	}
	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("decodificar: %w", err)
	}
	text := string(raw)

	cr := csv.NewReader(strings.NewReader(text))
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	if first, _, _ := strings.Cut(text, "\n"); strings.Count(first, ";") > strings.Count(first, ",") {
		cr.Comma = ';'
	}

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cabecera: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("falta la columna %q", c)
		}
	}

	var out []csvRow
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		get := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		if get("part_number") == "" {
			continue
		}
		item, err := toRequest(get)
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		out = append(out, csvRow{line: line, item: item})
	}
	return out, nil
}

func toRequest(get func(string) string) (dto.CreateInventoryItemRequest, error) {
	stock, err := atoi(get("current_stock"))
	if err != nil {
		return dto.CreateInventoryItemRequest{}, fmt.Errorf("current_stock: %w", err)
	}
	minStock, err := atoi(get("min_stock"))
	if err != nil {
		return dto.CreateInventoryItemRequest{}, fmt.Errorf("min_stock: %w", err)
	}
	cost, err := parseMoney(get("unit_cost"))
	if err != nil {
		return dto.CreateInventoryItemRequest{}, fmt.Errorf("unit_cost: %w", err)
	}
	req := dto.CreateInventoryItemRequest{
		PartNumber:    get("part_number"),
		ComponentName: get("component_name"),
		CurrentStock:  stock,
		MinStock:      minStock,
		UnitCost:      cost,
		DigikeyPN:     get("digikey_pn"),
		Status:        get("status"),
		Supplier:      get("supplier"),
		Category:      get("category"),
	}
	if lt := get("lead_time"); lt != "" {
		n, err := atoi(lt)
		if err != nil {
			return dto.CreateInventoryItemRequest{}, fmt.Errorf("lead_time: %w", err)
		}
		req.LeadTime = &n
	}
	return req, nil
}

func atoi(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// parseMoney acepta "1.50", "1,50" y "$ 1.50".
func parseMoney(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return decimal.Zero, nil
	}
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	return decimal.NewFromString(s)
}
