package providers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/travigo/borderhop/pkg/ctdf"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

var ErrProviderTable = errors.New("provider table unusable")

// Table maps upper case country codes to their local transport provider
type Table map[string]ctdf.ProviderEntry

// LoadTable reads a provider table, picking the decoder from the file
// extension: .json and .yml/.yaml hold a country code keyed map, .csv holds
// country_code,name,url rows
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProviderTable, err)
	}

	var table Table

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		table, err = parseKeyed(data, json.Unmarshal)
	case ".yml", ".yaml":
		table, err = parseKeyed(data, yaml.Unmarshal)
	case ".csv":
		table, err = parseCSV(data)
	default:
		err = fmt.Errorf("unknown provider table format %q", filepath.Ext(path))
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrProviderTable, path, err)
	}

	return table, nil
}

func parseKeyed(data []byte, unmarshal func([]byte, any) error) (Table, error) {
	var raw map[string]ctdf.ProviderEntry
	if err := unmarshal(data, &raw); err != nil {
		return nil, err
	}

	table := Table{}
	for countryCode, entry := range raw {
		countryCode = strings.ToUpper(strings.TrimSpace(countryCode))
		entry.CountryCode = countryCode

		table[countryCode] = entry
	}

	return table, nil
}

func parseCSV(data []byte) (Table, error) {
	var rows []*ctdf.ProviderEntry
	if err := gocsv.Unmarshal(bytes.NewReader(data), &rows); err != nil {
		return nil, err
	}

	rows = slices.DeleteFunc(rows, func(row *ctdf.ProviderEntry) bool {
		return row == nil || strings.TrimSpace(row.CountryCode) == ""
	})

	table := Table{}
	for _, row := range rows {
		row.CountryCode = strings.ToUpper(strings.TrimSpace(row.CountryCode))
		table[row.CountryCode] = *row
	}

	return table, nil
}

// Lookup returns the provider for the country, or nil
func (t Table) Lookup(countryCode string) *ctdf.ProviderEntry {
	entry, ok := t[strings.ToUpper(countryCode)]
	if !ok {
		return nil
	}

	return &entry
}
