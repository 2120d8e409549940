package tariff

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseTariffTable extracts distributor tariff rows from an HTML rate page
// (the format published by the distributors and mirrored by ANEEL). It looks
// for the first table whose rows carry at least four cells:
// distributor, state, retail tariff and fio B, with Brazilian decimal commas.
//
// The parser takes a reader so tests and the upload endpoint never touch the
// network.
func ParseTariffTable(r io.Reader) ([]DistributorTariff, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse tariff HTML: %w", err)
	}

	var rows []DistributorTariff
	doc.Find("table tr").Each(func(i int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() < 4 {
			return // header row or layout noise
		}

		name := strings.TrimSpace(cells.Eq(0).Text())
		uf := strings.ToUpper(strings.TrimSpace(cells.Eq(1).Text()))
		energy, errE := parseBRLNumber(cells.Eq(2).Text())
		wire, errW := parseBRLNumber(cells.Eq(3).Text())
		if name == "" || errE != nil || errW != nil {
			return
		}

		row := DistributorTariff{
			Distributor: name,
			State:       uf,
			EnergyKWh:   energy,
			WireKWh:     wire,
		}
		if cells.Length() > 4 {
			row.UpdatedAt = strings.TrimSpace(cells.Eq(4).Text())
		}
		rows = append(rows, row)
	})

	if len(rows) == 0 {
		return nil, fmt.Errorf("no tariff rows found in document")
	}
	return rows, nil
}

// parseBRLNumber accepts "0,89", "R$ 0,89" or plain "0.89".
func parseBRLNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	// Brazilian format: dots as thousand separators, comma as decimal.
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	return strconv.ParseFloat(s, 64)
}
