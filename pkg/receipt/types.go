// Copyright (c) 2026, The Fridgeware Pantry Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package receipt

// DefaultCurrency is assigned to every parsed receipt.
const DefaultCurrency = "EUR"

// Item is one product line recognized on a receipt.
type Item struct {
	Name       string   `json:"name" yaml:"name"`
	Quantity   int      `json:"quantity" yaml:"quantity"`
	Price      *float64 `json:"price" yaml:"price"`
	ExpiryDate *string  `json:"expiryDate,omitempty" yaml:"expiryDate,omitempty"`
	Category   *string  `json:"category,omitempty" yaml:"category,omitempty"`
}

// ParsedReceipt is the structured result of parsing OCR text.
type ParsedReceipt struct {
	Items             []Item   `json:"items" yaml:"items"`
	Merchant          *string  `json:"merchant" yaml:"merchant"`
	PurchaseDate      *string  `json:"purchaseDate" yaml:"purchaseDate"`
	Total             *float64 `json:"total" yaml:"total"`
	Currency          string   `json:"currency" yaml:"currency"`
	UnrecognizedLines []string `json:"unrecognizedLines" yaml:"unrecognizedLines"`
	RawText           string   `json:"rawText,omitempty" yaml:"rawText,omitempty"`
}

// Names returns the item names in receipt order.
func (p *ParsedReceipt) Names() []string {
	names := make([]string, len(p.Items))
	for i, it := range p.Items {
		names[i] = it.Name
	}
	return names
}

// Config holds the keyword data the parser is built with.
type Config struct {
	// MerchantKeywords are matched case-insensitively as substrings of a line.
	MerchantKeywords []string `json:"merchantKeywords" yaml:"merchantKeywords"`

	// MerchantMarkers are matched case-sensitively, for address tokens such as "Str."
	// whose lowercase form is too common.
	MerchantMarkers []string `json:"merchantMarkers" yaml:"merchantMarkers"`

	// SkipKeywords mark metadata lines (payment, tax, terminal boilerplate).
	// Matched case-sensitively as substrings.
	SkipKeywords []string `json:"skipKeywords" yaml:"skipKeywords"`

	// Currency is reported on every receipt.
	Currency string `json:"currency" yaml:"currency"`
}

// DefaultConfig returns the keyword lists for the supported German and Spanish chains.
func DefaultConfig() Config {
	return Config{
		MerchantKeywords: []string{
			"center", "rewe", "edeka", "ahorra", "ahorramas", "mercadona",
			"carrefour", "lidl", "aldi", "dia", "netto", "kaiserin",
		},
		MerchantMarkers: []string{"Str.", "Damm"},
		SkipKeywords: []string{
			// German payment and tax boilerplate
			"Tel", "UID", "Steuer", "Geg.", "TSE-", "Zahlung", "Beleg", "Bitte",
			"Netto", "Brutto", "Gesamtbetrag", "Posten:", "SUMME", "TOTAL",
			"Visa", "Contactless", "Datum:", "Uhrzeit:", "Beleg-Nr", "Trace-Nr",
			"Terminal", "Pos-Info", "AS-", "Capt.", "AID", "EMV-", "ProC-Code",
			"Betrag", "Bezahlung", "erfolgt", "aufbewahren", "Kundenbeleg",
			// Spanish tickets
			"CIF:", "IVA", "Gracias", "TICKET:", "TOTAL ENTREGADO", "CAMBIO",
			"ATENCION", "CLIENTE", "CAJA", "TIQUE", "S.A.", "S.L.", "NIF",
			"FACTURA", "ALBARAN", "CALLE", "AVENIDA", "AVDA", "PASEO", "PLAZA", "C/",
			// loyalty footers
			"Noch kein", "REWE", "Book", "anmelden", "sammeln", "mmeln",
			"Kasse:", "Bed.", "Bon-Nr", "Markt:",
			// totals and card slips
			"GESAMT", "ERHALTEN", "KARTE", "K-U-N-D-E", "KOPENICK", "KÖPENICK",
		},
		Currency: DefaultCurrency,
	}
}
