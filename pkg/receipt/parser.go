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

import (
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// maxLinePrice bounds prices accepted from a single product line.
const maxLinePrice = 1000

// totalLookahead is how many lines after a total label may carry its amount.
const totalLookahead = 4

var (
	datePattern = regexp.MustCompile(`(\d{2}[./-]\d{2}[./-]\d{4})|(\d{4}-\d{2}-\d{2})`)

	totalSameLine = regexp.MustCompile(`(\d+)[,.](\d{2})`)
	bareAmount    = regexp.MustCompile(`^(\d+)[,.](\d{2})$`)

	// price markers printed on their own line by the REWE column layout
	priceA = regexp.MustCompile(`^(\d+),(\d{2})\s+A$`)
	priceB = regexp.MustCompile(`^(\d+),?\s*(\d{2})\s+B$`)

	inlineItem   = regexp.MustCompile(`^(.+?)\s+(\d+)[,.](\d{2})\s*€?$`)
	quantityItem = regexp.MustCompile(`^(\d+)\s+([A-ZÄÖÜ][A-ZÄÖÜa-zäöü&.\s-]+)$`)
	unitPrice    = regexp.MustCompile(`^á\s*(\d+)[,.](\d{2})(?:\s+(\d+)[,.](\d{2}))?$`)
	nameOnly     = regexp.MustCompile(`^([A-ZÄÖÜ&][A-ZÄÖÜa-zäöü&.\s-]+)$`)
	nameWithSpec = regexp.MustCompile(`^([A-ZÄÖÜ&][A-ZÄÖÜa-zäöü&.\s-]+\d+[,.]\d+%?)$`)
	weightLine   = regexp.MustCompile(`^\s*(\d+),?\s*(\d+)\s*kg\s*x\s*(\d+),(\d{2})\s*EUR/kg`)

	postcode     = regexp.MustCompile(`\b\d{5}\b`)
	clockTime    = regexp.MustCompile(`\d{2}:\d{2}`)
	longNumber   = regexp.MustCompile(`^\d{5,}$`)
	bulletPrefix = regexp.MustCompile(`^[#*]+`)
	dateOnly     = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`)
	codePrefix   = regexp.MustCompile(`^[A-Z]{2,}-\d`)
)

// pendingNameStopwords keep address and payment fragments out of deferred pairing.
var pendingNameStopwords = []string{"berlin", "debit", "nr.", "netto", "onlin"}

// Parser extracts structured receipts from OCR text. A Parser holds only
// immutable configuration and is safe for concurrent use.
type Parser struct {
	cfg     Config
	logger  *slog.Logger
	version string
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used for parse diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithVersion sets the version stamped on drafts returned by the HTTP handler.
func WithVersion(v string) Option {
	return func(p *Parser) {
		p.version = v
	}
}

// NewParser returns a parser for cfg. Empty keyword lists fall back to the defaults.
func NewParser(cfg Config, opts ...Option) *Parser {
	def := DefaultConfig()
	if len(cfg.MerchantKeywords) == 0 {
		cfg.MerchantKeywords = def.MerchantKeywords
	}
	if cfg.MerchantMarkers == nil {
		cfg.MerchantMarkers = def.MerchantMarkers
	}
	if len(cfg.SkipKeywords) == 0 {
		cfg.SkipKeywords = def.SkipKeywords
	}
	if cfg.Currency == "" {
		cfg.Currency = def.Currency
	}

	lower := make([]string, 0, len(cfg.MerchantKeywords))
	for _, k := range cfg.MerchantKeywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			lower = append(lower, k)
		}
	}
	cfg.MerchantKeywords = lower

	p := &Parser{cfg: cfg, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Config returns the parser configuration.
func (p *Parser) Config() Config {
	return p.cfg
}

// Parse converts OCR text into a receipt. It never fails: anything it cannot
// place ends up in UnrecognizedLines. When knownMerchant is non-empty, lines
// equal to it are not treated as items, and it is reported as the merchant if
// none is detected in the text.
func (p *Parser) Parse(rawText, knownMerchant string) *ParsedReceipt {
	start := time.Now()
	lines := splitLines(rawText)

	out := &ParsedReceipt{
		Items:             []Item{},
		Currency:          p.cfg.Currency,
		UnrecognizedLines: []string{},
		RawText:           rawText,
	}

	if m, ok := p.FindMerchant(lines); ok {
		out.Merchant = &m
	} else if km := strings.TrimSpace(knownMerchant); km != "" {
		out.Merchant = &km
	}
	if d, ok := FindDate(rawText); ok {
		out.PurchaseDate = &d
	}
	if t, ok := FindTotal(lines); ok {
		out.Total = &t
	}

	skipNames := make([]string, 0, 2)
	if out.Merchant != nil {
		skipNames = append(skipNames, *out.Merchant)
	}
	if km := strings.TrimSpace(knownMerchant); km != "" {
		skipNames = append(skipNames, km)
	}

	out.Items, out.UnrecognizedLines = p.parseItems(lines, skipNames)

	parseDuration.Observe(time.Since(start).Seconds())
	itemsPerReceipt.Observe(float64(len(out.Items)))
	unrecognizedLinesTotal.Add(float64(len(out.UnrecognizedLines)))

	p.logger.Debug("receipt parsed",
		"lines", len(lines),
		"items", len(out.Items),
		"unrecognized", len(out.UnrecognizedLines),
		"merchant_detected", out.Merchant != nil,
		"total_detected", out.Total != nil)

	return out
}

// FindMerchant returns the longest line carrying a merchant keyword or marker,
// measured in characters. The first line wins on equal length.
func (p *Parser) FindMerchant(lines []string) (string, bool) {
	best, bestLen := "", 0
	for _, line := range lines {
		if !p.isMerchantLine(line) {
			continue
		}
		t := strings.TrimSpace(line)
		if n := utf8.RuneCountInString(t); n > bestLen {
			best, bestLen = t, n
		}
	}
	return best, best != ""
}

func (p *Parser) isMerchantLine(line string) bool {
	lower := strings.ToLower(line)
	for _, k := range p.cfg.MerchantKeywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	for _, m := range p.cfg.MerchantMarkers {
		if m != "" && strings.Contains(line, m) {
			return true
		}
	}
	return false
}

// FindDate returns the first DD.MM.YYYY, DD/MM/YYYY, DD-MM-YYYY or YYYY-MM-DD
// token in text. The value is returned as printed, without reformatting.
func FindDate(text string) (string, bool) {
	m := datePattern.FindString(text)
	if m == "" {
		return "", false
	}
	if len(m) > 10 {
		m = m[:10]
	}
	return m, true
}

// FindTotal returns the largest positive amount attached to a total label
// (a line starting with SUMME or TOTAL, or containing GESAMT). The amount is
// read from the label line itself or from one of the next four lines.
// Taking the maximum prefers the grand total over subtotals and card slips.
func FindTotal(lines []string) (float64, bool) {
	best := 0.0
	for i, line := range lines {
		upper := strings.ToUpper(strings.TrimSpace(line))
		if !strings.HasPrefix(upper, "SUMME") && !strings.HasPrefix(upper, "TOTAL") &&
			!strings.Contains(upper, "GESAMT") {
			continue
		}

		if m := totalSameLine.FindStringSubmatch(line); m != nil {
			if v := amount(m[1], m[2]); v > best {
				best = v
			}
		}

		end := min(i+1+totalLookahead, len(lines))
		for j := i + 1; j < end; j++ {
			if m := bareAmount.FindStringSubmatch(strings.TrimSpace(lines[j])); m != nil {
				if v := amount(m[1], m[2]); v > best {
					best = v
				}
			}
		}
	}
	return best, best > 0
}

// ShouldSkip reports whether line is receipt metadata rather than a product:
// blank lines, payment and tax boilerplate, clock times, addresses, long
// numeric codes, separators and bare dates.
func (p *Parser) ShouldSkip(line string) bool {
	if line == "" {
		return true
	}
	for _, k := range p.cfg.SkipKeywords {
		if strings.Contains(line, k) {
			return true
		}
	}
	switch {
	case clockTime.MatchString(line):
		return true
	case postcode.MatchString(line) && hasLetter(line):
		return true
	case longNumber.MatchString(line),
		bulletPrefix.MatchString(line),
		dateOnly.MatchString(line),
		codePrefix.MatchString(line):
		return true
	}
	return line == "EUR"
}

// parseItems walks the lines once. Names and prices printed in separate
// columns are collected on the side and paired by position at the end.
func (p *Parser) parseItems(lines, skipNames []string) ([]Item, []string) {
	items := []Item{}
	unrecognized := []string{}
	var pendingNames []string
	var pendingPrices []float64

	for i := 0; i < len(lines); {
		line := lines[i]

		if equalsAnyFold(line, skipNames) || p.ShouldSkip(line) {
			i++
			continue
		}

		if m := priceA.FindStringSubmatch(line); m != nil {
			pendingPrices = append(pendingPrices, amount(m[1], m[2]))
			i++
			continue
		}
		if m := priceB.FindStringSubmatch(line); m != nil {
			pendingPrices = append(pendingPrices, amount(m[1], m[2]))
			i++
			continue
		}

		if m := inlineItem.FindStringSubmatch(line); m != nil &&
			!strings.Contains(line, "SUMME") && !strings.Contains(line, "TOTAL") {
			name := strings.TrimSpace(m[1])
			price := amount(m[2], m[3])
			if utf8.RuneCountInString(name) > 2 && price > 0 && price < maxLinePrice {
				items = append(items, newItem(name, 1, &price))
				i++
				continue
			}
		}

		if i+1 < len(lines) {
			if m := quantityItem.FindStringSubmatch(line); m != nil {
				if u := unitPrice.FindStringSubmatch(lines[i+1]); u != nil {
					qty, _ := strconv.Atoi(m[1])
					if qty < 1 {
						qty = 1
					}
					var price float64
					if u[3] != "" {
						price = amount(u[3], u[4])
					} else {
						price = roundCents(amount(u[1], u[2]) * float64(qty))
					}
					name := strings.TrimSpace(m[2])
					if qty > 1 {
						name += " (" + strconv.Itoa(qty) + "x)"
					}
					items = append(items, newItem(name, qty, &price))
					i += 2
					continue
				}
			}
		}

		if nameOnly.MatchString(line) || nameWithSpec.MatchString(line) {
			name := strings.TrimSpace(line)
			if i+1 < len(lines) {
				next := lines[i+1]

				if w := weightLine.FindStringSubmatch(next); w != nil {
					weight, err := strconv.ParseFloat(w[1]+"."+w[2], 64)
					if err != nil || weight == 0 {
						weight = 1
					}
					price := roundCents(amount(w[3], w[4]) * weight)
					label := name + " (" + strconv.FormatFloat(weight, 'f', -1, 64) + "kg)"
					items = append(items, newItem(label, 1, &price))
					i += 2
					continue
				}

				// a postcode on the next line means this is a street or shop name
				if postcode.MatchString(next) {
					i++
					continue
				}

				if m := bareAmount.FindStringSubmatch(next); m != nil {
					price := amount(m[1], m[2])
					if price > 0 && price < maxLinePrice {
						items = append(items, newItem(name, 1, &price))
						i += 2
						continue
					}
				}
			}

			if utf8.RuneCountInString(name) > 3 && !containsAny(strings.ToLower(name), pendingNameStopwords) {
				pendingNames = append(pendingNames, name)
				i++
				continue
			}
		}

		if utf8.RuneCountInString(line) > 1 {
			unrecognized = append(unrecognized, line)
		}
		i++
	}

	n := min(len(pendingNames), len(pendingPrices))
	for k := 0; k < n; k++ {
		price := pendingPrices[k]
		items = append(items, newItem(pendingNames[k], 1, &price))
	}
	if len(pendingPrices) == 0 {
		for _, name := range pendingNames {
			items = append(items, newItem(name, 1, nil))
		}
	}

	return items, unrecognized
}

func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = strings.TrimSpace(l)
	}
	return lines
}

func newItem(name string, qty int, price *float64) Item {
	return Item{Name: name, Quantity: qty, Price: price}
}

// amount joins integer and cent digits into a value.
func amount(units, cents string) float64 {
	v, err := strconv.ParseFloat(units+"."+cents, 64)
	if err != nil {
		return 0
	}
	return v
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func hasLetter(s string) bool {
	for _, r := range s {
		if r < unicode.MaxASCII && unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func equalsAnyFold(s string, candidates []string) bool {
	for _, c := range candidates {
		if strings.EqualFold(s, c) {
			return true
		}
	}
	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
