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

// Package receipt turns OCR text from supermarket receipts into structured data.
//
// The parser recognizes the layouts printed by common German and Spanish chains:
//
//   - inline lines such as "Milch 1,29"
//   - quantity lines ("3 GO BIO TOMATEN") followed by a unit price line ("á 2,09  6,27")
//   - weighed goods, a name followed by "0,5 kg x 2,99 EUR/kg"
//   - column layouts where names and "1,29 A" price markers are printed apart and
//     have to be paired by position
//
// Alongside items it detects the merchant, the purchase date and the grand total.
// Parsing is pure and total: every input yields a receipt, and lines that fit no
// pattern are reported in UnrecognizedLines.
//
// Usage:
//
//	p := receipt.NewParser(receipt.DefaultConfig())
//	r := p.Parse(text, "")
//	for _, it := range r.Items {
//	    fmt.Println(it.Name, it.Quantity)
//	}
//
// The HTTP handler exposes parsing as POST /v1/receipts/parse and returns a
// Draft: the receipt with an ID the client uses when confirming items.
package receipt
