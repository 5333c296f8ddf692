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

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/fridgeware/pantry/pkg/normalizer"
	"github.com/fridgeware/pantry/pkg/pantry"
	"github.com/fridgeware/pantry/pkg/receipt"
)

// parseResult is a receipt draft with optional normalized item names.
type parseResult struct {
	receipt.Draft `json:",inline" yaml:",inline"`

	Ingredients []*normalizer.Result `json:"ingredients,omitempty" yaml:"ingredients,omitempty"`
}

func parseCmd() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Parse OCR receipt text into a draft",
		ArgsUsage: "[FILE|-]",
		Description: `Extract merchant, date, total and line items from OCR text of a
supermarket receipt. The text is read from FILE, or from stdin when FILE
is omitted or "-".

With --normalize every item name is also mapped to a canonical ingredient.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "merchant",
				Usage: "Known merchant name, used when none is found in the text",
			},
			&cli.BoolFlag{
				Name:  "normalize",
				Usage: "Normalize item names",
			},
			&cli.BoolFlag{
				Name:  "external",
				Usage: "Allow the external classifier during normalization",
			},
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "Keep the OCR text in the output",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			text, err := readInput(cmd, cmd.Args().First())
			if err != nil {
				return err
			}
			if strings.TrimSpace(text) == "" {
				return fmt.Errorf("receipt text is empty")
			}

			return withServices(ctx, cmd, func(ctx context.Context, svc *pantry.Services) error {
				parsed := svc.Parser.Parse(text, cmd.String("merchant"))
				if !cmd.Bool("raw") {
					parsed.RawText = ""
				}

				res := parseResult{Draft: *receipt.NewDraft(parsed, version, time.Now())}
				if cmd.Bool("normalize") && len(parsed.Items) > 0 {
					res.Ingredients, err = svc.Normalizer.NormalizeBatch(ctx, parsed.Names(), cmd.Bool("external"))
					if err != nil {
						return fmt.Errorf("failed to normalize items: %w", err)
					}
				}
				return writeOutput(ctx, cmd, res)
			})
		},
	}
}

// readInput returns the contents of path, or of stdin for "" and "-".
func readInput(cmd *cli.Command, path string) (string, error) {
	if path == "" || path == "-" {
		r := cmd.Root().Reader
		if r == nil {
			r = os.Stdin
		}
		b, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(b), nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %q: %w", path, err)
	}
	return string(b), nil
}

// readLines returns the non-blank lines of path.
func readLines(cmd *cli.Command, path string) ([]string, error) {
	text, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}
	var out []string
	for line := range strings.Lines(text) {
		if s := strings.TrimSpace(line); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}
