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

	"github.com/urfave/cli/v3"

	"github.com/fridgeware/pantry/pkg/pantry"
	"github.com/fridgeware/pantry/pkg/suggestion"
)

func matchCmd() *cli.Command {
	return &cli.Command{
		Name:      "match",
		Usage:     "Rank catalog recipes for an inventory",
		ArgsUsage: "[INGREDIENT...]",
		Description: `Match the inventory against the recipe catalog and print recipes
sorted by missing ingredients, then match percentage.

The inventory is given with --inventory, as arguments, or one name per
line with --file. With --recipe only that recipe is scored.`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "inventory",
				Aliases: []string{"i"},
				Usage:   "Ingredient names (comma separated or repeated)",
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   `Read ingredient names one per line from a file ("-" for stdin)`,
			},
			&cli.StringFlag{
				Name:  "recipe",
				Usage: "Score a single catalog recipe by ID",
			},
			&cli.BoolFlag{
				Name:  "normalize",
				Usage: "Normalize inventory names first",
			},
			&cli.BoolFlag{
				Name:  "external",
				Usage: "Allow the external classifier during normalization",
			},
			&cli.IntFlag{
				Name:  "min",
				Usage: "Minimum match percentage (default: configuration)",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of recipes, 0 for all (default: configuration)",
			},
			&cli.BoolFlag{
				Name:  "refresh",
				Usage: "Ignore cached suggestions",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			req, err := buildMatchRequest(cmd)
			if err != nil {
				return err
			}

			return withServices(ctx, cmd, func(ctx context.Context, svc *pantry.Services) error {
				if id := cmd.String("recipe"); id != "" {
					rep, err := svc.Suggestions.MatchRecipe(ctx, id, req)
					if err != nil {
						return fmt.Errorf("failed to match recipe %q: %w", id, err)
					}
					return writeOutput(ctx, cmd, rep)
				}

				res, err := svc.Suggestions.Suggest(ctx, req)
				if err != nil {
					return fmt.Errorf("failed to suggest recipes: %w", err)
				}
				return writeOutput(ctx, cmd, res)
			})
		},
	}
}

// buildMatchRequest collects the inventory and filters from cmd.
func buildMatchRequest(cmd *cli.Command) (suggestion.Request, error) {
	req := suggestion.Request{
		Inventory:     append(cmd.StringSlice("inventory"), cmd.Args().Slice()...),
		Normalize:     cmd.Bool("normalize"),
		AllowExternal: cmd.Bool("external"),
		Refresh:       cmd.Bool("refresh"),
	}
	if f := cmd.String("file"); f != "" {
		lines, err := readLines(cmd, f)
		if err != nil {
			return req, err
		}
		req.Inventory = append(req.Inventory, lines...)
	}
	if len(req.Inventory) == 0 {
		return req, fmt.Errorf("inventory is empty: use --inventory, arguments or --file")
	}

	if cmd.IsSet("min") {
		v := cmd.Int("min")
		if v < 0 || v > 100 {
			return req, fmt.Errorf("min must be between 0 and 100, got %d", v)
		}
		req.MinMatchPercentage = &v
	}
	if cmd.IsSet("limit") {
		v := cmd.Int("limit")
		if v < 0 {
			return req, fmt.Errorf("limit must not be negative, got %d", v)
		}
		req.Limit = &v
	}
	return req, nil
}
