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

	"github.com/fridgeware/pantry/pkg/defaults"
	"github.com/fridgeware/pantry/pkg/pantry"
)

func normalizeCmd() *cli.Command {
	return &cli.Command{
		Name:      "normalize",
		Usage:     "Map scanned product names to canonical ingredients",
		ArgsUsage: "NAME...",
		Description: `Resolve each NAME through the normalization cache and the cascade
exact, synonym, partial, fuzzy and (with --external) the configured
classifier. Names can also be read one per line from --file.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "external",
				Usage: "Allow the external classifier",
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   `Read names one per line from a file ("-" for stdin)`,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			names := cmd.Args().Slice()
			if f := cmd.String("file"); f != "" {
				lines, err := readLines(cmd, f)
				if err != nil {
					return err
				}
				names = append(names, lines...)
			}
			if len(names) == 0 {
				return fmt.Errorf("at least one name is required")
			}
			if len(names) > defaults.MaxBatchSize {
				return fmt.Errorf("too many names: %d (max %d)", len(names), defaults.MaxBatchSize)
			}

			return withServices(ctx, cmd, func(ctx context.Context, svc *pantry.Services) error {
				results, err := svc.Normalizer.NormalizeBatch(ctx, names, cmd.Bool("external"))
				if err != nil {
					return fmt.Errorf("failed to normalize: %w", err)
				}
				return writeOutput(ctx, cmd, svc.Normalizer.NewReport(results))
			})
		},
	}
}

func verifyCmd() *cli.Command {
	return &cli.Command{
		Name:      "verify",
		Usage:     "Record a user-verified mapping",
		ArgsUsage: "SCANNED_NAME CANONICAL_NAME",
		Description: `Store CANONICAL_NAME as the verified mapping of SCANNED_NAME. Verified
mappings never expire and are never replaced by automatic results.
Use --db to persist the mapping.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				return fmt.Errorf("expected SCANNED_NAME and CANONICAL_NAME, got %d arguments", cmd.Args().Len())
			}

			return withServices(ctx, cmd, func(ctx context.Context, svc *pantry.Services) error {
				res, err := svc.Normalizer.Verify(ctx, cmd.Args().Get(0), cmd.Args().Get(1))
				if err != nil {
					return fmt.Errorf("failed to verify mapping: %w", err)
				}
				return writeOutput(ctx, cmd, res)
			})
		},
	}
}
