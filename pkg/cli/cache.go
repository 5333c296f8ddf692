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

	"github.com/fridgeware/pantry/pkg/header"
	"github.com/fridgeware/pantry/pkg/pantry"
)

// pruneReport is the output of cache prune.
type pruneReport struct {
	header.Header `json:",inline" yaml:",inline"`

	Removed pantry.PruneResult `json:"removed" yaml:"removed"`
}

func cacheCmd() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Maintain the normalization and suggestion caches",
		Commands: []*cli.Command{
			{
				Name:  "prune",
				Usage: "Delete expired mappings and stale suggestions",
				Description: `Remove automatic normalization mappings older than the cache TTL and
suggestion batches past their TTL. Verified mappings are kept.`,
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withServices(ctx, cmd, func(ctx context.Context, svc *pantry.Services) error {
						res, err := svc.Prune(ctx)
						if err != nil {
							return fmt.Errorf("failed to prune caches: %w", err)
						}
						rep := pruneReport{Removed: *res}
						rep.Init(header.KindCachePruneResult, version)
						return writeOutput(ctx, cmd, rep)
					})
				},
			},
			{
				Name:      "forget",
				Usage:     "Delete the cached mapping of scanned names",
				ArgsUsage: "SCANNED_NAME...",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() == 0 {
						return fmt.Errorf("at least one scanned name is required")
					}
					return withServices(ctx, cmd, func(ctx context.Context, svc *pantry.Services) error {
						for _, n := range cmd.Args().Slice() {
							if err := svc.Normalizer.Forget(ctx, n); err != nil {
								return fmt.Errorf("failed to forget %q: %w", n, err)
							}
						}
						return nil
					})
				},
			},
			{
				Name:  "clear",
				Usage: "Delete every cached mapping, verified ones included",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withServices(ctx, cmd, func(ctx context.Context, svc *pantry.Services) error {
						if err := svc.Normalizer.ClearCache(ctx); err != nil {
							return fmt.Errorf("failed to clear mappings: %w", err)
						}
						return nil
					})
				},
			},
		},
	}
}
