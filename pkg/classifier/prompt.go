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

package classifier

import (
	"fmt"
	"strings"

	"github.com/fridgeware/pantry/pkg/defaults"
	"github.com/fridgeware/pantry/pkg/normalizer"
)

const promptTemplate = `You map grocery receipt product names to generic ingredient names.

Known ingredients:
%s

Product name: %q

Examples:
- "Bio EHL Champignon" -> mushroom
- "Tomate Cherry 500g" -> tomato

Answer with exactly one ingredient name from the list, in lowercase, with no explanation.
If none of them fits, answer "%s".`

func buildPrompt(vocab *normalizer.Vocabulary, name string) string {
	names := vocab.Names()
	if len(names) > defaults.ClassifierVocabularyHint {
		names = names[:defaults.ClassifierVocabularyHint]
	}
	var b strings.Builder
	for _, n := range names {
		b.WriteString("- ")
		b.WriteString(n)
		b.WriteByte('\n')
	}
	return fmt.Sprintf(promptTemplate, strings.TrimRight(b.String(), "\n"), name, unknownAnswer)
}
