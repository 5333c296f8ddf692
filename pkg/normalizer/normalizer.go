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

package normalizer

import (
	"context"
	"hash/fnv"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/fridgeware/pantry/pkg/defaults"
	"github.com/fridgeware/pantry/pkg/errors"
	"github.com/fridgeware/pantry/pkg/similarity"
)

// minPartialLen keeps one- and two-letter fragments from matching as substrings.
const minPartialLen = 3

const lockStripes = 64

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithStore sets the cache store. A nil store disables caching.
func WithStore(s Store) Option {
	return func(n *Normalizer) {
		n.store = s
	}
}

// WithClassifier sets the external classification strategy.
func WithClassifier(c Classifier) Option {
	return func(n *Normalizer) {
		n.classifier = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(n *Normalizer) {
		if l != nil {
			n.logger = l
		}
	}
}

// WithClock overrides time.Now, used by tests to age cache entries.
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) {
		if now != nil {
			n.now = now
		}
	}
}

// WithCacheTTL sets how long automatic mappings stay valid.
func WithCacheTTL(ttl time.Duration) Option {
	return func(n *Normalizer) {
		if ttl > 0 {
			n.cacheTTL = ttl
		}
	}
}

// WithFuzzyThreshold sets the similarity a fuzzy match must exceed.
func WithFuzzyThreshold(t float64) Option {
	return func(n *Normalizer) {
		if t > 0 && t < 1 {
			n.fuzzyThreshold = t
		}
	}
}

// WithLowConfidenceFloor enables a last-resort fuzzy result: after the external
// step fails, a best score above floor is still returned as a fuzzy match.
// Zero disables it.
func WithLowConfidenceFloor(floor float64) Option {
	return func(n *Normalizer) {
		if floor >= 0 && floor < 1 {
			n.lowConfidenceFloor = floor
		}
	}
}

// WithExternalMinScore only consults the classifier when the best fuzzy score
// exceeds min. Zero consults it whenever the caller allows it.
func WithExternalMinScore(min float64) Option {
	return func(n *Normalizer) {
		if min >= 0 && min < 1 {
			n.externalMinScore = min
		}
	}
}

// WithClassifierTimeout bounds each classifier call.
func WithClassifierTimeout(d time.Duration) Option {
	return func(n *Normalizer) {
		if d > 0 {
			n.classifierTimeout = d
		}
	}
}

// WithBatchConcurrency caps the workers used by NormalizeBatch.
func WithBatchConcurrency(c int) Option {
	return func(n *Normalizer) {
		if c > 0 {
			n.batchConcurrency = c
		}
	}
}

// WithExternalByDefault consults the classifier on every call, whatever the
// caller passes as allowExternal.
func WithExternalByDefault(on bool) Option {
	return func(n *Normalizer) {
		n.externalByDefault = on
	}
}

// WithVersion is reported in normalization report headers.
func WithVersion(v string) Option {
	return func(n *Normalizer) {
		n.version = v
	}
}

// Normalizer maps scanned product names to canonical ingredients.
// It is safe for concurrent use.
type Normalizer struct {
	vocab      *Vocabulary
	store      Store
	classifier Classifier
	logger     *slog.Logger
	now        func() time.Time
	version    string

	cacheTTL           time.Duration
	fuzzyThreshold     float64
	lowConfidenceFloor float64
	externalMinScore   float64
	classifierTimeout  time.Duration
	batchConcurrency   int
	externalByDefault  bool

	flight singleflight.Group
	locks  [lockStripes]sync.Mutex
}

// New returns a Normalizer over vocab. Without options it caches in memory,
// has no external classifier and uses the package defaults.
func New(vocab *Vocabulary, opts ...Option) *Normalizer {
	if vocab == nil {
		vocab = NewVocabulary(nil)
	}
	n := &Normalizer{
		vocab:             vocab,
		store:             NewMemoryStore(),
		logger:            slog.Default(),
		now:               time.Now,
		cacheTTL:          defaults.NormalizationCacheTTL,
		fuzzyThreshold:    defaults.FuzzyThreshold,
		classifierTimeout: defaults.ClassifierTimeout,
		batchConcurrency:  defaults.BatchConcurrency,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Vocabulary returns the vocabulary the normalizer was built with.
func (n *Normalizer) Vocabulary() *Vocabulary {
	return n.vocab
}

// CacheKey returns the key under which a scanned name is cached.
func CacheKey(scannedName string) string {
	return similarity.Normalize(scannedName)
}

// Normalize resolves scannedName through the cache and then the cascade
// exact → synonym → partial → fuzzy → external → none. The external step runs
// when allowExternal is set or the normalizer was built WithExternalByDefault.
// The only error is INVALID_INPUT for an empty name; every other failure degrades.
func (n *Normalizer) Normalize(ctx context.Context, scannedName string, allowExternal bool) (*Result, error) {
	key := CacheKey(scannedName)
	if key == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "scanned name is empty")
	}
	allowExternal = allowExternal || n.externalByDefault

	if cached := n.lookup(ctx, key); cached != nil {
		cached.ScannedName = scannedName
		normalizationsTotal.WithLabelValues(cached.Method.String()).Inc()
		return cached, nil
	}

	flightKey := key
	if allowExternal {
		flightKey = "ext\x00" + key
	}
	v, _, _ := n.flight.Do(flightKey, func() (any, error) {
		// A flight that finished between our lookup and Do has already cached its result.
		if cached := n.lookup(ctx, key); cached != nil {
			return cached, nil
		}
		res, cacheable := n.cascade(ctx, key, scannedName, allowExternal)
		if cacheable {
			n.write(ctx, key, res)
		}
		return res, nil
	})

	shared := v.(*Result)
	res := *shared
	if shared.NormalizedName != nil {
		name := *shared.NormalizedName
		res.NormalizedName = &name
	}
	res.ScannedName = scannedName
	normalizationsTotal.WithLabelValues(res.Method.String()).Inc()
	return &res, nil
}

// NormalizeBatch normalizes names in parallel and returns results in input order.
// It fails with INVALID_INPUT before doing any work if a name is empty.
func (n *Normalizer) NormalizeBatch(ctx context.Context, names []string, allowExternal bool) ([]*Result, error) {
	for i, name := range names {
		if CacheKey(name) == "" {
			return nil, errors.NewWithContext(errors.ErrCodeInvalidInput, "scanned name is empty",
				map[string]any{"index": i})
		}
	}

	results := make([]*Result, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(n.batchConcurrency)

	for i, name := range names {
		g.Go(func() error {
			res, err := n.Normalize(gctx, name, allowExternal)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Lookup returns the cached result for scannedName without running the cascade.
func (n *Normalizer) Lookup(ctx context.Context, scannedName string) (*Result, bool) {
	key := CacheKey(scannedName)
	if key == "" {
		return nil, false
	}
	res := n.lookup(ctx, key)
	if res == nil {
		return nil, false
	}
	res.ScannedName = scannedName
	return res, true
}

// Verify records a user correction. The mapping takes precedence over the cascade
// from now on and is never replaced by an automatic result.
func (n *Normalizer) Verify(ctx context.Context, scannedName, normalizedName string) (*Result, error) {
	key := CacheKey(scannedName)
	if key == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "scanned name is empty")
	}
	canonical := strings.TrimSpace(normalizedName)
	if canonical == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "normalized name is empty")
	}
	if n.store == nil {
		return nil, errors.New(errors.ErrCodeCacheUnavailable, "normalization cache is disabled")
	}

	res := Result{
		ScannedName:    scannedName,
		NormalizedName: &canonical,
		Confidence:     ConfidenceExact,
		Method:         MethodExact,
	}
	if ing, _, ok := n.vocab.Resolve(canonical); ok {
		res.Category = ing.Category
	}

	mu := n.lock(key)
	mu.Lock()
	defer mu.Unlock()

	err := n.store.Put(ctx, key, &Entry{
		Result:         res,
		Timestamp:      n.now(),
		VerifiedByUser: true,
	})
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeCacheUnavailable, "failed to store verified mapping", err,
			map[string]any{"key": key})
	}

	n.logger.Info("verified normalization", "scannedName", scannedName, "normalizedName", canonical)
	return &res, nil
}

// Forget drops the cached mapping for scannedName, verified or not.
func (n *Normalizer) Forget(ctx context.Context, scannedName string) error {
	key := CacheKey(scannedName)
	if key == "" {
		return errors.New(errors.ErrCodeInvalidInput, "scanned name is empty")
	}
	if n.store == nil {
		return nil
	}
	mu := n.lock(key)
	mu.Lock()
	defer mu.Unlock()
	if err := n.store.Delete(ctx, key); err != nil {
		return errors.Wrap(errors.ErrCodeCacheUnavailable, "failed to delete mapping", err)
	}
	return nil
}

// ClearCache removes every cached mapping.
func (n *Normalizer) ClearCache(ctx context.Context) error {
	if n.store == nil {
		return nil
	}
	if err := n.store.Clear(ctx); err != nil {
		return errors.Wrap(errors.ErrCodeCacheUnavailable, "failed to clear mappings", err)
	}
	return nil
}

// PruneExpired deletes automatic mappings older than the cache TTL from
// stores that support it. Verified mappings are kept.
func (n *Normalizer) PruneExpired(ctx context.Context) (int, error) {
	ps, ok := n.store.(PruningStore)
	if !ok {
		return 0, nil
	}
	removed, err := ps.DeleteExpired(ctx, n.now().Add(-n.cacheTTL))
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeCacheUnavailable, "failed to prune mappings", err)
	}
	if removed > 0 {
		n.logger.Info("pruned expired mappings", "count", removed)
	}
	return removed, nil
}

func (n *Normalizer) lock(key string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return &n.locks[h.Sum32()%lockStripes]
}

func (n *Normalizer) lookup(ctx context.Context, key string) *Result {
	if n.store == nil {
		return nil
	}
	e, err := n.store.Get(ctx, key)
	if err != nil {
		normalizerCacheLookups.WithLabelValues("error").Inc()
		n.logger.Warn("normalization cache read failed", "key", key, "error", err)
		return nil
	}
	if e == nil {
		normalizerCacheLookups.WithLabelValues("miss").Inc()
		return nil
	}
	if e.Expired(n.now(), n.cacheTTL) {
		normalizerCacheLookups.WithLabelValues("expired").Inc()
		n.logger.Debug("normalization cache entry expired", "key", key, "timestamp", e.Timestamp)
		return nil
	}
	normalizerCacheLookups.WithLabelValues("hit").Inc()
	n.logger.Debug("normalization cache hit", "key", key, "normalizedName", e.Result.Name())
	res := cloneEntry(e).Result
	return &res
}

func (n *Normalizer) write(ctx context.Context, key string, res *Result) {
	if n.store == nil {
		return
	}

	mu := n.lock(key)
	mu.Lock()
	defer mu.Unlock()

	existing, err := n.store.Get(ctx, key)
	if err != nil {
		n.logger.Warn("normalization cache read failed", "key", key, "error", err)
		return
	}
	if existing != nil && existing.VerifiedByUser {
		return
	}

	err = n.store.Put(ctx, key, &Entry{Result: *res, Timestamp: n.now()})
	if err != nil {
		n.logger.Warn("normalization cache write failed", "key", key, "error", err)
	}
}

type candidate struct {
	idx   int
	score float64
}

// cascade runs the matching strategies on a cache miss. The second return is false
// when the result was degraded by a classifier failure and should not be cached.
func (n *Normalizer) cascade(ctx context.Context, key, scannedName string, allowExternal bool) (*Result, bool) {
	cleaned := similarity.Normalize(CleanMarketingTerms(scannedName))
	if cleaned == "" {
		cleaned = key
	}
	if cleaned != key {
		n.logger.Debug("cleaned marketing terms", "scannedName", scannedName, "cleaned", cleaned)
	}

	if idx, ok := n.vocab.exact[cleaned]; ok {
		return n.found(scannedName, idx, ConfidenceExact, MethodExact), true
	}
	if idx, ok := n.vocab.synonyms[cleaned]; ok {
		return n.found(scannedName, idx, ConfidenceSynonym, MethodSynonym), true
	}
	if idx, ok := n.partial(cleaned); ok {
		return n.found(scannedName, idx, ConfidencePartial, MethodPartial), true
	}

	best := n.fuzzy(cleaned)
	if best.idx >= 0 && best.score > n.fuzzyThreshold {
		return n.found(scannedName, best.idx, best.score, MethodFuzzy), true
	}

	cacheable := true
	if allowExternal && n.classifier != nil && (n.externalMinScore == 0 || best.score > n.externalMinScore) {
		res, err := n.external(ctx, scannedName)
		if err != nil {
			cacheable = false
		} else if res != nil {
			return res, true
		}
	}

	if n.lowConfidenceFloor > 0 && best.idx >= 0 && best.score > n.lowConfidenceFloor {
		return n.found(scannedName, best.idx, best.score, MethodFuzzy), cacheable
	}

	return &Result{ScannedName: scannedName, Method: MethodNone}, cacheable
}

func (n *Normalizer) found(scannedName string, idx int, confidence float64, m Method) *Result {
	e := n.vocab.entries[idx]
	name := e.Name
	return &Result{
		ScannedName:    scannedName,
		NormalizedName: &name,
		Category:       e.Category,
		Confidence:     confidence,
		Method:         m,
	}
}

// partial returns the first entry whose name or synonym contains, or is contained
// in, the cleaned scanned name.
func (n *Normalizer) partial(cleaned string) (int, bool) {
	contains := func(t term) bool {
		if len(t.norm) >= minPartialLen && strings.Contains(cleaned, t.norm) {
			return true
		}
		return len(cleaned) >= minPartialLen && strings.Contains(t.norm, cleaned)
	}

	for idx, e := range n.vocab.entries {
		if contains(e.name) {
			return idx, true
		}
		for _, s := range e.synonyms {
			if contains(s) {
				return idx, true
			}
		}
	}
	return -1, false
}

// fuzzy scores every entry by its best-matching name or synonym.
// Strict comparison keeps the earliest entry on ties.
func (n *Normalizer) fuzzy(cleaned string) candidate {
	best := candidate{idx: -1}
	for idx, e := range n.vocab.entries {
		score := similarity.Normalized(cleaned, e.name.norm)
		for _, s := range e.synonyms {
			score = max(score, similarity.Normalized(cleaned, s.norm))
		}
		if score > best.score {
			best = candidate{idx: idx, score: score}
		}
	}
	return best
}

func (n *Normalizer) external(ctx context.Context, scannedName string) (*Result, error) {
	cctx, cancel := context.WithTimeout(ctx, n.classifierTimeout)
	defer cancel()

	c, err := n.classifier.Classify(cctx, scannedName)
	if err == nil && cctx.Err() != nil {
		err = cctx.Err()
	}
	if err != nil {
		classifierCalls.WithLabelValues("error").Inc()
		n.logger.Warn("external classifier unavailable, degrading",
			"scannedName", scannedName,
			"error", errors.Wrap(errors.ErrCodeExternalUnavailable, "classify", err))
		return nil, err
	}
	if c == nil || c.NormalizedName == nil || strings.TrimSpace(*c.NormalizedName) == "" {
		classifierCalls.WithLabelValues("empty").Inc()
		return nil, nil
	}
	classifierCalls.WithLabelValues("ok").Inc()

	name := strings.TrimSpace(*c.NormalizedName)
	confidence := c.Confidence
	if confidence <= 0 {
		confidence = defaults.ExternalConfidence
	}
	confidence = min(confidence, 1.0)

	res := &Result{
		ScannedName:    scannedName,
		NormalizedName: &name,
		Confidence:     confidence,
		Method:         MethodExternal,
	}
	if ing, _, ok := n.vocab.Resolve(name); ok {
		res.NormalizedName = &ing.Name
		res.Category = ing.Category
	}
	return res, nil
}
