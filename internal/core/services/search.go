package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/veldt-labs/docsift/internal/config"
	"github.com/veldt-labs/docsift/internal/core/domain"
	"github.com/veldt-labs/docsift/internal/core/ports/driven"
	"github.com/veldt-labs/docsift/internal/embedding"
	"github.com/veldt-labs/docsift/internal/logger"
)

// DefaultLimit is the result count when the caller passes no limit.
const DefaultLimit = 10

// candidate accumulates fusion inputs for one chunk.
type candidate struct {
	chunk      driven.ReadyChunk
	semantic   float64
	keywordHit bool
}

// SearchService fuses vector similarity with full-text relevance into a
// single ranked result list.
type SearchService struct {
	store    driven.DocumentStore
	index    driven.TextIndex
	embedder driven.Embedder
	cfg      config.SearchConfig
}

// NewSearchService creates a new search service.
// The embedder is optional (can be nil); without it search degrades to
// lexical-only ranking.
func NewSearchService(
	store driven.DocumentStore,
	index driven.TextIndex,
	embedder driven.Embedder,
	cfg config.SearchConfig,
) *SearchService {
	return &SearchService{
		store:    store,
		index:    index,
		embedder: embedder,
		cfg:      cfg,
	}
}

// Search runs the hybrid ranking over all ready documents. Results never
// exceed limit and arrive in non-increasing score order; candidates below
// minScore are dropped.
func (s *SearchService) Search(ctx context.Context, query string, limit int, minScore float64) ([]domain.SearchResult, error) {
	logger.Section("Search")
	logger.Debug("Query: %q", query)

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	ready, err := s.store.ReadyChunks(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading ready chunks: %w", err)
	}
	byID := make(map[string]driven.ReadyChunk, len(ready))
	for _, rc := range ready {
		byID[rc.Chunk.ID] = rc
	}

	candidates := make(map[string]*candidate)

	// Stage 1: semantic candidates above the floor, top 3x limit.
	if s.embedder != nil {
		queryVector, err := s.embedder.Embed(ctx, query)
		if err != nil {
			logger.Warn("Embedding unavailable, lexical-only search: %v", err)
		} else {
			for _, id := range s.semanticCandidates(queryVector, ready, 3*limit) {
				rc := byID[id.chunkID]
				candidates[id.chunkID] = &candidate{chunk: rc, semantic: id.score}
			}
			logger.Debug("Semantic candidates: %d", len(candidates))
		}
	}

	// Stage 2: lexical candidates by boolean full-text match.
	terms := meaningfulTerms(query)
	logger.Debug("Meaningful terms: %v", terms)
	hits, err := s.lexicalCandidates(ctx, terms, 3*limit)
	if err != nil {
		return nil, err
	}
	for _, hit := range hits {
		rc, ok := byID[hit.ChunkID]
		if !ok {
			continue
		}
		if c, ok := candidates[hit.ChunkID]; ok {
			c.keywordHit = true
		} else {
			candidates[hit.ChunkID] = &candidate{chunk: rc, keywordHit: true}
		}
	}
	logger.Debug("Candidates after lexical merge: %d", len(candidates))

	// Stage 3: fusion.
	results := s.fuse(candidates, terms, minScore)

	sort.Slice(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if len(results) > limit {
		results = results[:limit]
	}
	logger.Info("Returning %d results", len(results))
	return results, nil
}

// scoredID pairs a chunk id with its cosine similarity.
type scoredID struct {
	chunkID string
	score   float64
}

func (s *SearchService) semanticCandidates(queryVector []float32, ready []driven.ReadyChunk, maxCandidates int) []scoredID {
	var scored []scoredID
	for _, rc := range ready {
		score := embedding.Cosine(queryVector, rc.Chunk.Embedding)
		if score >= s.cfg.SemanticFloor {
			scored = append(scored, scoredID{chunkID: rc.Chunk.ID, score: score})
		}
	}
	sort.Slice(scored, func(i, j int) bool { return scored[i].score > scored[j].score })
	if len(scored) > maxCandidates {
		scored = scored[:maxCandidates]
	}
	return scored
}

// lexicalCandidates requires all meaningful terms, then relaxes to any
// term when the strict match finds nothing.
func (s *SearchService) lexicalCandidates(ctx context.Context, terms []string, maxCandidates int) ([]driven.TextHit, error) {
	if len(terms) == 0 {
		return nil, nil
	}

	hits, err := s.index.Search(ctx, buildMatch(terms, "AND"), maxCandidates)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSearchUnavailable, err)
	}
	if len(hits) == 0 && len(terms) > 1 {
		logger.Debug("Strict match empty, relaxing to OR")
		hits, err = s.index.Search(ctx, buildMatch(terms, "OR"), maxCandidates)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrSearchUnavailable, err)
		}
	}
	return hits, nil
}

func (s *SearchService) fuse(candidates map[string]*candidate, terms []string, minScore float64) []domain.SearchResult {
	entityTerms := make([]string, 0, len(terms))
	for _, term := range terms {
		if !intentVerbs[term] {
			entityTerms = append(entityTerms, term)
		}
	}

	var results []domain.SearchResult
	for _, c := range candidates {
		tokens := tokenSet(c.chunk.Chunk.Content + " " + c.chunk.DocumentTitle)

		covered := 0
		for _, term := range terms {
			if tokens[term] {
				covered++
			}
		}
		coverage := 0.0
		if len(terms) > 0 {
			coverage = float64(covered) / float64(len(terms))
		}

		entityMatch := false
		for _, term := range entityTerms {
			if tokens[term] {
				entityMatch = true
				break
			}
		}

		// Pure-semantic matches with no literal support are rejected
		// unless the similarity clears the high bar.
		if len(terms) > 0 && coverage == 0 && !entityMatch && c.semantic < s.cfg.SemanticOnlyBar {
			continue
		}

		bonus := 0.0
		switch {
		case c.keywordHit && coverage > 0:
			bonus = s.cfg.KeywordBonus
		case coverage > 0:
			bonus = s.cfg.OverlapBonus
		}
		if entityMatch {
			bonus += s.cfg.EntityBonus
		}

		score := s.cfg.SemanticWeight*c.semantic + s.cfg.CoverageWeight*coverage + bonus
		if score < minScore {
			continue
		}

		results = append(results, domain.SearchResult{
			ChunkID:       c.chunk.Chunk.ID,
			Content:       c.chunk.Chunk.Content,
			DocumentID:    c.chunk.Chunk.DocumentID,
			DocumentTitle: c.chunk.DocumentTitle,
			Position:      c.chunk.Chunk.Position,
			Score:         score,
		})
	}
	return results
}

// buildMatch joins quoted terms into a boolean full-text expression.
func buildMatch(terms []string, op string) string {
	quoted := make([]string, len(terms))
	for i, term := range terms {
		quoted[i] = `"` + term + `"`
	}
	return strings.Join(quoted, " "+op+" ")
}

// meaningfulTerms splits the query on non-alphanumeric boundaries,
// folds case and diacritics, and drops single characters and stop words.
func meaningfulTerms(query string) []string {
	fields := strings.FieldsFunc(fold(strings.ToLower(query)), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	terms := make([]string, 0, len(fields))
	for _, field := range fields {
		if len([]rune(field)) <= 1 || stopWords[field] {
			continue
		}
		terms = append(terms, field)
	}
	return terms
}

// tokenSet normalizes text into the set of its folded tokens of length
// greater than one.
func tokenSet(text string) map[string]bool {
	tokens := make(map[string]bool)
	fields := strings.FieldsFunc(fold(strings.ToLower(text)), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, field := range fields {
		if len([]rune(field)) > 1 {
			tokens[field] = true
		}
	}
	return tokens
}

// fold strips combining marks so accented and plain spellings compare
// equal ("presión" == "presion").
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// stopWords is a bilingual (Spanish/English) list of terms that carry no
// lexical signal. Entries are pre-folded.
var stopWords = map[string]bool{
	// Spanish
	"de": true, "la": true, "el": true, "en": true, "los": true, "las": true,
	"del": true, "un": true, "una": true, "unos": true, "unas": true,
	"por": true, "con": true, "para": true, "se": true, "su": true, "sus": true,
	"al": true, "lo": true, "le": true, "les": true, "ya": true, "este": true,
	"esta": true, "estos": true, "estas": true, "ese": true, "esa": true,
	"eso": true, "mi": true, "mis": true, "tu": true, "tus": true, "si": true,
	"no": true, "ni": true, "mas": true, "pero": true, "muy": true, "sin": true,
	"sobre": true, "entre": true, "hasta": true, "desde": true, "hay": true,
	"porque": true, "tambien": true, "todo": true, "todos": true, "toda": true,
	"todas": true, "otro": true, "otra": true, "otros": true, "otras": true,
	"me": true, "te": true, "nos": true, "algo": true, "nada": true,
	"es": true, "son": true, "era": true, "fue": true, "ser": true,
	// English
	"the": true, "an": true, "and": true, "or": true, "but": true, "of": true,
	"to": true, "in": true, "on": true, "for": true, "with": true, "at": true,
	"by": true, "from": true, "is": true, "are": true, "was": true,
	"were": true, "be": true, "been": true, "it": true, "this": true,
	"that": true, "these": true, "those": true, "as": true, "not": true,
	"do": true, "does": true, "did": true, "you": true, "he": true,
	"she": true, "we": true, "they": true, "my": true, "your": true,
	"his": true, "her": true, "its": true, "our": true, "their": true,
	"have": true, "has": true, "had": true, "will": true, "would": true,
	"can": true, "could": true, "there": true, "about": true,
}

// intentVerbs are generic question and command words that never identify
// an entity ("what", "cual", "show"), bilingual and pre-folded. A term
// may only raise the entity-match flag if it is outside this list.
var intentVerbs = map[string]bool{
	// Spanish
	"que": true, "cual": true, "cuales": true, "como": true, "donde": true,
	"cuando": true, "quien": true, "quienes": true, "cuanto": true,
	"cuanta": true, "cuantos": true, "cuantas": true, "es": true,
	"son": true, "esta": true, "estan": true, "tiene": true, "tienen": true,
	"dime": true, "dame": true, "muestra": true, "muestrame": true,
	"busca": true, "buscar": true, "encuentra": true, "necesito": true,
	"quiero": true, "puedo": true, "puede": true, "hacer": true, "hace": true,
	"ver": true, "saber": true, "decir": true, "lista": true, "listar": true,
	// English
	"what": true, "which": true, "how": true, "where": true, "when": true,
	"who": true, "why": true, "show": true, "tell": true, "find": true,
	"search": true, "get": true, "give": true, "list": true, "need": true,
	"want": true, "know": true, "see": true, "look": true, "make": true,
	"many": true, "much": true,
}
