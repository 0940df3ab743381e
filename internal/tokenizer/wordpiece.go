// Package tokenizer implements the WordPiece tokenization consumed by the
// embedding model: greedy longest-match-first subword segmentation over a
// line-per-token vocabulary, assembled into fixed-length id/mask arrays.
package tokenizer

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxSequenceLength is the model's input length. Token sequences are
// truncated or zero-padded to exactly this many positions.
const MaxSequenceLength = 512

// maxWordLength caps segmentation work per word, in characters. Greedy
// backtracking is quadratic in the word length, so anything longer maps
// straight to [UNK].
const maxWordLength = 200

// Special vocabulary tokens.
const (
	tokenCLS = "[CLS]"
	tokenSEP = "[SEP]"
	tokenUNK = "[UNK]"
)

// continuation prefixes a subword piece that does not start its word.
const continuation = "##"

// Tokenizer is a WordPiece tokenizer over a fixed vocabulary.
// Tokenization never fails: unseen words map to [UNK].
type Tokenizer struct {
	vocab map[string]int64
	cls   int64
	sep   int64
	unk   int64
}

// Load reads a vocabulary file of one token per line; the line number is
// the token id. The vocabulary must contain [CLS], [SEP] and [UNK].
func Load(path string) (*Tokenizer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening vocabulary: %w", err)
	}
	defer f.Close()

	vocab := make(map[string]int64)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var id int64
	for scanner.Scan() {
		vocab[strings.TrimRight(scanner.Text(), "\r")] = id
		id++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading vocabulary: %w", err)
	}

	return NewFromVocab(vocab)
}

// NewFromVocab builds a tokenizer from an already materialised vocabulary.
func NewFromVocab(vocab map[string]int64) (*Tokenizer, error) {
	t := &Tokenizer{vocab: vocab}
	var ok bool
	if t.cls, ok = vocab[tokenCLS]; !ok {
		return nil, fmt.Errorf("vocabulary has no %s token", tokenCLS)
	}
	if t.sep, ok = vocab[tokenSEP]; !ok {
		return nil, fmt.Errorf("vocabulary has no %s token", tokenSEP)
	}
	if t.unk, ok = vocab[tokenUNK]; !ok {
		return nil, fmt.Errorf("vocabulary has no %s token", tokenUNK)
	}
	return t, nil
}

// VocabSize returns the number of vocabulary entries.
func (t *Tokenizer) VocabSize() int {
	return len(t.vocab)
}

// Tokenize returns the WordPiece tokens for the text, without special
// tokens or padding. Exposed for inspection and tests; ToModelArrays is
// the inference-facing entry point.
func (t *Tokenizer) Tokenize(text string) []string {
	var tokens []string
	for _, word := range splitWords(strings.ToLower(text)) {
		tokens = append(tokens, t.segment(word)...)
	}
	return tokens
}

// ToModelArrays tokenizes the text and assembles the fixed-length
// [CLS] tokens [SEP] id sequence with its attention mask. Both returned
// arrays have length MaxSequenceLength; positions past the (possibly
// truncated) real sequence are zero ids with mask 0.
func (t *Tokenizer) ToModelArrays(text string) (ids, mask []int64) {
	ids = make([]int64, MaxSequenceLength)
	mask = make([]int64, MaxSequenceLength)

	sequence := []int64{t.cls}
	for _, tok := range t.Tokenize(text) {
		sequence = append(sequence, t.id(tok))
	}
	sequence = append(sequence, t.sep)

	if len(sequence) > MaxSequenceLength {
		sequence = sequence[:MaxSequenceLength]
	}

	copy(ids, sequence)
	for i := range sequence {
		mask[i] = 1
	}
	return ids, mask
}

// id resolves a token to its vocabulary id, falling back to [UNK].
func (t *Tokenizer) id(token string) int64 {
	if id, ok := t.vocab[token]; ok {
		return id
	}
	return t.unk
}

// segment applies greedy longest-match-first WordPiece to one word.
// A word with no valid decomposition becomes a single [UNK]; partial
// pieces found before the dead end are discarded.
func (t *Tokenizer) segment(word string) []string {
	if utf8.RuneCountInString(word) > maxWordLength {
		return []string{tokenUNK}
	}
	if _, ok := t.vocab[word]; ok {
		return []string{word}
	}

	var pieces []string
	runes := []rune(word)
	start := 0
	for start < len(runes) {
		end := len(runes)
		match := ""
		for end > start {
			candidate := string(runes[start:end])
			if start > 0 {
				candidate = continuation + candidate
			}
			if _, ok := t.vocab[candidate]; ok {
				match = candidate
				break
			}
			end--
		}
		if match == "" {
			return []string{tokenUNK}
		}
		pieces = append(pieces, match)
		start = end
	}
	return pieces
}

// splitWords scans the text into words: runs of non-space, non-punctuation
// characters, with each punctuation or symbol character emitted as its own
// single-character word.
func splitWords(text string) []string {
	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}

	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			flush()
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			flush()
			words = append(words, string(r))
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return words
}
