package tokenizer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testVocab builds a small vocabulary in line order.
func testVocab(t *testing.T) *Tokenizer {
	t.Helper()

	lines := []string{
		"[PAD]", "[UNK]", "[CLS]", "[SEP]",
		"motor", "filtro", "aceite", "de", "el", "cambio",
		"play", "##ing", "##er", "##s", "run", "##ning",
		".", ",", "?",
	}
	vocab := make(map[string]int64, len(lines))
	for i, line := range lines {
		vocab[line] = int64(i)
	}

	tok, err := NewFromVocab(vocab)
	require.NoError(t, err)
	return tok
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.txt")
	content := "[PAD]\n[UNK]\n[CLS]\n[SEP]\nhola\nmundo\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	tok, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6, tok.VocabSize())
	assert.Equal(t, []string{"hola", "mundo"}, tok.Tokenize("Hola MUNDO"))
}

func TestLoad_MissingSpecialTokens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.txt")
	require.NoError(t, os.WriteFile(path, []byte("just\nwords\n"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestTokenize_WholeWordInVocabulary(t *testing.T) {
	tok := testVocab(t)

	assert.Equal(t, []string{"motor"}, tok.Tokenize("motor"))
	assert.Equal(t, []string{"motor"}, tok.Tokenize("MOTOR"))
}

func TestTokenize_SubwordDecomposition(t *testing.T) {
	tok := testVocab(t)

	assert.Equal(t, []string{"play", "##ing"}, tok.Tokenize("playing"))
	assert.Equal(t, []string{"play", "##er", "##s"}, tok.Tokenize("players"))
	assert.Equal(t, []string{"run", "##ning"}, tok.Tokenize("running"))
}

func TestTokenize_UnknownWord(t *testing.T) {
	tok := testVocab(t)

	// No decomposition exists: one [UNK], partial pieces discarded.
	assert.Equal(t, []string{"[UNK]"}, tok.Tokenize("playzzz"))
	assert.Equal(t, []string{"[UNK]"}, tok.Tokenize("xyzzy"))
}

func TestTokenize_PunctuationIsItsOwnWord(t *testing.T) {
	tok := testVocab(t)

	assert.Equal(t, []string{"motor", ",", "filtro", "."}, tok.Tokenize("motor, filtro."))
}

func TestTokenize_LongWordCap(t *testing.T) {
	tok := testVocab(t)

	long := strings.Repeat("a", 201)
	assert.Equal(t, []string{"[UNK]"}, tok.Tokenize(long))
}

func TestTokenize_LongWordCapCountsCharacters(t *testing.T) {
	// 150 accented characters occupy 300 bytes; the cap is on characters,
	// so the word must still be segmented.
	tok, err := NewFromVocab(map[string]int64{
		"[CLS]": 0, "[SEP]": 1, "[UNK]": 2, "ñ": 3, "##ñ": 4,
	})
	require.NoError(t, err)

	pieces := tok.Tokenize(strings.Repeat("ñ", 150))
	require.Len(t, pieces, 150)
	assert.Equal(t, "ñ", pieces[0])
	assert.Equal(t, "##ñ", pieces[1])
	assert.NotContains(t, pieces, "[UNK]")

	// One past the cap still maps to [UNK].
	assert.Equal(t, []string{"[UNK]"}, tok.Tokenize(strings.Repeat("ñ", 201)))
}

func TestToModelArrays_Shape(t *testing.T) {
	tok := testVocab(t)

	ids, mask := tok.ToModelArrays("cambio de aceite")
	require.Len(t, ids, MaxSequenceLength)
	require.Len(t, mask, MaxSequenceLength)

	// [CLS] cambio de aceite [SEP]
	assert.Equal(t, []int64{2, 9, 7, 6, 3}, ids[:5])

	ones := 0
	for _, m := range mask {
		ones += int(m)
	}
	assert.Equal(t, 5, ones)

	// Padding positions are zero ids with mask 0.
	assert.Equal(t, int64(0), ids[5])
	assert.Equal(t, int64(0), mask[5])
}

func TestToModelArrays_Truncation(t *testing.T) {
	tok := testVocab(t)

	// 600 known words exceed the sequence length.
	text := strings.TrimSpace(strings.Repeat("motor ", 600))
	ids, mask := tok.ToModelArrays(text)

	require.Len(t, ids, MaxSequenceLength)
	ones := 0
	for _, m := range mask {
		ones += int(m)
	}
	assert.Equal(t, MaxSequenceLength, ones)
	assert.Equal(t, int64(2), ids[0]) // [CLS] survives truncation
}

func TestToModelArrays_UnknownWordsStillSucceed(t *testing.T) {
	tok := testVocab(t)

	ids, mask := tok.ToModelArrays("qqq www eee")
	// [CLS] [UNK] [UNK] [UNK] [SEP]
	assert.Equal(t, []int64{2, 1, 1, 1, 3}, ids[:5])
	assert.Equal(t, []int64{1, 1, 1, 1, 1}, mask[:5])
}
