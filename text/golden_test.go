package text_test

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KimNorgaard/go-vcard/internal/testutil"
	"github.com/KimNorgaard/go-vcard/text"
)

var update = flag.Bool("update", false, "update golden files")

// marshalCanonical writes every card in the version it was read in, with LF
// line endings so the golden files stay readable.
func marshalCanonical(t *testing.T, data []byte) []byte {
	t.Helper()
	cards, err := text.Unmarshal(data)
	require.NoError(t, err)

	var buf bytes.Buffer
	for _, card := range cards {
		w := text.NewWriter(&buf, card.Version, text.Newline("\n"))
		require.NoError(t, w.Write(card))
	}
	return buf.Bytes()
}

func TestGolden(t *testing.T) {
	files, err := filepath.Glob("testdata/*.vcf")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			src, err := os.ReadFile(file)
			require.NoError(t, err)

			actual := marshalCanonical(t, src)

			goldenFile := strings.Replace(file, ".vcf", ".golden", 1)
			if *update {
				err := os.WriteFile(goldenFile, actual, 0o644)
				require.NoError(t, err)
			}

			expected, err := os.ReadFile(goldenFile)
			require.NoError(t, err, "Golden file not found. Run with -update to create it.")
			require.Equal(t, string(expected), string(actual), "Round-trip output does not match golden file.\n%s",
				testutil.TextDiff(goldenFile, string(expected), file, string(actual)))

			// reading the golden output back must reproduce it
			require.Equal(t, string(expected), string(marshalCanonical(t, expected)))
		})
	}
}
