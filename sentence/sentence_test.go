package sentence

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wakachi-nlp/wakachi/dic/chardef"
	"github.com/wakachi-nlp/wakachi/input"
)

func buildText(t *testing.T, s string) *input.InputText {
	t.Helper()
	cc, err := chardef.ParseCharDef(strings.NewReader("DEFAULT 0 1 0\n"))
	require.NoError(t, err)
	return input.NewBuilder(s).Build(cc)
}

type noopChecker struct{}

func (noopChecker) HasNonBreakWord(*input.InputText, int) bool { return false }

type alwaysBreakChecker struct{ rejectByte int }

func (c alwaysBreakChecker) HasNonBreakWord(_ *input.InputText, eosByte int) bool {
	return eosByte == c.rejectByte
}

func TestGetEosFindsTerminator(t *testing.T) {
	text := buildText(t, "京都に行った。東京にも行った。")
	n := GetEos(text, 0, noopChecker{}, 0)
	require.Greater(t, n, 0)
	sentence := string(text.Bytes()[0:n])
	assert.Equal(t, "京都に行った。", sentence)
}

func TestGetEosNoTerminatorReturnsNegativeFullLength(t *testing.T) {
	text := buildText(t, "京都に行った")
	n := GetEos(text, 0, noopChecker{}, 0)
	assert.Equal(t, -text.ByteLen(), n)
}

func TestSplitReproducesBufferExactly(t *testing.T) {
	original := "京都に行った？東京に行った。まだ続く"
	text := buildText(t, original)
	spans := Split(text, noopChecker{}, 0)

	var rebuilt strings.Builder
	for _, sp := range spans {
		rebuilt.Write(text.Bytes()[sp.Begin:sp.End])
	}
	assert.Equal(t, text.Normalized(), rebuilt.String())
	assert.GreaterOrEqual(t, len(spans), 2)
}

func TestParenthesisSuppressesBreak(t *testing.T) {
	text := buildText(t, "（これは。）終わり。")
	n := GetEos(text, 0, noopChecker{}, 0)
	require.Greater(t, n, 0)
	sentence := string(text.Bytes()[0:n])
	assert.Equal(t, "（これは。）終わり。", sentence, "the period inside the open parenthesis must not break the sentence")
}

func TestItemizeHeaderIsNotABreak(t *testing.T) {
	text := buildText(t, "1.京都について")
	n := GetEos(text, 0, noopChecker{}, 0)
	assert.Equal(t, -text.ByteLen(), n, "a list-item marker like '1.' must not be treated as a sentence end")
}

func TestNonBreakWordLookaheadSkipsCandidate(t *testing.T) {
	text := buildText(t, "見た。")
	// Reject the first candidate (right after the '。'), forcing GetEos to
	// fall through to "no terminator found".
	period := strings.Index(text.Normalized(), "。")
	rejectAt := len(text.Bytes()[:period]) + len("。")
	n := GetEos(text, 0, alwaysBreakChecker{rejectByte: rejectAt}, 0)
	assert.Equal(t, -text.ByteLen(), n)
}

func TestPeriodInsideOpenQuoteDoesNotBreak(t *testing.T) {
	// The '。' inside the still-open quote is suppressed by the paren-level
	// guard, so the whole quoted clause plus what follows it forms one
	// sentence, ending only at the final '。' once the quote has closed.
	text := buildText(t, "「見た。」次の文。")
	n := GetEos(text, 0, noopChecker{}, 0)
	require.Greater(t, n, 0)
	sentence := string(text.Bytes()[0:n])
	assert.Equal(t, "「見た。」次の文。", sentence)
}

func TestOverflowCutsAtLastWhitespace(t *testing.T) {
	text := buildText(t, strings.Repeat("a", 10)+" "+strings.Repeat("b", 10))
	n := GetEos(text, 0, noopChecker{}, 15)
	require.Less(t, n, 0)
	assert.Equal(t, -11, n, "cut should land just past the whitespace at index 10")
}
