package desktop

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripFieldCodes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no codes", "vim", "vim"},
		{"file arg", "firefox %u", "firefox"},
		{"multiple codes", "soffice %U --writer %F", "soffice --writer"},
		{"icon and caption", "app --icon %i --caption %c", "app --icon --caption"},
		{"escaped percent", "app --scale 50%%", "app --scale 50%"},
		{"trailing bare percent", "app %", "app"},
		{"deprecated codes", "app %d %D %n %N %v %m", "app"},
		{"collapses whitespace", "app   %f   --flag", "app --flag"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, StripFieldCodes(tt.in))
		})
	}
}

func TestSplitWords(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"simple", "vim --clean", []string{"vim", "--clean"}},
		{"double quotes", `sh -c "echo hello world"`, []string{"sh", "-c", "echo hello world"}},
		{"single quotes", `app 'a b' c`, []string{"app", "a b", "c"}},
		{"escaped space", `app a\ b`, []string{"app", "a b"}},
		{"escape inside double quotes", `app "say \"hi\""`, []string{"app", `say "hi"`}},
		{"extra whitespace", "  app \t arg ", []string{"app", "arg"}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitWords(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestSplitWordsUnterminatedQuote(t *testing.T) {
	_, err := SplitWords(`app "unclosed`)
	require.ErrorIs(t, err, ErrUnterminatedQuote)

	_, err = SplitWords(`app 'unclosed`)
	require.ErrorIs(t, err, ErrUnterminatedQuote)
}
