package set

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kcmvp/urlq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return strings.TrimSpace(out.String()), err
}

// application_test.yml configures collision: combine.
func TestSet(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{
			name: "combine from configuration",
			args: []string{"/list?q=rust#top", `{"q":"go"}`},
			want: "/list?q=rust&q=go#top",
		},
		{
			name: "collision flag overrides configuration",
			args: []string{"--collision", "keep-new", "/list?q=rust#top", `{"q":"go"}`},
			want: "/list?q=go#top",
		},
		{
			name: "drop old query",
			args: []string{"--save-old=false", "/list?q=rust#top", `{"page":2}`},
			want: "/list?page=2#top",
		},
		{
			name: "drop fragment",
			args: []string{"--save-hash=false", "--collision", "keep-new", "/list?q=rust#top", `{"q":"go"}`},
			want: "/list?q=go",
		},
		{
			name: "suffix only",
			args: []string{"--suffix", "--save-old=false", "/list?q=rust#top", `{"page":2}`},
			want: "?page=2#top",
		},
		{
			name: "no fields keeps old query",
			args: []string{"/list?q=rust#top"},
			want: "/list?q=rust#top",
		},
		{
			name: "empty query falls back to path",
			args: []string{"--save-old=false", "/list?q=rust#top"},
			want: "/list#top",
		},
		{
			name: "empty fields kept",
			args: []string{"--save-old=false", "--save-empty", "/list", `{"q":"","page":0}`},
			want: "/list?q=&page=0",
		},
		{
			name:  "fields from stdin",
			stdin: `{"tag":["go","web","go"]}`,
			args:  []string{"--save-old=false", "https://example.com/list", "-"},
			want:  "https://example.com/list?tag=go&tag=web",
		},
		{
			name: "encoded values",
			args: []string{"--save-old=false", "/search", `{"q":"a b&c"}`},
			want: "/search?q=a%20b%26c",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			out, err := execute(t, test.stdin, test.args...)
			require.NoError(t, err)
			assert.Equal(t, test.want, out)
		})
	}
}

func TestSetErrors(t *testing.T) {
	_, err := execute(t, "", "/list", `{"q":`)
	assert.ErrorIs(t, err, urlq.ErrInvalidJSON)

	_, err = execute(t, "", "/list", `["q"]`)
	assert.ErrorIs(t, err, urlq.ErrNotObject)

	_, err = execute(t, "", "/list", `{"q":{"a":1}}`)
	assert.ErrorIs(t, err, urlq.ErrNestedObject)

	_, err = execute(t, "", "--collision", "merge", "/list", `{"q":"go"}`)
	assert.Error(t, err)

	_, err = execute(t, "")
	assert.Error(t, err)
}

func TestSetSession(t *testing.T) {
	out, err := execute(t, "", "--session", "cli-tab", "/list", `{"q":"go"}`)
	require.NoError(t, err)
	assert.Equal(t, "/list?q=go", out)

	// the stored address is used, not the home address
	out, err = execute(t, "", "--session", "cli-tab", "/home", `{"page":2}`)
	require.NoError(t, err)
	assert.Equal(t, "/list?page=2&q=go", out)

	out, err = execute(t, "", "--session", "cli-tab", "--save-old=false", "/home")
	require.NoError(t, err)
	assert.Equal(t, "/list", out)
}

func TestSetVerbose(t *testing.T) {
	cmd := New()
	// --verbose is a persistent flag of the root command.
	cmd.Flags().Bool("verbose", false, "")
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--verbose", "--save-old=false", "/list", `{"a":1}`})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "/list?a=1", strings.TrimSpace(out.String()))
	assert.Contains(t, errOut.String(), `suffix="?a=1"`)
}

func TestSetVerboseSession(t *testing.T) {
	cmd := New()
	cmd.Flags().Bool("verbose", false, "")
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--verbose", "--session", "verbose-tab", "/list", `{"q":"go"}`})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "/list?q=go", strings.TrimSpace(out.String()))
	assert.Contains(t, errOut.String(), "store query")
	assert.Contains(t, errOut.String(), "store exec")
	assert.Contains(t, errOut.String(), "urlq_location")

	// a run without --verbose turns SQL logging off; nothing more reaches errOut
	errOut.Reset()
	_, err := execute(t, "", "--session", "verbose-tab", "/list", `{"page":1}`)
	require.NoError(t, err)
	assert.Empty(t, errOut.String())
}
