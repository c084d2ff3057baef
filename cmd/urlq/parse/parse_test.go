package parse

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		href string
		want string
	}{
		{
			href: "https://example.com/list?a=1&a=2&b=x+y#top#ignored",
			want: `{"path":"https://example.com/list","fragment":"top","query":{"a":["1","2"],"b":"x y"}}`,
		},
		{
			href: "/list",
			want: `{"path":"/list","fragment":null,"query":{}}`,
		},
		{
			href: "/list?a=1&a=1&=skip#",
			want: `{"path":"/list","fragment":"","query":{"a":"1"}}`,
		},
	}
	for _, test := range tests {
		t.Run(test.href, func(t *testing.T) {
			cmd := New()
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetArgs([]string{test.href})
			require.NoError(t, cmd.Execute())
			assert.JSONEq(t, test.want, out.String())
		})
	}
}

func TestParseArgs(t *testing.T) {
	cmd := New()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})
	assert.Error(t, cmd.Execute())
}
