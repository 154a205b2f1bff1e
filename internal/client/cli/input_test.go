package cli

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/term"
)

func TestGetSimpleText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "trims", input: "  ada@x.io \n", want: "ada@x.io"},
		{name: "partial line at EOF", input: "tail", want: "tail"},
		{name: "empty line", input: "\n", want: ""},
		{name: "EOF", input: "", wantErr: io.EOF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetSimpleText(bufio.NewReader(strings.NewReader(tt.input)), "Enter email", &out)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Enter email\n> ", out.String())
		})
	}
}

func TestGetPassword_NonTerminal(t *testing.T) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		t.Skip("stdin is a terminal")
	}
	var out bytes.Buffer
	got, err := GetPassword(bufio.NewReader(strings.NewReader("s3cret\n")), &out)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)
}
