package commands

import (
	"bytes"
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinePrompter(t *testing.T) {
	tests := map[string]struct {
		input    string
		expHours float64
		expOK    bool
		expNaN   bool
	}{
		"A number should be answered": {
			input:    "12\n",
			expHours: 12,
			expOK:    true,
		},
		"A decimal number without a final newline should be answered": {
			input:    " 1.5",
			expHours: 1.5,
			expOK:    true,
		},
		"An empty line should take the default": {
			input:    "\n",
			expHours: 7,
			expOK:    true,
		},
		"End of input should cancel": {
			input: "",
			expOK: false,
		},
		"Garbage should be answered as an invalid number": {
			input:  "soon\n",
			expOK:  true,
			expNaN: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			out := &bytes.Buffer{}
			p := newLinePrompter(strings.NewReader(test.input), out)

			hours, ok, err := p.RequestHours(context.TODO(), 7)
			require.NoError(t, err)

			assert.Equal(t, test.expOK, ok)
			if test.expNaN {
				assert.True(t, math.IsNaN(hours))
			} else if test.expOK {
				assert.Equal(t, test.expHours, hours)
			}
			assert.Equal(t, "Set hours until due for this task [7]: ", out.String())
		})
	}
}
