package patmatch

import (
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v2"
	"gotest.tools/v3/assert"

	"github.com/strkit/patmatch/bytecode"
)

type corpus struct {
	Match []struct {
		Name    string `yaml:"name"`
		Pattern string `yaml:"pattern"`
		Input   string `yaml:"input"`
		Start   int    `yaml:"start"`
		Length  int    `yaml:"length"`
	} `yaml:"match"`
	Errors []struct {
		Pattern string `yaml:"pattern"`
		Pos     int    `yaml:"pos"`
	} `yaml:"errors"`
}

func loadCorpus(t *testing.T) corpus {
	t.Helper()
	raw, err := os.ReadFile("testdata/corpus.yaml")
	assert.NilError(t, err)

	var c corpus
	assert.NilError(t, yaml.UnmarshalStrict(raw, &c))
	assert.Assert(t, len(c.Match) > 0 && len(c.Errors) > 0)
	return c
}

func TestCorpusMatch(t *testing.T) {
	for _, tc := range loadCorpus(t).Match {
		t.Run(tc.Name, func(t *testing.T) {
			p, err := Compile(tc.Pattern)
			assert.NilError(t, err)

			var want []int
			if tc.Start >= 0 {
				want = []int{tc.Start, tc.Start + tc.Length}
			}
			got := p.FindStringIndex(tc.Input)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("FindStringIndex(%q) mismatch (-want +got):\n%s", tc.Input, diff)
			}
		})
	}
}

func TestCorpusErrors(t *testing.T) {
	for _, tc := range loadCorpus(t).Errors {
		t.Run(tc.Pattern, func(t *testing.T) {
			_, err := Compile(tc.Pattern)
			assert.Assert(t, errors.Is(err, bytecode.ErrSyntax))

			var syntaxErr *bytecode.SyntaxError
			assert.Assert(t, errors.As(err, &syntaxErr))
			assert.Equal(t, syntaxErr.Pos, tc.Pos)
		})
	}
}
