package patmatch

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gotest.tools/v3/assert"

	"github.com/strkit/patmatch/bytecode"
)

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		pattern string
		pos     int
	}{
		{"+", 0},
		{"a]", 1},
		{"%q", 0},
		{"[ab", 3},
	}

	for _, tc := range tests {
		t.Run(tc.pattern, func(t *testing.T) {
			_, err := Compile(tc.pattern)
			assert.Assert(t, err != nil)
			assert.Assert(t, errors.Is(err, bytecode.ErrSyntax))

			var syntaxErr *bytecode.SyntaxError
			assert.Assert(t, errors.As(err, &syntaxErr))
			assert.Equal(t, syntaxErr.Pos, tc.pos)
		})
	}
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("MustCompile did not panic on a malformed pattern")
		}
	}()
	MustCompile("a+*")
}

func TestFindIndex(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    []int // nil for no match
	}{
		{"abc", "xxabcxx", []int{2, 5}},
		{"^abc", "xabc", nil},
		{"a+", "aaa", []int{0, 3}},
		{"a*b", "b", []int{0, 1}},
		{"a*b", "aaab", []int{0, 4}},
		{"%d%d", "a12b", []int{1, 3}},
		{"[abc]+", "xxabcbaxx", []int{2, 7}},
		{"[^a]", "b", []int{0, 1}},
		{"[^a]", "a", nil},
		{"%a+%d", "--ab1--", []int{2, 5}},
		{"a", "", nil},
	}

	for _, tc := range tests {
		t.Run(tc.pattern+"/"+tc.input, func(t *testing.T) {
			p, err := Compile(tc.pattern)
			assert.NilError(t, err)

			got := p.FindStringIndex(tc.input)
			assert.DeepEqual(t, got, tc.want)

			assert.Equal(t, p.MatchString(tc.input), tc.want != nil)
		})
	}
}

func TestFindString(t *testing.T) {
	p := MustCompile("%u%a+")
	assert.Equal(t, p.FindString("the Quick fox"), "Quick")
	assert.Equal(t, p.FindString("no capitals"), "")
}

// TestPrefilteredAgreesWithPlainDriver compares the public search (which may
// use a prefilter) against the raw bytecode driver across a pattern/input
// grid. The two must agree exactly.
func TestPrefilteredAgreesWithPlainDriver(t *testing.T) {
	patterns := []string{
		"abc", "a+", "a*b", "ab?c", "[abc]+", "[ab]x", "a.c", "abc$",
	}
	inputs := []string{
		"", "a", "abc", "xxabcxx", "ababab", "zzz", "aXc", "abcabc", "bxbx",
	}

	for _, pat := range patterns {
		p := MustCompile(pat)
		for _, in := range inputs {
			wantStart, wantLen, err := bytecode.Find(p.Program(), []byte(in))
			assert.NilError(t, err)

			got := p.FindStringIndex(in)
			var want []int
			if wantStart >= 0 {
				want = []int{wantStart, wantStart + wantLen}
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("pattern %q input %q (-plain +public):\n%s", pat, in, diff)
			}
		}
	}
}

func TestFindAll(t *testing.T) {
	p := MustCompile("%d+")
	assert.DeepEqual(t, p.FindAllString("a1b22c333", -1), []string{"1", "22", "333"})
	assert.DeepEqual(t, p.FindAllString("a1b22c333", 2), []string{"1", "22"})
	assert.Assert(t, p.FindAllString("letters", -1) == nil)
	assert.Assert(t, p.FindAllString("x", 0) == nil)

	indices := p.FindAllIndex([]byte("a1b22"), -1)
	assert.DeepEqual(t, indices, [][]int{{1, 2}, {3, 5}})
}

func TestFindAllEmptyMatches(t *testing.T) {
	// A zero-width-capable pattern must still make progress.
	p := MustCompile("a*")
	got := p.FindAllString("ab", -1)
	assert.DeepEqual(t, got, []string{"a", ""})
}

func TestReplaceAllLiteral(t *testing.T) {
	p := MustCompile("%d+")
	assert.Equal(t, p.ReplaceAllLiteralString("age: 42, id: 7", "#"), "age: #, id: #")
	assert.Equal(t, p.ReplaceAllLiteralString("no digits", "#"), "no digits")
}

func TestSplit(t *testing.T) {
	p := MustCompile("%s*,%s*")
	assert.DeepEqual(t, p.Split("a, b ,c", -1), []string{"a", "b", "c"})
	assert.DeepEqual(t, p.Split("a, b ,c", 2), []string{"a", "b ,c"})
	assert.DeepEqual(t, p.Split("nodelim", -1), []string{"nodelim"})
	assert.Assert(t, p.Split("a,b", 0) == nil)
}

func TestCut(t *testing.T) {
	p := MustCompile("%d+")

	var got []string
	rest := []byte("a1b22c333")
	for {
		match, tail, ok := p.Cut(rest)
		if !ok {
			break
		}
		got = append(got, string(match))
		rest = tail
	}
	assert.DeepEqual(t, got, []string{"1", "22", "333"})

	match, tail, ok := p.CutString("no digits here")
	assert.Assert(t, !ok)
	assert.Equal(t, match, "")
	assert.Equal(t, tail, "no digits here")
}

func TestConcurrentUse(t *testing.T) {
	// One compiled Pattern shared by many goroutines; all mutable match state
	// is per attempt, so this must be race-free.
	p := MustCompile("[abc]+%d")
	input := []byte("zzzabc1zzz")

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				loc := p.FindIndex(input)
				if loc == nil || loc[0] != 3 || loc[1] != 7 {
					t.Errorf("FindIndex = %v, want [3 7]", loc)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestProgramAccessors(t *testing.T) {
	p := MustCompile("a+")
	assert.Equal(t, p.String(), "a+")
	assert.Equal(t, p.Program().Len(), 3)
	assert.NilError(t, p.Program().Err())
	assert.Assert(t, p.Program().Dump() != "")
}
