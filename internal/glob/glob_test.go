package glob

import (
	"errors"
	"regexp/syntax"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"*.txt", `^[^/]*\.txt$`},
		{"**", `^.*$`},
		{"**/x", `^(?:.*/)?x$`},
		{"a?c", `^a[^/]c$`},
		{"[abc].go", `^[abc]\.go$`},
		{"[!abc].go", `^[^abc]\.go$`},
		{"{a,b}.txt", `^(?:a|b)\.txt$`},
		{"a/b", `^a\/b$`},
		{"x^$()|+\\", `^x\^\$\(\)\|\+\\$`},
		{"a,b", `^a,b$`},
		{"a}", `^a\}$`},
		{"", `^$`},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := Translate(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		match   []string
		noMatch []string
	}{
		{
			pattern: "*.txt",
			match:   []string{"report.txt", ".txt", "a.b.txt"},
			noMatch: []string{"report.txt.bak", "sub/report.txt", "report.TXT"},
		},
		{
			pattern: "**/x",
			match:   []string{"x", "a/b/x", "a/x"},
			noMatch: []string{"ax", "a/b/y"},
		},
		{
			pattern: "**.go",
			match:   []string{"main.go", "cmd/main.go"},
			noMatch: []string{"main.gox"},
		},
		{
			pattern: "file?.log",
			match:   []string{"file1.log", "fileA.log"},
			noMatch: []string{"file.log", "file12.log", "file/.log"},
		},
		{
			pattern: "img_[0-9][0-9].png",
			match:   []string{"img_01.png", "img_99.png"},
			noMatch: []string{"img_1a.png", "img_001.png"},
		},
		{
			pattern: "[!abc].txt",
			match:   []string{"d.txt", "z.txt", "!.txt"},
			noMatch: []string{"a.txt", "c.txt", "dd.txt"},
		},
		{
			pattern: "[^abc].txt",
			match:   []string{"d.txt"},
			noMatch: []string{"b.txt"},
		},
		{
			pattern: "[!]]x",
			match:   []string{"ax"},
			noMatch: []string{"]x"},
		},
		{
			pattern: "*.{jpg,png,gif}",
			match:   []string{"cat.jpg", "dog.png", "anim.gif"},
			noMatch: []string{"cat.jpeg", "cat.jpg.bak"},
		},
		{
			pattern: "{src,test{s,data}}",
			match:   []string{"src", "tests", "testdata"},
			noMatch: []string{"test", "srcs"},
		},
		{
			pattern: "smith, john.vcf",
			match:   []string{"smith, john.vcf"},
			noMatch: []string{"smith"},
		},
		{
			pattern: "notes(1).md",
			match:   []string{"notes(1).md"},
			noMatch: []string{"notes1.md"},
		},
		{
			pattern: "c++.txt",
			match:   []string{"c++.txt"},
			noMatch: []string{"cc.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			m, err := Compile(tt.pattern)
			require.NoError(t, err)
			for _, name := range tt.match {
				assert.True(t, m.Match(name), "%q should match %q", tt.pattern, name)
			}
			for _, name := range tt.noMatch {
				assert.False(t, m.Match(name), "%q should not match %q", tt.pattern, name)
			}
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		pattern string
		offset  int
		target  error
	}{
		{"[abc", 0, ErrUnclosedBracket},
		{"x[abc", 1, ErrUnclosedBracket},
		{"[]", 0, ErrUnclosedBracket},
		{"{a,b", 0, ErrUnclosedBrace},
		{"{a,{b}", 0, ErrUnclosedBrace},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			_, err := Compile(tt.pattern)
			require.Error(t, err)

			var perr *PatternError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.pattern, perr.Pattern)
			assert.Equal(t, tt.offset, perr.Offset)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestCompile_MalformedClassWrapsRegexpError(t *testing.T) {
	_, err := Compile("[z-a].txt")
	require.Error(t, err)

	var perr *PatternError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, -1, perr.Offset)

	var syntaxErr *syntax.Error
	assert.True(t, errors.As(err, &syntaxErr))
	assert.Contains(t, err.Error(), "[z-a].txt")
}

func TestMatcherAccessors(t *testing.T) {
	m, err := Compile("*.md")
	require.NoError(t, err)
	assert.Equal(t, "*.md", m.Pattern())
	assert.Equal(t, `^[^/]*\.md$`, m.Regexp())
}
