package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStem(t *testing.T) {
	test := []string{"lane", "parsing", "parse", "cookies", "beautiful", "Creating", "constructing", "setting"}
	test = Stem(test)
	exp := []string{"lane", "pars", "pars", "cooki", "beauti", "creat", "construct", "set"}
	assert.Equal(t, exp, test)
}

func TestProcessor(t *testing.T) {
	test := Tokens{"parsing", "parse", "Cookies", "a", "the", "constructing", "construct"}
	p := NewProcessor(Lower, RemoveStopWordsFrom(StopWords()), Stem, Uniquify)
	act := p.Apply(test)

	exp := Tokens{"pars", "cooki", "construct"}
	assert.Equal(t, exp, act)
}

func TestLowerCase(t *testing.T) {
	test := []string{"GO", "THERE"}
	test = Lower(test)
	exp := []string{"go", "there"}
	assert.Equal(t, exp, test)
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, Tokens{"sum", "of", "a", "b"}, Tokenize("  sum of\ta\n\nb "))
	assert.Nil(t, Tokenize(""))
	assert.Nil(t, Tokenize(" \t\n"))
}

func TestStemSuffixOnlyWords(t *testing.T) {
	test := Tokens{"eed", "eeds", "parsing", "eings"}
	assert.NotPanics(t, func() { test = Stem(test) })
	assert.Equal(t, Tokens{"eed", "eeds", "pars", "eings"}, test)
}
