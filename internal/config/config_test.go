package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_LoadScanner_preservesPatternOrder(t *testing.T) {
	doc := `
format = "ICTIOBUS"
type = "SCANNER"
name = "nums"

[[pattern]]
name = "KEYWORD_IF"
pattern = "if"

[[pattern]]
name = "IDENT"
pattern = "[a..z]+"
`
	sc, err := LoadScanner([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "nums", sc.Name())
	exprs := sc.Expressions()
	require.Len(t, exprs, 2)
	assert.Equal(t, "KEYWORD_IF", exprs[0].Name)
	assert.Equal(t, "IDENT", exprs[1].Name)
}

func Test_LoadScanner_wrongType(t *testing.T) {
	doc := `
format = "ICTIOBUS"
type = "GRAMMAR"
name = "nums"
`
	_, err := LoadScanner([]byte(doc))
	assert.Error(t, err)
}

func Test_LoadGrammar_preservesProductionOrder(t *testing.T) {
	doc := `
format = "ICTIOBUS"
type = "GRAMMAR"
name = "ini"
start = "<INI>"

[[production]]
nonterminal = "<INI>"
body = "<SECTION> <INI> |"

[[production]]
nonterminal = "<SECTION>"
body = "string"
`
	p, err := LoadGrammar([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "ini", p.Name())
	assert.Equal(t, "<INI>", p.Start())
	require.Len(t, p.Rules(), 3)
	assert.Equal(t, "<INI>", p.Rules()[0].NonTerminal)
}

func Test_LoadGrammar_missingFormat(t *testing.T) {
	doc := `
type = "GRAMMAR"
name = "ini"
start = "<INI>"

[[production]]
nonterminal = "<INI>"
body = "a"
`
	_, err := LoadGrammar([]byte(doc))
	assert.Error(t, err)
}

func Test_ScanFileInfo(t *testing.T) {
	doc := `
format = "ICTIOBUS"
type = "SCANNER"
name = "nums"
`
	info, err := ScanFileInfo([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "ICTIOBUS", info.Format)
	assert.Equal(t, "SCANNER", info.Type)
}
