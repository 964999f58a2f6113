// Package config loads scanner and grammar definitions from TOML files.
// Go's map[string]string does not preserve iteration order, but spec
// declaration order fixes both pattern priority and grammar rule numbering,
// so this package decodes TOML array-of-tables into ordered slices rather
// than accepting a bare map anywhere on the path to automaton.NewScanner or
// grammar.NewParser.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/dekarrin/ictiobus/internal/ictiobus/automaton"
	"github.com/dekarrin/ictiobus/internal/ictiobus/grammar"
)

// FileInfo is the header every config file must carry, read first so a
// malformed or wrong-kind file is rejected before anything downstream of it
// is attempted.
type FileInfo struct {
	Format string `toml:"format"`
	Type   string `toml:"type"`
}

const (
	expectedFormat = "ICTIOBUS"
	scannerType    = "SCANNER"
	grammarType    = "GRAMMAR"
)

type patternEntry struct {
	Name    string `toml:"name"`
	Pattern string `toml:"pattern"`
}

type productionEntry struct {
	NonTerminal string `toml:"nonterminal"`
	Body        string `toml:"body"`
}

type scannerFile struct {
	Format   string         `toml:"format"`
	Type     string         `toml:"type"`
	Name     string         `toml:"name"`
	Patterns []patternEntry `toml:"pattern"`
}

type grammarFile struct {
	Format      string            `toml:"format"`
	Type        string            `toml:"type"`
	Name        string            `toml:"name"`
	Start       string            `toml:"start"`
	Productions []productionEntry `toml:"production"`
}

// ScanFileInfo reads just the top-level format/type header from data,
// without decoding the rest of the document. Mirrors how a TQW-format file
// is sniffed before full parsing: cheap enough to call before committing to
// one of LoadScannerFile/LoadGrammarFile.
func ScanFileInfo(data []byte) (FileInfo, error) {
	var info FileInfo
	if _, err := toml.Decode(string(data), &info); err != nil {
		return FileInfo{}, err
	}
	return info, nil
}

// LoadScannerFile reads a SCANNER-type config file from path and compiles it
// into a Scanner in declared pattern order.
func LoadScannerFile(path string) (automaton.Scanner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return automaton.Scanner{}, err
	}
	return LoadScanner(data)
}

// LoadScanner compiles a SCANNER-type config document into a Scanner.
func LoadScanner(data []byte) (automaton.Scanner, error) {
	var f scannerFile
	if _, err := toml.Decode(string(data), &f); err != nil {
		return automaton.Scanner{}, err
	}
	if strings.ToUpper(f.Format) != expectedFormat {
		return automaton.Scanner{}, fmt.Errorf("in header: 'format' must be set to %q", expectedFormat)
	}
	if strings.ToUpper(f.Type) != scannerType {
		return automaton.Scanner{}, fmt.Errorf("in header: 'type' must be set to %q", scannerType)
	}
	if f.Name == "" {
		return automaton.Scanner{}, fmt.Errorf("'name' key must be set")
	}

	patterns := make([]automaton.PatternSpec, len(f.Patterns))
	for i, p := range f.Patterns {
		patterns[i] = automaton.PatternSpec{Name: p.Name, Pattern: p.Pattern}
	}

	return automaton.NewScanner(f.Name, patterns)
}

// LoadGrammarFile reads a GRAMMAR-type config file from path and compiles it
// into a Parser in declared production order.
func LoadGrammarFile(path string) (grammar.Parser, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return grammar.Parser{}, err
	}
	return LoadGrammar(data)
}

// LoadGrammar compiles a GRAMMAR-type config document into a Parser.
func LoadGrammar(data []byte) (grammar.Parser, error) {
	var f grammarFile
	if _, err := toml.Decode(string(data), &f); err != nil {
		return grammar.Parser{}, err
	}
	if strings.ToUpper(f.Format) != expectedFormat {
		return grammar.Parser{}, fmt.Errorf("in header: 'format' must be set to %q", expectedFormat)
	}
	if strings.ToUpper(f.Type) != grammarType {
		return grammar.Parser{}, fmt.Errorf("in header: 'type' must be set to %q", grammarType)
	}
	if f.Name == "" {
		return grammar.Parser{}, fmt.Errorf("'name' key must be set")
	}
	if f.Start == "" {
		return grammar.Parser{}, fmt.Errorf("'start' key must be set")
	}

	productions := make([]grammar.ProductionSpec, len(f.Productions))
	for i, p := range f.Productions {
		productions[i] = grammar.ProductionSpec{NonTerminal: p.NonTerminal, Body: p.Body}
	}

	return grammar.NewParser(f.Name, f.Start, productions)
}
