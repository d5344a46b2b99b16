// Package parser wraps tree-sitter grammar setup and pooling. It is kept
// below the language/frontend packages: it knows nothing about the graph
// model, it only turns source bytes into a tree-sitter Tree for a named
// grammar.
package parser

import (
	"fmt"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	tree_sitter_c "github.com/tree-sitter/tree-sitter-c/bindings/go"
	tree_sitter_c_sharp "github.com/tree-sitter/tree-sitter-c-sharp/bindings/go"
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_php "github.com/tree-sitter/tree-sitter-php/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_scala "github.com/tree-sitter/tree-sitter-scala/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	tree_sitter_kotlin "github.com/tree-sitter-grammars/tree-sitter-kotlin/bindings/go"
	tree_sitter_lua "github.com/tree-sitter-grammars/tree-sitter-lua/bindings/go"
)

// Grammar identifies a tree-sitter grammar by a stable string key, rather
// than a closed Go enum, so internal/language can grow new grammars
// without a change here.
type Grammar string

const (
	Go         Grammar = "go"
	Python     Grammar = "python"
	JavaScript Grammar = "javascript"
	TypeScript Grammar = "typescript"
	TSX        Grammar = "tsx"
	Java       Grammar = "java"
	C          Grammar = "c"
	CPP        Grammar = "cpp"
	Rust       Grammar = "rust"
	CSharp     Grammar = "c-sharp"
	PHP        Grammar = "php"
	Lua        Grammar = "lua"
	Scala      Grammar = "scala"
	Kotlin     Grammar = "kotlin"
)

var (
	languagesOnce sync.Once
	languages     map[Grammar]*tree_sitter.Language
	parserPools   map[Grammar]*sync.Pool
)

func initLanguages() {
	languagesOnce.Do(func() {
		languages = map[Grammar]*tree_sitter.Language{
			Go:         tree_sitter.NewLanguage(tree_sitter_go.Language()),
			Python:     tree_sitter.NewLanguage(tree_sitter_python.Language()),
			JavaScript: tree_sitter.NewLanguage(tree_sitter_javascript.Language()),
			TypeScript: tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()),
			TSX:        tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTSX()),
			Java:       tree_sitter.NewLanguage(tree_sitter_java.Language()),
			C:          tree_sitter.NewLanguage(tree_sitter_c.Language()),
			CPP:        tree_sitter.NewLanguage(tree_sitter_cpp.Language()),
			Rust:       tree_sitter.NewLanguage(tree_sitter_rust.Language()),
			CSharp:     tree_sitter.NewLanguage(tree_sitter_c_sharp.Language()),
			PHP:        tree_sitter.NewLanguage(tree_sitter_php.LanguagePHPOnly()),
			Lua:        tree_sitter.NewLanguage(tree_sitter_lua.Language()),
			Scala:      tree_sitter.NewLanguage(tree_sitter_scala.Language()),
			Kotlin:     tree_sitter.NewLanguage(tree_sitter_kotlin.Language()),
		}

		parserPools = make(map[Grammar]*sync.Pool, len(languages))
		for g, tsLang := range languages {
			tsLang := tsLang
			parserPools[g] = &sync.Pool{
				New: func() any {
					p := tree_sitter.NewParser()
					if err := p.SetLanguage(tsLang); err != nil {
						panic(fmt.Sprintf("set language: %v", err))
					}
					return p
				},
			}
		}
	})
}

// GetLanguage returns the tree-sitter Language for a Grammar.
func GetLanguage(g Grammar) (*tree_sitter.Language, error) {
	initLanguages()
	tsLang, ok := languages[g]
	if !ok {
		return nil, fmt.Errorf("parser: unsupported grammar %q", g)
	}
	return tsLang, nil
}

// Parse parses source code into a tree-sitter AST Tree. The caller must
// call tree.Close() when done. Parsers are pooled per grammar via
// sync.Pool to avoid per-file allocation.
func Parse(g Grammar, source []byte) (*tree_sitter.Tree, error) {
	initLanguages()

	pool, ok := parserPools[g]
	if !ok {
		return nil, fmt.Errorf("parser: unsupported grammar %q", g)
	}

	p, _ := pool.Get().(*tree_sitter.Parser)
	if p == nil {
		return nil, fmt.Errorf("parser: failed to get parser for grammar %q", g)
	}
	tree := p.Parse(source, nil)
	pool.Put(p)

	if tree == nil {
		return nil, fmt.Errorf("parser: parse failed for grammar %q", g)
	}

	return tree, nil
}

// WalkFunc is called for each node during AST traversal. Return false to
// skip children.
type WalkFunc func(node *tree_sitter.Node) bool

// Walk traverses the AST in depth-first order.
func Walk(node *tree_sitter.Node, fn WalkFunc) {
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil {
			Walk(child, fn)
		}
	}
}

// NodeText returns the text content of a node.
func NodeText(node *tree_sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}
