package driver

import (
	"context"
	"fmt"
	"strconv"

	"walle/internal/diag"
	"walle/internal/lexer"
	"walle/internal/source"
	"walle/internal/token"
	"walle/internal/trace"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize loads path and returns every token up to and including EOF.
func Tokenize(ctx context.Context, path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return tokenizeFile(ctx, fs, fs.Get(fileID), maxDiagnostics), nil
}

// TokenizeSource is Tokenize for an in-memory program.
func TokenizeSource(ctx context.Context, name string, src []byte, maxDiagnostics int) *TokenizeResult {
	fs := source.NewFileSet()
	return tokenizeFile(ctx, fs, fs.Get(fs.AddVirtual(name, src)), maxDiagnostics)
}

func tokenizeFile(ctx context.Context, fs *source.FileSet, file *source.File, maxDiagnostics int) *TokenizeResult {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "lex", trace.CurrentSpan(ctx).SpanID)
	bag := diag.NewBag(maxDiagnostics)
	adapter := lexer.ReporterAdapter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: adapter.Reporter()})
	tokens := lx.All()
	span.WithExtra("tokens", strconv.Itoa(len(tokens))).End("")

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}
}
