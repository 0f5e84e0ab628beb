package token_test

import (
	"testing"

	"walle/internal/token"
)

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		in   string
		kind token.Kind
		ok   bool
	}{
		{"Spawn", token.KwSpawn, true},
		{"DrawRectangle", token.KwDrawRectangle, true},
		{"GoTo", token.KwGoTo, true},
		{"IsCanvasColor", token.KwIsCanvasColor, true},
		{"true", token.KwTrue, true},
		{"spawn", 0, false},
		{"Loop", 0, false},
	}
	for _, tt := range tests {
		kind, ok := token.LookupKeyword(tt.in)
		if ok != tt.ok || (ok && kind != tt.kind) {
			t.Errorf("LookupKeyword(%q) = %v,%v; want %v,%v", tt.in, kind, ok, tt.kind, tt.ok)
		}
	}
}

func TestKindClasses(t *testing.T) {
	cmd := token.Token{Kind: token.KwFill}
	if !cmd.IsCommand() || cmd.IsBuiltin() || !cmd.IsKeyword() {
		t.Errorf("Fill classification wrong")
	}
	fn := token.Token{Kind: token.KwGetColorCount}
	if fn.IsCommand() || !fn.IsBuiltin() {
		t.Errorf("GetColorCount classification wrong")
	}
	for _, k := range []token.Kind{token.Number, token.String, token.KwTrue, token.KwFalse} {
		if !(token.Token{Kind: k}).IsLiteral() {
			t.Errorf("%v should be a literal", k)
		}
	}
	for _, k := range []token.Kind{token.Arrow, token.StarStar, token.Bang, token.Comma} {
		if !(token.Token{Kind: k}).IsPunctOrOp() {
			t.Errorf("%v should be punctuation", k)
		}
	}
	if (token.Token{Kind: token.NewLine}).IsPunctOrOp() {
		t.Errorf("NewLine is not punctuation")
	}
}

func TestKindString(t *testing.T) {
	if got := token.KwDrawLine.String(); got != "DrawLine" {
		t.Errorf("got %q", got)
	}
	if got := token.StarStar.String(); got != "**" {
		t.Errorf("got %q", got)
	}
	if got := token.Kind(250).String(); got != "Kind(?)" {
		t.Errorf("got %q", got)
	}
}
