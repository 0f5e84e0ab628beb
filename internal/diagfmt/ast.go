package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"walle/internal/ast"
	"walle/internal/source"
)

type treeNode struct {
	label    string
	children []*treeNode
}

func (n *treeNode) add(label string) *treeNode {
	c := &treeNode{label: label}
	n.children = append(n.children, c)
	return c
}

func (n *treeNode) write(sb *strings.Builder, prefix string, last, root bool) {
	switch {
	case root:
		sb.WriteString(n.label)
	case last:
		sb.WriteString(prefix + "└─ " + n.label)
	default:
		sb.WriteString(prefix + "├─ " + n.label)
	}
	sb.WriteByte('\n')

	childPrefix := prefix
	if !root {
		if last {
			childPrefix += "   "
		} else {
			childPrefix += "│  "
		}
	}
	for i, c := range n.children {
		c.write(sb, childPrefix, i == len(n.children)-1, false)
	}
}

// FormatASTPretty writes prog as an indented tree, one instruction per branch.
func FormatASTPretty(w io.Writer, b *ast.Builder, prog *ast.Program, fs *source.FileSet) error {
	name := "<input>"
	if fs != nil {
		if f := fs.Get(prog.File); f != nil {
			name = f.Path
		}
	}
	root := &treeNode{label: fmt.Sprintf("Program %s (%d instructions)", name, prog.Len())}
	for i, id := range prog.Instrs {
		in := b.Instr(id)
		if in == nil {
			continue
		}
		node := root.add(fmt.Sprintf("[%d] %s @%d", i, in.Kind, in.Line))
		for _, arg := range instrArgs(b, id, in) {
			if arg.expr.IsValid() {
				exprTree(node.add(arg.name+": "), b, arg.expr)
			} else {
				node.add(arg.name + ": " + arg.text)
			}
		}
	}
	var sb strings.Builder
	root.write(&sb, "", true, true)
	_, err := io.WriteString(w, sb.String())
	return err
}

type instrArg struct {
	name string
	expr ast.ExprID
	text string
}

func instrArgs(b *ast.Builder, id ast.InstrID, in *ast.Instr) []instrArg {
	e := func(name string, x ast.ExprID) instrArg { return instrArg{name: name, expr: x} }
	switch in.Kind {
	case ast.InstrSpawn:
		if d, ok := b.Instrs.Spawn(id); ok {
			return []instrArg{e("x", d.X), e("y", d.Y)}
		}
	case ast.InstrColor:
		if d, ok := b.Instrs.Color(id); ok {
			return []instrArg{e("color", d.Color)}
		}
	case ast.InstrSize:
		if d, ok := b.Instrs.Size(id); ok {
			return []instrArg{e("size", d.Size)}
		}
	case ast.InstrDrawLine:
		if d, ok := b.Instrs.DrawLine(id); ok {
			return []instrArg{e("dx", d.DX), e("dy", d.DY), e("distance", d.Dist)}
		}
	case ast.InstrDrawCircle:
		if d, ok := b.Instrs.DrawCircle(id); ok {
			return []instrArg{e("dx", d.DX), e("dy", d.DY), e("radius", d.Radius)}
		}
	case ast.InstrDrawRectangle:
		if d, ok := b.Instrs.DrawRectangle(id); ok {
			return []instrArg{e("dx", d.DX), e("dy", d.DY), e("distance", d.Dist), e("width", d.Width), e("height", d.Height)}
		}
	case ast.InstrAssign:
		if d, ok := b.Instrs.Assign(id); ok {
			return []instrArg{{name: "name", text: d.Name}, e("value", d.Value)}
		}
	case ast.InstrLabel:
		if d, ok := b.Instrs.Label(id); ok {
			return []instrArg{{name: "name", text: d.Name}}
		}
	case ast.InstrGoTo:
		if d, ok := b.Instrs.GoTo(id); ok {
			return []instrArg{{name: "label", text: d.Label}, e("cond", d.Cond)}
		}
	}
	return nil
}

func exprTree(node *treeNode, b *ast.Builder, id ast.ExprID) {
	x := b.Expr(id)
	if x == nil {
		node.label += "<nil>"
		return
	}
	switch x.Kind {
	case ast.ExprLiteral:
		d, _ := b.Exprs.Literal(id)
		node.label += "Literal " + d.Value.String()
	case ast.ExprVariable:
		d, _ := b.Exprs.Variable(id)
		node.label += "Variable " + d.Name
	case ast.ExprUnary:
		d, _ := b.Exprs.Unary(id)
		node.label += "Unary " + d.Op.String()
		exprTree(node.add(""), b, d.Operand)
	case ast.ExprBinary:
		d, _ := b.Exprs.Binary(id)
		node.label += "Binary " + d.Op.String()
		exprTree(node.add(""), b, d.Left)
		exprTree(node.add(""), b, d.Right)
	case ast.ExprBuiltin:
		d, _ := b.Exprs.BuiltinCall(id)
		node.label += "Call " + d.Builtin.String()
		for _, a := range d.Args {
			exprTree(node.add(""), b, a)
		}
	default:
		reason := ""
		if d, ok := b.Exprs.Invalid(id); ok {
			reason = d.Reason
		}
		node.label += "Invalid (" + reason + ")"
	}
}

// FormatExpr renders id back to source form, fully parenthesised.
func FormatExpr(b *ast.Builder, id ast.ExprID) string {
	x := b.Expr(id)
	if x == nil {
		return "<nil>"
	}
	switch x.Kind {
	case ast.ExprLiteral:
		d, _ := b.Exprs.Literal(id)
		return d.Value.String()
	case ast.ExprVariable:
		d, _ := b.Exprs.Variable(id)
		return d.Name
	case ast.ExprUnary:
		d, _ := b.Exprs.Unary(id)
		return d.Op.String() + FormatExpr(b, d.Operand)
	case ast.ExprBinary:
		d, _ := b.Exprs.Binary(id)
		return "(" + FormatExpr(b, d.Left) + " " + d.Op.String() + " " + FormatExpr(b, d.Right) + ")"
	case ast.ExprBuiltin:
		d, _ := b.Exprs.BuiltinCall(id)
		args := make([]string, len(d.Args))
		for i, a := range d.Args {
			args[i] = FormatExpr(b, a)
		}
		return d.Builtin.String() + "(" + strings.Join(args, ", ") + ")"
	}
	return "<invalid>"
}

// InstrJSON is one instruction in the JSON dump.
type InstrJSON struct {
	Index int               `json:"index"`
	Kind  string            `json:"kind"`
	Line  int               `json:"line"`
	Span  string            `json:"span"`
	Args  map[string]string `json:"args,omitempty"`
}

// ProgramJSON is the JSON dump of a parsed program.
type ProgramJSON struct {
	File   string         `json:"file"`
	Instrs []InstrJSON    `json:"instructions"`
	Labels map[string]int `json:"labels,omitempty"`
}

// FormatASTJSON writes prog with every expression rendered by FormatExpr.
func FormatASTJSON(w io.Writer, b *ast.Builder, prog *ast.Program, fs *source.FileSet) error {
	out := ProgramJSON{Instrs: make([]InstrJSON, 0, prog.Len())}
	if fs != nil {
		if f := fs.Get(prog.File); f != nil {
			out.File = f.Path
		}
	}
	for i, id := range prog.Instrs {
		in := b.Instr(id)
		if in == nil {
			continue
		}
		ij := InstrJSON{Index: i, Kind: in.Kind.String(), Line: in.Line, Span: formatSpan(in.Span, fs)}
		for _, arg := range instrArgs(b, id, in) {
			if ij.Args == nil {
				ij.Args = make(map[string]string)
			}
			if arg.expr.IsValid() {
				ij.Args[arg.name] = FormatExpr(b, arg.expr)
			} else {
				ij.Args[arg.name] = arg.text
			}
		}
		if in.Kind == ast.InstrLabel {
			if d, ok := b.Instrs.Label(id); ok {
				if idx, ok := prog.Labels.Lookup(d.Name); ok {
					if out.Labels == nil {
						out.Labels = make(map[string]int)
					}
					out.Labels[d.Name] = idx
				}
			}
		}
		out.Instrs = append(out.Instrs, ij)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
