// Package walker emits (comment, structural context, scope event)
// triples from JavaScript source, in source order, into a pipeline. It
// is the reference integration for the extraction core: tree-sitter
// provides the concrete syntax tree, the walker decides which comments
// attach to which constructs and which constructs open naming scopes.
package walker

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/doclet-labs/doclet/internal/derrors"
	"github.com/doclet-labs/doclet/internal/doclet"
	"github.com/doclet-labs/doclet/internal/pipeline"
	"github.com/doclet-labs/doclet/internal/scope"
)

// Walker parses JavaScript source and drives a pipeline. Each Walk
// call uses its own tree-sitter parser; a Walker may be reused
// sequentially but not concurrently.
type Walker struct {
	parser *sitter.Parser
}

// New returns a walker for JavaScript source.
func New() *Walker {
	p := sitter.NewParser()
	p.SetLanguage(javascript.GetLanguage())
	return &Walker{parser: p}
}

// Walk traverses source in order, feeding p. The file name is carried
// into doclet meta only; no file-system access happens here.
func (w *Walker) Walk(ctx context.Context, source []byte, file string, p *pipeline.Pipeline) error {
	tree, err := w.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return derrors.Wrapf(err, "parsing %s", file)
	}
	defer tree.Close()

	p.BeginFile()
	fw := &fileWalk{source: source, file: file, pipe: p}
	if err := fw.walkScope(tree.RootNode()); err != nil {
		return err
	}
	return p.EndFile()
}

type fileWalk struct {
	source []byte
	file   string
	pipe   *pipeline.Pipeline
}

// walkScope visits the named children of a block in source order,
// pairing doc comments with the construct that follows them.
func (fw *fileWalk) walkScope(block *sitter.Node) error {
	var pending string

	for i := 0; i < int(block.NamedChildCount()); i++ {
		child := block.NamedChild(i)

		if child.Type() == "comment" {
			text := fw.text(child)
			if !strings.HasPrefix(text, "/**") {
				continue
			}
			if fw.isStandalone(child, text) {
				if err := fw.standalone(child, text); err != nil {
					return err
				}
				pending = ""
				continue
			}
			pending = text
			continue
		}

		if err := fw.construct(child, pending); err != nil {
			return err
		}
		pending = ""
	}
	return nil
}

// isStandalone reports whether a doc comment claims the file rather
// than the next construct: nothing follows it, another comment follows
// it, or it declares a module.
func (fw *fileWalk) isStandalone(node *sitter.Node, text string) bool {
	if strings.Contains(text, "@module") || strings.Contains(text, "@file") {
		return true
	}
	next := node.NextNamedSibling()
	return next == nil || next.Type() == "comment"
}

func (fw *fileWalk) standalone(node *sitter.Node, text string) error {
	src := pipeline.SourceContext{
		File:       fw.file,
		Line:       int(node.StartPoint().Row) + 1,
		Standalone: true,
	}
	_, _, err := fw.pipe.Comment(text, src)
	return err
}

// construct emits the doclet for one declaration-like node and
// descends into its body with the proper scope entry.
func (fw *fileWalk) construct(node *sitter.Node, comment string) error {
	target, src, ok := fw.contextFor(node)
	if !ok {
		// Not a documentable construct; a doc comment attached to it is
		// dropped with the construct.
		return nil
	}

	d, pushed, err := fw.pipe.Comment(comment, src)
	if err != nil {
		return err
	}

	body := fw.bodyOf(target)
	if body == nil {
		if pushed {
			return fw.pipe.Exit()
		}
		return nil
	}

	entered := false
	if !pushed {
		fw.pipe.Enter(scope.EntryForKind(d.Kind, d.Longname))
		entered = true
	}
	if err := fw.walkScope(body); err != nil {
		return err
	}
	if pushed || entered {
		return fw.pipe.Exit()
	}
	return nil
}

// contextFor derives the structural context the tags may later
// override. target is the node whose body should be descended.
func (fw *fileWalk) contextFor(node *sitter.Node) (target *sitter.Node, src pipeline.SourceContext, ok bool) {
	src = pipeline.SourceContext{
		File:     fw.file,
		Line:     int(node.StartPoint().Row) + 1,
		CodeKind: node.Type(),
	}

	switch node.Type() {
	case "class_declaration":
		src.Kind = doclet.KindClass
		src.Name = fw.fieldText(node, "name")
		return node, src, true

	case "function_declaration", "generator_function_declaration":
		src.Kind = doclet.KindFunction
		src.Name = fw.fieldText(node, "name")
		return node, src, true

	case "method_definition":
		src.Kind = doclet.KindFunction
		src.Name = fw.fieldText(node, "name")
		if fw.hasKeyword(node, "static") {
			src.Scope = doclet.ScopeStatic
		}
		return node, src, true

	case "lexical_declaration", "variable_declaration":
		decl := fw.firstOfType(node, "variable_declarator")
		if decl == nil {
			return nil, src, false
		}
		src.Name = fw.fieldText(decl, "name")
		value := decl.ChildByFieldName("value")
		src.Kind = fw.valueKind(value)
		if src.Kind == doclet.KindMember && fw.hasKeyword(node, "const") {
			src.Kind = doclet.KindConstant
		}
		return value, src, true

	case "expression_statement":
		assign := fw.firstOfType(node, "assignment_expression")
		if assign == nil {
			return nil, src, false
		}
		left := fw.text(assign.ChildByFieldName("left"))
		right := assign.ChildByFieldName("right")
		src.Kind = fw.valueKind(right)
		src.CodeKind = "assignment_expression"
		switch {
		case left == "module.exports":
			src.DefaultExport = true
		case strings.HasPrefix(left, "module.exports."):
			src.Name = strings.TrimPrefix(left, "module.exports.")
			src.Scope = doclet.ScopeStatic
		case strings.HasPrefix(left, "this."):
			src.Name = strings.TrimPrefix(left, "this.")
			src.Scope = doclet.ScopeInstance
		default:
			src.Name = left
		}
		return right, src, true

	case "export_statement":
		decl := node.ChildByFieldName("declaration")
		if decl == nil {
			decl = node.ChildByFieldName("value")
		}
		if decl == nil {
			return nil, src, false
		}
		target, src, ok = fw.contextFor(decl)
		if !ok {
			// export default <expression>
			src.Kind = fw.valueKind(decl)
			src.CodeKind = decl.Type()
			target, ok = decl, true
		}
		src.Line = int(node.StartPoint().Row) + 1
		if fw.hasKeyword(node, "default") {
			src.DefaultExport = true
		}
		return target, src, ok
	}
	return nil, src, false
}

// valueKind infers a doclet kind from an assigned value node.
func (fw *fileWalk) valueKind(value *sitter.Node) doclet.Kind {
	if value == nil {
		return doclet.KindMember
	}
	switch value.Type() {
	case "function_expression", "function", "arrow_function", "generator_function":
		return doclet.KindFunction
	case "class", "class_declaration":
		return doclet.KindClass
	default:
		return doclet.KindMember
	}
}

// bodyOf returns the block to descend into, if the construct has one.
func (fw *fileWalk) bodyOf(node *sitter.Node) *sitter.Node {
	if node == nil {
		return nil
	}
	switch node.Type() {
	case "class_declaration", "class":
		return node.ChildByFieldName("body")
	case "function_declaration", "generator_function_declaration",
		"function_expression", "function", "arrow_function", "method_definition":
		body := node.ChildByFieldName("body")
		if body != nil && body.Type() == "statement_block" {
			return body
		}
		return nil
	}
	return nil
}

// firstOfType returns the first named child of node with the given
// node type, or nil.
func (fw *fileWalk) firstOfType(node *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if c := node.NamedChild(i); c.Type() == typ {
			return c
		}
	}
	return nil
}

func (fw *fileWalk) fieldText(node *sitter.Node, field string) string {
	return fw.text(node.ChildByFieldName(field))
}

func (fw *fileWalk) text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return string(fw.source[node.StartByte():node.EndByte()])
}

// hasKeyword reports whether node has an anonymous child token with
// the given text ("static", "const", "default").
func (fw *fileWalk) hasKeyword(node *sitter.Node, keyword string) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		c := node.Child(i)
		if !c.IsNamed() && fw.text(c) == keyword {
			return true
		}
	}
	return false
}
