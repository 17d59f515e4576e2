package lsp

import (
	"context"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
	tsjava "github.com/smacker/go-tree-sitter/java"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/jnizero/java"
	"github.com/dhamidi/jnizero/jni"
)

// declaration is a method or constructor found in the syntax tree.
type declaration struct {
	name          string
	owner         string
	inInterface   bool
	isConstructor bool
	params        []string
	rng           protocol.Range
	selection     protocol.Range
}

// DocumentSymbols lists the natives and called-by-natives of text, located
// in the source through its syntax tree. Records without a matching
// declaration are left out.
func DocumentSymbols(ctx context.Context, path, text string, opts jni.Options) ([]protocol.DocumentSymbol, error) {
	parsed, err := jni.ParseSource(path, text, opts)
	if err != nil {
		return nil, err
	}
	b, err := jni.NewBindings(parsed, opts)
	if err != nil {
		return nil, err
	}
	decls, err := declarations(ctx, []byte(text))
	if err != nil {
		return nil, err
	}

	used := make([]bool, len(decls))
	find := func(match func(d declaration) bool) (declaration, bool) {
		for i, d := range decls {
			if !used[i] && match(d) {
				used[i] = true
				return d, true
			}
		}
		return declaration{}, false
	}

	symbols := []protocol.DocumentSymbol{}
	genJNI := jni.GenJNIClass(false, b.ModuleName, opts.PackagePrefix)
	for _, n := range b.Natives {
		d, ok := find(func(d declaration) bool {
			return !d.isConstructor && d.inInterface == n.IsProxy &&
				(d.name == n.Name || d.name == "native"+n.Name) &&
				sameParams(d.params, n.Params())
		})
		if !ok {
			log.Debugf("%s: no declaration for native %s", path, n.Name)
			continue
		}
		symbols = append(symbols, d.symbol(protocol.SymbolKindFunction, jni.StubName(n, b.Class, genJNI, false)))
	}
	for _, c := range b.CalledByNatives {
		d, ok := find(func(d declaration) bool {
			return !d.inInterface && d.isConstructor == c.IsConstructor &&
				(c.IsConstructor || d.name == c.Name) &&
				(c.JavaClassName == "" || d.owner == c.JavaClassName) &&
				sameParams(d.params, c.Params())
		})
		if !ok {
			log.Debugf("%s: no declaration for called by native %s", path, c.Name)
			continue
		}
		kind := protocol.SymbolKindMethod
		if c.IsConstructor {
			kind = protocol.SymbolKindConstructor
		}
		symbols = append(symbols, d.symbol(kind, c.JNIDescriptor()))
	}

	sort.SliceStable(symbols, func(i, j int) bool {
		x, y := symbols[i].Range.Start, symbols[j].Range.Start
		if x.Line != y.Line {
			return x.Line < y.Line
		}
		return x.Character < y.Character
	})
	return symbols, nil
}

func (d declaration) symbol(kind protocol.SymbolKind, detail string) protocol.DocumentSymbol {
	return protocol.DocumentSymbol{
		Name:           d.name,
		Detail:         &detail,
		Kind:           kind,
		Range:          d.rng,
		SelectionRange: d.selection,
	}
}

func sameParams(names []string, params java.ParamList) bool {
	if len(names) != len(params) {
		return false
	}
	for i, p := range params {
		if names[i] != p.Name {
			return false
		}
	}
	return true
}

// declarations parses source as Java and returns every method and
// constructor declaration in source order.
func declarations(ctx context.Context, source []byte) ([]declaration, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(tsjava.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var decls []declaration
	collectDeclarations(tree.RootNode(), source, nil, &decls)
	return decls, nil
}

func collectDeclarations(n *sitter.Node, source []byte, owner *sitter.Node, decls *[]declaration) {
	switch n.Type() {
	case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration":
		owner = n
	case "method_declaration", "constructor_declaration":
		if d, ok := newDeclaration(n, source, owner); ok {
			*decls = append(*decls, d)
		}
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		collectDeclarations(n.NamedChild(i), source, owner, decls)
	}
}

func newDeclaration(n *sitter.Node, source []byte, owner *sitter.Node) (declaration, bool) {
	name := n.ChildByFieldName("name")
	if name == nil {
		return declaration{}, false
	}
	d := declaration{
		name:          name.Content(source),
		isConstructor: n.Type() == "constructor_declaration",
		rng:           nodeRange(n),
		selection:     nodeRange(name),
	}
	if owner != nil {
		d.inInterface = owner.Type() == "interface_declaration"
		if ownerName := owner.ChildByFieldName("name"); ownerName != nil {
			d.owner = ownerName.Content(source)
		}
	}

	params := n.ChildByFieldName("parameters")
	if params == nil {
		return d, true
	}
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		switch p.Type() {
		case "formal_parameter":
			if id := p.ChildByFieldName("name"); id != nil {
				d.params = append(d.params, id.Content(source))
			}
		case "spread_parameter":
			for j := 0; j < int(p.NamedChildCount()); j++ {
				if v := p.NamedChild(j); v.Type() == "variable_declarator" {
					if id := v.ChildByFieldName("name"); id != nil {
						d.params = append(d.params, id.Content(source))
					}
				}
			}
		}
	}
	return d, true
}

// nodeRange converts tree-sitter points to LSP positions. Columns are byte
// offsets, which matches UTF-16 for ASCII sources.
func nodeRange(n *sitter.Node) protocol.Range {
	start, end := n.StartPoint(), n.EndPoint()
	return protocol.Range{
		Start: protocol.Position{Line: protocol.UInteger(start.Row), Character: protocol.UInteger(start.Column)},
		End:   protocol.Position{Line: protocol.UInteger(end.Row), Character: protocol.UInteger(end.Column)},
	}
}
