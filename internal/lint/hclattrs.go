package lint

import (
	"sort"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// AttrNames returns a block's attribute names in sorted order. The
// underlying map iterates randomly; rules need deterministic findings.
func AttrNames(b *hclsyntax.Block) []string {
	if b == nil || b.Body == nil {
		return nil
	}
	names := make([]string, 0, len(b.Body.Attributes))
	for name := range b.Body.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Attr returns the named attribute of a block's body, or nil when the
// attribute is absent.
func Attr(b *hclsyntax.Block, name string) *hclsyntax.Attribute {
	if b == nil || b.Body == nil {
		return nil
	}
	return b.Body.Attributes[name]
}

// AttrString evaluates the named attribute of a block as a literal
// string. It returns the attribute and its value, or ok=false when the
// attribute is absent, not statically evaluable, or not a string.
func AttrString(b *hclsyntax.Block, name string) (*hclsyntax.Attribute, string, bool) {
	attr := Attr(b, name)
	if attr == nil {
		return nil, "", false
	}
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() || val.IsNull() || val.Type() != cty.String {
		return attr, "", false
	}
	return attr, val.AsString(), true
}

// AttrValueMap evaluates the named attribute as a literal object or map
// and returns its entries keyed by element name.
func AttrValueMap(b *hclsyntax.Block, name string) (*hclsyntax.Attribute, map[string]cty.Value, bool) {
	attr := Attr(b, name)
	if attr == nil {
		return nil, nil, false
	}
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() || val.IsNull() {
		return attr, nil, false
	}
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return attr, nil, false
	}
	return attr, val.AsValueMap(), true
}

// LiteralString evaluates an attribute as a literal string, without
// needing the enclosing block.
func LiteralString(attr *hclsyntax.Attribute) (string, bool) {
	if attr == nil {
		return "", false
	}
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() || val.IsNull() || val.Type() != cty.String {
		return "", false
	}
	return val.AsString(), true
}

// NestedBlocks returns the nested blocks of b with the given type name.
func NestedBlocks(b *hclsyntax.Block, typeName string) hclsyntax.Blocks {
	if b == nil || b.Body == nil {
		return nil
	}
	var result hclsyntax.Blocks
	for _, nb := range b.Body.Blocks {
		if nb.Type == typeName {
			result = append(result, nb)
		}
	}
	return result
}
