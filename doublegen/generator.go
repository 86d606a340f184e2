/*
 * Copyright 2020 grant@lastweekend.com.au
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

/*
Package doublegen generates the source of godouble.TestDouble implementations for interfaces.

	doublegen.NewGenerator((*volume.Volume)(nil)).InPackage("koans", "github.com/lwoggardner/doublekoans/koans").GenerateDouble(w)

Each interface gets a struct <Interface>Double embedding *godouble.TestDouble, a New<Interface>Double constructor
and one method per interface method that delegates to Invoke.
*/
package doublegen

import (
	"errors"
	"fmt"
	"go/token"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	"github.com/dave/dst/decorator/resolver/guess"
)

// GodoublePath is the import path of the package providing TestDouble.
const GodoublePath = "github.com/lwoggardner/doublekoans/godouble"

// Header is the first line of every generated file.
const Header = "// Code generated by doublegen. DO NOT EDIT."

var (
	ErrNotInterface = errors.New("not an interface")
	ErrUnsupported  = errors.New("unsupported type")
)

type double struct {
	iface reflect.Type
	name  string
}

// Generator builds a source file of doubles.
type Generator struct {
	pkgName string
	pkgPath string
	doubles []*double
	err     error
}

// NewGenerator creates a Generator for each of forInterfaces, which must be nil pointers to interfaces.
//
// The generated package defaults to the package of the first interface.
func NewGenerator(forInterfaces ...any) *Generator {
	g := &Generator{}
	for _, i := range forInterfaces {
		g.add(i)
	}
	if len(g.doubles) > 0 {
		first := g.doubles[0].iface
		g.pkgPath = first.PkgPath()
		g.pkgName = strings.SplitN(first.String(), ".", 2)[0]
	}
	return g
}

func (g *Generator) add(forInterface any) {
	t := reflect.TypeOf(forInterface)
	if t == nil || t.Kind() != reflect.Ptr || t.Elem().Kind() != reflect.Interface {
		g.fail(fmt.Errorf("%T: %w, expected a nil pointer to an interface", forInterface, ErrNotInterface))
		return
	}
	iface := t.Elem()
	g.doubles = append(g.doubles, &double{iface: iface, name: iface.Name() + "Double"})
}

func (g *Generator) fail(err error) {
	if g.err == nil {
		g.err = err
	}
}

// InPackage sets the name and import path of the package the doubles are generated into.
func (g *Generator) InPackage(name, path string) *Generator {
	g.pkgName = name
	g.pkgPath = path
	return g
}

// Named overrides the generated type name for forInterface. The constructor is New<name>.
func (g *Generator) Named(forInterface any, name string) *Generator {
	t := reflect.TypeOf(forInterface)
	for _, d := range g.doubles {
		if t != nil && t.Kind() == reflect.Ptr && d.iface == t.Elem() {
			d.name = name
			return g
		}
	}
	g.fail(fmt.Errorf("named %s: %T is not one of the generated interfaces", name, forInterface))
	return g
}

// GenerateDouble writes the formatted source, with imports resolved, to w.
func (g *Generator) GenerateDouble(w io.Writer) error {
	f, err := g.File()
	if err != nil {
		return err
	}
	r := decorator.NewRestorerWithImports(g.pkgPath, guess.New())
	if err := r.Fprint(w, f); err != nil {
		return fmt.Errorf("print %s: %w", g.pkgPath, err)
	}
	return nil
}

// File builds the syntax tree of the generated file.
func (g *Generator) File() (*dst.File, error) {
	if g.err != nil {
		return nil, g.err
	}
	if len(g.doubles) == 0 {
		return nil, errors.New("no interfaces to generate")
	}
	f := &dst.File{Name: dst.NewIdent(g.pkgName)}
	f.Decs.Start = dst.Decorations{Header, "\n"}
	for _, d := range g.doubles {
		decls, err := g.declsFor(d)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.iface, err)
		}
		f.Decls = append(f.Decls, decls...)
	}
	return f, nil
}

func (g *Generator) declsFor(d *double) ([]dst.Decl, error) {
	ifaceExpr, err := g.typeExpr(d.iface)
	if err != nil {
		return nil, err
	}

	structDecl := &dst.GenDecl{
		Tok: token.TYPE,
		Specs: []dst.Spec{&dst.TypeSpec{
			Name: dst.NewIdent(d.name),
			Type: &dst.StructType{Fields: &dst.FieldList{List: []*dst.Field{
				{Type: &dst.StarExpr{X: godouble("TestDouble")}},
			}}},
		}},
	}
	structDecl.Decs.Before = dst.EmptyLine
	structDecl.Decs.Start = dst.Decorations{fmt.Sprintf("// %s is a test double for %s", d.name, d.iface)}

	assertDecl := &dst.GenDecl{
		Tok: token.VAR,
		Specs: []dst.Spec{&dst.ValueSpec{
			Names:  []*dst.Ident{dst.NewIdent("_")},
			Type:   ifaceExpr,
			Values: []dst.Expr{nilPointer(dst.NewIdent(d.name))},
		}},
	}
	assertDecl.Decs.Before = dst.EmptyLine

	decls := []dst.Decl{structDecl, assertDecl, g.constructor(d)}
	for i := 0; i < d.iface.NumMethod(); i++ {
		m := d.iface.Method(i)
		if m.Name == "TestDouble" {
			return nil, fmt.Errorf("method %s: %w, clashes with the embedded field", m.Name, ErrUnsupported)
		}
		if !token.IsExported(m.Name) && d.iface.PkgPath() != g.pkgPath {
			return nil, fmt.Errorf("method %s: %w, unexported method of another package", m.Name, ErrUnsupported)
		}
		decl, err := g.method(d, m)
		if err != nil {
			return nil, fmt.Errorf("method %s: %w", m.Name, err)
		}
		decls = append(decls, decl)
	}
	return decls, nil
}

func (g *Generator) constructor(d *double) *dst.FuncDecl {
	ifaceExpr, _ := g.typeExpr(d.iface)
	name := "New" + d.name
	fn := &dst.FuncDecl{
		Name: dst.NewIdent(name),
		Type: &dst.FuncType{
			Params: &dst.FieldList{List: []*dst.Field{
				{Names: []*dst.Ident{dst.NewIdent("t")}, Type: godouble("T")},
				{
					Names: []*dst.Ident{dst.NewIdent("configurators")},
					Type: &dst.Ellipsis{Elt: &dst.FuncType{Params: &dst.FieldList{List: []*dst.Field{
						{Type: &dst.StarExpr{X: godouble("TestDouble")}},
					}}}},
				},
			}},
			Results: &dst.FieldList{List: []*dst.Field{{Type: &dst.StarExpr{X: dst.NewIdent(d.name)}}}},
		},
		Body: &dst.BlockStmt{List: []dst.Stmt{
			&dst.ReturnStmt{Results: []dst.Expr{&dst.UnaryExpr{
				Op: token.AND,
				X: &dst.CompositeLit{
					Type: dst.NewIdent(d.name),
					Elts: []dst.Expr{&dst.CallExpr{
						Fun:      godouble("NewDouble"),
						Args:     []dst.Expr{dst.NewIdent("t"), nilPointer(ifaceExpr), dst.NewIdent("configurators")},
						Ellipsis: true,
					}},
				},
			}}},
		}},
	}
	fn.Decs.Before = dst.EmptyLine
	fn.Decs.Start = dst.Decorations{fmt.Sprintf("// %s creates a %s configured by configurators", name, d.name)}
	return fn
}

// method delegates to TestDouble.Invoke, asserting each returned value to its result type.
func (g *Generator) method(d *double, m reflect.Method) (*dst.FuncDecl, error) {
	ft := m.Type
	params := &dst.FieldList{}
	args := []dst.Expr{&dst.BasicLit{Kind: token.STRING, Value: strconv.Quote(m.Name)}}
	for i := 0; i < ft.NumIn(); i++ {
		name := fmt.Sprintf("a%d", i)
		var typ dst.Expr
		var err error
		if ft.IsVariadic() && i == ft.NumIn()-1 {
			var elem dst.Expr
			elem, err = g.typeExpr(ft.In(i).Elem())
			typ = &dst.Ellipsis{Elt: elem}
		} else {
			typ, err = g.typeExpr(ft.In(i))
		}
		if err != nil {
			return nil, err
		}
		params.List = append(params.List, &dst.Field{Names: []*dst.Ident{dst.NewIdent(name)}, Type: typ})
		args = append(args, dst.NewIdent(name))
	}

	results := &dst.FieldList{}
	for i := 0; i < ft.NumOut(); i++ {
		typ, err := g.typeExpr(ft.Out(i))
		if err != nil {
			return nil, err
		}
		results.List = append(results.List, &dst.Field{Type: typ})
	}

	invoke := &dst.CallExpr{Fun: embedded("Invoke"), Args: args}
	body := []dst.Stmt{
		&dst.ExprStmt{X: &dst.CallExpr{Fun: &dst.SelectorExpr{
			X:   &dst.CallExpr{Fun: embedded("T")},
			Sel: dst.NewIdent("Helper"),
		}}},
	}
	if ft.NumOut() == 0 {
		body = append(body, &dst.ExprStmt{X: invoke})
	} else {
		body = append(body, &dst.AssignStmt{
			Lhs: []dst.Expr{dst.NewIdent("returns")},
			Tok: token.DEFINE,
			Rhs: []dst.Expr{invoke},
		})
		ret := &dst.ReturnStmt{}
		for i := 0; i < ft.NumOut(); i++ {
			typ, _ := g.typeExpr(ft.Out(i))
			r := fmt.Sprintf("r%d", i)
			body = append(body, &dst.AssignStmt{
				Lhs: []dst.Expr{dst.NewIdent(r), dst.NewIdent("_")},
				Tok: token.DEFINE,
				Rhs: []dst.Expr{&dst.TypeAssertExpr{
					X:    &dst.IndexExpr{X: dst.NewIdent("returns"), Index: &dst.BasicLit{Kind: token.INT, Value: strconv.Itoa(i)}},
					Type: typ,
				}},
			})
			ret.Results = append(ret.Results, dst.NewIdent(r))
		}
		body = append(body, ret)
	}

	fn := &dst.FuncDecl{
		Recv: &dst.FieldList{List: []*dst.Field{
			{Names: []*dst.Ident{dst.NewIdent("d")}, Type: &dst.StarExpr{X: dst.NewIdent(d.name)}},
		}},
		Name: dst.NewIdent(m.Name),
		Type: &dst.FuncType{Params: params, Results: results},
		Body: &dst.BlockStmt{List: body},
	}
	fn.Decs.Before = dst.EmptyLine
	return fn, nil
}

// typeExpr returns a fresh expression for t. Named types carry their package path for import resolution.
func (g *Generator) typeExpr(t reflect.Type) (dst.Expr, error) {
	if t.Name() != "" {
		if t.PkgPath() == "" {
			return dst.NewIdent(t.Name()), nil
		}
		if strings.Contains(t.Name(), "[") {
			return nil, fmt.Errorf("%v: %w, instantiated generic type", t, ErrUnsupported)
		}
		if !token.IsExported(t.Name()) && t.PkgPath() != g.pkgPath {
			return nil, fmt.Errorf("%v: %w, unexported type of another package", t, ErrUnsupported)
		}
		return &dst.Ident{Name: t.Name(), Path: t.PkgPath()}, nil
	}

	switch t.Kind() {
	case reflect.Ptr:
		elem, err := g.typeExpr(t.Elem())
		if err != nil {
			return nil, err
		}
		return &dst.StarExpr{X: elem}, nil
	case reflect.Slice:
		elem, err := g.typeExpr(t.Elem())
		if err != nil {
			return nil, err
		}
		return &dst.ArrayType{Elt: elem}, nil
	case reflect.Array:
		elem, err := g.typeExpr(t.Elem())
		if err != nil {
			return nil, err
		}
		return &dst.ArrayType{Len: &dst.BasicLit{Kind: token.INT, Value: strconv.Itoa(t.Len())}, Elt: elem}, nil
	case reflect.Map:
		key, err := g.typeExpr(t.Key())
		if err != nil {
			return nil, err
		}
		value, err := g.typeExpr(t.Elem())
		if err != nil {
			return nil, err
		}
		return &dst.MapType{Key: key, Value: value}, nil
	case reflect.Chan:
		value, err := g.typeExpr(t.Elem())
		if err != nil {
			return nil, err
		}
		var dir dst.ChanDir
		switch t.ChanDir() {
		case reflect.RecvDir:
			dir = dst.RECV
		case reflect.SendDir:
			dir = dst.SEND
		default:
			dir = dst.SEND | dst.RECV
		}
		return &dst.ChanType{Dir: dir, Value: value}, nil
	case reflect.Func:
		return g.funcType(t)
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return &dst.InterfaceType{Methods: &dst.FieldList{}}, nil
		}
	case reflect.Struct:
		if t.NumField() == 0 {
			return &dst.StructType{Fields: &dst.FieldList{}}, nil
		}
	}
	return nil, fmt.Errorf("%v: %w", t, ErrUnsupported)
}

func (g *Generator) funcType(t reflect.Type) (*dst.FuncType, error) {
	ft := &dst.FuncType{Params: &dst.FieldList{}, Results: &dst.FieldList{}}
	for i := 0; i < t.NumIn(); i++ {
		var typ dst.Expr
		var err error
		if t.IsVariadic() && i == t.NumIn()-1 {
			var elem dst.Expr
			elem, err = g.typeExpr(t.In(i).Elem())
			typ = &dst.Ellipsis{Elt: elem}
		} else {
			typ, err = g.typeExpr(t.In(i))
		}
		if err != nil {
			return nil, err
		}
		ft.Params.List = append(ft.Params.List, &dst.Field{Type: typ})
	}
	for i := 0; i < t.NumOut(); i++ {
		typ, err := g.typeExpr(t.Out(i))
		if err != nil {
			return nil, err
		}
		ft.Results.List = append(ft.Results.List, &dst.Field{Type: typ})
	}
	return ft, nil
}

func godouble(name string) *dst.Ident {
	return &dst.Ident{Name: name, Path: GodoublePath}
}

// embedded selects name through the embedded TestDouble so interface methods cannot shadow it.
func embedded(name string) *dst.SelectorExpr {
	return &dst.SelectorExpr{
		X:   &dst.SelectorExpr{X: dst.NewIdent("d"), Sel: dst.NewIdent("TestDouble")},
		Sel: dst.NewIdent(name),
	}
}

func nilPointer(to dst.Expr) *dst.CallExpr {
	return &dst.CallExpr{
		Fun:  &dst.ParenExpr{X: &dst.StarExpr{X: to}},
		Args: []dst.Expr{dst.NewIdent("nil")},
	}
}
