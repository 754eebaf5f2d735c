// Copyright (c) 2023 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package graft

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/pkg/errors"

	"go.uber.org/graft/internal/graftreflect"
)

// fieldPoint is a captured field injection site: the field's index path
// from the implementation struct and the reference it resolves.
type fieldPoint struct {
	index []int
	ref   Ref
}

// methodPoint is a captured method injection site. depth records the
// embedding level the method originates at, so base setup methods run
// before derived ones.
type methodPoint struct {
	name  string
	depth int
	refs  []Ref
}

// injectionProvider discovers the injection points of a concrete
// implementation type once, at bind time, and replays the captured plan on
// every Produce. Discovery covers three site kinds: a constructor (either a
// bound function or a classifier-marked method invoked on the fresh zero
// value), tagged fields, and classifier-marked methods.
type injectionProvider struct {
	// implType is the pointer-to-struct type whose fields and methods are
	// injected. nil when a constructor function returns a non-struct
	// (interface) value, in which case only constructor injection applies.
	implType reflect.Type

	ctor     reflect.Value // constructor function; zero when absent
	ctorRefs []Ref

	initName string // marked constructor method; empty when absent
	initRefs []Ref

	fields  []fieldPoint
	methods []methodPoint

	deps []Ref
}

var _ Provider = (*injectionProvider)(nil)

// newInjectionProvider analyzes a pointer-to-struct implementation type.
func newInjectionProvider(impl reflect.Type, cl Classifier) (*injectionProvider, error) {
	if impl == nil || impl.Kind() != reflect.Ptr || impl.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: implementation %v is not a pointer to a concrete struct", ErrIllegalComponent, impl)
	}

	p := &injectionProvider{implType: impl}

	ctors := markedConstructors(impl, cl)
	switch len(ctors) {
	case 0:
		// Zero-value allocation is the no-argument constructor; every
		// concrete struct has one.
	case 1:
		m := ctors[0]
		if err := checkInvokable(impl, m); err != nil {
			return nil, err
		}
		p.initName = m.Name
		p.initRefs = paramRefs(m.Type, 1)
	default:
		return nil, fmt.Errorf("%w: %v declares %d marked constructors", ErrIllegalComponent, impl, len(ctors))
	}

	if err := p.analyzeStruct(cl); err != nil {
		return nil, err
	}

	p.deps = p.collectDeps()
	return p, nil
}

// newFuncProvider analyzes a constructor function of the form
// func(deps...) Impl or func(deps...) (Impl, error). When the static result
// type is a pointer to struct, field and method injection apply to the
// constructed value as well.
func newFuncProvider(constructor interface{}, cl Classifier) (*injectionProvider, error) {
	fn := reflect.ValueOf(constructor)
	if !fn.IsValid() || fn.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w: constructor must be a function, got %T", ErrIllegalComponent, constructor)
	}

	t := fn.Type()
	if t.IsVariadic() {
		return nil, fmt.Errorf("%w: constructor %s is variadic", ErrIllegalComponent, graftreflect.FuncName(constructor))
	}
	switch t.NumOut() {
	case 1:
	case 2:
		if !graftreflect.IsErr(t.Out(1)) {
			return nil, fmt.Errorf("%w: constructor %s must return (T) or (T, error)", ErrIllegalComponent, graftreflect.FuncName(constructor))
		}
	default:
		return nil, fmt.Errorf("%w: constructor %s must return (T) or (T, error)", ErrIllegalComponent, graftreflect.FuncName(constructor))
	}

	p := &injectionProvider{
		ctor:     fn,
		ctorRefs: paramRefs(t, 0),
	}

	if out := t.Out(0); out.Kind() == reflect.Ptr && out.Elem().Kind() == reflect.Struct {
		p.implType = out
		// The function already is the one constructor for this binding.
		if ctors := markedConstructors(out, cl); len(ctors) > 0 {
			return nil, fmt.Errorf("%w: %v declares a marked constructor in addition to %s",
				ErrIllegalComponent, out, graftreflect.FuncName(constructor))
		}
		if err := p.analyzeStruct(cl); err != nil {
			return nil, err
		}
	}

	p.deps = p.collectDeps()
	return p, nil
}

func (p *injectionProvider) analyzeStruct(cl Classifier) error {
	fields, err := collectFields(p.implType.Elem(), nil, cl)
	if err != nil {
		return err
	}
	methods, err := collectMethods(p.implType, cl)
	if err != nil {
		return err
	}
	p.fields = fields
	p.methods = methods
	return nil
}

func (p *injectionProvider) collectDeps() []Ref {
	var deps []Ref
	deps = append(deps, p.ctorRefs...)
	deps = append(deps, p.initRefs...)
	for _, fp := range p.fields {
		deps = append(deps, fp.ref)
	}
	for _, mp := range p.methods {
		deps = append(deps, mp.refs...)
	}
	return deps
}

func markedConstructors(impl reflect.Type, cl Classifier) []reflect.Method {
	var ctors []reflect.Method
	for i := 0; i < impl.NumMethod(); i++ {
		if m := impl.Method(i); cl.Constructor(m) {
			ctors = append(ctors, m)
		}
	}
	return ctors
}

// collectFields gathers tagged fields of t in declaration order, recursing
// into anonymous embedded structs in place. A tagged unexported field
// cannot be assigned through reflection and aborts the bind.
func collectFields(t reflect.Type, base []int, cl Classifier) ([]fieldPoint, error) {
	var points []fieldPoint
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		index := make([]int, 0, len(base)+1)
		index = append(append(index, base...), i)

		if name, ok := cl.Field(f); ok {
			if f.PkgPath != "" {
				return nil, fmt.Errorf("%w: injected field %v.%s is not assignable", ErrIllegalComponent, t, f.Name)
			}
			points = append(points, fieldPoint{index: index, ref: refOf(f.Type, name)})
			continue
		}

		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			sub, err := collectFields(f.Type, index, cl)
			if err != nil {
				return nil, err
			}
			points = append(points, sub...)
		}
	}
	return points, nil
}

// collectMethods gathers the classifier-marked methods of the pointer type
// impl. Each method is attributed to the deepest embedding level whose
// method set declares its name, and the result is ordered base-first
// (deeper levels before the outer struct). Invocation later goes through
// the outer value by name, so Go's method dispatch applies override
// shadowing and an overridden method runs exactly once.
func collectMethods(impl reflect.Type, cl Classifier) ([]methodPoint, error) {
	type level struct {
		t     reflect.Type
		depth int
	}
	var levels []level
	var walk func(t reflect.Type, depth int)
	walk = func(t reflect.Type, depth int) {
		levels = append(levels, level{t: t, depth: depth})
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.Anonymous || f.Type.Kind() != reflect.Struct {
				continue
			}
			// A tagged embedded field is an injection site, not an
			// ancestor.
			if _, tagged := cl.Field(f); tagged {
				continue
			}
			walk(f.Type, depth+1)
		}
	}
	walk(impl.Elem(), 0)

	var points []methodPoint
	for i := 0; i < impl.NumMethod(); i++ {
		m := impl.Method(i)
		if cl.Constructor(m) || !cl.InjectionPoint(m) {
			continue
		}
		if err := checkInvokable(impl, m); err != nil {
			return nil, err
		}

		depth := 0
		for _, lv := range levels {
			if lv.depth <= depth {
				continue
			}
			if _, ok := reflect.PointerTo(lv.t).MethodByName(m.Name); ok {
				depth = lv.depth
			}
		}

		points = append(points, methodPoint{
			name:  m.Name,
			depth: depth,
			refs:  paramRefs(m.Type, 1),
		})
	}

	// Base setup before derived setup.
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].depth > points[j].depth
	})
	return points, nil
}

// checkInvokable rejects injected method shapes the container cannot
// fulfill: variadic signatures, and result lists other than () or (error).
func checkInvokable(impl reflect.Type, m reflect.Method) error {
	mt := m.Type
	if mt.IsVariadic() {
		return fmt.Errorf("%w: injected method %v.%s is variadic", ErrIllegalComponent, impl, m.Name)
	}
	switch mt.NumOut() {
	case 0:
	case 1:
		if !graftreflect.IsErr(mt.Out(0)) {
			return fmt.Errorf("%w: injected method %v.%s must return nothing or error", ErrIllegalComponent, impl, m.Name)
		}
	default:
		return fmt.Errorf("%w: injected method %v.%s must return nothing or error", ErrIllegalComponent, impl, m.Name)
	}
	return nil
}

func paramRefs(mt reflect.Type, skip int) []Ref {
	refs := make([]Ref, 0, mt.NumIn()-skip)
	for i := skip; i < mt.NumIn(); i++ {
		refs = append(refs, refOf(mt.In(i), ""))
	}
	return refs
}

func (p *injectionProvider) Produce(ctx Context) (interface{}, error) {
	v, err := p.construct(ctx)
	if err != nil {
		return nil, err
	}

	if p.implType != nil {
		if err := p.injectFields(ctx, v); err != nil {
			return nil, err
		}
		if err := p.invokeMethods(ctx, v); err != nil {
			return nil, err
		}
	}

	return v.Interface(), nil
}

func (p *injectionProvider) construct(ctx Context) (reflect.Value, error) {
	if p.ctor.IsValid() {
		args, err := resolveArgs(ctx, p.ctorRefs, p.ctor.Type(), 0)
		if err != nil {
			return reflect.Value{}, errors.Wrapf(err, "constructing via %s", graftreflect.FuncName(p.ctor.Interface()))
		}
		out := p.ctor.Call(args)
		if len(out) == 2 && !out[1].IsNil() {
			return reflect.Value{}, errors.Wrapf(out[1].Interface().(error),
				"constructing via %s", graftreflect.FuncName(p.ctor.Interface()))
		}
		return out[0], nil
	}

	v := reflect.New(p.implType.Elem())
	if p.initName != "" {
		m := v.MethodByName(p.initName)
		args, err := resolveArgs(ctx, p.initRefs, m.Type(), 0)
		if err != nil {
			return reflect.Value{}, errors.Wrapf(err, "constructing %v", p.implType)
		}
		out := m.Call(args)
		if len(out) == 1 && !out[0].IsNil() {
			return reflect.Value{}, errors.Wrapf(out[0].Interface().(error), "constructing %v", p.implType)
		}
	}
	return v, nil
}

func (p *injectionProvider) injectFields(ctx Context, v reflect.Value) error {
	elem := v.Elem()
	for _, fp := range p.fields {
		fv := elem.FieldByIndex(fp.index)
		rv, err := resolveSite(ctx, fp.ref, fv.Type())
		if err != nil {
			return errors.Wrapf(err, "injecting field of %v", p.implType)
		}
		fv.Set(rv)
	}
	return nil
}

func (p *injectionProvider) invokeMethods(ctx Context, v reflect.Value) error {
	for _, mp := range p.methods {
		m := v.MethodByName(mp.name)
		args, err := resolveArgs(ctx, mp.refs, m.Type(), 0)
		if err != nil {
			return errors.Wrapf(err, "invoking %v.%s", p.implType, mp.name)
		}
		out := m.Call(args)
		if len(out) == 1 && !out[0].IsNil() {
			return errors.Wrapf(out[0].Interface().(error), "invoking %v.%s", p.implType, mp.name)
		}
	}
	return nil
}

func (p *injectionProvider) Dependencies() []Ref {
	return p.deps
}

func (p *injectionProvider) String() string {
	if p.ctor.IsValid() {
		return graftreflect.FuncName(p.ctor.Interface())
	}
	return p.implType.String()
}

// resolveArgs materializes call arguments for refs against the parameter
// list of mt, starting at parameter index skip.
func resolveArgs(ctx Context, refs []Ref, mt reflect.Type, skip int) ([]reflect.Value, error) {
	args := make([]reflect.Value, len(refs))
	for i, ref := range refs {
		rv, err := resolveSite(ctx, ref, mt.In(i+skip))
		if err != nil {
			return nil, err
		}
		args[i] = rv
	}
	return args, nil
}

// resolveSite resolves ref through ctx and shapes the result into a value
// assignable to the injection site's type.
func resolveSite(ctx Context, ref Ref, site reflect.Type) (reflect.Value, error) {
	v, ok, err := ctx.Get(ref)
	if err != nil {
		return reflect.Value{}, errors.Wrapf(err, "resolving %v", ref)
	}
	if !ok {
		// Seal proves every declared edge, so this only fires when a
		// provider is driven outside a sealed context.
		return reflect.Value{}, errors.Errorf("no binding for %v", ref)
	}

	out := reflect.New(site).Elem()
	if v == nil {
		return out, nil
	}
	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(site) {
		return reflect.Value{}, errors.Errorf("cannot assign %v to injection site %v", rv.Type(), site)
	}
	out.Set(rv)
	return out, nil
}
