package gen

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dataapis/protogen/errors"
	"github.com/dataapis/protogen/pyast"
)

// Options configures one generation pass.
type Options struct {
	// TypesModule names the module that declares the corpus's TypeVars.
	TypesModule string

	// InitModule names the package initializer, discarded before processing.
	InitModule string

	// OptionalSubmodules are the sub-surfaces aggregated into their own
	// namespace protocols before folding into the top-level one.
	OptionalSubmodules []string

	// Namespace names the top-level aggregate protocol.
	Namespace string

	// RenamePrefix is prepended to capitalized type-parameter names in the
	// final renaming pass.
	RenamePrefix string

	// Registry configures type-parameter collection.
	Registry RegistryOptions

	// Logger receives skipped-declaration diagnostics. Nil disables them.
	Logger *zap.SugaredLogger
}

// DefaultOptions returns the options matching the array-API corpus layout.
func DefaultOptions() Options {
	return Options{
		TypesModule:        "_types",
		InitModule:         "__init__",
		OptionalSubmodules: []string{"fft", "linalg"},
		Namespace:          "ArrayNamespace",
		RenamePrefix:       "T",
		Registry:           DefaultRegistryOptions(),
	}
}

// Generate runs the whole transformation: registry construction, per-module
// aggregation, namespace composition, and the final type-parameter renaming.
//
// The input is an ordered module list; module order and declaration order
// decide output order, so identical input yields byte-identical output. The
// distinguished _types and __init__ modules must both be present or the
// whole invocation fails.
func Generate(modules []*pyast.Module, opts Options) (*pyast.Module, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	typesModule := findModule(modules, opts.TypesModule)
	if typesModule == nil {
		return nil, errors.WithHint(
			errors.NewMissingModuleError(opts.TypesModule),
			"the type-variable module is required to establish the registry")
	}
	if findModule(modules, opts.InitModule) == nil {
		return nil, errors.NewMissingModuleError(opts.InitModule)
	}

	reg := CollectTypeVars(typesModule.Body, opts.Registry)
	log.Debugw("collected type variables", "count", reg.Len())

	out := &pyast.Module{Name: "_namespace"}
	out.Body = append(out.Body,
		&pyast.ExprStmt{Value: pyast.Str("Auto generated Protocol classes (Do not edit)")},
		&pyast.ImportFrom{Module: "typing", Names: []pyast.Alias{{Name: "*"}}},
		&pyast.ImportFrom{Module: "abc", Names: []pyast.Alias{{Name: abstractMethod}}},
	)

	agg := newAggregator(reg, opts, log)
	for _, m := range modules {
		if m.Name == opts.InitModule {
			continue
		}
		agg.module(m, out)
	}

	compose(agg, out, reg, opts)
	RenameTypeVars(out, reg, opts.RenamePrefix)
	return out, nil
}

// aggregator accumulates per-module attribute records while emitting
// per-declaration protocols.
type aggregator struct {
	reg  *Registry
	opts Options
	log  *zap.SugaredLogger

	order []string               // module encounter order, first record wins
	attrs map[string][]Attribute // records per module
}

func newAggregator(reg *Registry, opts Options, log *zap.SugaredLogger) *aggregator {
	return &aggregator{
		reg:   reg,
		opts:  opts,
		log:   log,
		attrs: make(map[string][]Attribute),
	}
}

func (a *aggregator) record(module string, attr Attribute) {
	if _, ok := a.attrs[module]; !ok {
		a.order = append(a.order, module)
	}
	a.attrs[module] = append(a.attrs[module], attr)
}

// module walks one module's top-level declarations in order and dispatches
// each by kind. No declaration kind is fatal: recognized-but-unused shapes
// are skipped, unrecognized ones are logged and dropped.
func (a *aggregator) module(m *pyast.Module, out *pyast.Module) {
	for i, s := range m.Body {
		switch decl := s.(type) {
		case *pyast.Import, *pyast.ImportFrom:
			// Handled by the output prelude.
		case *pyast.FunctionDef:
			a.function(m, decl, out)
		case *pyast.Assign:
			a.assignment(m, i, decl)
		case *pyast.ClassDef:
			data := ClassToProtocol(decl, a.reg)
			out.Body = append(out.Body, data.Class)
			// Classes contribute protocol types but not namespace fields.
		case *pyast.ExprStmt:
			// Free-floating docstrings and the like.
		default:
			a.log.Debugw("skipping unhandled declaration",
				"module", m.Name, "kind", fmt.Sprintf("%T", s))
		}
	}
}

func (a *aggregator) function(m *pyast.Module, fn *pyast.FunctionDef, out *pyast.Module) {
	if len(fn.Name) > 0 && fn.Name[0] == '_' {
		return // private, not part of the public surface
	}
	data := FunctionToProtocol(fn, a.reg)
	a.record(m.Name, Attribute{
		Name:         fn.Name,
		Type:         data.Ref(),
		TypeVarsUsed: data.TypeVarsUsed,
	})
	if IsAlias(fn) {
		// A pure re-export keeps its namespace attribute but must not
		// produce a duplicate protocol definition.
		return
	}
	out.Body = append(out.Body, data.Class)
}

func (a *aggregator) assignment(m *pyast.Module, i int, assign *pyast.Assign) {
	if m.Name == a.opts.TypesModule {
		return
	}
	if len(assign.Targets) == 0 {
		return
	}
	target, ok := assign.Targets[0].(*pyast.Name)
	if !ok {
		a.log.Debugw("skipping non-name assignment target", "module", m.Name)
		return
	}
	if target.ID == "__all__" {
		return
	}

	// A literal expression statement directly after the assignment is the
	// attribute's docstring.
	docstring := ""
	if i+1 < len(m.Body) {
		if doc, ok := pyast.StringConst(m.Body[i+1]); ok {
			docstring = doc
		}
	}

	a.record(m.Name, Attribute{
		Name:      target.ID,
		Type:      pyast.NewName("float"),
		Docstring: docstring,
	})
}

// compose builds the optional-submodule namespace protocols and folds
// everything into the top-level aggregate.
func compose(agg *aggregator, out *pyast.Module, reg *Registry, opts Options) {
	optional := make(map[string]bool, len(opts.OptionalSubmodules))
	for _, name := range opts.OptionalSubmodules {
		optional[name] = true
	}

	var submoduleRecords []Attribute
	for _, name := range opts.OptionalSubmodules {
		attrs, ok := agg.attrs[name]
		if !ok {
			continue
		}
		data := AttributesToProtocol(capitalize(name)+"Namespace", attrs, reg)
		out.Body = append(out.Body, data.Class)
		submoduleRecords = append(submoduleRecords, Attribute{
			Name: name,
			Type: data.Ref(),
		})
	}

	var all []Attribute
	for _, name := range agg.order {
		if optional[name] {
			continue
		}
		all = append(all, agg.attrs[name]...)
	}
	all = append(all, submoduleRecords...)

	top := AttributesToProtocol(opts.Namespace, all, reg)
	out.Body = append(out.Body, top.Class)
}

func findModule(modules []*pyast.Module, name string) *pyast.Module {
	for _, m := range modules {
		if m.Name == name {
			return m
		}
	}
	return nil
}
