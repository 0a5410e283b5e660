// Package llvmtext is the shipped internal/backend.Backend implementation:
// a minimal, syntactically valid LLVM-IR text emitter covering function
// prototypes, integer/float arithmetic and return statements. It walks
// the analyzed AST directly rather than lowering through an intermediate
// representation first, since proving the analyzer-to-backend interface
// boundary is honored does not require full code generation.
package llvmtext

import (
	"fmt"
	"strconv"
	"strings"

	"ember/internal/ast"
	"ember/internal/backend"
	"ember/internal/sema"
	"ember/internal/source"
	"ember/internal/types"
)

var _ backend.Backend = (*Emitter)(nil)

// Emitter accumulates one module's worth of LLVM-IR text across however
// many files Emit is called for. PtrBits defaults to 64 if left zero.
type Emitter struct {
	strs    *source.Interner
	PtrBits uint8
	buf     strings.Builder
}

func New(strs *source.Interner) *Emitter {
	return &Emitter{strs: strs, PtrBits: 64}
}

// Output returns the accumulated module text.
func (e *Emitter) Output() string { return e.buf.String() }

// Emit lowers one file's top-level items: function prototypes become
// "declare", function definitions become "define" with a single basic
// block, everything else is noted as not lowered and skipped — the
// module stays syntactically valid either way.
func (e *Emitter) Emit(fs *source.FileSet, b *ast.Builder, file ast.FileID, result *sema.Result) error {
	f := b.Files.Get(file)
	if f == nil {
		return fmt.Errorf("llvmtext: unknown file %d", file)
	}
	fmt.Fprintf(&e.buf, "; module %q\n", fs.Get(f.Span.File).Path)

	for _, item := range f.Items {
		it := b.Items.Get(item)
		if it == nil {
			continue
		}
		switch it.Kind {
		case ast.ItemFnProto:
			e.emitProto(b, item, result)
		case ast.ItemFnDef:
			if err := e.emitDef(b, item, result); err != nil {
				return err
			}
		default:
			fmt.Fprintf(&e.buf, "; item kind %d not lowered by this backend\n", it.Kind)
		}
	}
	return nil
}

func (e *Emitter) name(id source.StringID) string { return e.strs.MustLookup(id) }

func (e *Emitter) emitProto(b *ast.Builder, item ast.ItemID, result *sema.Result) {
	proto, _ := b.Items.FnProto(item)
	sig := result.Sigs[item]
	params := make([]string, len(sig.Params))
	for i, t := range sig.Params {
		params[i] = e.llvmType(result.Types, t)
	}
	fmt.Fprintf(&e.buf, "declare %s @%s(%s)\n", e.llvmType(result.Types, sig.Return), e.name(proto.Name), strings.Join(params, ", "))
}

func (e *Emitter) emitDef(b *ast.Builder, item ast.ItemID, result *sema.Result) error {
	def, _ := b.Items.FnDef(item)
	sig := result.Sigs[item]
	params := b.Items.Params(def.Proto.ParamsStart, def.Proto.ParamsCount)

	fe := &funcEmitter{e: e, b: b, result: result, env: make(map[source.StringID]ssaValue)}
	paramText := make([]string, 0, len(params))
	for i, p := range params {
		reg := fmt.Sprintf("%%p%d", i)
		var ty types.TypeID
		if i < len(sig.Params) {
			ty = sig.Params[i]
		}
		paramText = append(paramText, fmt.Sprintf("%s %s", e.llvmType(result.Types, ty), reg))
		fe.env[p.Name] = ssaValue{reg: reg, ty: ty}
	}

	fmt.Fprintf(&e.buf, "define %s @%s(%s) {\n", e.llvmType(result.Types, sig.Return), e.name(def.Proto.Name), strings.Join(paramText, ", "))
	e.buf.WriteString("bb0:\n")
	terminated, err := fe.lowerStmt(def.Body)
	if err != nil {
		return err
	}
	if !terminated {
		fe.emitDefaultReturn(sig.Return, result.Types)
	}
	e.buf.WriteString("}\n")
	return nil
}

// llvmType renders a resolved type's LLVM-IR spelling. Aggregate and
// reference-shaped types that this minimal backend does not lower fall
// back to the opaque pointer type, keeping the module syntactically
// valid without attempting their real layout.
func (e *Emitter) llvmType(reg *types.Interner, id types.TypeID) string {
	switch reg.KindOf(id) {
	case types.KindVoid:
		return "void"
	case types.KindBool:
		return "i1"
	case types.KindInt, types.KindUint:
		return "i" + strconv.Itoa(int(reg.BitWidth(id, e.ptrBits())))
	case types.KindFloat:
		if reg.BitWidth(id, e.ptrBits()) == 32 {
			return "float"
		}
		return "double"
	default:
		return "ptr"
	}
}

func (e *Emitter) ptrBits() uint8 {
	if e.PtrBits == 0 {
		return 64
	}
	return e.PtrBits
}
