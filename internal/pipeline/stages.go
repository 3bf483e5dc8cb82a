package pipeline

import (
	"nanopass/internal/anf"
	"nanopass/internal/callconv"
	"nanopass/internal/convir"
	"nanopass/internal/ctxir"
	"nanopass/internal/normalize"
	"nanopass/internal/pretty"
	"nanopass/internal/simplify"
)

// SurfaceStage names the untranslated input when dumping
const SurfaceStage = "surface"

// Stage is one lowering pass applied to a single function
type Stage interface {
	Name() string
	Description() string
	Apply(u *Unit) error
	Check(u *Unit) error // Verifies the invariants the pass establishes
	Doc(u *Unit) pretty.Doc
}

// SimplifyStage produces ANF IR
type SimplifyStage struct{}

func (SimplifyStage) Name() string { return simplify.Name }

func (SimplifyStage) Description() string {
	return "Bind compound operands to temporaries so every operand is a literal or variable"
}

func (SimplifyStage) Apply(u *Unit) (err error) {
	u.ANF, err = simplify.Function(u.Name, u.Surface)
	return err
}

func (SimplifyStage) Check(u *Unit) error {
	if err := anf.CheckTrivial(u.ANF); err != nil {
		return err
	}
	return anf.CheckFlat(u.ANF)
}

func (SimplifyStage) Doc(u *Unit) pretty.Doc { return docOf(u.ANF) }

// NormalizeStage produces Context IR
type NormalizeStage struct{}

func (NormalizeStage) Name() string { return normalize.Name }

func (NormalizeStage) Description() string {
	return "Split expressions into value, predicate and effect roles with explicit truthiness tests"
}

func (NormalizeStage) Apply(u *Unit) (err error) {
	u.Context, err = normalize.Function(u.Name, u.ANF)
	return err
}

func (NormalizeStage) Check(u *Unit) error {
	if err := ctxir.CheckSeparation(u.Context); err != nil {
		return err
	}
	return ctxir.CheckFlat(u.Context)
}

func (NormalizeStage) Doc(u *Unit) pretty.Doc { return docOf(u.Context) }

// CallconvStage produces Convention IR
type CallconvStage struct{}

func (CallconvStage) Name() string { return callconv.Name }

func (CallconvStage) Description() string {
	return "Introduce argument pushes, the return slot and tail calls"
}

func (CallconvStage) Apply(u *Unit) (err error) {
	u.Convention, err = callconv.Function(u.Name, u.Context)
	return err
}

func (CallconvStage) Check(u *Unit) error {
	if err := convir.CheckTail(u.Convention); err != nil {
		return err
	}
	return convir.CheckReturnSlot(u.Convention)
}

func (CallconvStage) Doc(u *Unit) pretty.Doc { return docOf(u.Convention) }

type documented interface {
	Doc() pretty.Doc
}

// docOf tolerates bodies a failed stage never produced
func docOf(body documented) pretty.Doc {
	if body == nil {
		return pretty.Text("<nil>")
	}
	return body.Doc()
}
