package pipeline

import (
	"sync"
	"time"

	"nanopass/internal/anf"
	"nanopass/internal/convir"
	"nanopass/internal/ctxir"
	"nanopass/internal/errors"
	"nanopass/internal/shared"
	"nanopass/internal/surface"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("nanopass.pipeline")

// Options control how a program is compiled
type Options struct {
	// Parallel translates the functions of a program concurrently
	Parallel bool

	// Check runs each stage's invariant checks on its output
	Check bool
}

// Unit is one function on its way through the stages
type Unit struct {
	Name       string
	Surface    surface.Expr
	ANF        anf.Expr
	Context    ctxir.Expr
	Convention convir.Expr
}

// Result holds every stage of a compiled program
type Result struct {
	Surface    surface.Program
	ANF        anf.Program
	Context    ctxir.Program
	Convention convir.Program
	Elapsed    time.Duration
}

// Pipeline manages the sequence of stages
type Pipeline struct {
	stages  []Stage
	options Options
}

// New creates a pipeline with the three lowering passes in order
func New(options Options) *Pipeline {
	p := &Pipeline{options: options}

	p.AddStage(SimplifyStage{})
	p.AddStage(NormalizeStage{})
	p.AddStage(CallconvStage{})

	return p
}

// AddStage appends a stage to the pipeline
func (p *Pipeline) AddStage(stage Stage) {
	p.stages = append(p.stages, stage)
}

// Stages returns the stages in execution order
func (p *Pipeline) Stages() []Stage {
	return p.stages
}

// Stages lists the default stages
func Stages() []Stage {
	return New(Options{}).Stages()
}

// Compile runs every stage over every function of program. Translation is
// all-or-nothing: the first failing function, by name, fails the program.
func Compile(program surface.Program, options Options) (*Result, error) {
	return New(options).Compile(program)
}

// Lower compiles program and returns only its Convention IR
func Lower(program surface.Program) (convir.Program, error) {
	result, err := Compile(program, Options{})
	if err != nil {
		return convir.Program{}, err
	}
	return result.Convention, nil
}

// Compile runs the pipeline over program
func (p *Pipeline) Compile(program surface.Program) (*Result, error) {
	start := time.Now()

	names := program.Names()
	units := make([]*Unit, len(names))
	errs := make([]error, len(names))

	for i, name := range names {
		units[i] = &Unit{Name: name, Surface: program.Funcs[name]}
	}

	log.Infof("compiling %d functions through %d stages (parallel: %t)", len(units), len(p.stages), p.options.Parallel)

	if p.options.Parallel {
		var wg sync.WaitGroup
		for i := range units {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = p.Function(units[i])
			}(i)
		}
		wg.Wait()
	} else {
		for i := range units {
			if errs[i] = p.Function(units[i]); errs[i] != nil {
				break
			}
		}
	}

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	result := &Result{
		Surface:    program,
		ANF:        shared.NewProgram[anf.Expr](),
		Context:    shared.NewProgram[ctxir.Expr](),
		Convention: shared.NewProgram[convir.Expr](),
	}

	for _, u := range units {
		result.ANF.Funcs[u.Name] = u.ANF
		result.Context.Funcs[u.Name] = u.Context
		result.Convention.Funcs[u.Name] = u.Convention
	}

	result.Elapsed = time.Since(start)
	return result, nil
}

// Function runs every stage over one unit
func (p *Pipeline) Function(u *Unit) error {
	for _, stage := range p.stages {
		if err := stage.Apply(u); err != nil {
			log.Errorf("%s: %s failed: %s", u.Name, stage.Name(), err)
			return err
		}

		if p.options.Check {
			if err := stage.Check(u); err != nil {
				if ce, ok := err.(*errors.CompilerError); ok {
					ce.Pass = stage.Name()
					ce.Function = u.Name
				}
				return err
			}
		}

		log.Debugf("%s: %s done", u.Name, stage.Name())
	}

	return nil
}
