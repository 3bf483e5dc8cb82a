package pipeline

import (
	"fmt"
	"strings"

	"nanopass/internal/pretty"
)

// StageNames lists every name Dump accepts, input first
func StageNames() []string {
	names := []string{SurfaceStage}
	for _, stage := range Stages() {
		names = append(names, stage.Name())
	}
	return names
}

// Dump renders one stage of result, one (define ...) form per function
func Dump(result *Result, stage string, width int) (string, error) {
	doc, err := stageDoc(result, stage)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i, name := range result.Surface.Names() {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(pretty.Render(pretty.Keyword("define", pretty.Text(name), doc(name)), width))
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

func stageDoc(result *Result, stage string) (func(string) pretty.Doc, error) {
	if stage == SurfaceStage {
		return func(name string) pretty.Doc {
			return docOf(result.Surface.Funcs[name])
		}, nil
	}

	for _, s := range Stages() {
		if s.Name() != stage {
			continue
		}

		return func(name string) pretty.Doc {
			return s.Doc(&Unit{
				Name:       name,
				Surface:    result.Surface.Funcs[name],
				ANF:        result.ANF.Funcs[name],
				Context:    result.Context.Funcs[name],
				Convention: result.Convention.Funcs[name],
			})
		}, nil
	}

	return nil, fmt.Errorf("unknown stage %q (want one of %s)", stage, strings.Join(StageNames(), ", "))
}
