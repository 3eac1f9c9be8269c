// pre_processor.go implements the Oxy shader pre-processor. It scans shader source for
// @oxy: annotations and replaces them with the matching embedded declaration for the
// shader's language, so user shaders never restate the layout of engine-owned uniforms.
package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-obj/engine/renderer/material"
)

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	// structRegistry maps struct type argument keys to their embedded source for one language.
	structRegistry map[AnnotationArg]string
}

// PreProcessor processes raw shader source code containing @oxy: annotations.
type PreProcessor interface {
	// Process replaces each @oxy:include annotation with the registered source for its
	// argument. All other lines are kept as they are.
	//
	// Parameters:
	//   - source: the raw shader source code containing annotations to be processed
	//
	// Returns:
	//   - string: the processed shader source code with annotations replaced
	//   - error: an error if any annotation is malformed or references an unknown type
	Process(source string) (string, error)
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a new PreProcessor whose registry holds the declarations
// written in the given language.
//
// Parameters:
//   - language: the shading language of the sources to be processed
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor(language Language) PreProcessor {
	registry := map[AnnotationArg]string{
		AnnotationArgFrameParams: material.GPUFrameParamsGLSLSource,
	}
	if language == LanguageWGSL {
		registry[AnnotationArgFrameParams] = material.GPUFrameParamsSource
	}
	return &preProcessor{structRegistry: registry}
}

func (p *preProcessor) Process(source string) (string, error) {
	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}
		if a == nil {
			out = append(out, line)
			continue
		}

		src, ok := p.structRegistry[a.Args[0]]
		if !ok {
			return "", fmt.Errorf("line %d: unknown @oxy:include argument %q", i+1, a.Args[0])
		}
		out = append(out, strings.TrimRight(src, "\n"))
	}
	return strings.Join(out, "\n"), nil
}
