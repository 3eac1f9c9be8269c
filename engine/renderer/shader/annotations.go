// annotations.go defines the annotation syntax understood by the shader pre-processor.
// Annotations are single-line comments prefixed with @oxy: and work the same way in
// GLSL and WGSL sources, since both languages share the // comment syntax.
package shader

import (
	"fmt"
	"strings"
)

// annotationPrefix is the marker that identifies an Oxy annotation within a comment line.
// Every annotation must appear on a line beginning with "//" followed by this prefix.
const annotationPrefix = "@oxy:"

// AnnotationType identifies the kind of annotation parsed from a comment line.
type AnnotationType string

const (
	// annotationTypeInclude injects the source of a registered struct or uniform block
	// into the shader at the annotation site.
	//
	// Syntax: //@oxy:include <struct_type>
	//
	// Example: //@oxy:include frame_params
	annotationTypeInclude AnnotationType = "include"
)

// Annotation represents a single parsed @oxy: annotation from a shader source line.
type Annotation struct {
	// Type identifies which annotation was parsed.
	Type AnnotationType

	// Args holds the annotation's arguments. For include, [0] is the struct type key.
	Args []AnnotationArg

	// Line is the 1-based line number in the shader source where this annotation was found.
	Line int
}

// AnnotationArg is a typed string constant used as an argument in annotations.
type AnnotationArg string

const (
	// AnnotationArgFrameParams identifies the per-frame uniform (FrameParams).
	// Source: engine/renderer/material/assets/frame_params.wgsl and frame_params.glsl
	AnnotationArgFrameParams AnnotationArg = "frame_params"
)

// parseAnnotation parses a single source line. Lines that are not annotation comments
// return nil without error.
//
// Parameters:
//   - line: the raw source line
//   - lineNum: the 1-based line number, used for error reporting
//
// Returns:
//   - *Annotation: the parsed annotation, or nil if the line is not an annotation
//   - error: error if the annotation is malformed or of an unknown type
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	trimmed := strings.TrimSpace(line)
	body, ok := strings.CutPrefix(trimmed, "//")
	if !ok {
		return nil, nil
	}
	body, ok = strings.CutPrefix(strings.TrimSpace(body), annotationPrefix)
	if !ok {
		return nil, nil
	}

	fields := strings.Fields(body)
	if len(fields) == 0 {
		return nil, fmt.Errorf("line %d: empty annotation", lineNum)
	}

	a := &Annotation{
		Type: AnnotationType(fields[0]),
		Line: lineNum,
	}
	for _, f := range fields[1:] {
		a.Args = append(a.Args, AnnotationArg(f))
	}

	switch a.Type {
	case annotationTypeInclude:
		if len(a.Args) != 1 {
			return nil, fmt.Errorf("line %d: @oxy:include takes exactly one argument, got %d", lineNum, len(a.Args))
		}
	default:
		return nil, fmt.Errorf("line %d: unknown annotation type %q", lineNum, a.Type)
	}
	return a, nil
}
