package main

import (
	"bytes"
	"errors"
	"fmt"
	"go/parser"
	"go/token"
	"path/filepath"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Construction forms.
const (
	FormExpr   = "expr"   // build.With: same expression for every element
	FormIndex  = "index"  // build.WithIndex: expression over the element index
	FormPrefix = "prefix" // build.WithPrefix: expression over the elements built so far
)

var errUnknownSpecFormat = errors.New("unknown spec file format")

// ImportSpec models one Go import: optional alias and full import path.
type ImportSpec struct {
	Alias string `json:"alias" yaml:"alias"`
	Path  string `json:"path" yaml:"path"`
}

// Imports lists packages the generated code needs.
type Imports struct {
	// Build overrides the import path of the build package. Empty means it
	// is inferred from the module containing this generator.
	Build string `json:"build" yaml:"build"`

	// Extra imports referenced by array expressions, args or element types.
	Extra []ImportSpec `json:"extra" yaml:"extra"`
}

// ArraySpec describes one generated function returning a fixed-size array.
type ArraySpec struct {
	// Name is the generated function name.
	Name string `json:"name" yaml:"name"`

	// Doc is an optional doc comment (without the leading "// ").
	Doc string `json:"doc" yaml:"doc"`

	// Elem is the Go element type, e.g. "int" or "[]string".
	Elem string `json:"elem" yaml:"elem"`

	// Len is the array length.
	Len int `json:"len" yaml:"len"`

	// Form is one of expr, index, prefix. Empty means expr.
	Form string `json:"form" yaml:"form"`

	// Param names the closure parameter for index/prefix forms.
	// Defaults: "i" for index, "prefix" for prefix.
	Param string `json:"param" yaml:"param"`

	// Args is the generated function's parameter list, e.g. "r *bufio.Reader".
	Args string `json:"args" yaml:"args"`

	// Expr is a single expression producing one element (or, when Fallible,
	// the element and an error).
	Expr string `json:"expr" yaml:"expr"`

	// Body is a statement list ending in a return; alternative to Expr.
	Body string `json:"body" yaml:"body"`

	// Fallible selects the Try* builder; the function returns ([N]T, error).
	Fallible bool `json:"fallible" yaml:"fallible"`
}

// Spec is the full input schema consumed by the generator.
type Spec struct {
	Package string      `json:"package" yaml:"package"`
	Imports Imports     `json:"imports" yaml:"imports"`
	Arrays  []ArraySpec `json:"arrays" yaml:"arrays"`
}

// isSpecFile reports whether name looks like an array spec.
func isSpecFile(name string) bool {
	base := filepath.Base(name)
	for _, suffix := range []string{".array.json", ".array.yaml", ".array.yml"} {
		if strings.HasSuffix(base, suffix) {
			return true
		}
	}
	return false
}

// outPathFor derives the generated file path for a spec:
// specs/fib.array.json -> specs/fib.gen.go.
func outPathFor(specPath string) string {
	dir, base := filepath.Split(specPath)
	for _, suffix := range []string{".array.json", ".array.yaml", ".array.yml", ".json", ".yaml", ".yml"} {
		if strings.HasSuffix(base, suffix) {
			base = strings.TrimSuffix(base, suffix)
			break
		}
	}
	return filepath.Join(dir, base+".gen.go")
}

// decodeSpec parses raw as JSON or YAML, chosen by the extension of path.
// Unknown fields are rejected in both formats.
func decodeSpec(path string, raw []byte) (Spec, error) {
	var spec Spec

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&spec); err != nil {
			return Spec{}, fmt.Errorf("decode %s: %w", path, err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(&spec); err != nil {
			return Spec{}, fmt.Errorf("decode %s: %w", path, err)
		}
	default:
		return Spec{}, fmt.Errorf("%w: %s", errUnknownSpecFormat, path)
	}

	return spec, nil
}

// applyDefaults fills optional fields and sorts arrays by name so output
// is deterministic.
func applyDefaults(spec *Spec) {
	for i := range spec.Arrays {
		a := &spec.Arrays[i]
		a.Form = strings.TrimSpace(a.Form)
		if a.Form == "" {
			a.Form = FormExpr
		}
		if strings.TrimSpace(a.Param) == "" {
			switch a.Form {
			case FormIndex:
				a.Param = "i"
			case FormPrefix:
				a.Param = "prefix"
			}
		}
	}
	sort.SliceStable(spec.Arrays, func(i, j int) bool { return spec.Arrays[i].Name < spec.Arrays[j].Name })
}

// validateSpec validates semantic correctness of the input specification.
func validateSpec(spec *Spec) error {
	var missingFields []string

	if strings.TrimSpace(spec.Package) == "" {
		missingFields = append(missingFields, "package")
	}
	if len(spec.Arrays) == 0 {
		missingFields = append(missingFields, "arrays (must have at least 1)")
	}
	if len(missingFields) > 0 {
		return fmt.Errorf("spec missing required fields: %v", missingFields)
	}

	if !token.IsIdentifier(spec.Package) {
		return fmt.Errorf("package %q is not a valid identifier", spec.Package)
	}

	for _, imp := range spec.Imports.Extra {
		if strings.TrimSpace(imp.Path) == "" {
			return fmt.Errorf("extra import must have a path; got: %+v", imp)
		}
		if imp.Alias != "" && imp.Alias != "_" && !token.IsIdentifier(imp.Alias) {
			return fmt.Errorf("extra import alias %q is not a valid identifier", imp.Alias)
		}
	}

	seenNames := make(map[string]struct{}, len(spec.Arrays))
	for _, a := range spec.Arrays {
		if err := validateArray(a); err != nil {
			return err
		}
		if _, ok := seenNames[a.Name]; ok {
			return fmt.Errorf("duplicate array name: %s", a.Name)
		}
		seenNames[a.Name] = struct{}{}
	}
	return nil
}

func validateArray(a ArraySpec) error {
	if a.Name == "" || a.Elem == "" {
		return fmt.Errorf("each array must have name/elem; got: %+v", a)
	}
	if !token.IsIdentifier(a.Name) {
		return fmt.Errorf("array name %q is not a valid identifier", a.Name)
	}
	if _, err := parser.ParseExpr(a.Elem); err != nil {
		return fmt.Errorf("array %s: elem %q is not a Go type: %w", a.Name, a.Elem, err)
	}
	if a.Len < 0 {
		return fmt.Errorf("array %s: len must be >= 0; got %d", a.Name, a.Len)
	}

	switch a.Form {
	case FormExpr:
	case FormIndex, FormPrefix:
		if !token.IsIdentifier(a.Param) {
			return fmt.Errorf("array %s: param %q is not a valid identifier", a.Name, a.Param)
		}
	default:
		return fmt.Errorf("array %s: form must be one of: %s|%s|%s", a.Name, FormExpr, FormIndex, FormPrefix)
	}

	hasExpr := strings.TrimSpace(a.Expr) != ""
	hasBody := strings.TrimSpace(a.Body) != ""
	if hasExpr == hasBody {
		return fmt.Errorf("array %s: exactly one of expr/body is required", a.Name)
	}
	return nil
}
