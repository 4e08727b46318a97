package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/valyala/bytebufferpool"
	"go.uber.org/zap"
)

// arrayView is an ArraySpec resolved for the template.
type arrayView struct {
	ArraySpec

	// Func is the build package function called.
	Func string
	// Params is the producer closure's parameter list.
	Params string
	// Code is the producer closure's body.
	Code string
	// DocLines is the doc comment, one entry per line.
	DocLines []string
}

// templateData is the input passed to the Go template.
type templateData struct {
	Spec     Spec
	SpecPath string
	SpecHash string
	Imports  []ImportSpec
	Arrays   []arrayView
}

// buildFunc returns the build package entry point for a form.
func buildFunc(form string, fallible bool) string {
	name := "With"
	switch form {
	case FormIndex:
		name = "WithIndex"
	case FormPrefix:
		name = "WithPrefix"
	}
	if fallible {
		return "Try" + name
	}
	return name
}

func newArrayView(a ArraySpec) arrayView {
	v := arrayView{ArraySpec: a, Func: buildFunc(a.Form, a.Fallible)}

	switch a.Form {
	case FormIndex:
		v.Params = a.Param + " int"
	case FormPrefix:
		v.Params = a.Param + " []" + a.Elem
	}

	if strings.TrimSpace(a.Body) != "" {
		v.Code = strings.TrimSpace(a.Body)
	} else {
		v.Code = "return " + strings.TrimSpace(a.Expr)
	}

	doc := strings.TrimSpace(a.Doc)
	if doc == "" {
		doc = fmt.Sprintf("%s returns a [%d]%s built with build.%s.", a.Name, a.Len, a.Elem, v.Func)
	}
	v.DocLines = strings.Split(doc, "\n")
	return v
}

// generateFile reads the spec at specPath and writes the generated Go file
// to outPath.
func generateFile(specPath, outPath string, log *zap.Logger) error {
	raw, err := os.ReadFile(specPath)
	if err != nil {
		return err
	}

	spec, err := decodeSpec(specPath, raw)
	if err != nil {
		return err
	}

	applyDefaults(&spec)
	if err := validateSpec(&spec); err != nil {
		return fmt.Errorf("%s: %w", specPath, err)
	}

	buildImport, err := inferBuildImport(&spec)
	if err != nil {
		return err
	}

	data := templateData{
		Spec:     spec,
		SpecPath: filepath.ToSlash(filepath.Base(specPath)),
		SpecHash: sha256Hex(raw),
		Imports:  mergeImports([]ImportSpec{buildImportSpec(buildImport)}, spec.Imports.Extra),
		Arrays:   make([]arrayView, 0, len(spec.Arrays)),
	}
	for _, a := range spec.Arrays {
		data.Arrays = append(data.Arrays, newArrayView(a))
	}

	src, err := render(data)
	if err != nil {
		return fmt.Errorf("%s: %w", specPath, err)
	}

	if err := writeFileAtomic(outPath, src, 0o644); err != nil {
		return err
	}

	log.Info("generated",
		zap.String("spec", specPath),
		zap.String("out", outPath),
		zap.Int("arrays", len(spec.Arrays)),
	)
	return nil
}

// render executes the template into a pooled buffer and gofmts the result.
func render(data templateData) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := genTemplate.Execute(buf, data); err != nil {
		return nil, err
	}

	src, err := format.Source(buf.B)
	if err != nil {
		return nil, fmt.Errorf("gofmt/format failed: %w", err)
	}
	return src, nil
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// genTemplate is the Go source template for generated array constructors.
var genTemplate = template.Must(
	template.New("brownstone-gen").Parse(`// Code generated by brownstone-gen from {{.SpecPath}}; DO NOT EDIT.
// spec sha256: {{.SpecHash}}

package {{.Spec.Package}}

import (
{{- range .Imports}}
	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{- end}}
)
{{range .Arrays}}
{{- range .DocLines}}
// {{.}}
{{- end}}
func {{.Name}}({{.Args}}) {{if .Fallible}}([{{.Len}}]{{.Elem}}, error){{else}}[{{.Len}}]{{.Elem}}{{end}} {
{{- if .Fallible}}
	arr, err := build.{{.Func}}({{.Len}}, func({{.Params}}) ({{.Elem}}, error) {
		{{.Code}}
	})
	if err != nil {
		return [{{.Len}}]{{.Elem}}{}, err
	}
	return [{{.Len}}]{{.Elem}}(arr), nil
{{- else}}
	return [{{.Len}}]{{.Elem}}(build.{{.Func}}({{.Len}}, func({{.Params}}) {{.Elem}} {
		{{.Code}}
	}))
{{- end}}
}
{{end}}`),
)

// tempFile abstracts an os.File for testability.
type tempFile interface {
	Name() string
	Write([]byte) (int, error)
	Close() error
}

// File operation hooks, overridden in tests.
var (
	createTempFile = func(dir, pattern string) (tempFile, error) { return os.CreateTemp(dir, pattern) }
	chmodFile      = os.Chmod
	renameFile     = os.Rename
	removeFile     = os.Remove
)

// writeFileAtomic writes a file atomically.
//
// It writes to a temporary file in the same directory and then renames it
// over the target path, ensuring readers never observe partial writes.
func writeFileAtomic(targetPath string, data []byte, perm os.FileMode) (err error) {
	targetDir := filepath.Dir(targetPath)

	tmpFile, err := createTempFile(targetDir, filepath.Base(targetPath)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if err != nil {
			_ = removeFile(tmpPath)
		}
	}()

	if _, err = tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err = tmpFile.Close(); err != nil {
		return err
	}
	if err = chmodFile(tmpPath, perm); err != nil {
		return err
	}
	if err = renameFile(tmpPath, targetPath); err != nil {
		return err
	}
	return nil
}
