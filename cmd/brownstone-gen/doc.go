// Command brownstone-gen generates functions returning fixed-length arrays
// from a small JSON or YAML spec.
//
// Go has no array-literal macros, so the literal forms of array construction
// are written as data and turned into ordinary Go calls into the build
// package:
//
//   - You write a *.array.json (or *.array.yaml) spec next to your package.
//   - You add a //go:generate directive in the owner Go file.
//   - brownstone-gen writes <name>.gen.go with one function per array.
//
// Each generated function builds its elements in index order through the
// build package and converts the completed slice to an array, so the length
// is part of the result type.
//
// Forms
//
//	expr    build.With       every element is the same expression, evaluated once per slot
//	index   build.WithIndex  the expression sees the element index (param, default "i")
//	prefix  build.WithPrefix the expression sees the elements built so far (param, default "prefix")
//
// With "fallible": true the Try* variant is called and the generated
// function returns ([N]T, error). The error is a *build.IndexedError naming
// the index that failed.
//
// Either "expr" (one expression) or "body" (statements ending in a return)
// is required.
//
// Spec format
//
//	{
//	  "package": "fib",
//	  "arrays": [
//	    { "name": "Fibonacci", "elem": "int", "len": 8, "form": "prefix",
//	      "body": "if len(prefix) < 2 { return 1 }\nreturn prefix[len(prefix)-1] + prefix[len(prefix)-2]" },
//	    { "name": "Squares", "elem": "int", "len": 5, "form": "index", "expr": "i * i" }
//	  ]
//	}
//
// The import path of the build package is inferred from the module that
// contains this command. Set "imports.build" to override it, and list any
// other packages the expressions use under "imports.extra".
//
// Usage
//
//	//go:generate go run github.com/sghaida/brownstone/cmd/brownstone-gen -spec fib.array.json -out fib.gen.go
//
//	brownstone-gen -dir ./pkg              # every *.array.{json,yaml,yml} below ./pkg
//	brownstone-gen -dir ./pkg -watch       # and again whenever a spec changes
//
// Flags
//
//	-spec     single spec file (with -out)
//	-out      output file for -spec
//	-dir      generate every spec under a directory, writing <base>.gen.go beside each
//	-workers  concurrent generations for -dir (default GOMAXPROCS, env BROWNSTONE_WORKERS)
//	-watch    keep running and regenerate on change (requires -dir)
//	-v        debug logging (env BROWNSTONE_LOG_LEVEL sets any zap level)
//
// Output is gofmt'ed, carries the spec's SHA-256 in its header, and is
// written atomically (temp file + rename).
package main
