// Package ninja builds ninja build files through a typed API and renders
// them in the exact syntax ninja's parser expects.
//
// A [Document] is an append-only list of statements. Each Add method
// validates its arguments, appends a statement and returns a handle for
// further configuration:
//
//	doc := ninja.New()
//	cc, _ := doc.AddRule("cc", ninja.Template("gcc -c $in -o $out"))
//	_ = cc.Description("CC $out")
//	_, _ = doc.AddBuild([]string{"main.o"}, "cc", "main.c")
//	fmt.Print(doc.Render())
//
// renders
//
//	rule cc
//	  command = gcc -c $in -o $out
//	  description = CC $out
//
//	build main.o: cc main.c
//
// # Values
//
// The right-hand side of a binding is a [Value]. [Template] holds text
// already written in ninja syntax, while [Literal], [List] and [Ref] hold raw
// text that is escaped on output. Variable references are never resolved;
// ninja expands them when it reads the file.
//
// # Escaping
//
// Paths are escaped with [EscapePath] and literal values with [Escape].
// Input that has no escaped form, such as a newline anywhere or "|" in a
// path, is rejected with an error wrapping [ErrInvalidInput] when the
// statement is constructed. Rendering never fails.
//
// # Concurrency
//
// Documents are not safe for concurrent use unless created with
// [WithSync], in which case the document and all of its handles share one
// mutex.
package ninja
