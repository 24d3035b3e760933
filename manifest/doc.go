// Package manifest builds ninja documents from declarative descriptions.
//
// A manifest lists variables and statements in the order they should appear
// in the generated build file. Three encodings are supported, chosen by file
// extension: YAML (.yaml, .yml), JSON (.json) and HCL (.hcl).
//
// # YAML and JSON
//
//	vars:
//	  cflags: -Wall
//	statements:
//	  - pool: {name: link, depth: 1}
//	  - rule:
//	      name: cc
//	      command: gcc $cflags -c $in -o $out
//	      vars: {description: CC $out, depfile: $out.d, deps: gcc}
//	  - build:
//	      rule: cc
//	      outputs: [foo.o]
//	      inputs: [foo.c]
//	      implicit: [config.h]
//	    when: platform != "windows"
//	  - default: [foo.o]
//	  - include: rules.ninja
//
// Each statement holds exactly one of variable, pool, rule, build, default,
// include or subninja. String values are ninja text, so $in, $out and other
// references pass through unchanged and a literal $ is written $$. Paths are
// plain strings and are escaped when rendered. Unquoted numbers and booleans
// are rendered from their decoded value, so a version such as 1.10 must be
// quoted to keep its trailing zero. The optional when field is an expr-lang
// condition; see [Env] for the names it can use.
//
// # HCL
//
//	variable "cflags" { value = "-Wall" }
//
//	rule "cc" {
//	  command = "gcc $cflags -c $in -o $out"
//	  vars {
//	    description = "CC $out"
//	  }
//	}
//
//	build "cc" {
//	  outputs = ["foo.o"]
//	  inputs  = ["foo.c"]
//	  when    = platform != "windows"
//	}
//
// Block and vars attribute order follow the source. In HCL strings "${" starts
// an interpolation, so a braced ninja reference is written "$${name}". See
// [Env.EvalContext] for the variables and functions expressions can use.
//
// # Loading
//
// [Loader.Load] decodes several files concurrently; [Loader.Apply] appends
// them to a [ninja.Document] in argument order, so the output does not
// depend on scheduling. [FromDocument] and [Marshal] go the other way.
package manifest
