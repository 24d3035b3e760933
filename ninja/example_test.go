package ninja_test

import (
	"fmt"
	"os"

	"github.com/ardnew/ngen/ninja"
)

func Example() {
	doc := ninja.New()

	cc, _ := doc.AddRule("cc", ninja.Template("$in -o $out"))
	_ = cc.Description("CC $out")

	_, _ = doc.AddBuild([]string{"main.o"}, "cc", "main.c")
	_, _ = doc.AddDefault("main.o")

	fmt.Print(doc.Render())
	// Output:
	// rule cc
	//   command = $in -o $out
	//   description = CC $out
	//
	// build main.o: cc main.c
	//
	// default main.o
}

func ExampleEscapePath() {
	fmt.Println(ninja.EscapePath("my file.c"))
	fmt.Println(ninja.EscapePath("C:/$dir"))
	// Output:
	// my$ file.c
	// C$:/$$dir
}

func ExampleConcat() {
	fmt.Println(ninja.Concat(ninja.Ref("out"), ninja.Literal(".d")))
	fmt.Println(ninja.Concat(ninja.Ref("in"), ninja.Literal("_files")))
	fmt.Println(ninja.Concat(ninja.Literal("cost: $"), ninja.Ref("price")))
	// Output:
	// $out.d
	// ${in}_files
	// cost: $$$price
}

func ExampleNewBuilder() {
	b := ninja.NewBuilder(ninja.New(ninja.WithGrouping()))

	b.Rule("cp", "cp $in $out").
		Build("cp", "a.txt").Inputs("src/a.txt").
		Build("cp", "b.txt").Inputs("src/b.txt").
		Default("a.txt", "b.txt")

	if err := b.Err(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		return
	}

	_, _ = b.Document().WriteTo(os.Stdout)
	// Output:
	// rule cp
	//   command = cp $in $out
	//
	// build a.txt: cp src/a.txt
	// build b.txt: cp src/b.txt
	//
	// default a.txt b.txt
}
