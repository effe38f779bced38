// qdump dumps the instruction set of one client version.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"

	"github.com/fuzziqersoftware/newserv-sub000/tools/questasm/qscript"
)

func main() {
	raw := flag.Bool("spew", false, "dump full definitions instead of a listing")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: qdump [-spew] VERSION")
		os.Exit(1)
	}
	v, err := qscript.ParseVersion(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ops := qscript.Opcodes(v)
	if *raw {
		spew.Dump(ops)
		return
	}
	for _, d := range ops {
		args := ""
		for i, a := range d.Args {
			if i > 0 {
				args += ", "
			}
			args += a.Kind.String()
			if a.Role != 0 {
				args += "<" + a.Role.String() + ">"
			}
			if a.Count > 0 {
				args += fmt.Sprintf("[%d]", a.Count)
			}
		}
		stack := ""
		if d.UsesArgStack(v) {
			stack = " (stack)"
		}
		fmt.Printf("%04X %-28s %s%s\n", d.Code, d.Name, args, stack)
	}
}
