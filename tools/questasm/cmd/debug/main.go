// debug prints everything the disassembler learns about a quest script.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"

	"github.com/fuzziqersoftware/newserv-sub000/tools/questasm/qscript"
)

func main() {
	version := flag.String("version", "", "client version")
	dump := flag.Bool("spew", false, "also dump the decoded instructions")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: debug -version NAME [-spew] script.bin\n")
		os.Exit(1)
	}

	v, err := qscript.ParseVersion(*version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "debug: %v\n", err)
		os.Exit(1)
	}
	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "read: %v\n", err)
		os.Exit(1)
	}
	s, err := qscript.Analyze(data, v, nil)
	if err != nil {
		fmt.Printf("decode error: %v\n", err)
		return
	}

	h := s.Header
	fmt.Printf("version: %s (layout %s)\n", s.Version, qscript.LayoutFor(s.Version))
	fmt.Printf("code offset: 0x%X\n", h.CodeOffset)
	fmt.Printf("function table offset: 0x%X\n", h.FunctionTableOffset)
	fmt.Printf("size: 0x%X\n", h.Size)
	fmt.Printf("language: %d (%s)\n", h.Language, s.Encoding)
	fmt.Printf("quest number: %d\n", h.QuestNumber)
	fmt.Printf("episode: 0x%02X (%s)\n", h.Episode, qscript.EpisodeFromHeader(s.Version, h.Episode))
	fmt.Printf("max players: %d, joinable: %d\n", h.MaxPlayers, h.Joinable)
	fmt.Printf("reserved: unused=0x%X unknown1=0x%02X unused2=0x%04X unknown2=0x%02X\n",
		h.Unused, h.Unknown1, h.Unused2, h.Unknown2)
	fmt.Printf("name: %s\n", h.Name)
	fmt.Printf("short desc: %s\n", h.ShortDesc)
	fmt.Printf("long desc: %s\n", h.LongDesc)
	fmt.Printf("code: 0x%X bytes, %d instructions decoded\n", len(s.Code), len(s.Insts))

	fmt.Printf("labels: %d\n", len(s.Labels))
	for _, l := range s.Labels {
		if l.Offset == qscript.Unassigned {
			fmt.Printf("  [%4d] %-10s unassigned\n", l.Index, l.Name())
			continue
		}
		guessed := ""
		if l.Guessed {
			guessed = " (guessed)"
		}
		fmt.Printf("  [%4d] %-10s offset=%04X roles=%s%s refs=%d\n",
			l.Index, l.Name(), l.Offset, l.Roles, guessed, len(l.References))
	}
	fmt.Printf("diagnostics: %d\n", len(s.Diagnostics))
	for _, d := range s.Diagnostics {
		fmt.Printf("  %s\n", d)
	}

	if *dump {
		spew.Dump(s.Insts)
	}
}
