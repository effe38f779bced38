// questasm disassembles and assembles quest scripts.
//
// Usage:
//
//	questasm disassemble -version GC_V3 [-language N] [-offsets] [-o out.txt] script.bin
//	questasm assemble [-o out.bin] script.txt
//	questasm episode -version GC_V3 script.bin
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fuzziqersoftware/newserv-sub000/tools/questasm/qscript"
)

const usage = `usage:
  questasm disassemble -version NAME [-language N] [-offsets] [-quiet] [-o out.txt] script.bin
  questasm assemble [-o out.bin] script.txt
  questasm episode -version NAME script.bin
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	var err error
	switch os.Args[1] {
	case "disassemble", "dis":
		err = disassemble(os.Args[2:])
	case "assemble", "asm":
		err = assemble(os.Args[2:])
	case "episode":
		err = episode(os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "questasm: %v\n", err)
		os.Exit(1)
	}
}

func versionFlag(fs *flag.FlagSet) *string {
	return fs.String("version", "", "client version ("+versionList()+")")
}

func versionList() string {
	var names []string
	for v := qscript.DCNTE; v < qscript.NumVersions; v++ {
		names = append(names, v.String())
	}
	return strings.Join(names, ", ")
}

// parseArgs parses a subcommand's flags and returns its single input file.
func parseArgs(fs *flag.FlagSet, args []string) (string, error) {
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if fs.NArg() != 1 {
		return "", fmt.Errorf("%s: expected one input file, got %d", fs.Name(), fs.NArg())
	}
	return fs.Arg(0), nil
}

func disassemble(args []string) error {
	fs := flag.NewFlagSet("disassemble", flag.ContinueOnError)
	version := versionFlag(fs)
	language := fs.Int("language", -1, "override the header's language byte when decoding text")
	offsets := fs.Bool("offsets", false, "prefix lines with code offsets and bytes")
	quiet := fs.Bool("quiet", false, "do not log warnings")
	output := fs.String("o", "", "output file (default: standard output)")
	input, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	v, err := qscript.ParseVersion(*version)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	opts := &qscript.DisassembleOptions{ShowOffsets: *offsets}
	if *language >= 0 {
		if *language > 0xFF {
			return fmt.Errorf("language %d out of range", *language)
		}
		opts.OverrideLanguage = true
		opts.Language = uint8(*language)
	}
	if !*quiet {
		opts.Logger = log.New(os.Stderr, "questasm: ", 0)
	}
	text, err := qscript.Disassemble(data, v, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	return writeOutput(*output, []byte(text))
}

func assemble(args []string) error {
	fs := flag.NewFlagSet("assemble", flag.ContinueOnError)
	output := fs.String("o", "", "output file (default: input name with .bin)")
	input, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	src, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	bin, err := qscript.Assemble(string(src))
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	if *output == "" {
		*output = strings.TrimSuffix(input, ".txt") + ".bin"
	}
	if err := writeOutput(*output, bin); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "questasm: %s → %s (%d bytes)\n", input, *output, len(bin))
	return nil
}

func episode(args []string) error {
	fs := flag.NewFlagSet("episode", flag.ContinueOnError)
	version := versionFlag(fs)
	input, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	v, err := qscript.ParseVersion(*version)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	ep, err := qscript.FindEpisode(data, v)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	fmt.Println(ep)
	return nil
}

func writeOutput(name string, data []byte) error {
	if name == "" || name == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
