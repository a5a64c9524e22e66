package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	rich "github.com/demurgos/rich"
	_ "github.com/demurgos/rich/source"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "annotate":
		annotateCmd(os.Args[2:])
	case "ids":
		idsCmd(os.Args[2:])
	case "lint":
		lintCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "richmeta CLI\n\nUsage:\n  richmeta annotate [-format json|yaml] [file]\n  richmeta ids [-format json|yaml] [file]\n  richmeta lint [-max N] [file]\n\nNotes:\n  - Reads the document from file, or stdin when no file is given.")
}

func annotateCmd(args []string) {
	fs := flag.NewFlagSet("annotate", flag.ExitOnError)
	var format string
	var dup string
	fs.StringVar(&format, "format", "json", "input format: json or yaml")
	fs.StringVar(&dup, "dup", "ignore", "duplicate key handling: ignore, warn or error")
	_ = fs.Parse(args)

	view := decode(fs.Args(), format, dup)
	renderAnnotated(os.Stdout, view, 0, "")
}

func idsCmd(args []string) {
	fs := flag.NewFlagSet("ids", flag.ExitOnError)
	var format string
	fs.StringVar(&format, "format", "json", "input format: json or yaml")
	_ = fs.Parse(args)

	view := decode(fs.Args(), format, "ignore")
	renderIDs(os.Stdout, view, "")
}

func lintCmd(args []string) {
	fs := flag.NewFlagSet("lint", flag.ExitOnError)
	var max int
	fs.IntVar(&max, "max", -1, "maximum reported issues (-1 for unlimited)")
	_ = fs.Parse(args)

	data := readInput(fs.Args())
	iss, err := rich.DetectDuplicateKeys(data, rich.Warn, max)
	if err != nil {
		fatalf("lint: %v", err)
	}
	for _, it := range iss {
		fmt.Printf("%s at %s: %s\n", it.Code, it.Path, it.Message)
	}
	if len(iss) > 0 {
		os.Exit(1)
	}
}

func readInput(args []string) []byte {
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			fatalf("read %s: %v", args[0], err)
		}
		return data
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		fatalf("read stdin: %v", err)
	}
	return data
}

func decode(args []string, format, dup string) rich.ValueView {
	data := readInput(args)
	var src rich.Source
	switch format {
	case "json":
		src = rich.JSONBytes(data)
	case "yaml":
		src = rich.YAMLBytes(data)
	default:
		fatalf("unknown format %q", format)
	}

	var opt rich.ParseOpt
	switch dup {
	case "ignore":
	case "warn":
		opt.Strictness.OnDuplicateKey = rich.Warn
	case "error":
		opt.Strictness.OnDuplicateKey = rich.Error
	default:
		fatalf("unknown dup mode %q", dup)
	}

	scope := rich.NewScope()
	r, err := rich.AttachValue(scope, src, opt)
	if err != nil {
		fatalf("decode: %v", err)
	}
	return rich.ViewOf(&r)
}

func renderAnnotated(w io.Writer, v rich.ValueView, depth int, label string) {
	pad := strings.Repeat("  ", depth)
	if label != "" {
		label += ": "
	}
	arm, err := v.Visit()
	if err != nil {
		fatalf("visit: %v", err)
	}
	switch a := arm.(type) {
	case rich.NullView:
		fmt.Fprintf(w, "%s%s%s null (raw %s)\n", pad, label, v.ID(), a.ID())
	case rich.BoolView:
		fmt.Fprintf(w, "%s%s%s %t (raw %s)\n", pad, label, v.ID(), a.Bool(), a.ID())
	case rich.NumberView:
		fmt.Fprintf(w, "%s%s%s %s (raw %s)\n", pad, label, v.ID(), a.Number(), a.ID())
	case rich.StringView:
		fmt.Fprintf(w, "%s%s%s %q (raw %s)\n", pad, label, v.ID(), a.Text(), a.ID())
	case rich.ArrayView:
		fmt.Fprintf(w, "%s%s%s array[%d]\n", pad, label, v.ID(), a.Len())
		for i := 0; i < a.Len(); i++ {
			child, _ := a.Get(i)
			renderAnnotated(w, child, depth+1, strconv.Itoa(i))
		}
	case rich.ObjectView:
		fmt.Fprintf(w, "%s%s%s object{%d}\n", pad, label, v.ID(), a.Len())
		for _, k := range a.Keys() {
			child, _ := a.Get(k)
			renderAnnotated(w, child, depth+1, k)
		}
	}
}

func renderIDs(w io.Writer, v rich.ValueView, path string) {
	p := path
	if p == "" {
		p = "/"
	}
	fmt.Fprintf(w, "%s\t%s\n", p, v.ID())
	arm, err := v.Visit()
	if err != nil {
		fatalf("visit: %v", err)
	}
	switch a := arm.(type) {
	case rich.ArrayView:
		for i := 0; i < a.Len(); i++ {
			child, _ := a.Get(i)
			renderIDs(w, child, path+"/"+strconv.Itoa(i))
		}
	case rich.ObjectView:
		for _, k := range a.Keys() {
			child, _ := a.Get(k)
			renderIDs(w, child, path+"/"+k)
		}
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
