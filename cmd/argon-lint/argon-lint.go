package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/lestrrat-go/argon"
	"github.com/lestrrat-go/argon/s11n"
)

type cmdopts struct {
	Normalize    bool `long:"normalize" description:"merge adjacent text nodes before dumping"`
	NoBlanks     bool `long:"noblanks" description:"drop whitespace-only text nodes"`
	NoNamespaces bool `long:"no-namespaces" description:"treat names as opaque, ignore xmlns"`
	Version      bool `long:"version" description:"show the library version"`
}

func main() {
	os.Exit(_main())
}

func showUsage() {
	fmt.Printf(`Usage : argon-lint [options] XMLfiles ...
	Parse the XML files and output the result of the parsing
	--version : display the version of the XML library used
`)
}

func _main() int {
	opts := cmdopts{}
	args, err := flags.ParseArgs(&opts, os.Args[1:])
	if err != nil {
		showUsage()
		return 1
	}

	if opts.Version {
		fmt.Printf("argon-lint: using argon version %s\n", argon.Version)
		return 0
	}

	var inputs []io.Reader
	switch {
	case len(args) > 0:
		for _, f := range args {
			fh, err := os.Open(f)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s\n", err)
				return 1
			}
			defer fh.Close()
			inputs = append(inputs, fh)
		}
	default:
		if st, err := os.Stdin.Stat(); err == nil && st.Mode()&os.ModeCharDevice != 0 {
			showUsage()
			return 1
		}
		inputs = append(inputs, os.Stdin)
	}

	popts := argon.DefaultOptions()
	if opts.NoNamespaces {
		popts.HasNamespaces = false
	}
	p := argon.NewParser(
		argon.WithOptions(popts),
		argon.WithKeepBlanks(!opts.NoBlanks),
	)

	for _, in := range inputs {
		buf, err := io.ReadAll(in)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			return 1
		}
		doc, err := p.Parse(buf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			return 1
		}
		if opts.Normalize {
			doc.Normalize()
		}

		d := s11n.Dumper{}
		if err := d.DumpDoc(os.Stdout, doc); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			return 1
		}
		fmt.Println()
	}
	return 0
}
