package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
	"github.com/tmviewer/tmviewer/pkg/export"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string {
	return "export"
}

func (*exportCmd) Synopsis() string {
	return "export an email as an .eml file"
}

func (*exportCmd) Usage() string {
	return `export [flags] <index>:
	write the email at index as an RFC 5322 message
`
}

func (e *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&e.output, "o", "", "output file, - for stdout (default: derived from the date)")
}

func (e *exportCmd) Execute(
	ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	index, ok := indexArg(f)
	if !ok {
		return usage("email index required")
	}
	src, p, err := sourceFactory(conf, *server)
	if err != nil {
		return fatal("Couldn't build client", err)
	}
	r := newRenderer(stdout, p)

	email, err := src.Email(ctx, index)
	if err != nil {
		r.Error(err.Error())
		return subcommands.ExitFailure
	}

	if e.output == "-" {
		if err := export.Write(stdout, email); err != nil {
			return fatal("Export failed", err)
		}
		return subcommands.ExitSuccess
	}
	path := e.output
	if path == "" {
		path = export.Filename(email)
	}
	out, err := os.Create(path)
	if err != nil {
		return fatal("Couldn't create output file", err)
	}
	if err := export.Write(out, email); err != nil {
		_ = out.Close()
		return fatal("Export failed", err)
	}
	if err := out.Close(); err != nil {
		return fatal("Couldn't close output file", err)
	}
	r.Success(path)

	return subcommands.ExitSuccess
}
