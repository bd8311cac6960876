package main

import (
	"context"
	"flag"

	"github.com/google/subcommands"
)

type showCmd struct{}

func (*showCmd) Name() string {
	return "show"
}

func (*showCmd) Synopsis() string {
	return "show a single email"
}

func (*showCmd) Usage() string {
	return `show <index>:
	fetch the inbox and show the email at index, counting from 0
`
}

func (s *showCmd) SetFlags(f *flag.FlagSet) {}

func (s *showCmd) Execute(
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
	r.Email(email)

	return subcommands.ExitSuccess
}
