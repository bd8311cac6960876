package main

import (
	"context"
	"flag"

	"github.com/google/subcommands"
)

type listCmd struct{}

func (*listCmd) Name() string {
	return "list"
}

func (*listCmd) Synopsis() string {
	return "fetch and list the inbox"
}

func (*listCmd) Usage() string {
	return `list:
	fetch the inbox with the saved settings and list its emails
`
}

func (l *listCmd) SetFlags(f *flag.FlagSet) {}

func (l *listCmd) Execute(
	ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	src, p, err := sourceFactory(conf, *server)
	if err != nil {
		return fatal("Couldn't build client", err)
	}
	r := newRenderer(stdout, p)

	list, err := src.List(ctx)
	if err != nil {
		r.Error(err.Error())
		return subcommands.ExitFailure
	}
	r.List(list)

	return subcommands.ExitSuccess
}
