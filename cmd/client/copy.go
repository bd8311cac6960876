package main

import (
	"context"
	"errors"
	"flag"

	"github.com/google/subcommands"
	"github.com/tmviewer/tmviewer/pkg/clipboard"
	"github.com/tmviewer/tmviewer/pkg/i18n"
	"github.com/tmviewer/tmviewer/pkg/mailview"
)

type copyCmd struct{}

func (*copyCmd) Name() string {
	return "copy"
}

func (*copyCmd) Synopsis() string {
	return "copy an email body to the clipboard"
}

func (*copyCmd) Usage() string {
	return `copy <index> [text|html]:
	copy the raw body of the email at index, html falls back to text when absent
`
}

func (c *copyCmd) SetFlags(f *flag.FlagSet) {}

func (c *copyCmd) Execute(
	ctx context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	index, ok := indexArg(f)
	if !ok {
		return usage("email index required")
	}
	kind := mailview.BodyText
	if f.NArg() > 1 {
		if kind, ok = mailview.ParseBody(f.Arg(1)); !ok {
			return usage("body must be text or html")
		}
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
	body, err := mailview.CopySource(email, kind)
	if errors.Is(err, mailview.ErrNoContent) {
		r.Error(p.T(i18n.NoContentCopy))
		return subcommands.ExitFailure
	}
	if err := clipboardWriter().WriteText(body); err != nil {
		r.Error(p.T(i18n.CopyFailed) + ": " + err.Error())
		return subcommands.ExitFailure
	}
	r.Success(p.T(i18n.Copied))

	return subcommands.ExitSuccess
}

var clipboardWriter = func() clipboard.Writer {
	return clipboard.NewSystem()
}
