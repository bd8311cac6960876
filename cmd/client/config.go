package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"
	"github.com/tmviewer/tmviewer/pkg/i18n"
	"github.com/tmviewer/tmviewer/pkg/settings"
)

type configCmd struct {
	apiKey    string
	namespace string
	tag       string
	lang      string
	theme     string
}

func (*configCmd) Name() string {
	return "config"
}

func (*configCmd) Synopsis() string {
	return "show or change the saved settings"
}

func (*configCmd) Usage() string {
	return `config [flags]:
	save the given settings, then print the saved settings with the key masked
`
}

func (c *configCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.apiKey, "key", "", "testmail.app API key")
	f.StringVar(&c.namespace, "namespace", "", "inbox namespace")
	f.StringVar(&c.tag, "tag", "", "only list emails with this tag, empty for all")
	f.StringVar(&c.lang, "lang", "", "language: zh or en")
	f.StringVar(&c.theme, "theme", "", "web UI theme: light or dark")
}

func (c *configCmd) Execute(
	_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.lang != "" && c.lang != string(i18n.Chinese) && c.lang != string(i18n.English) {
		return usage("lang must be zh or en")
	}
	if c.theme != "" && c.theme != string(settings.ThemeLight) && c.theme != string(settings.ThemeDark) {
		return usage("theme must be light or dark")
	}

	// Only flags given on the command line are saved.
	set := make(map[string]bool)
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	store := settings.Open(conf.Settings.SettingsPath())
	saved := store.Get()
	if len(set) > 0 {
		var err error
		saved, err = store.Update(func(s *settings.Settings) {
			if set["key"] {
				s.APIKey = c.apiKey
			}
			if set["namespace"] {
				s.Namespace = c.namespace
			}
			if set["tag"] {
				s.Tag = c.tag
			}
			if set["lang"] {
				s.Lang = c.lang
			}
			if set["theme"] {
				s.Theme = c.theme
			}
		})
		if err != nil {
			return fatal("Couldn't save settings", err)
		}
	}

	p := i18n.NewPrinter(i18n.Parse(saved.Lang))
	r := newRenderer(stdout, p)
	if len(set) > 0 {
		r.Success(p.T(i18n.SettingsSaved))
	}
	fmt.Fprintf(stdout, "file:      %s\n", store.Path())
	fmt.Fprintf(stdout, "key:       %s\n", maskKey(saved.APIKey))
	fmt.Fprintf(stdout, "namespace: %s\n", saved.Namespace)
	fmt.Fprintf(stdout, "tag:       %s\n", saved.Tag)
	fmt.Fprintf(stdout, "lang:      %s\n", p.Lang())
	fmt.Fprintf(stdout, "theme:     %s\n", settings.ParseTheme(saved.Theme))

	return subcommands.ExitSuccess
}

// maskKey keeps the last four characters of key visible.
func maskKey(key string) string {
	const visible = 4
	if len(key) <= visible {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-visible) + key[len(key)-visible:]
}
