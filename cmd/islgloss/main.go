// Command islgloss translates English text into Indian Sign Language gloss
// tokens using a Stanza service managed in Docker.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	islgloss "github.com/tassa-yoniso-manasi-karoto/go-islgloss"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "islgloss: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "islgloss",
		Usage: "translate English text into ISL gloss tokens",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "vocab",
				Usage:   "word list of available signs, one per line (default: embedded list)",
				EnvVars: []string{"ISLGLOSS_VOCAB"},
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Usage:   "timeout of a single service query",
				Value:   islgloss.DefaultQueryTimeout,
				EnvVars: []string{"ISLGLOSS_TIMEOUT"},
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "log to stderr",
				EnvVars: []string{"ISLGLOSS_DEBUG"},
			},
			&cli.BoolFlag{
				Name:  "recreate",
				Usage: "recreate the service container before starting",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug") {
				islgloss.EnableDebugLogging()
			}
			return nil
		},
		Commands: []*cli.Command{
			translateCommand(),
			replCommand(),
			pullCommand(),
		},
	}
}

func translateCommand() *cli.Command {
	return &cli.Command{
		Name:      "translate",
		Usage:     "translate text given as arguments or on stdin",
		ArgsUsage: "[text...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print the index → gloss mapping as JSON"},
			&cli.BoolFlag{Name: "explain", Usage: "print the reordered words of every sentence"},
			&cli.StringFlag{Name: "signs", Usage: "JSON dictionary of phrase → sign clip path"},
		},
		Action: func(c *cli.Context) error {
			text, err := readText(c.Args().Slice(), c.App.Reader)
			if err != nil {
				return err
			}

			var signs *islgloss.SignDictionary
			if path := c.String("signs"); path != "" {
				if signs, err = islgloss.LoadSignDictionaryFile(path); err != nil {
					return err
				}
			}

			tr, closeFn, err := startTranslator(c)
			if err != nil {
				return err
			}
			defer closeFn()

			out := output{w: c.App.Writer, json: c.Bool("json"), signs: signs}
			if c.Bool("explain") {
				glosses, err := tr.TranslateSentences(c.Context, text)
				if err != nil {
					return err
				}
				return out.explain(glosses)
			}

			m, err := tr.Translate(c.Context, text)
			if err != nil {
				return err
			}
			return out.mapping(m)
		},
	}
}

func replCommand() *cli.Command {
	return &cli.Command{
		Name:  "repl",
		Usage: "translate sentences interactively",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "signs", Usage: "JSON dictionary of phrase → sign clip path"},
		},
		Action: func(c *cli.Context) error {
			var signs *islgloss.SignDictionary
			if path := c.String("signs"); path != "" {
				var err error
				if signs, err = islgloss.LoadSignDictionaryFile(path); err != nil {
					return err
				}
			}

			tr, closeFn, err := startTranslator(c)
			if err != nil {
				return err
			}
			defer closeFn()

			r := &repl{
				translator: tr,
				out:        output{w: c.App.Writer, signs: signs},
			}
			return r.Run(c.Context)
		},
	}
}

func pullCommand() *cli.Command {
	return &cli.Command{
		Name:  "pull",
		Usage: "pull the service image",
		Action: func(c *cli.Context) error {
			bar := newPullProgress()
			defer bar.Stop()

			mgr, err := islgloss.NewManager(c.Context,
				islgloss.WithQueryTimeout(c.Duration("timeout")),
				islgloss.WithDownloadProgressCallback(bar.Update))
			if err != nil {
				return err
			}
			defer mgr.Close()
			return mgr.PullImage(c.Context)
		},
	}
}

// startTranslator brings up the service and returns a translator over it
func startTranslator(c *cli.Context) (*islgloss.Translator, func(), error) {
	var opts []islgloss.TranslatorOption
	if path := c.String("vocab"); path != "" {
		v, err := islgloss.LoadVocabularyFile(path)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, islgloss.WithVocabulary(v))
	}
	opts = append(opts, islgloss.WithLogger(islgloss.Logger))

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}

	mgr, err := islgloss.NewManager(ctx, islgloss.WithQueryTimeout(c.Duration("timeout")))
	if err != nil {
		return nil, nil, err
	}

	if c.Bool("recreate") {
		err = mgr.InitRecreate(ctx, false)
	} else {
		err = mgr.Init(ctx)
	}
	if err != nil {
		mgr.Close()
		return nil, nil, err
	}

	return mgr.Translator(opts...), func() { mgr.Close() }, nil
}

// readText joins the arguments, or reads all of r when there are none
func readText(args []string, r io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if r == nil {
		return "", nil
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(b), nil
}
