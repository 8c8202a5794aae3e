// Command xstr exercises xstring from the command line.
//
// Usage:
//
//	xstr [--config file.yaml] [--debug] <command> [args]
//
// Examples:
//
//	xstr trace --count 9
//	xstr trace --count 4 --mode append
//	xstr concat ab cd e
//	xstr cstring hello
package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/trickstertwo/xlog"
	"github.com/urfave/cli/v2"

	"github.com/trickstertwo/xstring"
	"github.com/trickstertwo/xstring/internal/logadapter"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "xstr",
		Usage:     "inspect growth and ownership of xstring.String",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML factory configuration",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log every reallocation to stderr",
			},
		},
		Commands: []*cli.Command{
			traceCommand(),
			concatCommand(),
			cstringCommand(),
		},
	}
}

// env is the factory and its tracking allocator for one invocation.
type env struct {
	f       *xstring.Factory
	tracker *xstring.TrackingAllocator
}

func newEnv(c *cli.Context) (*env, error) {
	var fc xstring.FileConfig
	if path := c.String("config"); path != "" {
		var err error
		if fc, err = xstring.LoadConfig(path); err != nil {
			return nil, err
		}
	}
	fc.Track = false
	a, err := fc.NewAllocator()
	if err != nil {
		return nil, err
	}
	tracker := xstring.NewTrackingAllocator(a)
	b := xstring.NewBuilder().WithAllocator(tracker).WithMaxCapacity(fc.MaxCapacity)
	if c.Bool("debug") {
		l, err := logadapter.NewLogger(c.App.ErrWriter, xlog.LevelDebug, true)
		if err != nil {
			return nil, err
		}
		b = b.WithLogger(l)
	}
	f, err := b.Build()
	if err != nil {
		return nil, err
	}
	return &env{f: f, tracker: tracker}, nil
}

func traceCommand() *cli.Command {
	return &cli.Command{
		Name:  "trace",
		Usage: "print length and capacity after each single-byte insert",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "count", Aliases: []string{"n"}, Value: 9, Usage: "number of inserts"},
			&cli.StringFlag{Name: "mode", Value: "push", Usage: "push (doubling) or append (2*required)"},
		},
		Action: func(c *cli.Context) error {
			e, err := newEnv(c)
			if err != nil {
				return err
			}
			var insert func(*xstring.String, byte) error
			switch mode := c.String("mode"); mode {
			case "push":
				insert = (*xstring.String).PushBack
			case "append":
				insert = (*xstring.String).AppendByte
			default:
				return errors.Errorf("unknown mode %q", mode)
			}

			s := e.f.New()
			defer s.Clear()
			tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "op\tlen\tcap")
			for i := 0; i < c.Int("count"); i++ {
				if err := insert(s, byte('a'+i%26)); err != nil {
					return err
				}
				fmt.Fprintf(tw, "%d\t%d\t%d\n", i+1, s.Len(), s.Capacity())
			}
			return tw.Flush()
		},
	}
}

func concatCommand() *cli.Command {
	return &cli.Command{
		Name:      "concat",
		Usage:     "concatenate the arguments and print the result with allocator stats",
		ArgsUsage: "<text>...",
		Action: func(c *cli.Context) error {
			e, err := newEnv(c)
			if err != nil {
				return err
			}
			s := e.f.New()
			for _, arg := range c.Args().Slice() {
				if err := s.AppendString(arg); err != nil {
					return err
				}
			}
			w := c.App.Writer
			if _, err := s.WriteTo(w); err != nil {
				return err
			}
			fmt.Fprintf(w, "\nlen=%d cap=%d (%s) hash=%016x\n",
				s.Len(), s.Capacity(), humanize.Bytes(uint64(s.Capacity())), s.Hash())
			s.Clear()
			fmt.Fprintln(w, e.tracker.Stats())
			return nil
		},
	}
}

func cstringCommand() *cli.Command {
	return &cli.Command{
		Name:      "cstring",
		Usage:     "hex dump the NUL-terminated export of the argument",
		ArgsUsage: "<text>",
		Action: func(c *cli.Context) error {
			e, err := newEnv(c)
			if err != nil {
				return err
			}
			s, err := e.f.FromString(c.Args().First())
			if err != nil {
				return err
			}
			defer s.Clear()
			fmt.Fprintf(c.App.Writer, "% x\n", s.CString())
			return nil
		},
	}
}
