package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/cbsinteractive/linesearch/api"
	"github.com/cbsinteractive/linesearch/timecode"
	"github.com/cbsinteractive/linesearch/ui"
)

func newPingCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the service answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := g.fetcher()
			if err != nil {
				return err
			}
			p, err := f.Ping(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p.Message)
			return nil
		},
	}
}

func newSearchCmd(g *globals) *cobra.Command {
	var (
		amount int
		tc     string
	)
	cmd := &cobra.Command{
		Use:   "search [text...]",
		Short: "Search lines by text and timecode range",
		Long: `Search lines containing the given text. --tc limits results to lines
inside a range written as IN-OUT, e.g. 00:00:05:00-00:00:10:00.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := api.SearchQuery{Text: strings.Join(args, " "), Amount: amount}
			if tc != "" {
				span, err := timecode.ParseSpan(tc, g.cfg.Fps)
				if err != nil {
					return err
				}
				if err := span.Validate(); err != nil {
					return err
				}
				q.Range = &span
			}
			f, err := g.fetcher()
			if err != nil {
				return err
			}
			res, err := f.Search(cmd.Context(), q)
			if err != nil {
				return err
			}
			return printTable(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().IntVarP(&amount, "amount", "n", api.DefaultAmount, "maximum number of results")
	cmd.Flags().StringVar(&tc, "tc", "", "timecode range IN-OUT")
	return cmd
}

func printTable(w io.Writer, res api.Search) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	names := make([]string, 0, len(api.Columns))
	for _, k := range api.Columns {
		name, _ := k.DisplayName()
		names = append(names, name)
	}
	fmt.Fprintln(tw, strings.Join(names, "\t"))
	for _, row := range res.Results {
		cells := make([]string, len(api.Columns))
		for i, k := range api.Columns {
			cells[i], _ = row.Get(k)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d result(s), hash %s\n", len(res.Results), res.Hash)
	return err
}

func newTimecodeCmd(g *globals) *cobra.Command {
	var frames bool
	cmd := &cobra.Command{
		Use:   "tc <timecode|frames>",
		Short: "Show the fields, frame count and duration of a timecode",
		Long: `Show the fields, frame count and duration of a timecode. With --frames
the argument is a frame count, converted to a timecode at --fps.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				t   *timecode.Timecode
				err error
			)
			if frames {
				n, perr := strconv.Atoi(args[0])
				if perr != nil {
					return errors.Wrapf(perr, "frame count %q", args[0])
				}
				t, err = timecode.FromFrameCount(n, g.cfg.Fps, timecode.Flags{DropFrame: g.cfg.Fps.DropFrame()})
			} else {
				t, err = timecode.Parse(args[0], g.cfg.Fps)
			}
			if err != nil {
				return err
			}
			if err := t.Validate(); err != nil {
				return err
			}
			n, err := t.FrameCount()
			if err != nil {
				return err
			}
			d, err := t.Duration()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "timecode  %s\n", t)
			fmt.Fprintf(out, "fps       %s\n", t.Fps())
			fmt.Fprintf(out, "fields    %d %d %d %d\n", t.Hours(), t.Minutes(), t.Seconds(), t.Frames())
			fmt.Fprintf(out, "frames    %d\n", n)
			fmt.Fprintf(out, "duration  %s\n", d)
			return nil
		},
	}
	cmd.Flags().BoolVar(&frames, "frames", false, "read the argument as a frame count")
	return cmd
}

func newTUICmd(g *globals) *cobra.Command {
	var amount int
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse search results in a terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := g.fetcher()
			if err != nil {
				return err
			}
			return ui.Run(ui.Options{
				Context: cmd.Context(),
				Fetcher: f,
				Fps:     g.cfg.Fps,
				Amount:  amount,
			})
		},
	}
	cmd.Flags().IntVarP(&amount, "amount", "n", 10, "maximum number of results")
	return cmd
}
