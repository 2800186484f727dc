package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/llxisdsh/chainmap"
)

type replayOptions struct {
	intKeys bool
}

func newReplayCmd() *cobra.Command {
	opts := replayOptions{}
	cmd := &cobra.Command{
		Use:   "replay [script]",
		Short: "Apply a script of put/remove operations and dump the table",
		Long: `Reads one operation per line from the script file, or stdin when no
file is given:

  put <key> <value>
  remove <key>

Blank lines and lines starting with '#' are ignored. Every operation
result is printed, followed by the non-empty buckets and map statistics.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return errors.Wrap(err, "open script")
				}
				defer f.Close()
				in = f
			}
			log := newLogger(cmd.ErrOrStderr())
			out := cmd.OutOrStdout()
			if opts.intKeys {
				m := chainmap.NewChainedMap[int, string](chainmap.WithLogger(log))
				return replay(in, out, m, strconv.Atoi, log)
			}
			m := chainmap.NewChainedMap[string, string](chainmap.WithLogger(log))
			return replay(in, out, m, func(s string) (string, error) { return s, nil }, log)
		},
	}
	cmd.Flags().BoolVar(&opts.intKeys, "int-keys", false, "Parse keys as integers (hash code is the key itself)")
	return cmd
}

// replay applies the script read from r to m and writes the results to w.
// Failed operations are reported and skipped; a malformed line stops the
// replay.
func replay[K comparable](
	r io.Reader,
	w io.Writer,
	m *chainmap.ChainedMap[K, string],
	parseKey func(string) (K, error),
	log zerolog.Logger,
) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch {
		case fields[0] == "put" && len(fields) >= 3:
			key, err := parseKey(fields[1])
			if err != nil {
				return errors.Wrapf(err, "line %d: bad key", lineNo)
			}
			value := strings.Join(fields[2:], " ")
			prev, loaded, err := m.Put(key, value)
			switch {
			case err != nil:
				fmt.Fprintf(w, "put %v: %v\n", key, err)
			case loaded:
				fmt.Fprintf(w, "put %v=%s: replaced %s\n", key, value, prev)
			default:
				fmt.Fprintf(w, "put %v=%s: inserted\n", key, value)
			}
		case fields[0] == "remove" && len(fields) == 2:
			key, err := parseKey(fields[1])
			if err != nil {
				return errors.Wrapf(err, "line %d: bad key", lineNo)
			}
			value, err := m.Remove(key)
			if err != nil {
				fmt.Fprintf(w, "remove %v: %v\n", key, errors.Cause(err))
				continue
			}
			fmt.Fprintf(w, "remove %v: %s\n", key, value)
		default:
			return errors.Errorf("line %d: malformed operation %q", lineNo, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "read script")
	}

	dumpTable(w, m)
	fmt.Fprint(w, m.Stats().ToString())
	log.Info().
		Int("size", m.Size()).
		Int("table_len", m.TableLen()).
		Msg("Replay complete")
	return nil
}

func dumpTable[K comparable](w io.Writer, m *chainmap.ChainedMap[K, string]) {
	for i, head := range m.Table() {
		if head == nil {
			continue
		}
		var sb strings.Builder
		for e := head; e != nil; e = e.Next() {
			if e != head {
				sb.WriteString(" -> ")
			}
			fmt.Fprintf(&sb, "%v=%s", e.Key(), e.Value())
		}
		fmt.Fprintf(w, "bucket %d: %s\n", i, sb.String())
	}
}
