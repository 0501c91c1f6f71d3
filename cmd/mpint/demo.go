package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"mpint/internal/mpi"
)

type demoCase struct {
	name string
	want string
	run  func() (string, error)
}

var demoCases = []demoCase{
	{
		name: "10000 * 10000",
		want: "100000000",
		run: func() (string, error) {
			x, err := mpi.Parse("10000")
			if err != nil {
				return "", err
			}
			z := mpi.New()
			if err := z.Mul(x, x); err != nil {
				return "", err
			}
			return z.String(), nil
		},
	},
	{
		name: "divmod(10, 4)",
		want: "q=2 r=2",
		run: func() (string, error) {
			n, d := mpi.New(), mpi.New()
			if err := n.SetUint32(10); err != nil {
				return "", err
			}
			if err := d.SetUint32(4); err != nil {
				return "", err
			}
			q, r := mpi.New(), mpi.New()
			if err := mpi.DivMod(q, r, n, d); err != nil {
				return "", err
			}
			return fmt.Sprintf("q=%s r=%s", q, r), nil
		},
	},
	{
		name: "gcd(50, 30)",
		want: "10",
		run: func() (string, error) {
			a, b := mpi.New(), mpi.New()
			if err := a.SetUint32(50); err != nil {
				return "", err
			}
			if err := b.SetUint32(30); err != nil {
				return "", err
			}
			g := mpi.New()
			if err := mpi.GCD(g, a, b); err != nil {
				return "", err
			}
			return g.String(), nil
		},
	},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the worked examples and report whether each matches",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if failed := runDemo(cmd.OutOrStdout(), demoCases); failed > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %d of %d examples failed\n", failColor.Sprint("error:"), failed, len(demoCases))
			return errReported
		}
		return nil
	},
}

// runDemo prints one line per case and returns the number of mismatches.
func runDemo(w io.Writer, cases []demoCase) int {
	failed := 0
	for _, c := range cases {
		got, err := c.run()
		switch {
		case err != nil:
			failed++
			fmt.Fprintf(w, "%s %s: %v\n", failColor.Sprint("FAIL"), c.name, err)
		case got != c.want:
			failed++
			fmt.Fprintf(w, "%s %s = %s, want %s\n", failColor.Sprint("FAIL"), c.name, got, c.want)
		default:
			fmt.Fprintf(w, "%s %s = %s\n", passColor.Sprint("ok  "), c.name, got)
		}
	}
	return failed
}
