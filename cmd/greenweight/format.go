package main

import (
	"fmt"
	"io"
	"text/tabwriter"
)

type row struct {
	label string
	lbs   float64
}

func writeRows(out io.Writer, rows []row) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "\tgreen lbs\ttons\t")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%.2f\t%.3f\t\n", r.label, r.lbs, r.lbs/2000)
	}
	return tw.Flush()
}
