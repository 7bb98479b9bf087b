package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"smplx-poser/internal/joints"
	"smplx-poser/internal/pose"
)

func main() {
	controls := flag.Bool("controls", false, "List only the core interactive controls")
	flag.Parse()

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	if *controls {
		fmt.Fprintln(tw, "LABEL\tJOINT\tSLOT\tRANGE")
		for _, c := range joints.CoreControls() {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%g..%g°\n", c.Label, int(c.Joint), joints.Slot(c.Joint), c.MinDeg, c.MaxDeg)
		}
		return
	}

	fmt.Fprintln(tw, "NAME\tID\tAXIS\tOFFSET\tSLOT")
	for _, s := range joints.All() {
		off := "-"
		if s.ID != joints.Global {
			off = fmt.Sprint(joints.OffsetFor(s.ID))
		}
		fmt.Fprintf(tw, "%s\t%d\t%v\t%s\t%d\n", s.Name, int(s.ID), s.Axis, off, joints.Slot(s.ID))
	}
	fmt.Fprintf(tw, "\npose vector: %d slots (global %d, body %d-%d, hands %d-%d)\n",
		pose.Size, pose.GlobalStart, pose.BodyStart, pose.LeftHandStart-1, pose.LeftHandStart, pose.Size-1)
}
