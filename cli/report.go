package cli

import (
	"fmt"
	"io"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/s1"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"

	"go.viam.com/fabrik/motionplan/ik"
	"go.viam.com/fabrik/referenceframe"
)

// writeReport prints the joint positions and angles before and after a solve, followed by how the
// solve ended.
func writeReport(w io.Writer, chain *referenceframe.Chain, target r2.Point, sol *ik.Solution) error {
	lengthErrors, err := chain.SegmentErrors(sol.Positions)
	if err != nil {
		return err
	}

	positions := table.NewWriter()
	positions.SetTitle("Joint positions")
	positions.AppendHeader(table.Row{"#", "Start X", "Start Y", "End X", "End Y", "Length error"})
	for i, p := range sol.Positions {
		start := sol.StartPositions[i]
		positions.AppendRow(table.Row{
			i,
			formatFloat(start.X),
			formatFloat(start.Y),
			formatFloat(p.X),
			formatFloat(p.Y),
			fmt.Sprintf("%.3g", lengthErrors[i]),
		})
	}
	printf(w, "%s", positions.Render())

	angles := table.NewWriter()
	angles.SetTitle("Joint angles")
	angles.AppendHeader(table.Row{"#", "Start (rad)", "End (rad)", "Delta (rad)", "Delta (deg)"})
	for i, a := range sol.Angles {
		delta := sol.AngleDeltas[i].Value
		angles.AppendRow(table.Row{
			i,
			formatFloat(sol.StartAngles[i].Value),
			formatFloat(a.Value),
			formatFloat(delta),
			fmt.Sprintf("%.2f", s1.Angle(delta).Degrees()),
		})
	}
	printf(w, "%s", angles.Render())

	if sol.Converged {
		printf(w, "converged after %d passes, max change %.3g", sol.Iterations, sol.MaxChange)
	} else {
		printf(w, "stopped after %d passes without converging, max change %.3g", sol.Iterations, sol.MaxChange)
	}
	printf(w, "end effector is %.3g from the target", ik.EndEffectorError(sol.Positions, target))

	mean, err := stats.Mean(lengthErrors)
	if err != nil {
		return err
	}
	sd, err := stats.StandardDeviation(lengthErrors)
	if err != nil {
		return err
	}
	printf(w, "segment length error mean %.3g, standard deviation %.3g", mean, sd)
	if sol.DegenerateSegments > 0 {
		warningf(w, "%d segment(s) had collapsed onto a neighboring joint", sol.DegenerateSegments)
	}
	return nil
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.6f", v)
}
