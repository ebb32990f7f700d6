// Package coach records named quantities from a stepping simulation.
//
// A learner writes an ordinary loop (for example Euler integration of a
// physical law) and, once per step, hands the current values to a
// [Session]. The session keeps one aligned series per variable, attaches
// units and display labels, and hands a read-only [Projection] to a
// [Renderer] when asked to plot.
//
// # Recording
//
//	sim := coach.NewSession("Free fall")
//	sim.SetMetadata("t", "s", "Time")
//	sim.SetMetadata("y", "m", "Height")
//
//	t, y, v := 0.0, 1.8, 5.0
//	for y > 0 {
//	    v += -9.81 * dt
//	    y += v * dt
//	    t += dt
//	    if err := sim.Track(coach.V("t", t), coach.V("y", y), coach.V("v", v)); err != nil {
//	        return err
//	    }
//	}
//	return sim.Plot(coach.PlotOptions{Against: "t"}, "y")
//
// # Alignment
//
// Every series always has exactly [Session.Len] samples. A variable that
// appears for the first time after other variables is back-filled with the
// missing-value marker (NaN, see [Missing]), and a known variable left out of
// a step receives the marker for that step.
//
// A Session is not safe for concurrent use.
package coach
