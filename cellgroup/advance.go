package cellgroup

import (
	"sort"

	"github.com/nestmc/nestmc/core"
)

// Advance integrates the group forward from its current time to tfinal
// using an implicit step of at most dt, sub-stepping so that every pending
// event lands exactly on a step boundary. Events due at or before the
// current time are delivered to their target mechanism's NetReceive before
// the step that follows is assembled; spikes detected during a step are
// appended to the group's spike buffer in non-decreasing time order, with
// cell_member order breaking ties within a step.
func (g *CellGroup) Advance(tfinal, dt float64) error {
	if dt <= 0 {
		return &core.UsageError{Option: "dt", Reason: "cellgroup: advance requires a positive dt"}
	}

	for g.t < tfinal {
		g.deliverDue()

		step := dt
		if ev, ok := g.queue.Peek(); ok && ev.Time > g.t && ev.Time < g.t+step {
			step = ev.Time - g.t
		}
		if g.t+step > tfinal {
			step = tfinal - g.t
		}
		if step <= 0 {
			break
		}

		tBefore := g.t

		for _, m := range g.mechanisms {
			m.Current(g.v, g.itotal)
		}
		g.mat.Assemble(g.backend, g.axialG, g.cm, g.v, g.itotal, step)
		if err := g.mat.Solve(g.backend); err != nil {
			return err
		}
		g.backend.Copy(g.v, g.mat.RHS)
		g.backend.Fill(g.itotal, 0)
		for _, m := range g.mechanisms {
			m.State(g.v, step)
		}

		g.t += step
		g.detectSpikes(tBefore, g.t)

		for _, s := range g.samplers {
			s.Record(g.t, g.v[s.Compartment])
		}
	}
	return nil
}

// deliverDue pops and dispatches every event whose delivery time has
// arrived, routing it through the target map built at construction. Events
// addressed to a cell_member with no registered point mechanism (a
// misconfigured recipe) are silently dropped, matching the teacher's policy
// of validating connections at construction rather than at delivery time.
func (g *CellGroup) deliverDue() {
	for {
		ev, ok := g.queue.PopIf(g.t)
		if !ok {
			return
		}
		if tg, found := g.targets[ev.Target]; found {
			tg.mech.NetReceive(tg.local, ev.Weight)
		}
	}
}

// detectSpikes checks every detector for an upward threshold crossing over
// the step [tBefore, tAfter], linearly interpolating between the pre- and
// post-step voltage to find the exact crossing time. A detector re-arms
// once its voltage falls back below threshold. Spikes produced within this
// one step are sorted by (time, source) before being appended, so that
// simultaneous crossings within a step still land in the deterministic
// order the rest of the group's output guarantees.
func (g *CellGroup) detectSpikes(tBefore, tAfter float64) {
	var stepSpikes []core.Spike
	dt := tAfter - tBefore
	for i := range g.detectors {
		d := &g.detectors[i]
		v := g.v[d.compartment]
		if !d.crossed && d.prevV < d.threshold && v >= d.threshold {
			frac := (d.threshold - d.prevV) / (v - d.prevV)
			tcross := tBefore + frac*dt
			stepSpikes = append(stepSpikes, core.Spike{Source: d.source, Time: tcross})
			d.crossed = true
		} else if v < d.threshold {
			d.crossed = false
		}
		d.prevV = v
	}
	if len(stepSpikes) == 0 {
		return
	}
	sort.Slice(stepSpikes, func(i, j int) bool {
		if stepSpikes[i].Time != stepSpikes[j].Time {
			return stepSpikes[i].Time < stepSpikes[j].Time
		}
		return stepSpikes[i].Source.Less(stepSpikes[j].Source)
	})
	g.spikes = append(g.spikes, stepSpikes...)
}
