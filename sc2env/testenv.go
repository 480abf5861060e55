// Copyright (c) 2019, The CCNLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sc2env

import (
	"fmt"

	"github.com/emer/emergent/env"
	"github.com/emer/etable/etensor"
)

// TestEnv is a generic test environment that returns the same timestep on
// every call to Step, overriding only the step type (and, on First, reward
// and discount) to honor the episode protocol. By default the template is
// reward 0, discount 1, with all-zero int32 observation tensors shaped per
// the observation spec. Configure behavior through the exported fields
// before driving it.
type TestEnv struct {
	NumAgents     int          `desc:"number of agents -- every call returns this many timesteps"`
	ObsSpec       env.Elements `desc:"observation spec, shared by all agents"`
	ActSpec       env.Elements `desc:"action spec, shared by all agents"`
	NextTimestep  TimeStep     `desc:"template timestep returned on the next Step call, subject to step-type overrides"`
	EpisodeLength int          `desc:"number of transitions before a forced Last step -- 0 means unbounded"`
	Episode       env.Ctr      `view:"inline" desc:"steps taken in the current episode -- the only mutable state"`
}

// NewTestEnv returns a TestEnv for the given number of agents, with the
// default all-zero observation derived from obsSpec and an unbounded
// episode length.
func NewTestEnv(numAgents int, obsSpec, actSpec env.Elements) *TestEnv {
	te := &TestEnv{
		NumAgents: numAgents,
		ObsSpec:   obsSpec,
		ActSpec:   actSpec,
	}
	te.Episode.Scale = env.Episode
	te.Episode.Init()
	te.NextTimestep = TimeStep{
		StepType:    Mid,
		Reward:      0,
		Discount:    1,
		Observation: ZeroObservation(obsSpec),
	}
	return te
}

// ZeroObservation returns an observation with one zero-filled int32 tensor
// per spec element, shaped and dim-named per the element.
func ZeroObservation(obsSpec env.Elements) Observation {
	obs := make(Observation, len(obsSpec))
	for _, el := range obsSpec {
		obs[el.Name] = etensor.NewInt32(el.Shape, nil, el.DimNames)
	}
	return obs
}

// Reset restarts the episode and returns one First timestep per agent.
// Equivalent to calling Step with all-nil actions right after construction.
func (te *TestEnv) Reset() ([]TimeStep, error) {
	te.Episode.Init()
	return te.Step(make([]Action, te.NumAgents))
}

// Step returns NumAgents copies of the template timestep, with the step
// type set from the episode counter: First at the start of an episode
// (forcing reward 0, discount 1), Last once EpisodeLength transitions have
// been taken, Mid otherwise. After a Last the counter wraps to 0 so the
// next call starts a fresh episode.
func (te *TestEnv) Step(actions []Action) ([]TimeStep, error) {
	if len(actions) != te.NumAgents {
		return nil, fmt.Errorf("sc2env: expected %d actions, received %d", te.NumAgents, len(actions))
	}

	ts := te.NextTimestep
	switch {
	case te.Episode.Cur == 0:
		ts.StepType = First
		ts.Reward = 0
		ts.Discount = 1
	case te.EpisodeLength > 0 && te.Episode.Cur >= te.EpisodeLength:
		ts.StepType = Last
	}

	if ts.StepType == Last {
		te.Episode.Init()
	} else {
		te.Episode.Incr()
	}

	steps := make([]TimeStep, te.NumAgents)
	for i := range steps {
		steps[i] = ts
	}
	return steps, nil
}

// ObservationSpec returns the shared observation spec once per agent.
func (te *TestEnv) ObservationSpec() []env.Elements {
	specs := make([]env.Elements, te.NumAgents)
	for i := range specs {
		specs[i] = te.ObsSpec
	}
	return specs
}

// ActionSpec returns the shared action spec once per agent.
func (te *TestEnv) ActionSpec() []env.Elements {
	specs := make([]env.Elements, te.NumAgents)
	for i := range specs {
		specs[i] = te.ActSpec
	}
	return specs
}

// Close implements Base. A TestEnv holds no resources.
func (te *TestEnv) Close() {}
