// Copyright (c) 2019, The CCNLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sc2env defines the step / reset protocol shared by the real
// game environment and its mocks: TimeStep records, step types, per-agent
// specs, and a generic TestEnv that replays a fixed timestep template.
package sc2env

import (
	"github.com/emer/emergent/env"
	"github.com/emer/etable/etensor"
	"github.com/goki/ki/kit"
)

// StepType is the position of a timestep within an episode.
type StepType int

var KiT_StepType = kit.Enums.AddEnum(StepTypeN, false, nil)

const (
	// First is the initial timestep of an episode, right after a restart.
	First StepType = iota

	// Mid is any timestep strictly between the first and last of an episode.
	Mid

	// Last is the final timestep of an episode -- the next call restarts.
	Last

	StepTypeN
)

func (st StepType) String() string {
	switch st {
	case First:
		return "First"
	case Mid:
		return "Mid"
	case Last:
		return "Last"
	}
	return "StepTypeN"
}

// Observation maps a field name to its tensor value. The set of names and
// tensor shapes conforms to the env's observation spec elements.
type Observation map[string]etensor.Tensor

// Action is an opaque per-agent action. The mock environments never
// inspect actions; nil is the neutral no-op action.
type Action interface{}

// TimeStep is one environment transition as seen by one agent.
// Returned values are read-only: derive modified versions by copying the
// struct value and overriding fields, never by mutating a returned one.
type TimeStep struct {
	StepType    StepType    `desc:"position of this step in the episode"`
	Reward      float64     `desc:"reward for the transition -- always 0 on First"`
	Discount    float64     `desc:"discount in [0,1] -- always 1 on First"`
	Observation Observation `desc:"named observation tensors per the observation spec"`
}

// First returns true if this is the initial timestep of an episode.
func (ts TimeStep) First() bool { return ts.StepType == First }

// Mid returns true if this timestep is neither first nor last.
func (ts TimeStep) Mid() bool { return ts.StepType == Mid }

// Last returns true if this is the final timestep of an episode.
func (ts TimeStep) Last() bool { return ts.StepType == Last }

// Base is the interface common to the real environment and its mocks.
// All methods are plain synchronous calls; an instance is intended for a
// single caller and performs no internal locking.
type Base interface {
	// Reset restarts the episode, returning one First timestep per agent.
	Reset() ([]TimeStep, error)

	// Step advances one transition given one action per agent, returning
	// one timestep per agent. An action count that does not match the
	// number of agents is an error and leaves the episode state untouched.
	Step(actions []Action) ([]TimeStep, error)

	// ObservationSpec returns the per-agent observation spec, one entry
	// per agent.
	ObservationSpec() []env.Elements

	// ActionSpec returns the per-agent action spec, one entry per agent.
	ActionSpec() []env.Elements

	// Close releases any resources. Mocks hold none.
	Close()
}
