// Copyright (c) 2019, The CCNLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// sc2mock drives the mock game environment through full episodes from the
// command line, printing the step-type trace and a reward summary. Handy
// for eyeballing the episode protocol without writing a harness.
package main

import (
	"fmt"
	"strings"

	"github.com/ccnlab/sc2-mock/sc2env"
	"github.com/ccnlab/sc2-mock/sc2mock"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"
)

var (
	episodes    int
	agents      int
	screenSize  int
	minimapSize int
)

func main() {
	root := &cobra.Command{
		Use:   "sc2mock",
		Short: "Deterministic mock of the game environment",
	}
	root.AddCommand(runCommand())
	if err := root.Execute(); err != nil {
		fmt.Println(err)
	}
}

func runCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run episodes against the mock environment and summarize rewards",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}
	cmd.Flags().IntVar(&episodes, "episodes", 3, "number of episodes to run")
	cmd.Flags().IntVar(&agents, "agents", 1, "number of agent-controlled players")
	cmd.Flags().IntVar(&screenSize, "screen-size", 64, "feature screen size")
	cmd.Flags().IntVar(&minimapSize, "minimap-size", 32, "feature minimap size")
	return cmd
}

func run() error {
	players := make([]sc2mock.Player, 0, agents+1)
	for i := 0; i < agents; i++ {
		players = append(players, sc2mock.Agent{Race: "random"})
	}
	players = append(players, sc2mock.Bot{Race: "random", Difficulty: "easy"})

	me, err := sc2mock.New(&sc2mock.Config{
		Players:            players,
		FeatureScreenSize:  screenSize,
		FeatureMinimapSize: minimapSize,
	})
	if err != nil {
		return err
	}
	defer me.Close()

	var rewards []float64
	for ep := 0; ep < episodes; ep++ {
		steps, err := me.Reset()
		if err != nil {
			return err
		}
		trace := []string{steps[0].StepType.String()}
		for !steps[0].Last() {
			steps, err = me.Step(make([]sc2env.Action, len(steps)))
			if err != nil {
				return err
			}
			trace = append(trace, steps[0].StepType.String())
			for _, ts := range steps {
				rewards = append(rewards, ts.Reward)
			}
		}
		fmt.Printf("episode %d: %s\n", ep, strings.Join(trace, " "))
	}
	fmt.Printf("episodes: %d  agents: %d  transitions: %d  mean reward: %g\n",
		episodes, me.NumAgents, len(rewards), stat.Mean(rewards, nil))
	return nil
}
