// Copyright (c) 2019, The CCNLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sc2mock is a deterministic stand-in for the real game
// environment: it honors the full reset / step / episode protocol and
// returns a fixed, spec-conformant mock observation on every call, so
// agents and training loops can run without launching the simulator.
// Episodes terminate after a fixed 10 transitions.
package sc2mock

import (
	"github.com/ccnlab/sc2-mock/sc2env"
	"github.com/ccnlab/sc2-mock/sc2feats"
	"github.com/ccnlab/sc2-mock/sc2proto"
	"github.com/emer/emergent/evec"
	"github.com/emer/etable/etensor"
)

// DummyMapSize is the world map size reported by the mock.
var DummyMapSize = evec.Vec2i{X: 256, Y: 256}

// episodeLength is the fixed number of transitions per mock episode.
const episodeLength = 10

// Player is one participant in the game setup. Only agent-controlled
// participants receive timesteps.
type Player interface {
	AgentControlled() bool
}

// Agent is an agent-controlled participant.
type Agent struct {
	Race string `desc:"race selection -- ignored by the mock"`
	Name string `desc:"display name -- ignored by the mock"`
}

func (a Agent) AgentControlled() bool { return true }

// Bot is a built-in scripted participant.
type Bot struct {
	Race       string `desc:"race selection -- ignored by the mock"`
	Difficulty string `desc:"bot difficulty -- ignored by the mock"`
}

func (b Bot) AgentControlled() bool { return false }

// Config carries the full option set of the real environment so a mock
// can be swapped in without changing call sites. Only the shape options
// (screen / minimap dimensions, action space, feature units) and the
// player roster affect the mock; the remaining options are accepted and
// silently ignored, on purpose.
type Config struct {
	MapName string   `desc:"ignored"`
	Players []Player `desc:"participant roster -- agent count is the number of agent-controlled entries, 1 if empty"`

	FeatureScreenSize    int `desc:"square size of the feature screen -- conflicts with the width/height pair"`
	FeatureScreenWidth   int `desc:"feature screen width"`
	FeatureScreenHeight  int `desc:"feature screen height"`
	FeatureMinimapSize   int `desc:"square size of the feature minimap -- conflicts with the width/height pair"`
	FeatureMinimapWidth  int `desc:"feature minimap width"`
	FeatureMinimapHeight int `desc:"feature minimap height"`
	RGBScreenSize        int `desc:"square size of the rgb screen -- conflicts with the width/height pair"`
	RGBScreenWidth       int `desc:"rgb screen width"`
	RGBScreenHeight      int `desc:"rgb screen height"`
	RGBMinimapSize       int `desc:"square size of the rgb minimap -- conflicts with the width/height pair"`
	RGBMinimapWidth      int `desc:"rgb minimap width"`
	RGBMinimapHeight     int `desc:"rgb minimap height"`

	ActionSpace           sc2feats.ActionSpace `desc:"required when both feature and rgb screens are configured"`
	CameraWidthWorldUnits float32              `desc:"camera width in world units, default 24"`
	UseFeatureUnits       bool                 `desc:"include per-unit feature data in observations"`

	Discount            float64 `desc:"ignored"`
	Visualize           bool    `desc:"ignored"`
	StepMul             int     `desc:"ignored"`
	SaveReplayEpisodes  int     `desc:"ignored"`
	ReplayDir           string  `desc:"ignored"`
	GameStepsPerEpisode int     `desc:"ignored"`
	ScoreIndex          int     `desc:"ignored"`
	ScoreMultiplier     float64 `desc:"ignored"`
	RandomSeed          int64   `desc:"ignored"`
	DisableFog          bool    `desc:"ignored"`
}

// MockEnv swaps in for the real game environment. It is a TestEnv with
// the episode length fixed at 10 and the default observation replaced by
// a mock observation synthesized once, at construction, from the feature
// spec.
type MockEnv struct {
	*sc2env.TestEnv
	Feats *sc2feats.Features `desc:"resolved feature configuration and spec source"`
}

// New builds a MockEnv from the configuration. Conflicting or missing
// dimension options are a construction error; everything the mock cannot
// honor is ignored.
func New(cfg *Config) (*MockEnv, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	fs, err := sc2feats.New(sc2feats.Params{
		FeatureScreenSize:     cfg.FeatureScreenSize,
		FeatureScreenWidth:    cfg.FeatureScreenWidth,
		FeatureScreenHeight:   cfg.FeatureScreenHeight,
		FeatureMinimapSize:    cfg.FeatureMinimapSize,
		FeatureMinimapWidth:   cfg.FeatureMinimapWidth,
		FeatureMinimapHeight:  cfg.FeatureMinimapHeight,
		RGBScreenSize:         cfg.RGBScreenSize,
		RGBScreenWidth:        cfg.RGBScreenWidth,
		RGBScreenHeight:       cfg.RGBScreenHeight,
		RGBMinimapSize:        cfg.RGBMinimapSize,
		RGBMinimapWidth:       cfg.RGBMinimapWidth,
		RGBMinimapHeight:      cfg.RGBMinimapHeight,
		ActionSpace:           cfg.ActionSpace,
		UseFeatureUnits:       cfg.UseFeatureUnits,
		MapSize:               DummyMapSize,
		CameraWidthWorldUnits: cfg.CameraWidthWorldUnits,
	})
	if err != nil {
		return nil, err
	}

	numAgents := 1
	if len(cfg.Players) > 0 {
		numAgents = 0
		for _, p := range cfg.Players {
			if p.AgentControlled() {
				numAgents++
			}
		}
	}

	te := sc2env.NewTestEnv(numAgents, fs.ObservationSpec(), fs.ActionSpec())
	te.EpisodeLength = episodeLength
	me := &MockEnv{TestEnv: te, Feats: fs}
	obs, err := me.mockObservation()
	if err != nil {
		return nil, err
	}
	te.NextTimestep.Observation = obs
	return me, nil
}

// SaveReplay accepts anything and does nothing.
func (me *MockEnv) SaveReplay(args ...interface{}) {}

// mockObservation synthesizes the observation template: a raw record with
// plausible fixed player, ability and score values, zero-filled layer
// buffers for every declared surface, passed once through the feature
// transform, with the minimap camera layer overwritten to mark a fixed
// viewport.
func (me *MockEnv) mockObservation() (sc2env.Observation, error) {
	resp := &sc2proto.ResponseObservation{}
	raw := &resp.Observation

	raw.GameLoop = 1
	raw.PlayerCommon = sc2proto.PlayerCommon{
		PlayerID:        1,
		Minerals:        20,
		Vespene:         50,
		FoodCap:         36,
		FoodUsed:        21,
		FoodArmy:        6,
		FoodWorkers:     15,
		IdleWorkerCount: 2,
		ArmyCount:       6,
		WarpGateCount:   0,
		LarvaCount:      0,
	}
	raw.Abilities = []sc2proto.AvailableAbility{{AbilityID: 1, RequiresPoint: true}} // Smart

	raw.Score.Score = 300
	raw.Score.ScoreDetails = sc2proto.ScoreDetails{
		IdleProductionTime:     0,
		IdleWorkerTime:         0,
		TotalValueUnits:        190,
		TotalValueStructures:   230,
		KilledValueUnits:       0,
		KilledValueStructures:  0,
		CollectedMinerals:      2130,
		CollectedVespene:       560,
		CollectionRateMinerals: 50,
		CollectionRateVespene:  20,
		SpentMinerals:          2000,
		SpentVespene:           500,
	}

	if me.Feats.ScreenDims.X != 0 {
		raw.FeatureLayerData.Renders = allocLayers(sc2feats.ScreenFeatures, me.Feats.ScreenDims)
		raw.FeatureLayerData.MinimapRenders = allocLayers(sc2feats.MinimapFeatures, me.Feats.MinimapDims)
	}
	if me.Feats.RGBScreenDims.X != 0 {
		raw.RenderData.Map = allocImage(me.Feats.RGBScreenDims, 24)
		raw.RenderData.Minimap = allocImage(me.Feats.RGBMinimapDims, 24)
	}

	obs, err := me.Feats.TransformObs(resp)
	if err != nil {
		return nil, err
	}
	markCamera(obs)
	return obs, nil
}

// allocLayers allocates one zero-filled 8 bits-per-pixel buffer per
// catalog layer.
func allocLayers(feats []sc2feats.Feature, dims evec.Vec2i) map[string]*sc2proto.ImageData {
	m := make(map[string]*sc2proto.ImageData, len(feats))
	for _, f := range feats {
		im := &sc2proto.ImageData{}
		im.AllocZero(dims, 8)
		m[f.Name] = im
	}
	return m
}

func allocImage(dims evec.Vec2i, bits int32) *sc2proto.ImageData {
	im := &sc2proto.ImageData{}
	im.AllocZero(dims, bits)
	return im
}

// markCamera overwrites the minimap camera layer with a fixed mock
// viewport indicator: 0 everywhere, 1 in the top-left H/2 x W/2 block.
func markCamera(obs sc2env.Observation) {
	mm, ok := obs["feature_minimap"].(*etensor.Int32)
	if !ok {
		return
	}
	li := sc2feats.LayerIndex(sc2feats.MinimapFeatures, "camera")
	if li < 0 {
		return
	}
	h, w := mm.Dim(1), mm.Dim(2)
	base := li * h * w
	for i := 0; i < h*w; i++ {
		mm.Values[base+i] = 0
	}
	for y := 0; y < h/2; y++ {
		for x := 0; x < w/2; x++ {
			mm.Values[base+y*w+x] = 1
		}
	}
}
