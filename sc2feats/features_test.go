// Copyright (c) 2019, The CCNLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sc2feats

import (
	"testing"

	"github.com/ccnlab/sc2-mock/sc2proto"
	"github.com/emer/emergent/env"
	"github.com/emer/emergent/evec"
	"github.com/emer/etable/etensor"
)

func findElement(els env.Elements, name string) *env.Element {
	for i := range els {
		if els[i].Name == name {
			return &els[i]
		}
	}
	return nil
}

func TestParamValidation(t *testing.T) {
	cases := []struct {
		name string
		p    Params
	}{
		{"no dimensions", Params{}},
		{"size conflicts with width/height", Params{FeatureScreenSize: 64, FeatureScreenWidth: 64, FeatureScreenHeight: 64, FeatureMinimapSize: 32}},
		{"width without height", Params{FeatureScreenWidth: 64, FeatureMinimapSize: 32}},
		{"screen without minimap", Params{FeatureScreenSize: 64}},
		{"rgb screen without rgb minimap", Params{RGBScreenSize: 64}},
		{"both surfaces without action space", Params{FeatureScreenSize: 64, FeatureMinimapSize: 32, RGBScreenSize: 128, RGBMinimapSize: 32}},
	}
	for _, c := range cases {
		if _, err := New(c.p); err == nil {
			t.Errorf("%s: expected a configuration error", c.name)
		}
	}
	if _, err := New(Params{FeatureScreenSize: 64, FeatureMinimapSize: 32}); err != nil {
		t.Errorf("valid feature config rejected: %v", err)
	}
	if _, err := New(Params{FeatureScreenSize: 64, FeatureMinimapSize: 32, RGBScreenSize: 128, RGBMinimapSize: 32, ActionSpace: SpaceFeatures}); err != nil {
		t.Errorf("valid dual-surface config rejected: %v", err)
	}
}

func TestResolvedDims(t *testing.T) {
	fs, err := New(Params{
		FeatureScreenWidth:    64,
		FeatureScreenHeight:   48,
		FeatureMinimapSize:    32,
		CameraWidthWorldUnits: 24,
	})
	if err != nil {
		t.Fatalf("config rejected: %v", err)
	}
	if fs.ScreenDims != (evec.Vec2i{X: 64, Y: 48}) {
		t.Errorf("screen dims %v, want 64x48", fs.ScreenDims)
	}
	if fs.MinimapDims != (evec.Vec2i{X: 32, Y: 32}) {
		t.Errorf("minimap dims %v, want 32x32", fs.MinimapDims)
	}
	// 24 world units across 64 px is 0.375 per px, so 48 px is 18 units
	if fs.CameraSizeWorldUnits.X != 24 || fs.CameraSizeWorldUnits.Y != 18 {
		t.Errorf("camera world size %v, want (24, 18)", fs.CameraSizeWorldUnits)
	}
	if fs.MapSize != (evec.Vec2i{X: 256, Y: 256}) {
		t.Errorf("map size %v, want default 256x256", fs.MapSize)
	}
}

func TestObservationSpecShapes(t *testing.T) {
	fs, err := New(Params{FeatureScreenSize: 84, FeatureMinimapSize: 64, UseFeatureUnits: true})
	if err != nil {
		t.Fatalf("config rejected: %v", err)
	}
	spec := fs.ObservationSpec()
	scr := findElement(spec, "feature_screen")
	if scr == nil {
		t.Fatalf("no feature_screen element")
	}
	if scr.Shape[0] != len(ScreenFeatures) || scr.Shape[1] != 84 || scr.Shape[2] != 84 {
		t.Errorf("feature_screen shape %v", scr.Shape)
	}
	mm := findElement(spec, "feature_minimap")
	if mm == nil || mm.Shape[0] != len(MinimapFeatures) || mm.Shape[1] != 64 {
		t.Errorf("feature_minimap element wrong: %v", mm)
	}
	if pl := findElement(spec, "player"); pl == nil || pl.Shape[0] != 11 {
		t.Errorf("player element wrong: %v", pl)
	}
	if fu := findElement(spec, "feature_units"); fu == nil || fu.Shape[1] != len(UnitFeatures) {
		t.Errorf("feature_units element wrong: %v", fu)
	}
	if rgb := findElement(spec, "rgb_screen"); rgb != nil {
		t.Errorf("rgb_screen declared without rgb dimensions")
	}

	fs, err = New(Params{RGBScreenSize: 128, RGBMinimapSize: 32})
	if err != nil {
		t.Fatalf("rgb config rejected: %v", err)
	}
	spec = fs.ObservationSpec()
	rgb := findElement(spec, "rgb_screen")
	if rgb == nil || rgb.Shape[0] != 128 || rgb.Shape[1] != 128 || rgb.Shape[2] != 3 {
		t.Errorf("rgb_screen element wrong: %v", rgb)
	}
	if scr := findElement(spec, "feature_screen"); scr != nil {
		t.Errorf("feature_screen declared without feature dimensions")
	}
}

func TestActionSpecSurfaces(t *testing.T) {
	fs, err := New(Params{FeatureScreenSize: 84, FeatureMinimapSize: 64})
	if err != nil {
		t.Fatalf("config rejected: %v", err)
	}
	spec := fs.ActionSpec()
	if scr := findElement(spec, "screen"); scr == nil || scr.Shape[0] != 84 {
		t.Errorf("screen argument wrong: %v", scr)
	}
	if mm := findElement(spec, "minimap"); mm == nil || mm.Shape[0] != 64 {
		t.Errorf("minimap argument wrong: %v", mm)
	}

	fs, err = New(Params{FeatureScreenSize: 84, FeatureMinimapSize: 64, RGBScreenSize: 128, RGBMinimapSize: 32, ActionSpace: SpaceRGB})
	if err != nil {
		t.Fatalf("config rejected: %v", err)
	}
	if scr := findElement(fs.ActionSpec(), "screen"); scr == nil || scr.Shape[0] != 128 {
		t.Errorf("rgb action space not honored: %v", scr)
	}
}

func zeroRaw(fs *Features) *sc2proto.ResponseObservation {
	resp := &sc2proto.ResponseObservation{}
	raw := &resp.Observation
	if fs.ScreenDims.X != 0 {
		raw.FeatureLayerData.Renders = make(map[string]*sc2proto.ImageData)
		for _, f := range ScreenFeatures {
			im := &sc2proto.ImageData{}
			im.AllocZero(fs.ScreenDims, 8)
			raw.FeatureLayerData.Renders[f.Name] = im
		}
		raw.FeatureLayerData.MinimapRenders = make(map[string]*sc2proto.ImageData)
		for _, f := range MinimapFeatures {
			im := &sc2proto.ImageData{}
			im.AllocZero(fs.MinimapDims, 8)
			raw.FeatureLayerData.MinimapRenders[f.Name] = im
		}
	}
	if fs.RGBScreenDims.X != 0 {
		raw.RenderData.Map = &sc2proto.ImageData{}
		raw.RenderData.Map.AllocZero(fs.RGBScreenDims, 24)
		raw.RenderData.Minimap = &sc2proto.ImageData{}
		raw.RenderData.Minimap.AllocZero(fs.RGBMinimapDims, 24)
	}
	return resp
}

func TestTransformObs(t *testing.T) {
	fs, err := New(Params{FeatureScreenSize: 64, FeatureMinimapSize: 32})
	if err != nil {
		t.Fatalf("config rejected: %v", err)
	}
	resp := zeroRaw(fs)
	resp.Observation.GameLoop = 7
	resp.Observation.PlayerCommon = sc2proto.PlayerCommon{PlayerID: 1, Minerals: 20, Vespene: 50, FoodCap: 36, FoodUsed: 21}
	resp.Observation.Abilities = []sc2proto.AvailableAbility{{AbilityID: 1, RequiresPoint: true}}
	resp.Observation.Score.Score = 300

	obs, err := fs.TransformObs(resp)
	if err != nil {
		t.Fatalf("transform failed: %v", err)
	}

	pl := obs["player"].(*etensor.Int32)
	want := []int32{1, 20, 50, 21, 36, 0, 0, 0, 0, 0, 0}
	for i, v := range want {
		if pl.Values[i] != v {
			t.Errorf("player[%d] = %d, want %d", i, pl.Values[i], v)
		}
	}
	if gl := obs["game_loop"].(*etensor.Int32); gl.Values[0] != 7 {
		t.Errorf("game_loop = %d, want 7", gl.Values[0])
	}
	if sc := obs["score_cumulative"].(*etensor.Int32); sc.Values[0] != 300 || sc.Len() != 13 {
		t.Errorf("score_cumulative wrong: len %d first %d", sc.Len(), sc.Values[0])
	}
	if aa := obs["available_actions"].(*etensor.Int32); aa.Len() != 1 || aa.Values[0] != 1 {
		t.Errorf("available_actions wrong: %v", aa.Values)
	}
	scr := obs["feature_screen"].(*etensor.Int32)
	if scr.NumDims() != 3 || scr.Dim(0) != len(ScreenFeatures) || scr.Dim(1) != 64 || scr.Dim(2) != 64 {
		t.Errorf("feature_screen dims wrong")
	}
	for i, v := range scr.Values {
		if v != 0 {
			t.Errorf("feature_screen value %d not zero", i)
			break
		}
	}
}

func TestTransformObsMissingLayer(t *testing.T) {
	fs, err := New(Params{FeatureScreenSize: 64, FeatureMinimapSize: 32})
	if err != nil {
		t.Fatalf("config rejected: %v", err)
	}
	resp := zeroRaw(fs)
	delete(resp.Observation.FeatureLayerData.Renders, "creep")
	if _, err := fs.TransformObs(resp); err == nil {
		t.Errorf("transform with missing layer did not fail")
	}
}

func TestTransformObsRGB(t *testing.T) {
	fs, err := New(Params{RGBScreenSize: 64, RGBMinimapSize: 32})
	if err != nil {
		t.Fatalf("config rejected: %v", err)
	}
	obs, err := fs.TransformObs(zeroRaw(fs))
	if err != nil {
		t.Fatalf("transform failed: %v", err)
	}
	rgb := obs["rgb_screen"].(*etensor.Uint8)
	if rgb.NumDims() != 3 || rgb.Dim(0) != 64 || rgb.Dim(2) != 3 {
		t.Errorf("rgb_screen dims wrong")
	}
	if _, ok := obs["feature_screen"]; ok {
		t.Errorf("feature_screen present without feature dimensions")
	}
}
