// Copyright (c) 2019, The CCNLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sc2feats

import (
	"fmt"

	"github.com/emer/emergent/env"
	"github.com/emer/emergent/evec"
	"github.com/goki/ki/kit"
	"github.com/goki/mat32"
)

// ActionSpace selects which surface actions are expressed in when both
// feature-layer and rgb surfaces are configured.
type ActionSpace int

var KiT_ActionSpace = kit.Enums.AddEnum(ActionSpaceN, false, nil)

const (
	// SpaceDefault picks the only configured surface.
	SpaceDefault ActionSpace = iota

	// SpaceFeatures expresses actions in feature-layer coordinates.
	SpaceFeatures

	// SpaceRGB expresses actions in rgb coordinates.
	SpaceRGB

	ActionSpaceN
)

// Params configures the observation and action surfaces. Each surface can
// be given either as a combined square Size or as independent Width and
// Height; supplying both for the same surface is a configuration error.
// A zero surface is simply absent from the derived specs, but at least
// one screen surface (feature or rgb) must be configured.
type Params struct {
	FeatureScreenSize     int         `desc:"square size of the feature screen -- conflicts with the width/height pair"`
	FeatureScreenWidth    int         `desc:"feature screen width"`
	FeatureScreenHeight   int         `desc:"feature screen height"`
	FeatureMinimapSize    int         `desc:"square size of the feature minimap -- conflicts with the width/height pair"`
	FeatureMinimapWidth   int         `desc:"feature minimap width"`
	FeatureMinimapHeight  int         `desc:"feature minimap height"`
	RGBScreenSize         int         `desc:"square size of the rgb screen -- conflicts with the width/height pair"`
	RGBScreenWidth        int         `desc:"rgb screen width"`
	RGBScreenHeight       int         `desc:"rgb screen height"`
	RGBMinimapSize        int         `desc:"square size of the rgb minimap -- conflicts with the width/height pair"`
	RGBMinimapWidth       int         `desc:"rgb minimap width"`
	RGBMinimapHeight      int         `desc:"rgb minimap height"`
	ActionSpace           ActionSpace `desc:"required when both feature and rgb screens are configured"`
	UseFeatureUnits       bool        `desc:"include per-unit feature data in the observation spec"`
	MapSize               evec.Vec2i  `desc:"world map size in world units -- defaults to 256 x 256"`
	CameraWidthWorldUnits float32     `desc:"camera width in world units -- defaults to 24"`
}

// Features holds the resolved surface dimensions and derives the
// observation and action specs from them.
type Features struct {
	ScreenDims           evec.Vec2i  `desc:"feature screen size, zero if absent"`
	MinimapDims          evec.Vec2i  `desc:"feature minimap size, zero if absent"`
	RGBScreenDims        evec.Vec2i  `desc:"rgb screen size, zero if absent"`
	RGBMinimapDims       evec.Vec2i  `desc:"rgb minimap size, zero if absent"`
	ActionSpace          ActionSpace `desc:"surface used for action coordinates"`
	UseFeatureUnits      bool        `desc:"per-unit feature data included in the spec"`
	MapSize              evec.Vec2i  `desc:"world map size in world units"`
	CameraSizeWorldUnits mat32.Vec2  `desc:"camera viewport size in world units, from the camera width and the screen aspect ratio"`
}

// resolveDims resolves one surface from either a combined square size or
// an independent width / height pair.
func resolveDims(name string, size, width, height int) (evec.Vec2i, error) {
	if size != 0 && (width != 0 || height != 0) {
		return evec.Vec2i{}, fmt.Errorf("sc2feats: both %s size and width/height given", name)
	}
	if size != 0 {
		return evec.Vec2i{X: size, Y: size}, nil
	}
	if (width != 0) != (height != 0) {
		return evec.Vec2i{}, fmt.Errorf("sc2feats: %s width and height must be given together", name)
	}
	return evec.Vec2i{X: width, Y: height}, nil
}

// New resolves and validates the surface configuration.
func New(p Params) (*Features, error) {
	fs := &Features{
		ActionSpace:     p.ActionSpace,
		UseFeatureUnits: p.UseFeatureUnits,
		MapSize:         p.MapSize,
	}
	var err error
	if fs.ScreenDims, err = resolveDims("feature screen", p.FeatureScreenSize, p.FeatureScreenWidth, p.FeatureScreenHeight); err != nil {
		return nil, err
	}
	if fs.MinimapDims, err = resolveDims("feature minimap", p.FeatureMinimapSize, p.FeatureMinimapWidth, p.FeatureMinimapHeight); err != nil {
		return nil, err
	}
	if fs.RGBScreenDims, err = resolveDims("rgb screen", p.RGBScreenSize, p.RGBScreenWidth, p.RGBScreenHeight); err != nil {
		return nil, err
	}
	if fs.RGBMinimapDims, err = resolveDims("rgb minimap", p.RGBMinimapSize, p.RGBMinimapWidth, p.RGBMinimapHeight); err != nil {
		return nil, err
	}

	if (fs.ScreenDims.X != 0) != (fs.MinimapDims.X != 0) {
		return nil, fmt.Errorf("sc2feats: feature screen and minimap must be configured together")
	}
	if (fs.RGBScreenDims.X != 0) != (fs.RGBMinimapDims.X != 0) {
		return nil, fmt.Errorf("sc2feats: rgb screen and minimap must be configured together")
	}
	if fs.ScreenDims.X == 0 && fs.RGBScreenDims.X == 0 {
		return nil, fmt.Errorf("sc2feats: must configure either feature layer or rgb dimensions")
	}
	if fs.ScreenDims.X != 0 && fs.RGBScreenDims.X != 0 && fs.ActionSpace == SpaceDefault {
		return nil, fmt.Errorf("sc2feats: action space required when both feature and rgb screens are configured")
	}

	if fs.MapSize.X == 0 {
		fs.MapSize = evec.Vec2i{X: 256, Y: 256}
	}
	camWidth := p.CameraWidthWorldUnits
	if camWidth == 0 {
		camWidth = 24
	}
	actDims := fs.ScreenDims
	if actDims.X == 0 || fs.ActionSpace == SpaceRGB {
		actDims = fs.RGBScreenDims
	}
	// each pixel covers camWidth / width world units in x and y
	fs.CameraSizeWorldUnits = mat32.Vec2{X: camWidth, Y: camWidth * float32(actDims.Y) / float32(actDims.X)}
	return fs, nil
}

// ObservationSpec returns the ordered per-agent observation spec.
// Variable-length fields (available_actions, the select lists,
// feature_units) declare 0 for the variable dimension.
func (fs *Features) ObservationSpec() env.Elements {
	els := env.Elements{
		{Name: "player", Shape: []int{11}, DimNames: []string{"Player"}},
		{Name: "game_loop", Shape: []int{1}, DimNames: nil},
		{Name: "score_cumulative", Shape: []int{13}, DimNames: []string{"Score"}},
		{Name: "available_actions", Shape: []int{0}, DimNames: []string{"Actions"}},
		{Name: "single_select", Shape: []int{0, 7}, DimNames: []string{"Units", "UnitInfo"}},
		{Name: "multi_select", Shape: []int{0, 7}, DimNames: []string{"Units", "UnitInfo"}},
		{Name: "control_groups", Shape: []int{10, 2}, DimNames: []string{"Groups", "GroupInfo"}},
	}
	if fs.ScreenDims.X != 0 {
		els = append(els, env.Element{Name: "feature_screen", Shape: []int{len(ScreenFeatures), fs.ScreenDims.Y, fs.ScreenDims.X}, DimNames: []string{"Layer", "Y", "X"}})
		els = append(els, env.Element{Name: "feature_minimap", Shape: []int{len(MinimapFeatures), fs.MinimapDims.Y, fs.MinimapDims.X}, DimNames: []string{"Layer", "Y", "X"}})
	}
	if fs.RGBScreenDims.X != 0 {
		els = append(els, env.Element{Name: "rgb_screen", Shape: []int{fs.RGBScreenDims.Y, fs.RGBScreenDims.X, 3}, DimNames: []string{"Y", "X", "RGB"}})
		els = append(els, env.Element{Name: "rgb_minimap", Shape: []int{fs.RGBMinimapDims.Y, fs.RGBMinimapDims.X, 3}, DimNames: []string{"Y", "X", "RGB"}})
	}
	if fs.UseFeatureUnits {
		els = append(els, env.Element{Name: "feature_units", Shape: []int{0, len(UnitFeatures)}, DimNames: []string{"Units", "UnitFeatures"}})
	}
	return els
}

// ActionSpec returns the ordered per-agent action spec: the sizes of each
// action argument type, with spatial arguments sized to the action surface.
func (fs *Features) ActionSpec() env.Elements {
	dims := fs.ScreenDims
	mdims := fs.MinimapDims
	if dims.X == 0 || fs.ActionSpace == SpaceRGB {
		dims = fs.RGBScreenDims
		mdims = fs.RGBMinimapDims
	}
	return env.Elements{
		{Name: "screen", Shape: []int{dims.Y, dims.X}, DimNames: []string{"Y", "X"}},
		{Name: "minimap", Shape: []int{mdims.Y, mdims.X}, DimNames: []string{"Y", "X"}},
		{Name: "screen2", Shape: []int{dims.Y, dims.X}, DimNames: []string{"Y", "X"}},
		{Name: "queued", Shape: []int{2}, DimNames: nil},
		{Name: "control_group_act", Shape: []int{5}, DimNames: nil},
		{Name: "control_group_id", Shape: []int{10}, DimNames: nil},
		{Name: "select_point_act", Shape: []int{4}, DimNames: nil},
		{Name: "select_add", Shape: []int{2}, DimNames: nil},
		{Name: "select_unit_act", Shape: []int{4}, DimNames: nil},
		{Name: "select_unit_id", Shape: []int{500}, DimNames: nil},
		{Name: "select_worker", Shape: []int{4}, DimNames: nil},
		{Name: "build_queue_id", Shape: []int{10}, DimNames: nil},
		{Name: "unload_id", Shape: []int{500}, DimNames: nil},
	}
}
