// Copyright (c) 2019, The CCNLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sc2feats

import (
	"fmt"

	"github.com/ccnlab/sc2-mock/sc2env"
	"github.com/ccnlab/sc2-mock/sc2proto"
	"github.com/emer/emergent/evec"
	"github.com/emer/etable/etensor"
)

// TransformObs converts a raw observation record into the tensor
// observation declared by ObservationSpec. Feature layers are unpacked
// from their 8 bits-per-pixel buffers into one stacked int32 tensor per
// surface; rgb renders become uint8 tensors; the player, game loop and
// score records become int32 vectors.
func (fs *Features) TransformObs(resp *sc2proto.ResponseObservation) (sc2env.Observation, error) {
	raw := &resp.Observation
	obs := make(sc2env.Observation)

	pc := raw.PlayerCommon
	player := etensor.NewInt32([]int{11}, nil, []string{"Player"})
	copy(player.Values, []int32{
		pc.PlayerID,
		pc.Minerals,
		pc.Vespene,
		pc.FoodUsed,
		pc.FoodCap,
		pc.FoodArmy,
		pc.FoodWorkers,
		pc.IdleWorkerCount,
		pc.ArmyCount,
		pc.WarpGateCount,
		pc.LarvaCount,
	})
	obs["player"] = player

	gameLoop := etensor.NewInt32([]int{1}, nil, nil)
	gameLoop.Values[0] = raw.GameLoop
	obs["game_loop"] = gameLoop

	sd := raw.Score.ScoreDetails
	score := etensor.NewInt32([]int{13}, nil, []string{"Score"})
	copy(score.Values, []int32{
		raw.Score.Score,
		sd.IdleProductionTime,
		sd.IdleWorkerTime,
		sd.TotalValueUnits,
		sd.TotalValueStructures,
		sd.KilledValueUnits,
		sd.KilledValueStructures,
		sd.CollectedMinerals,
		sd.CollectedVespene,
		sd.CollectionRateMinerals,
		sd.CollectionRateVespene,
		sd.SpentMinerals,
		sd.SpentVespene,
	})
	obs["score_cumulative"] = score

	avail := etensor.NewInt32([]int{len(raw.Abilities)}, nil, []string{"Actions"})
	for i, ab := range raw.Abilities {
		avail.Values[i] = ab.AbilityID
	}
	obs["available_actions"] = avail

	obs["single_select"] = etensor.NewInt32([]int{0, 7}, nil, []string{"Units", "UnitInfo"})
	obs["multi_select"] = etensor.NewInt32([]int{0, 7}, nil, []string{"Units", "UnitInfo"})
	obs["control_groups"] = etensor.NewInt32([]int{10, 2}, nil, []string{"Groups", "GroupInfo"})

	if fs.ScreenDims.X != 0 {
		scr, err := stackLayers("feature_screen", ScreenFeatures, raw.FeatureLayerData.Renders, fs.ScreenDims)
		if err != nil {
			return nil, err
		}
		obs["feature_screen"] = scr
		mm, err := stackLayers("feature_minimap", MinimapFeatures, raw.FeatureLayerData.MinimapRenders, fs.MinimapDims)
		if err != nil {
			return nil, err
		}
		obs["feature_minimap"] = mm
	}
	if fs.RGBScreenDims.X != 0 {
		scr, err := rgbTensor("rgb_screen", raw.RenderData.Map, fs.RGBScreenDims)
		if err != nil {
			return nil, err
		}
		obs["rgb_screen"] = scr
		mm, err := rgbTensor("rgb_minimap", raw.RenderData.Minimap, fs.RGBMinimapDims)
		if err != nil {
			return nil, err
		}
		obs["rgb_minimap"] = mm
	}
	if fs.UseFeatureUnits {
		obs["feature_units"] = etensor.NewInt32([]int{0, len(UnitFeatures)}, nil, []string{"Units", "UnitFeatures"})
	}
	return obs, nil
}

// stackLayers unpacks one 8 bits-per-pixel buffer per catalog layer into a
// single [Layer, Y, X] int32 tensor.
func stackLayers(name string, feats []Feature, renders map[string]*sc2proto.ImageData, dims evec.Vec2i) (*etensor.Int32, error) {
	t := etensor.NewInt32([]int{len(feats), dims.Y, dims.X}, nil, []string{"Layer", "Y", "X"})
	px := dims.Y * dims.X
	for li, f := range feats {
		im := renders[f.Name]
		if im == nil {
			return nil, fmt.Errorf("sc2feats: %s is missing layer %q", name, f.Name)
		}
		if im.BitsPerPixel != 8 || len(im.Data) != px {
			return nil, fmt.Errorf("sc2feats: %s layer %q has %d bytes at %d bpp, want %d at 8", name, f.Name, len(im.Data), im.BitsPerPixel, px)
		}
		base := li * px
		for i, b := range im.Data {
			t.Values[base+i] = int32(b)
		}
	}
	return t, nil
}

// rgbTensor unpacks a 24 bits-per-pixel render into a [Y, X, RGB] uint8
// tensor.
func rgbTensor(name string, im *sc2proto.ImageData, dims evec.Vec2i) (*etensor.Uint8, error) {
	n := dims.Y * dims.X * 3
	if im == nil {
		return nil, fmt.Errorf("sc2feats: %s render is missing", name)
	}
	if im.BitsPerPixel != 24 || len(im.Data) != n {
		return nil, fmt.Errorf("sc2feats: %s render has %d bytes at %d bpp, want %d at 24", name, len(im.Data), im.BitsPerPixel, n)
	}
	t := etensor.NewUint8([]int{dims.Y, dims.X, 3}, nil, []string{"Y", "X", "RGB"})
	copy(t.Values, im.Data)
	return t, nil
}
