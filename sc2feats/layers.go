// Copyright (c) 2019, The CCNLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sc2feats derives observation and action specs from a declarative
// screen / minimap / action-space configuration, and transforms raw
// observation records into the tensor observations those specs declare.
// It is the shape authority consumed by the env layer: the specs are
// ordered name -> shape -> dim-name element lists, and the per-pixel
// layer sets are plain tables so adding a layer is a one-line change.
package sc2feats

import "github.com/goki/ki/kit"

// FeatureType distinguishes categorical from scalar per-pixel layers.
type FeatureType int

var KiT_FeatureType = kit.Enums.AddEnum(FeatureTypeN, false, nil)

const (
	// Categorical layers hold class ids (e.g. unit type, player id).
	Categorical FeatureType = iota

	// Scalar layers hold magnitudes (e.g. height, hit points).
	Scalar

	FeatureTypeN
)

// Feature describes one per-pixel layer of the screen or minimap.
type Feature struct {
	Name  string      `desc:"layer name, key into the raw render maps"`
	Scale int         `desc:"number of distinct values the layer can hold"`
	Type  FeatureType `desc:"categorical or scalar"`
}

// ScreenFeatures lists the per-pixel layers of the main screen, in the
// order they are stacked into the feature_screen observation.
var ScreenFeatures = []Feature{
	{"height_map", 256, Scalar},
	{"visibility_map", 4, Categorical},
	{"creep", 2, Categorical},
	{"power", 2, Categorical},
	{"player_id", 17, Categorical},
	{"player_relative", 5, Categorical},
	{"unit_type", 1850, Categorical},
	{"selected", 2, Categorical},
	{"unit_hit_points", 1600, Scalar},
	{"unit_hit_points_ratio", 256, Scalar},
	{"unit_energy", 1000, Scalar},
	{"unit_energy_ratio", 256, Scalar},
	{"unit_shields", 1000, Scalar},
	{"unit_shields_ratio", 256, Scalar},
	{"unit_density", 16, Scalar},
	{"unit_density_aa", 256, Scalar},
	{"effects", 16, Categorical},
}

// MinimapFeatures lists the per-pixel layers of the minimap, in the order
// they are stacked into the feature_minimap observation.
var MinimapFeatures = []Feature{
	{"height_map", 256, Scalar},
	{"visibility_map", 4, Categorical},
	{"creep", 2, Categorical},
	{"camera", 2, Categorical},
	{"player_id", 17, Categorical},
	{"player_relative", 5, Categorical},
	{"selected", 2, Categorical},
}

// UnitFeatures names the columns of one feature_units row.
var UnitFeatures = []string{
	"unit_type",
	"alliance",
	"health",
	"shield",
	"energy",
	"cargo_space_taken",
	"build_progress",
	"health_ratio",
	"shield_ratio",
	"energy_ratio",
	"display_type",
	"owner",
	"x",
	"y",
	"facing",
	"radius",
	"cloak",
	"is_selected",
	"is_blip",
	"is_powered",
	"mineral_contents",
	"vespene_contents",
	"cargo_space_max",
	"assigned_harvesters",
	"ideal_harvesters",
	"weapon_cooldown",
}

// LayerIndex returns the index of the named layer in feats, or -1.
func LayerIndex(feats []Feature, name string) int {
	for i, f := range feats {
		if f.Name == name {
			return i
		}
	}
	return -1
}
