// Copyright (c) 2019, The CCNLab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sc2proto holds plain-struct versions of the game protocol's
// observation messages -- just the fields the mock populates and the
// feature transform reads. Serialization of the real wire format is out
// of scope here.
package sc2proto

import "github.com/emer/emergent/evec"

// PlayerCommon is the per-player resource and supply summary.
type PlayerCommon struct {
	PlayerID        int32
	Minerals        int32
	Vespene         int32
	FoodCap         int32
	FoodUsed        int32
	FoodArmy        int32
	FoodWorkers     int32
	IdleWorkerCount int32
	ArmyCount       int32
	WarpGateCount   int32
	LarvaCount      int32
}

// AvailableAbility is one entry of the available-action list.
type AvailableAbility struct {
	AbilityID     int32
	RequiresPoint bool
}

// ScoreDetails is the cumulative score breakdown.
type ScoreDetails struct {
	IdleProductionTime     int32
	IdleWorkerTime         int32
	TotalValueUnits        int32
	TotalValueStructures   int32
	KilledValueUnits       int32
	KilledValueStructures  int32
	CollectedMinerals      int32
	CollectedVespene       int32
	CollectionRateMinerals int32
	CollectionRateVespene  int32
	SpentMinerals          int32
	SpentVespene           int32
}

// Score is the overall score plus its breakdown.
type Score struct {
	Score        int32
	ScoreDetails ScoreDetails
}

// ImageData is one packed per-pixel buffer: a feature layer at 8 bits per
// pixel or an rgb render at 24.
type ImageData struct {
	BitsPerPixel int32      `desc:"bits per pixel: 8 for feature layers, 24 for rgb renders"`
	Size         evec.Vec2i `desc:"image size, X = width, Y = height"`
	Data         []byte     `desc:"packed pixel data, ceil(Y*X*BitsPerPixel/8) bytes"`
}

// AllocZero sizes the image to the given dimensions and bit depth and
// allocates a zero-filled data buffer of exactly ceil(h*w*bits/8) bytes.
func (im *ImageData) AllocZero(size evec.Vec2i, bitsPerPixel int32) {
	im.BitsPerPixel = bitsPerPixel
	im.Size = size
	im.Data = make([]byte, (size.Y*size.X*int(bitsPerPixel)+7)/8)
}

// FeatureLayerData holds the per-pixel feature layers, keyed by layer name
// so the layer catalogs stay table-driven.
type FeatureLayerData struct {
	Renders        map[string]*ImageData `desc:"screen feature layers by name"`
	MinimapRenders map[string]*ImageData `desc:"minimap feature layers by name"`
}

// RenderData holds the rgb renders of the screen and minimap.
type RenderData struct {
	Map     *ImageData
	Minimap *ImageData
}

// Observation is the raw per-step observation record.
type Observation struct {
	GameLoop         int32
	PlayerCommon     PlayerCommon
	Abilities        []AvailableAbility
	Score            Score
	FeatureLayerData FeatureLayerData
	RenderData       RenderData
}

// ResponseObservation is the top-level observation response message.
type ResponseObservation struct {
	Observation Observation
}
