package game

import (
	"fmt"
	"time"

	"github.com/retrogamehub/arcade/config"
)

// Variant selects one of the snake rule sets.
type Variant string

const (
	// VariantClassic wraps around the edges and has apples plus a timed
	// cherry bonus.
	VariantClassic Variant = "classic"
	// VariantWalled ends the game at the walls and is won at WinScore.
	VariantWalled Variant = "walled"
	// VariantObstacles is the classic board with levels of obstacles.
	VariantObstacles Variant = "obstacles"
)

// Variants lists every known variant.
var Variants = []Variant{VariantClassic, VariantWalled, VariantObstacles}

// Rules holds the constants a variant plays by.
type Rules struct {
	Variant      Variant
	Wrap         bool
	StartLength  int
	ApplePoints  int
	AlternateRed bool
	Cherry       bool
	CherryPoints int
	// CherryVisible is how long a cherry stays up, it reappears after a
	// random delay in [CherryRespawnMin, CherryRespawnMax).
	CherryVisible    time.Duration
	CherryRespawnMin time.Duration
	CherryRespawnMax time.Duration
	// WinScore ends the game as won once reached, zero disables it.
	WinScore int
	// LevelThreshold is the number of points per level, zero disables
	// levels.
	LevelThreshold    int
	ObstaclesPerLevel int
	TickInterval      time.Duration
}

// RulesFor returns the rules of a variant.
func RulesFor(v Variant) (Rules, error) {
	switch v {
	case VariantClassic, "":
		return Rules{
			Variant:          VariantClassic,
			Wrap:             true,
			StartLength:      3,
			ApplePoints:      1,
			AlternateRed:     true,
			Cherry:           true,
			CherryPoints:     5,
			CherryVisible:    5 * time.Second,
			CherryRespawnMin: 10 * time.Second,
			CherryRespawnMax: 20 * time.Second,
			TickInterval:     config.TickInterval,
		}, nil
	case VariantWalled:
		return Rules{
			Variant:      VariantWalled,
			StartLength:  1,
			ApplePoints:  10,
			WinScore:     200,
			TickInterval: config.WalledTickInterval,
		}, nil
	case VariantObstacles:
		return Rules{
			Variant:           VariantObstacles,
			Wrap:              true,
			StartLength:       3,
			ApplePoints:       1,
			AlternateRed:      true,
			Cherry:            true,
			CherryPoints:      5,
			CherryVisible:     5 * time.Second,
			CherryRespawnMin:  10 * time.Second,
			CherryRespawnMax:  20 * time.Second,
			LevelThreshold:    5,
			ObstaclesPerLevel: 4,
			TickInterval:      config.TickInterval,
		}, nil
	}
	return Rules{}, fmt.Errorf("game: unknown variant %q", v)
}
