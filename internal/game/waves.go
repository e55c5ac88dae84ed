package game

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed waves.yaml
var defaultWaves []byte

// Wave describes the rocks spawned when a wave starts.
type Wave struct {
	Rocks      int        `yaml:"rocks"`
	Size       int        `yaml:"size"`
	Speed      [2]float64 `yaml:"speed"` // min, max in px/s
	ExtraSmall int        `yaml:"extra_small"`
}

// Endless controls the waves after the table runs out.
type Endless struct {
	ExtraRocks int     `yaml:"extra_rocks"`
	SpeedScale float64 `yaml:"speed_scale"`
	MaxRocks   int     `yaml:"max_rocks"`
}

type WaveTable struct {
	Waves   []Wave  `yaml:"waves"`
	Endless Endless `yaml:"endless"`
}

// DefaultWaves returns the built-in wave table.
func DefaultWaves() WaveTable {
	table, err := ParseWaves(defaultWaves)
	if err != nil {
		panic(fmt.Sprintf("built-in waves.yaml: %v", err))
	}
	return table
}

// LoadWaves reads a wave table from path, or returns the built-in table when
// path is empty.
func LoadWaves(path string) (WaveTable, error) {
	if path == "" {
		return DefaultWaves(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return WaveTable{}, fmt.Errorf("read waves %s: %w", path, err)
	}
	table, err := ParseWaves(data)
	if err != nil {
		return WaveTable{}, fmt.Errorf("waves %s: %w", path, err)
	}
	return table, nil
}

func ParseWaves(data []byte) (WaveTable, error) {
	var table WaveTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return WaveTable{}, fmt.Errorf("parse waves: %w", err)
	}
	if len(table.Waves) == 0 {
		return WaveTable{}, fmt.Errorf("parse waves: no waves defined")
	}
	for i, w := range table.Waves {
		if w.Rocks < 1 {
			return WaveTable{}, fmt.Errorf("wave %d: rocks must be at least 1", i+1)
		}
		if w.Size < 1 || w.Size > len(rockSizes) {
			return WaveTable{}, fmt.Errorf("wave %d: size %d out of range 1-%d", i+1, w.Size, len(rockSizes))
		}
		if w.Speed[0] < 0 || w.Speed[1] < w.Speed[0] {
			return WaveTable{}, fmt.Errorf("wave %d: bad speed range %v", i+1, w.Speed)
		}
	}
	if table.Endless.SpeedScale <= 0 {
		table.Endless.SpeedScale = 1
	}
	return table, nil
}

// Wave returns wave n, counting from 1.
func (t WaveTable) Wave(n int) Wave {
	if n < 1 {
		n = 1
	}
	if n <= len(t.Waves) {
		return t.Waves[n-1]
	}

	past := n - len(t.Waves)
	wave := t.Waves[len(t.Waves)-1]
	wave.Rocks += past * t.Endless.ExtraRocks
	if t.Endless.MaxRocks > 0 && wave.Rocks > t.Endless.MaxRocks {
		wave.Rocks = t.Endless.MaxRocks
	}
	scale := math.Pow(t.Endless.SpeedScale, float64(past))
	wave.Speed = [2]float64{wave.Speed[0] * scale, wave.Speed[1] * scale}
	return wave
}
