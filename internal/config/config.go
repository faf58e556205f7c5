// Package config loads the clock application configuration from a JSON file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// PanelConfig describes the matrix panel and its wiring. Pin values are GPIO
// line offsets on Chip.
type PanelConfig struct {
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	Chip      string         `json:"chip"`
	Pins      map[string]int `json:"pins"`
	RowHoldUs int            `json:"row_hold_us"`
	ScanRate  int            `json:"scan_rate"`

	// Brightness is the driver output level (1 to 255). Zero selects the
	// driver default. This is separate from the day/night scene dimming.
	Brightness int `json:"brightness"`
}

// DisplayConfig holds text layout and brightness settings.
type DisplayConfig struct {
	BrightnessDay   float64 `json:"brightness_day"`
	BrightnessNight float64 `json:"brightness_night"`
	NightStartHour  int     `json:"night_start_hour"`
	NightEndHour    int     `json:"night_end_hour"`
	// UpdateInterval is the clock poll period in seconds. Re-rendering only
	// happens when the phrase actually changes, so a short interval is cheap
	// and keeps the displayed minute accurate.
	UpdateInterval int `json:"update_interval"`

	TextX       int     `json:"text_x"`
	TextY       int     `json:"text_y"`
	TextScale   float64 `json:"text_scale"`
	LineSpacing float64 `json:"line_spacing"`
	TextColor   uint32  `json:"text_color"`
}

// AssetConfig points at the font and background images on disk.
type AssetConfig struct {
	FontPath  string `json:"font_path"`
	ImagePath string `json:"image_path"`
}

// Config represents the application configuration.
type Config struct {
	Panel   PanelConfig   `json:"panel"`
	Display DisplayConfig `json:"display"`
	Assets  AssetConfig   `json:"assets"`
}

// Load reads the configuration from a JSON file.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	config := Default()
	if err := json.NewDecoder(file).Decode(config); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return config, nil
}

// Default returns the default configuration, matched to a 64x64 panel on a
// Raspberry Pi style GPIO header.
func Default() *Config {
	return &Config{
		Panel: PanelConfig{
			Width:  64,
			Height: 64,
			Chip:   "gpiochip0",
			Pins: map[string]int{
				"R1": 25, "G1": 26, "B1": 27,
				"R2": 14, "G2": 12, "B2": 13,
				"A": 23, "B": 19, "C": 5, "D": 17, "E": 16,
				"CLK": 22, "LAT": 4, "OE": 15,
			},
			RowHoldUs: 100,
			ScanRate:  100,
		},
		Display: DisplayConfig{
			BrightnessDay:   0.3,
			BrightnessNight: 0.15,
			NightStartHour:  16,
			NightEndHour:    8,
			UpdateInterval:  1,
			TextX:           1,
			TextY:           8,
			TextScale:       1,
			LineSpacing:     1.5,
			TextColor:       0x000000,
		},
		Assets: AssetConfig{
			FontPath:  "fonts/helvR12.bdf",
			ImagePath: "images",
		},
	}
}

// Night reports whether the given hour falls inside the configured night
// window. The window may wrap across midnight.
func (d DisplayConfig) Night(hour int) bool {
	if d.NightStartHour == d.NightEndHour {
		return false
	}
	if d.NightStartHour < d.NightEndHour {
		return hour >= d.NightStartHour && hour < d.NightEndHour
	}
	return hour >= d.NightStartHour || hour < d.NightEndHour
}

// Brightness returns the brightness factor for the given hour.
func (d DisplayConfig) Brightness(hour int) float64 {
	if d.Night(hour) {
		return d.BrightnessNight
	}
	return d.BrightnessDay
}
