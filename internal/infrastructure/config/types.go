package config

// GameConfig is the root config for game.json
type GameConfig struct {
	Title   string        `json:"title"`
	Display DisplayConfig `json:"display"`
	Volume  float64       `json:"volume"`
}

type DisplayConfig struct {
	ScreenWidth  int    `json:"screenWidth"`
	ScreenHeight int    `json:"screenHeight"`
	Scale        int    `json:"scale"`
	Framerate    int    `json:"framerate"`
	Background   string `json:"background"`
}

// LevelConfig is the root config for level JSON files
type LevelConfig struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	TileSize    int                   `json:"tileSize"`
	PlayerSpawn PositionConfig        `json:"playerSpawn"`
	Rows        []string              `json:"rows"`
	TileMapping map[string]TileConfig `json:"tileMapping"`
}

type PositionConfig struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type TileConfig struct {
	Type   string `json:"type"`
	Solid  bool   `json:"solid"`
	Damage int    `json:"damage,omitempty"`
}
