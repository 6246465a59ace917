package gamemap

import "context"

// Tile 地图格子
type Tile struct {
	ID     int `json:"id"`
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// LayerConfig 图层配置
type LayerConfig struct {
	Name    string `json:"name"`
	Type    string `json:"type"` // tilelayer / objectgroup
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
	Visible bool   `json:"visible"`
	Data    []int  `json:"data,omitempty"`
}

// Config 地图配置（Tiled 导出格式的子集）
type Config struct {
	Width      int           `json:"width"`
	Height     int           `json:"height"`
	TileWidth  int           `json:"tilewidth"`
	TileHeight int           `json:"tileheight"`
	Layers     []LayerConfig `json:"layers,omitempty"`
}

// Map 不可变的地图定义，在游戏创建时绑定，之后不再变化
type Map struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	MaxPlayers int    `json:"max_players"`
	Config     Config `json:"config"`
	MapTiles   []Tile `json:"map_tiles"`
}

// Provider 地图提供者，由持久存储实现
type Provider interface {
	LoadMap(ctx context.Context, id string) (*Map, error)
	RandomMap(ctx context.Context) (*Map, error)
}

// DeriveTileGrid 从地图配置推导平铺格子网格
// 格子 ID 按行优先递增，从 0 开始
func DeriveTileGrid(cfg Config) []Tile {
	tiles := make([]Tile, 0, cfg.Width*cfg.Height)
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			tiles = append(tiles, Tile{
				ID:     y*cfg.Width + x,
				X:      x * cfg.TileWidth,
				Y:      y * cfg.TileHeight,
				Width:  cfg.TileWidth,
				Height: cfg.TileHeight,
			})
		}
	}
	return tiles
}
