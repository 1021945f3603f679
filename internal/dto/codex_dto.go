package dto

import (
	"time"

	"loremaker-codex-be/internal/entity"
)

type ListCharactersRequest struct {
	Query   string              `json:"query"`
	Filters map[string][]string `json:"filters"`
	Mode    string              `json:"mode" validate:"omitempty,oneof=blend and"`
	Sort    string              `json:"sort" validate:"omitempty,oneof=default random az za faction era most least"`
	Page    int                 `json:"page" validate:"omitempty,min=1"`
	PerPage int                 `json:"per_page" validate:"omitempty,min=1,max=100"`
}

type PaginationMeta struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

type ListCharactersResponse struct {
	Characters []*entity.Character `json:"characters"`
	Meta       PaginationMeta      `json:"meta"`
	Source     string              `json:"source"`
}

type BattleRequest struct {
	LeftSlug  string `json:"left" validate:"required"`
	RightSlug string `json:"right" validate:"required"`
}

type BattleSide struct {
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type BattleResponse struct {
	Left   BattleSide `json:"left"`
	Right  BattleSide `json:"right"`
	Winner string     `json:"winner"` // slug of the winner, empty on a draw
	Draw   bool       `json:"draw"`
}

type HealthResponse struct {
	Status         string     `json:"status"`
	Source         string     `json:"source"`
	CharacterCount int        `json:"character_count"`
	LastLoadedAt   *time.Time `json:"last_loaded_at"`
}

// RosterRefreshedEvent is broadcast over websocket and published to
// the internal bus after each successful roster load.
type RosterRefreshedEvent struct {
	LoadId string    `json:"load_id"`
	Source string    `json:"source"`
	Count  int       `json:"count"`
	At     time.Time `json:"at"`
}
