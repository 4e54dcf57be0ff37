package models

type Report struct {
	Summary  Summary      `json:"summary"`
	Programs []ProgramRow `json:"programs"`
}

type Summary struct {
	Students int `json:"students"`
	Programs int `json:"programs"`
}

type ProgramRow struct {
	Code    string `json:"code"`
	Program string `json:"program_name"`
	Count   int    `json:"students"`
}
