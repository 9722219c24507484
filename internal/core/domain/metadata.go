package domain

// ModelInfo is one item of the remote list endpoints. The remote keys
// items by file name; FilePath is the remote absolute path and Folder
// the subfolder within the remote model root.
type ModelInfo struct {
	FileName     string   `json:"file_name"`
	FilePath     string   `json:"file_path"`
	Folder       string   `json:"folder"`
	SHA256       string   `json:"sha256"`
	TriggerWords []string `json:"trigger_words"`
}

// LoraInfo is the resolved local view of a lora: a relative path the
// local model loader can resolve, plus the trigger words surfaced to
// the user while the entry is active.
type LoraInfo struct {
	RelativePath string
	TriggerWords []string
}

// PoolFilters narrows which loras a pool-backed request may draw from.
type PoolFilters struct {
	BaseModels    []string `json:"baseModels,omitempty"`
	IncludeTags   []string `json:"include_tags,omitempty"`
	ExcludeTags   []string `json:"exclude_tags,omitempty"`
	FavoritesOnly bool     `json:"favoritesOnly,omitempty"`
}

// SampleRequest asks the remote to draw a random lora selection.
type SampleRequest struct {
	Count       int          `json:"count"`
	CountMode   string       `json:"count_mode,omitempty"`
	CountMin    int          `json:"count_min,omitempty"`
	CountMax    int          `json:"count_max,omitempty"`
	StrengthMin float64      `json:"model_strength_min"`
	StrengthMax float64      `json:"model_strength_max"`
	Seed        *int64       `json:"seed,omitempty"`
	Locked      EntryList    `json:"locked_loras,omitempty"`
	Pool        *PoolFilters `json:"pool_config,omitempty"`
}

// CyclerRequest asks the remote for a deterministically ordered lora
// list to step through.
type CyclerRequest struct {
	SortBy string       `json:"sort_by"`
	Pool   *PoolFilters `json:"pool_config,omitempty"`
}
