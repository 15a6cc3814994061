package pokeapi

// PokemonResponse is the body of GET /pokemon/{id}
type PokemonResponse struct {
	ID             int          `json:"id"`
	Name           string       `json:"name"`
	BaseExperience int          `json:"base_experience"`
	Height         int          `json:"height"`
	Weight         int          `json:"weight"`
	Sprites        SpritesDTO   `json:"sprites"`
	Types          []TypeSlot   `json:"types"`
	Abilities      []AbilityDTO `json:"abilities"`
	Stats          []StatDTO    `json:"stats"`
	Moves          []MoveDTO    `json:"moves"`
}

// NamedResource is PokeAPI's {name, url} reference
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// SpritesDTO holds the sprite URLs we use
type SpritesDTO struct {
	FrontDefault string          `json:"front_default"`
	Other        OtherSpritesDTO `json:"other"`
}

// OtherSpritesDTO holds alternative artwork sets
type OtherSpritesDTO struct {
	OfficialArtwork ArtworkDTO `json:"official-artwork"`
}

// ArtworkDTO is a single artwork set
type ArtworkDTO struct {
	FrontDefault string `json:"front_default"`
}

// TypeSlot is one entry of the types list
type TypeSlot struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

// AbilityDTO is one entry of the abilities list
type AbilityDTO struct {
	Ability  NamedResource `json:"ability"`
	IsHidden bool          `json:"is_hidden"`
	Slot     int           `json:"slot"`
}

// StatDTO is one entry of the stats list
type StatDTO struct {
	BaseStat int           `json:"base_stat"`
	Effort   int           `json:"effort"`
	Stat     NamedResource `json:"stat"`
}

// MoveDTO is one entry of the moves list
type MoveDTO struct {
	Move NamedResource `json:"move"`
}

// ListResponse is the body of GET /pokemon?limit=N
type ListResponse struct {
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []NamedResource `json:"results"`
}
