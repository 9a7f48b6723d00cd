package request

// CreateMatchRequest is the request body for creating a match
type CreateMatchRequest struct {
	Words     []string `json:"words"`
	GridSize  int      `json:"grid_size,omitempty"`
	TimeLimit int      `json:"time_limit,omitempty"`
	Seed      *int64   `json:"seed,omitempty"`
}

// JoinRequest is the request body for joining a match
type JoinRequest struct {
	Name string `json:"name"`
}

// Position is a grid cell in request bodies
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// SelectRequest is a whole drag from one cell to another in one call
type SelectRequest struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}
