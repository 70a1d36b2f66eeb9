package responses

type Stats struct {
	NumberOfRecords int `json:"numberOfRecords"`
	NumberOfDrafts  int `json:"numberOfDrafts"`
	// seconds
	SourceRuntime float64 `json:"sourceRuntime"`
	// seconds
	OwnRuntime float64 `json:"ownRuntime"`
}
