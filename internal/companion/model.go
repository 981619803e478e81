package companion

// Companion is a user's starter partner. It evolves one stage for every
// ten captures its trainer lands.
type Companion struct {
	ID             int64
	UserID         int64
	Name           string
	ImageURL       string
	EvolutionStage int
	CaptureCount   int
}

// capturesPerStage is how many captures advance the companion one stage.
const capturesPerStage = 10

// Progress reports captures made toward the next evolution and how many
// remain.
func (c Companion) Progress() (done, left int) {
	done = c.CaptureCount % capturesPerStage
	return done, capturesPerStage - done
}
