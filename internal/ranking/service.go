package ranking

import "context"

// Entry is one placed leaderboard line.
type Entry struct {
	Place    int    `json:"place"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Total    int    `json:"total"`
	Medal    string `json:"medal,omitempty"`
}

var medals = []string{"gold", "silver", "bronze"}

// Service places leaderboard rows and decorates the podium.
type Service struct {
	repo Repository
}

// NewService builds a ranking service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Board returns the placed leaderboard for the named board. The top
// three entries carry medal markers.
func (s *Service) Board(ctx context.Context, board Board) ([]Entry, error) {
	rows, err := s.repo.Rows(ctx, board)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(rows))
	for i, row := range rows {
		e := Entry{
			Place:    i + 1,
			UserID:   row.UserID,
			Username: row.Username,
			Total:    row.Total,
		}
		if i < len(medals) {
			e.Medal = medals[i]
		}
		entries = append(entries, e)
	}
	return entries, nil
}
