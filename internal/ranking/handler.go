package ranking

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes leaderboard endpoints.
type Handler struct {
	svc *Service
}

// NewHandler builds a ranking HTTP handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Board serves the leaderboard named by the :board path parameter.
func (h *Handler) Board(c *fiber.Ctx) error {
	board := Board(c.Params("board", string(BoardOverall)))

	entries, err := h.svc.Board(c.UserContext(), board)
	if err != nil {
		if errors.Is(err, ErrUnknownBoard) {
			return fiber.NewError(http.StatusBadRequest, ErrUnknownBoard.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, "ranking store failure")
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"board":   board,
		"entries": entries,
	})
}
