package dto

import (
	"github.com/Chinmay2660/tracker-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID      uint64 `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}

// BoardColumnDTO is a column with its jobs, as rendered on the Kanban board
type BoardColumnDTO struct {
	ID    uint64            `json:"id"`
	Title string            `json:"title"`
	Role  models.ColumnRole `json:"role"`
	Order int               `json:"order"`
	Color string            `json:"color,omitempty"`
	Jobs  []models.Job      `json:"jobs"`
}

// BoardResponse is the full board: every column in board order, each with
// its jobs in position order
type BoardResponse struct {
	Columns []BoardColumnDTO `json:"columns"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:      user.ID,
		Email:   user.Email,
		Name:    user.Name,
		Picture: user.Picture,
	}
}

// ToBoardResponse groups jobs under their columns for board rendering.
// Columns arrive in board order and jobs in position order; both orders
// are preserved.
func ToBoardResponse(columns []models.Column, jobs []models.Job) BoardResponse {
	byColumn := make(map[uint64][]models.Job, len(columns))
	for _, job := range jobs {
		byColumn[job.ColumnID] = append(byColumn[job.ColumnID], job)
	}

	out := make([]BoardColumnDTO, len(columns))
	for i, col := range columns {
		colJobs := byColumn[col.ID]
		if colJobs == nil {
			colJobs = []models.Job{}
		}
		out[i] = BoardColumnDTO{
			ID:    col.ID,
			Title: col.Title,
			Role:  col.Role,
			Order: col.Order,
			Color: col.Color,
			Jobs:  colJobs,
		}
	}

	return BoardResponse{Columns: out}
}
