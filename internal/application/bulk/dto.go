package bulk

import (
	"time"

	"github.com/tradeboard/backend/internal/domain/bulk"
)

// ImportResponse is the API representation of one recorded bulk upsert
type ImportResponse struct {
	ID          string          `json:"id"`
	EntityType  string          `json:"entityType"`
	TotalRows   int             `json:"totalRows"`
	CreatedRows int             `json:"createdRows"`
	UpdatedRows int             `json:"updatedRows"`
	ErrorRows   int             `json:"errorRows"`
	Errors      []bulk.RowError `json:"errors"`
	DurationMs  int64           `json:"durationMs"`
	UserID      *string         `json:"userId,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ToImportResponse converts an import record to its API representation
func ToImportResponse(history *bulk.ImportHistory) (ImportResponse, error) {
	rowErrors, err := history.RowErrors()
	if err != nil {
		return ImportResponse{}, err
	}

	var userID *string
	if history.UserID != nil {
		id := history.UserID.String()
		userID = &id
	}

	return ImportResponse{
		ID:          history.ID.String(),
		EntityType:  string(history.EntityType),
		TotalRows:   history.TotalRows,
		CreatedRows: history.CreatedRows,
		UpdatedRows: history.UpdatedRows,
		ErrorRows:   history.ErrorRows,
		Errors:      rowErrors,
		DurationMs:  history.Duration,
		UserID:      userID,
		CreatedAt:   history.CreatedAt,
	}, nil
}
