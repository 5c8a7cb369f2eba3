package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fretlog/fretlog/internal/database/sessions"
	"github.com/fretlog/fretlog/internal/entities"
)

// SessionStore defines the session engine operations used by the controller.
type SessionStore interface {
	GetCompleted() ([]entities.Session, error)
	GetByID(id string) (*entities.Session, error)
	Current() (*entities.Session, error)
	SaveCurrent(input sessions.SessionInput) (*entities.Session, error)
	Save(input sessions.SessionInput) (*entities.Session, error)
	AppendCurrentItem(libraryItemID string, timeSpent int, startedAt *int64) (*entities.Session, error)
	UpdateCurrentItemTime(itemID string, timeSpent int) (*entities.Session, error)
	ClearCurrent() error
	Delete(id string) error
}

type SessionsController struct {
	store SessionStore
}

func NewSessionsController(store SessionStore) *SessionsController {
	return &SessionsController{store: store}
}

// sessionItemPayload accepts both the frontend's camelCase keys and the
// export format's snake_case keys, like the rest of the API.
type sessionItemPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	LibraryItemID      *string `json:"libraryItemId"`
	LibraryItemIDSnake *string `json:"library_item_id"`
	CategoryID         *string `json:"categoryId"`
	CategoryIDSnake    *string `json:"category_id"`
	TimeSpent          *int    `json:"timeSpent"`
	TimeSpentSnake     *int    `json:"time_spent"`
	StartedAt          *int64  `json:"startedAt"`
	StartedAtSnake     *int64  `json:"started_at"`
}

func (p sessionItemPayload) toInput() sessions.ItemInput {
	input := sessions.ItemInput{
		ID:            p.ID,
		Name:          p.Name,
		LibraryItemID: firstOf(p.LibraryItemID, p.LibraryItemIDSnake),
		CategoryID:    firstOf(p.CategoryID, p.CategoryIDSnake),
		StartedAt:     firstOf(p.StartedAt, p.StartedAtSnake),
	}
	if timeSpent := firstOf(p.TimeSpent, p.TimeSpentSnake); timeSpent != nil {
		input.TimeSpent = *timeSpent
	}
	return input
}

type sessionPayload struct {
	ID           string               `json:"id"`
	InstrumentID *string              `json:"instrumentId"`
	Status       string               `json:"status"`
	Date         string               `json:"date"`
	StartTime    *int64               `json:"startTime"`
	EndTime      *int64               `json:"endTime"`
	TotalTime    int                  `json:"totalTime"`
	Notes        string               `json:"notes"`
	Items        []sessionItemPayload `json:"items"`
}

func (p sessionPayload) toInput() sessions.SessionInput {
	input := sessions.SessionInput{
		ID:           p.ID,
		InstrumentID: p.InstrumentID,
		Status:       entities.SessionStatus(p.Status),
		Date:         p.Date,
		StartTime:    p.StartTime,
		EndTime:      p.EndTime,
		TotalTime:    p.TotalTime,
		Notes:        p.Notes,
	}
	for _, item := range p.Items {
		input.Items = append(input.Items, item.toInput())
	}
	return input
}

func firstOf[T any](camel, snake *T) *T {
	if camel != nil {
		return camel
	}
	return snake
}

// GetSessions returns all completed sessions with items
// GET /api/sessions
func (sc *SessionsController) GetSessions(c *gin.Context) {
	completed, err := sc.store.GetCompleted()
	if err != nil {
		respondInternalError(c, err, "get sessions")
		return
	}
	c.JSON(http.StatusOK, completed)
}

// AddSession creates or finishes a session (status defaults to completed)
// POST /api/sessions
func (sc *SessionsController) AddSession(c *gin.Context) {
	var payload sessionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, "invalid session payload")
		return
	}

	session, err := sc.store.Save(payload.toInput())
	if err != nil {
		respondInternalError(c, err, "add session")
		return
	}
	respondCreated(c, session)
}

// UpdateSession updates a session and fully replaces its items
// PUT /api/sessions/:id
func (sc *SessionsController) UpdateSession(c *gin.Context) {
	var payload sessionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, "invalid session payload")
		return
	}
	payload.ID = c.Param("id")

	session, err := sc.store.Save(payload.toInput())
	if err != nil {
		respondInternalError(c, err, "update session")
		return
	}
	c.JSON(http.StatusOK, session)
}

// DeleteSession hard-deletes a session and its items
// DELETE /api/sessions/:id
func (sc *SessionsController) DeleteSession(c *gin.Context) {
	if err := sc.store.Delete(c.Param("id")); err != nil {
		respondInternalError(c, err, "delete session")
		return
	}
	respondNoContent(c)
}

// GetCurrentSession returns the session pointed to by the current-session
// setting, or null
// GET /api/sessions/current
func (sc *SessionsController) GetCurrentSession(c *gin.Context) {
	session, err := sc.store.Current()
	if err != nil {
		respondInternalError(c, err, "get current session")
		return
	}
	c.JSON(http.StatusOK, session)
}

// SaveCurrentSession starts or resumes the current session
// POST /api/sessions/current
func (sc *SessionsController) SaveCurrentSession(c *gin.Context) {
	var payload sessionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, "invalid session payload")
		return
	}

	session, err := sc.store.SaveCurrent(payload.toInput())
	if err != nil {
		respondInternalError(c, err, "save current session")
		return
	}
	c.JSON(http.StatusOK, session)
}

// ClearCurrentSession cancels a still-running current session (deleting it)
// or just drops the pointer when the session was already finished
// DELETE /api/sessions/current
func (sc *SessionsController) ClearCurrentSession(c *gin.Context) {
	if err := sc.store.ClearCurrent(); err != nil {
		respondInternalError(c, err, "clear current session")
		return
	}
	respondNoContent(c)
}

// AddCurrentSessionItem logs a library item against the current session
// POST /api/sessions/current/items
func (sc *SessionsController) AddCurrentSessionItem(c *gin.Context) {
	var req struct {
		LibraryItemID string `json:"libraryItemId" binding:"required"`
		TimeSpent     int    `json:"timeSpent"`
		StartedAt     *int64 `json:"startedAt"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "libraryItemId is required")
		return
	}

	session, err := sc.store.AppendCurrentItem(req.LibraryItemID, req.TimeSpent, req.StartedAt)
	if errors.Is(err, sessions.ErrNoCurrentSession) {
		respondError(c, http.StatusBadRequest, "no current session")
		return
	}
	if errors.Is(err, sessions.ErrLibraryItemNotFound) {
		respondNotFound(c, "library item")
		return
	}
	if err != nil {
		respondInternalError(c, err, "add item to current session")
		return
	}
	c.JSON(http.StatusOK, session)
}

// UpdateCurrentSessionItemTime overwrites an item's elapsed seconds
// PUT /api/sessions/current/items/:id
func (sc *SessionsController) UpdateCurrentSessionItemTime(c *gin.Context) {
	var req struct {
		TimeSpent int `json:"timeSpent"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid payload")
		return
	}

	session, err := sc.store.UpdateCurrentItemTime(c.Param("id"), req.TimeSpent)
	if err != nil {
		respondInternalError(c, err, "update session item time")
		return
	}
	c.JSON(http.StatusOK, session)
}
