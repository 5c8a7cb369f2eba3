package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fretlog/fretlog/internal/database"
)

type UserController struct {
	db *database.Database
}

func NewUserController(db *database.Database) *UserController {
	return &UserController{db: db}
}

// GetUser returns the implicit user profile
// GET /api/user
func (uc *UserController) GetUser(c *gin.Context) {
	user, err := uc.db.GetUser()
	if err != nil {
		respondInternalError(c, err, "get user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser overwrites the profile fields
// PUT /api/user
func (uc *UserController) UpdateUser(c *gin.Context) {
	var req struct {
		Name                string  `json:"name"`
		Email               string  `json:"email"`
		Avatar              *string `json:"avatar"`
		DefaultInstrumentID *string `json:"defaultInstrumentId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid payload")
		return
	}

	user, err := uc.db.UpdateUser(req.Name, req.Email, req.Avatar, req.DefaultInstrumentID)
	if err != nil {
		respondInternalError(c, err, "update user")
		return
	}
	c.JSON(http.StatusOK, user)
}
