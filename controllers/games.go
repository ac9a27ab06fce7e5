package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"SkateHubba/middleware"
	models "SkateHubba/models/postgres"
	"SkateHubba/services/skate"
	"SkateHubba/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Stable machine-readable kinds for engine failures. The UI switches
// on these; the message is for humans.
func engineErrorResponse(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	kind := "INTERNAL"
	switch {
	case errors.Is(err, skate.ErrUnauthenticated):
		status, kind = http.StatusUnauthorized, "UNAUTHENTICATED"
	case errors.Is(err, skate.ErrForbidden):
		status, kind = http.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, skate.ErrGameNotFound):
		status, kind = http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, skate.ErrTurnNotFound):
		status, kind = http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, skate.ErrInvalidState):
		status, kind = http.StatusBadRequest, "INVALID_STATE"
	case errors.Is(err, skate.ErrInvalidArgument):
		status, kind = http.StatusBadRequest, "INVALID_ARGUMENT"
	case errors.Is(err, skate.ErrAlreadyJoined):
		status, kind = http.StatusBadRequest, "ALREADY_JOINED"
	case errors.Is(err, skate.ErrGameFull):
		status, kind = http.StatusBadRequest, "GAME_FULL"
	case errors.Is(err, skate.ErrInsufficientPlayers):
		status, kind = http.StatusBadRequest, "INSUFFICIENT_PLAYERS"
	case errors.Is(err, skate.ErrDuplicateResponse):
		status, kind = http.StatusBadRequest, "DUPLICATE_RESPONSE"
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": kind})
}

func gameJSON(game *models.SkateGame) gin.H {
	return gin.H{
		"id":                game.ID,
		"game_code":         game.GameCode,
		"status":            game.Status,
		"current_round":     game.CurrentRound,
		"current_setter_id": game.CurrentSetterID,
		"winner_id":         game.WinnerID,
		"max_players":       game.MaxPlayers,
		"is_public":         game.IsPublic,
		"created_by_id":     game.CreatedByID,
		"started_at":        game.StartedAt,
		"completed_at":      game.CompletedAt,
		"created_at":        game.CreatedAt,
	}
}

// @Summary Lists open public games
// @Description Returns waiting/active public games with their participant counts
// @Tags games
// @Produce json
// @Param status query string false "Game status filter (default waiting)"
// @Success 200 {array} object{game_code=string,participant_count=integer}
// @Failure 500 {object} object{error=string}
// @Router /games [get]
func ListGames(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := c.DefaultQuery("status", "waiting")

		var games []models.SkateGame
		query := db.Where("is_public = true").Order("created_at desc").Limit(50)
		if status != "" {
			query = query.Where("status = ?", status)
		}
		if err := query.Find(&games).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching games"})
			return
		}

		list := make([]gin.H, len(games))
		for i, game := range games {
			var count int64
			if err := db.Model(&models.GameParticipant{}).
				Where("game_id = ?", game.ID).Count(&count).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting participants"})
				return
			}
			entry := gameJSON(&game)
			entry["participant_count"] = count
			list[i] = entry
		}

		c.JSON(http.StatusOK, list)
	}
}

type createGameRequest struct {
	MaxPlayers int   `json:"max_players"`
	IsPublic   *bool `json:"is_public"`
}

// @Summary Creates a new S.K.A.T.E. game
// @Description The caller becomes host, first setter and first participant
// @Tags games
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 201 {object} object{game_code=string}
// @Failure 400 {object} object{error=string,code=string}
// @Router /auth/games [post]
// @Security ApiKeyAuth
func CreateGame(engine *skate.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var req createGameRequest
		if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "code": "INVALID_ARGUMENT"})
			return
		}
		isPublic := true
		if req.IsPublic != nil {
			isPublic = *req.IsPublic
		}

		game, err := engine.Create(userID, req.MaxPlayers, isPublic)
		if err != nil {
			engineErrorResponse(c, err)
			return
		}
		c.JSON(http.StatusCreated, gameJSON(game))
	}
}

// @Summary Gets a game by code
// @Description Full game detail: participants with letters, current setter, winner
// @Tags games
// @Produce json
// @Param code path string true "Game code"
// @Success 200 {object} object{game_code=string}
// @Failure 404 {object} object{error=string}
// @Router /games/{code} [get]
func GetGame(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		game, err := utils.FindGameByCode(db, c.Param("code"))
		if err != nil {
			if err.Error() == "game not found" {
				c.JSON(http.StatusNotFound, gin.H{"error": "Game not found", "code": "NOT_FOUND"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}

		var participants []models.GameParticipant
		if err := db.Preload("User").
			Where("game_id = ?", game.ID).Order("id asc").
			Find(&participants).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching participants"})
			return
		}

		participantList := make([]gin.H, len(participants))
		for i, p := range participants {
			participantList[i] = gin.H{
				"user_id":        p.UserID,
				"username":       p.User.Username,
				"display_name":   p.User.DisplayName,
				"avatar_url":     p.User.AvatarURL,
				"letters":        p.Letters,
				"is_eliminated":  p.IsEliminated,
				"final_position": p.FinalPosition,
				"joined_at":      p.JoinedAt,
			}
		}

		response := gameJSON(game)
		response["participants"] = participantList

		var setter models.User
		if err := db.Where("id = ?", game.CurrentSetterID).First(&setter).Error; err == nil {
			response["current_setter"] = gin.H{
				"id":           setter.ID,
				"username":     setter.Username,
				"display_name": setter.DisplayName,
			}
		}
		if game.WinnerID != nil {
			var winner models.User
			if err := db.Where("id = ?", *game.WinnerID).First(&winner).Error; err == nil {
				response["winner"] = gin.H{
					"id":           winner.ID,
					"username":     winner.Username,
					"display_name": winner.DisplayName,
				}
			}
		}

		c.JSON(http.StatusOK, response)
	}
}

// @Summary Joins a waiting game
// @Tags games
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param code path string true "Game code"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string,code=string}
// @Failure 404 {object} object{error=string,code=string}
// @Router /auth/games/{code}/join [post]
// @Security ApiKeyAuth
func JoinGame(engine *skate.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		if _, err := engine.Join(c.Param("code"), userID); err != nil {
			engineErrorResponse(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Joined game successfully"})
	}
}

// @Summary Starts a waiting game
// @Description Host only; needs at least two players. Opens round 1.
// @Tags games
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param code path string true "Game code"
// @Success 200 {object} object{game_code=string}
// @Failure 403 {object} object{error=string,code=string}
// @Router /auth/games/{code}/start [post]
// @Security ApiKeyAuth
func StartGame(engine *skate.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		game, err := engine.Start(c.Param("code"), userID)
		if err != nil {
			engineErrorResponse(c, err)
			return
		}
		c.JSON(http.StatusOK, gameJSON(game))
	}
}

type submitTrickRequest struct {
	TrickName string `json:"trick_name"`
	VideoURL  string `json:"video_url"`
}

// @Summary Sets the trick for the current round
// @Description Current setter only; moves the turn to responding
// @Tags games
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param code path string true "Game code"
// @Success 200 {object} object{trick_name=string}
// @Failure 403 {object} object{error=string,code=string}
// @Router /auth/games/{code}/trick [post]
// @Security ApiKeyAuth
func SubmitTrick(engine *skate.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var req submitTrickRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "code": "INVALID_ARGUMENT"})
			return
		}

		turn, err := engine.SetTrick(c.Param("code"), userID, req.TrickName, req.VideoURL)
		if err != nil {
			engineErrorResponse(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"id":              turn.ID,
			"round_number":    turn.RoundNumber,
			"setter_id":       turn.SetterID,
			"trick_name":      turn.TrickName,
			"trick_video_url": turn.TrickVideoURL,
			"status":          turn.Status,
		})
	}
}

type respondRequest struct {
	TurnID   uint   `json:"turn_id"`
	Landed   *bool  `json:"landed"`
	VideoURL string `json:"video_url"`
}

// @Summary Responds to the set trick
// @Description Records the attempt; a miss adds a letter and may eliminate the responder. Closing the round rotates the setter or ends the game.
// @Tags games
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param code path string true "Game code"
// @Success 200 {object} object{game_over=boolean}
// @Failure 400 {object} object{error=string,code=string}
// @Router /auth/games/{code}/respond [post]
// @Security ApiKeyAuth
func RespondToTrick(engine *skate.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var req respondRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Landed == nil || req.TurnID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "code": "INVALID_ARGUMENT"})
			return
		}

		result, err := engine.Respond(c.Param("code"), userID, req.TurnID, *req.Landed, req.VideoURL)
		if err != nil {
			engineErrorResponse(c, err)
			return
		}

		response := gin.H{
			"response": gin.H{
				"id":        result.Response.ID,
				"turn_id":   result.Response.TurnID,
				"user_id":   result.Response.UserID,
				"landed":    result.Response.Landed,
				"video_url": result.Response.VideoURL,
				"judged_at": result.Response.JudgedAt,
			},
			"game_over": result.GameOver,
		}
		if result.GameOver {
			response["winner_id"] = result.WinnerID
		}
		c.JSON(http.StatusOK, response)
	}
}

// @Summary Lists all turns of a game
// @Description Turns in round order, each with its recorded responses
// @Tags games
// @Produce json
// @Param code path string true "Game code"
// @Success 200 {array} object{round_number=integer}
// @Failure 404 {object} object{error=string}
// @Router /games/{code}/turns [get]
func GetTurns(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		game, err := utils.FindGameByCode(db, c.Param("code"))
		if err != nil {
			if err.Error() == "game not found" {
				c.JSON(http.StatusNotFound, gin.H{"error": "Game not found", "code": "NOT_FOUND"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}

		var turns []models.GameTurn
		if err := db.Preload("Setter").Preload("Responses").Preload("Responses.User").
			Where("game_id = ?", game.ID).Order("round_number asc").
			Find(&turns).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching turns"})
			return
		}

		list := make([]gin.H, len(turns))
		for i, turn := range turns {
			responses := make([]gin.H, len(turn.Responses))
			for j, r := range turn.Responses {
				responses[j] = gin.H{
					"user_id":   r.UserID,
					"username":  r.User.Username,
					"landed":    r.Landed,
					"video_url": r.VideoURL,
					"judged_at": r.JudgedAt,
				}
			}
			list[i] = gin.H{
				"id":              turn.ID,
				"round_number":    turn.RoundNumber,
				"setter_id":       turn.SetterID,
				"setter_username": turn.Setter.Username,
				"trick_name":      turn.TrickName,
				"trick_video_url": turn.TrickVideoURL,
				"status":          turn.Status,
				"responses":       responses,
			}
		}

		c.JSON(http.StatusOK, list)
	}
}

// @Summary Lists the caller's game history
// @Tags games
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param limit query int false "Page size (default 20)"
// @Param offset query int false "Page offset"
// @Success 200 {array} object{game_code=string,won=boolean}
// @Router /auth/games/history [get]
// @Security ApiKeyAuth
func GetGameHistory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

		var entries []models.GameParticipant
		if err := db.Preload("Game").
			Joins("JOIN skate_games ON skate_games.id = game_participants.game_id").
			Where("game_participants.user_id = ?", userID).
			Order("skate_games.created_at desc").
			Limit(limit).Offset(offset).
			Find(&entries).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching history"})
			return
		}

		list := make([]gin.H, len(entries))
		for i, entry := range entries {
			won := entry.Game.WinnerID != nil && *entry.Game.WinnerID == userID
			item := gameJSON(&entry.Game)
			item["user_result"] = gin.H{
				"letters":        entry.Letters,
				"is_eliminated":  entry.IsEliminated,
				"final_position": entry.FinalPosition,
				"won":            won,
			}
			list[i] = item
		}

		c.JSON(http.StatusOK, list)
	}
}
