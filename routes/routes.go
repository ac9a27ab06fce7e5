package routes

import (
	"SkateHubba/controllers"
	"SkateHubba/middleware"
	"SkateHubba/services/skate"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, rdb *redis.Client) {
	engine := skate.New(skate.NewStore(db))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	// Accounts
	api.POST("/signup", controllers.SignUp(db))
	api.POST("/login", controllers.Login(db))
	api.GET("/users/:username", controllers.GetUserPublicInfo(db))

	// Public reads
	api.GET("/games", controllers.ListGames(db))
	api.GET("/games/:code", controllers.GetGame(db))
	api.GET("/games/:code/turns", controllers.GetTurns(db))
	api.GET("/products", controllers.ListProducts(db))
	api.GET("/products/:id", controllers.GetProduct(db))
	api.GET("/spots", controllers.ListSpots(db))
	api.GET("/spots/:id", controllers.GetSpot(db))
	api.GET("/spots/:id/checkins", controllers.ListCheckIns(db))
	api.GET("/leaderboard", controllers.GetLeaderboard(db, rdb))
	api.POST("/subscribe", controllers.Subscribe(db))

	// Routes that require authentication
	authentication := api.Group("/auth")
	authentication.Use(middleware.AuthRequired)
	{
		authentication.GET("/me", controllers.GetUserPrivateInfo(db))
		authentication.PATCH("/me", controllers.UpdateUserInfo(db))

		// S.K.A.T.E. games
		authentication.POST("/games", controllers.CreateGame(engine))
		authentication.POST("/games/:code/join", controllers.JoinGame(engine))
		authentication.POST("/games/:code/start", controllers.StartGame(engine))
		authentication.POST("/games/:code/trick", controllers.SubmitTrick(engine))
		authentication.POST("/games/:code/respond", controllers.RespondToTrick(engine))
		authentication.GET("/games/history", controllers.GetGameHistory(db))

		// Shop
		authentication.POST("/orders", controllers.CreateOrder(db))
		authentication.GET("/orders", controllers.ListOrders(db))

		// Spots
		authentication.POST("/spots", controllers.CreateSpot(db))
		authentication.POST("/spots/:id/checkins", controllers.CreateCheckIn(db))

		// Closet
		authentication.GET("/inventory", controllers.ListInventory(db))
		authentication.POST("/inventory/:id/equip", controllers.EquipItem(db))
		authentication.POST("/inventory/:id/unequip", controllers.UnequipItem(db))
	}
}
