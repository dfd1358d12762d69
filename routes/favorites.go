package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sidhant-sriv/roomshare-api/service"
)

func FavoriteRoutes(api *gin.RouterGroup, svc *service.Service, auth gin.HandlerFunc) {
	favs := api.Group("/favorites")
	favs.Use(auth)
	{
		favs.POST("", ToggleFavorite(svc))
		favs.POST("/toggle", ToggleFavorite(svc))
		favs.GET("/:userId", ListFavorites(svc))
	}
}

// ToggleFavorite answers {"status": "added"} or {"status": "removed"}.
func ToggleFavorite(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := sessionUser(c)
		if !ok {
			return
		}
		var req favoriteRequest
		if !bindJSON(c, &req) {
			return
		}
		if !sessionMatches(c, userID, "user_id", req.UserID) {
			return
		}

		status, err := svc.ToggleFavorite(c.Request.Context(), userID, req.RoomID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": status})
	}
}

// ListFavorites returns the caller's favorite room ids.
func ListFavorites(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := selfParam(c, "userId")
		if !ok {
			return
		}
		ids, err := svc.ListFavorites(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, ids)
	}
}
