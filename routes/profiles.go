package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sidhant-sriv/roomshare-api/service"
)

func ProfileRoutes(api *gin.RouterGroup, svc *service.Service, auth gin.HandlerFunc) {
	profiles := api.Group("/profiles")
	{
		profiles.GET("/:id", GetProfile(svc))
		profiles.PUT("/:id", auth, UpdateProfile(svc))
	}
}

// GetProfile creates the default profile on first access.
func GetProfile(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := uuidParam(c, "id")
		if !ok {
			return
		}
		p, err := svc.GetOrCreateProfile(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, newProfileResponse(p))
	}
}

func UpdateProfile(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := selfParam(c, "id")
		if !ok {
			return
		}
		var req profileRequest
		if !bindJSON(c, &req) {
			return
		}

		p, err := svc.UpsertProfile(c.Request.Context(), userID, service.ProfileInput{
			FullName:  req.FullName,
			Bio:       req.Bio,
			AvatarURL: req.AvatarURL,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, newProfileResponse(p))
	}
}
