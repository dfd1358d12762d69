package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sidhant-sriv/roomshare-api/service"
)

// RoomRoutes sets up the room listing routes. Browsing is public; writes
// need a session.
func RoomRoutes(api *gin.RouterGroup, svc *service.Service, auth gin.HandlerFunc) {
	rooms := api.Group("/rooms")
	{
		rooms.GET("", ListRooms(svc))
		rooms.GET("/:id", GetRoom(svc))
		rooms.GET("/my-rooms/:owner_id", auth, ListMyRooms(svc))
		rooms.POST("", auth, CreateRoom(svc))
		rooms.PUT("/:id", auth, UpdateRoom(svc))
		rooms.DELETE("/:id", auth, DeleteRoom(svc))
	}
}

// ListRooms handles ?location= and ?type= filters
func ListRooms(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		rooms, err := svc.ListRooms(c.Request.Context(), service.RoomFilter{
			Location:     c.Query("location"),
			PropertyType: c.Query("type"),
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, newRoomResponses(rooms))
	}
}

func GetRoom(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := uuidParam(c, "id")
		if !ok {
			return
		}
		room, err := svc.GetRoom(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, newRoomResponse(*room))
	}
}

func ListMyRooms(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID, ok := selfParam(c, "owner_id")
		if !ok {
			return
		}
		rooms, err := svc.ListRoomsByOwner(c.Request.Context(), ownerID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, newRoomResponses(rooms))
	}
}

// CreateRoom lists a room owned by the caller.
func CreateRoom(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := sessionUser(c)
		if !ok {
			return
		}
		var req roomRequest
		if !bindJSON(c, &req) {
			return
		}
		if !sessionMatches(c, userID, "owner_id", req.OwnerID) {
			return
		}

		room, err := svc.CreateRoom(c.Request.Context(), userID, req.input())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, newRoomResponse(*room))
	}
}

// UpdateRoom applies a partial update. owner_id in the body is accepted only
// when it names the caller and is never written.
func UpdateRoom(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := sessionUser(c)
		if !ok {
			return
		}
		id, ok := uuidParam(c, "id")
		if !ok {
			return
		}
		var req roomPatchRequest
		if !bindJSON(c, &req) {
			return
		}
		if !sessionMatches(c, userID, "owner_id", req.OwnerID) {
			return
		}

		room, err := svc.UpdateRoom(c.Request.Context(), id, userID, req.patch())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, newRoomResponse(*room))
	}
}

func DeleteRoom(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := sessionUser(c)
		if !ok {
			return
		}
		id, ok := uuidParam(c, "id")
		if !ok {
			return
		}
		if err := svc.DeleteRoom(c.Request.Context(), id, userID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Room deleted successfully"})
	}
}
