package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sidhant-sriv/roomshare-api/service"
)

// ChatRoutes sets up the per-room chat between a tenant and an owner.
func ChatRoutes(api *gin.RouterGroup, svc *service.Service, auth gin.HandlerFunc) {
	chat := api.Group("/chat")
	chat.Use(auth)
	{
		chat.POST("", SendMessage(svc))
		chat.GET("/my-chats/:userId", ListMyChats(svc))
		chat.GET("/inbox/:userId", Inbox(svc))
		chat.GET("/:roomId/:otherUserId/:myUserId", GetTranscript(svc))
	}
}

// GetTranscript returns the caller's conversation with otherUserId about a
// room, oldest first.
func GetTranscript(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		me, ok := selfParam(c, "myUserId")
		if !ok {
			return
		}
		roomID, ok := uuidParam(c, "roomId")
		if !ok {
			return
		}
		other, ok := uuidParam(c, "otherUserId")
		if !ok {
			return
		}

		msgs, err := svc.GetTranscript(c.Request.Context(), roomID, me, other)
		if err != nil {
			respondError(c, err)
			return
		}
		out := make([]messageResponse, 0, len(msgs))
		for _, m := range msgs {
			out = append(out, newMessageResponse(m))
		}
		c.JSON(http.StatusOK, out)
	}
}

func SendMessage(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := sessionUser(c)
		if !ok {
			return
		}
		var req messageRequest
		if !bindJSON(c, &req) {
			return
		}
		if !sessionMatches(c, userID, "sender_id", req.SenderID) {
			return
		}

		msg, err := svc.SendMessage(c.Request.Context(), service.SendMessageInput{
			SenderID:   userID,
			ReceiverID: req.ReceiverID,
			RoomID:     req.RoomID,
			Content:    req.Content,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, newMessageResponse(*msg))
	}
}

// ListMyChats returns every message the caller sent or received, newest
// first, with both participants and the room attached.
func ListMyChats(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := selfParam(c, "userId")
		if !ok {
			return
		}
		msgs, err := svc.ListMyChats(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}

		out := make([]chatEntryResponse, 0, len(msgs))
		for _, m := range msgs {
			out = append(out, chatEntryResponse{
				messageResponse: newMessageResponse(m.Message),
				Sender:          newProfileSummary(m.SenderID, m.Sender, unknownUser),
				Receiver:        newProfileSummary(m.ReceiverID, m.Receiver, unknownUser),
				Room:            newRoomSummary(m.Room),
			})
		}
		c.JSON(http.StatusOK, out)
	}
}

// Inbox returns one entry per (room, partner) conversation, newest first.
func Inbox(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := selfParam(c, "userId")
		if !ok {
			return
		}
		convs, err := svc.Inbox(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}

		out := make([]conversationResponse, 0, len(convs))
		for _, cv := range convs {
			out = append(out, conversationResponse{
				RoomID:        cv.RoomID,
				PartnerID:     cv.PartnerID,
				Partner:       newProfileSummary(cv.PartnerID, cv.Partner, unknownUser),
				Room:          newRoomSummary(cv.Room),
				LastMessage:   newMessageResponse(cv.LastMessage),
				LastMessageAt: cv.LastMessageAt,
			})
		}
		c.JSON(http.StatusOK, out)
	}
}
