package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sidhant-sriv/roomshare-api/service"
)

// ApplicationRoutes sets up the rental application workflow. All routes are protected.
func ApplicationRoutes(api *gin.RouterGroup, svc *service.Service, auth gin.HandlerFunc) {
	apps := api.Group("/applications")
	apps.Use(auth)
	{
		apps.POST("", Apply(svc))
		apps.GET("/tenant/:user_id", ListSentApplications(svc))
		apps.GET("/landlord/:user_id", ListReceivedApplications(svc))
		apps.PATCH("/:id", UpdateApplicationStatus(svc))
	}
}

// Apply files an application from the caller. A repeat application for the
// same room is a 400.
func Apply(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := sessionUser(c)
		if !ok {
			return
		}
		var req applicationRequest
		if !bindJSON(c, &req) {
			return
		}
		if !sessionMatches(c, userID, "applicant_id", req.ApplicantID) {
			return
		}

		in := service.ApplyInput{RoomID: req.RoomID, ApplicantID: userID, Message: req.Message}
		if req.OwnerID != nil {
			in.OwnerID = *req.OwnerID
		}
		app, err := svc.Apply(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, newApplicationResponse(*app))
	}
}

func ListSentApplications(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := selfParam(c, "user_id")
		if !ok {
			return
		}
		apps, err := svc.ListSent(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}

		out := make([]sentApplicationResponse, 0, len(apps))
		for _, a := range apps {
			out = append(out, sentApplicationResponse{
				applicationResponse: newApplicationResponse(a.Application),
				Room:                newRoomSummary(a.Room),
			})
		}
		c.JSON(http.StatusOK, out)
	}
}

func ListReceivedApplications(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := selfParam(c, "user_id")
		if !ok {
			return
		}
		apps, err := svc.ListReceived(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}

		out := make([]receivedApplicationResponse, 0, len(apps))
		for _, a := range apps {
			out = append(out, receivedApplicationResponse{
				applicationResponse: newApplicationResponse(a.Application),
				Room:                newRoomSummary(a.Room),
				Applicant:           newProfileSummary(a.ApplicantID, a.Applicant, unknownUser),
			})
		}
		c.JSON(http.StatusOK, out)
	}
}

// UpdateApplicationStatus lets the room owner accept or reject a pending application.
func UpdateApplicationStatus(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := sessionUser(c)
		if !ok {
			return
		}
		id, ok := uuidParam(c, "id")
		if !ok {
			return
		}
		var req statusRequest
		if !bindJSON(c, &req) {
			return
		}

		app, err := svc.UpdateStatus(c.Request.Context(), id, userID, req.Status)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, newApplicationResponse(*app))
	}
}
