package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sidhant-sriv/roomshare-api/service"
)

func ReviewRoutes(api *gin.RouterGroup, svc *service.Service, auth gin.HandlerFunc) {
	reviews := api.Group("/reviews")
	{
		reviews.GET("/:roomId", ListReviews(svc))
		reviews.GET("/:roomId/summary", GetReviewSummary(svc))
		reviews.POST("", auth, AddReview(svc))
	}
}

func ListReviews(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID, ok := uuidParam(c, "roomId")
		if !ok {
			return
		}
		reviews, err := svc.ListReviews(c.Request.Context(), roomID)
		if err != nil {
			respondError(c, err)
			return
		}

		out := make([]reviewResponse, 0, len(reviews))
		for _, r := range reviews {
			out = append(out, newReviewResponse(r.Review).withAuthor(r.Author))
		}
		c.JSON(http.StatusOK, out)
	}
}

func GetReviewSummary(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID, ok := uuidParam(c, "roomId")
		if !ok {
			return
		}
		sum, err := svc.ReviewSummary(c.Request.Context(), roomID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, reviewSummaryResponse{RoomID: sum.RoomID, Count: sum.Count, Average: sum.Average})
	}
}

// AddReview records the caller's rating for a room they do not own.
func AddReview(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := sessionUser(c)
		if !ok {
			return
		}
		var req reviewRequest
		if !bindJSON(c, &req) {
			return
		}
		if !sessionMatches(c, userID, "user_id", req.UserID) {
			return
		}

		r, err := svc.AddReview(c.Request.Context(), service.ReviewInput{
			RoomID:  req.RoomID,
			UserID:  userID,
			Rating:  req.Rating,
			Comment: req.Comment,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, newReviewResponse(*r))
	}
}
