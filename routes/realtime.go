package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sidhant-sriv/roomshare-api/middleware"
	"github.com/sidhant-sriv/roomshare-api/realtime"
	"nhooyr.io/websocket"
)

// RealtimeHandler upgrades to a push-only websocket carrying the caller's
// change events. Browsers cannot set headers on a websocket handshake, so
// the session token travels in ?token=. ?table= narrows the feed to a
// comma-separated list of tables.
type RealtimeHandler struct {
	Hub                  *realtime.Hub
	JWTSecret            string
	WSInsecureSkipVerify bool
}

func RealtimeRoutes(api *gin.RouterGroup, h *RealtimeHandler) {
	api.GET("/realtime", h.Subscribe)
}

func (h *RealtimeHandler) Subscribe(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	}
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token required"})
		return
	}
	session, err := middleware.ParseSessionToken(h.JWTSecret, token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	tables, ok := parseTables(c.Query("table"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "table must be messages or applications"})
		return
	}

	opts := &websocket.AcceptOptions{}
	if h.WSInsecureSkipVerify {
		opts.InsecureSkipVerify = true
	}
	conn, err := websocket.Accept(c.Writer, c.Request, opts)
	if err != nil {
		return // Accept already wrote the response
	}

	// Push-only; reading still has to happen for control frames.
	ctx := conn.CloseRead(c.Request.Context())

	client := h.Hub.AddClient(session.UserID, conn, tables)
	defer h.Hub.RemoveClient(client)

	<-ctx.Done()
}

func parseTables(raw string) ([]string, bool) {
	var tables []string
	for _, t := range strings.Split(raw, ",") {
		switch t = strings.TrimSpace(t); t {
		case "":
		case realtime.TableMessages, realtime.TableApplications:
			tables = append(tables, t)
		default:
			return nil, false
		}
	}
	return tables, true
}
