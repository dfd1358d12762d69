package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// serveHub accepts websocket connections for the user named in the
// "user" query parameter, subscribed to the "table" parameter.
func serveHub(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := uuid.MustParse(r.URL.Query().Get("user"))
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		conn.CloseRead(r.Context())
		c := hub.AddClient(userID, conn, []string{r.URL.Query().Get("table")})
		defer hub.RemoveClient(c)
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, user uuid.UUID, table string) *websocket.Conn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?user=" + user.String() + "&table=" + table
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "") })
	return conn
}

func waitConnected(t *testing.T, hub *Hub, user uuid.UUID) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.Connected(user) > 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHubDeliversToParticipants(t *testing.T) {
	hub := NewHub(nil)
	srv := serveHub(t, hub)

	alice, bob := uuid.New(), uuid.New()
	aliceConn := dial(t, srv, alice, TableMessages)
	waitConnected(t, hub, alice)

	ev := Event{
		Type:         EventInsert,
		Table:        TableMessages,
		RecordID:     uuid.New(),
		RoomID:       uuid.New(),
		Participants: []uuid.UUID{alice, bob},
	}
	require.NoError(t, hub.Publish(context.Background(), ev))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	var got Event
	require.NoError(t, wsjson.Read(ctx, aliceConn, &got))
	assert.Equal(t, ev.RecordID, got.RecordID)
	assert.Equal(t, TableMessages, got.Table)
}

func TestHubFiltersByTable(t *testing.T) {
	hub := NewHub(nil)
	srv := serveHub(t, hub)

	alice := uuid.New()
	conn := dial(t, srv, alice, TableApplications)
	waitConnected(t, hub, alice)

	msgEvent := Event{Type: EventInsert, Table: TableMessages, RecordID: uuid.New(), Participants: []uuid.UUID{alice}}
	appEvent := Event{Type: EventInsert, Table: TableApplications, RecordID: uuid.New(), Participants: []uuid.UUID{alice}}
	require.NoError(t, hub.Publish(context.Background(), msgEvent))
	require.NoError(t, hub.Publish(context.Background(), appEvent))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	var got Event
	require.NoError(t, wsjson.Read(ctx, conn, &got))
	assert.Equal(t, appEvent.RecordID, got.RecordID)
}

func TestHubIgnoresUnknownUsers(t *testing.T) {
	hub := NewHub(nil)
	err := hub.Publish(context.Background(), Event{Type: EventInsert, Table: TableMessages, Participants: []uuid.UUID{uuid.New()}})
	assert.NoError(t, err)
}

func TestEventCodecRejectsMissingFields(t *testing.T) {
	ev := Event{Type: EventInsert, Table: TableMessages, RecordID: uuid.New()}
	payload, err := EncodeEvent(ev)
	require.NoError(t, err)

	got, err := DecodeEvent(payload)
	require.NoError(t, err)
	assert.Equal(t, ev.RecordID, got.RecordID)

	_, err = DecodeEvent([]byte(`{"record_id":"` + uuid.NewString() + `"}`))
	assert.Error(t, err)
	_, err = DecodeEvent([]byte(`not json`))
	assert.Error(t, err)
}
