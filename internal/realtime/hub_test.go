package realtime

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodbox-be/internal/foodpackage"
)

func testClient(h *Hub, businessID string) *Client {
	return newClient(h, businessID, nil)
}

func TestHub_PublishReachesSubscribers(t *testing.T) {
	h := NewHub()

	c1 := testClient(h, "biz-1")
	c2 := testClient(h, "biz-1")
	other := testClient(h, "biz-2")
	h.Subscribe("biz-1", c1)
	h.Subscribe("biz-1", c2)
	h.Subscribe("biz-2", other)

	ev := foodpackage.Event{
		Type:    foodpackage.EventUpdate,
		Package: foodpackage.FoodPackage{ID: "pkg-1", BusinessID: "biz-1", Revision: 3},
	}
	h.Publish("biz-1", ev)

	for _, c := range []*Client{c1, c2} {
		select {
		case payload := <-c.send:
			got, err := foodpackage.EventFromJSON(payload)
			require.NoError(t, err)
			assert.Equal(t, foodpackage.EventUpdate, got.Type)
			assert.Equal(t, "pkg-1", got.Package.ID)
			assert.Equal(t, int64(3), got.Package.Revision)
		default:
			t.Fatal("subscriber did not receive the event")
		}
	}

	select {
	case <-other.send:
		t.Fatal("event leaked to another business's feed")
	default:
	}

	published, delivered, dropped, active := h.Stats()
	assert.Equal(t, uint64(1), published)
	assert.Equal(t, uint64(2), delivered)
	assert.Zero(t, dropped)
	assert.Equal(t, int64(3), active)
}

func TestHub_WirePayloadShape(t *testing.T) {
	h := NewHub()
	c := testClient(h, "biz-1")
	h.Subscribe("biz-1", c)

	h.Publish("biz-1", foodpackage.Event{
		Type:    foodpackage.EventInsert,
		Package: foodpackage.FoodPackage{ID: "pkg-9", BusinessID: "biz-1"},
	})

	payload := <-c.send
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(payload, &raw))
	assert.Contains(t, raw, "type")
	assert.Contains(t, raw, "record")
}

func TestHub_SlowSubscriberDropped(t *testing.T) {
	h := NewHub()
	c := testClient(h, "biz-1")
	h.Subscribe("biz-1", c)

	ev := foodpackage.Event{Type: foodpackage.EventUpdate, Package: foodpackage.FoodPackage{ID: "pkg-1"}}
	for i := 0; i < sendBuffer; i++ {
		h.Publish("biz-1", ev)
	}
	require.Equal(t, 1, h.SubscriberCount("biz-1"))

	// the buffer is full now; the next publish evicts the client
	h.Publish("biz-1", ev)
	assert.Zero(t, h.SubscriberCount("biz-1"))

	_, _, dropped, active := h.Stats()
	assert.Equal(t, uint64(1), dropped)
	assert.Zero(t, active)

	// the send channel was closed as part of eviction
	drained := 0
	for range c.send {
		drained++
	}
	assert.Equal(t, sendBuffer, drained)
}

func TestHub_UnsubscribeIdempotent(t *testing.T) {
	h := NewHub()
	c := testClient(h, "biz-1")
	h.Subscribe("biz-1", c)

	h.Unsubscribe("biz-1", c)
	h.Unsubscribe("biz-1", c)

	assert.Zero(t, h.SubscriberCount("biz-1"))
	_, _, _, active := h.Stats()
	assert.Zero(t, active)
}
