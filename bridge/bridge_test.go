package bridge

import (
	"errors"
	"sync"
	"testing"
)

type mockBroker struct {
	mu         sync.Mutex
	handlers   map[string]func(string, []byte)
	published  map[string][]byte
	connectErr error
}

func newMockBroker() *mockBroker {
	return &mockBroker{
		handlers:  make(map[string]func(string, []byte)),
		published: make(map[string][]byte),
	}
}

func (m *mockBroker) Connect() error { return m.connectErr }
func (m *mockBroker) Disconnect()    {}

func (m *mockBroker) Publish(topic string, payload []byte) {
	m.mu.Lock()
	m.published[topic] = payload
	m.mu.Unlock()
	m.deliver(topic, payload)
}

func (m *mockBroker) Subscribe(topic string, handler func(string, []byte)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[topic] = handler
	return nil
}

// deliver routes to every subscription, treating a trailing # as a wildcard
func (m *mockBroker) deliver(topic string, payload []byte) {
	m.mu.Lock()
	var hs []func(string, []byte)
	for filter, h := range m.handlers {
		if filter == topic || (len(filter) > 0 && filter[len(filter)-1] == '#' && len(topic) >= len(filter)-1 && topic[:len(filter)-1] == filter[:len(filter)-1]) {
			hs = append(hs, h)
		}
	}
	m.mu.Unlock()
	for _, h := range hs {
		h(topic, payload)
	}
}

func TestTopicRoundTrip(t *testing.T) {
	tests := []struct {
		prefix, topic string
		msg           string
		ok            bool
	}{
		{"blockstage", "blockstage/broadcast/go", "go", true},
		{"blockstage/", "blockstage/broadcast/game over", "game over", true},
		{"blockstage", "blockstage/broadcast/a/b", "a/b", true},
		{"blockstage", "blockstage/broadcast/", "", false},
		{"blockstage", "other/broadcast/go", "", false},
	}
	for _, tt := range tests {
		msg, ok := ParseTopic(tt.prefix, tt.topic)
		if msg != tt.msg || ok != tt.ok {
			t.Errorf("ParseTopic(%q, %q) = %q, %v", tt.prefix, tt.topic, msg, ok)
		}
	}
	if got := Topic("room/", "go"); got != "room/broadcast/go" {
		t.Errorf("Topic = %q", got)
	}
}

func TestInboundQueuedUntilDrained(t *testing.T) {
	m := newMockBroker()
	b := New(m, DefaultConfig())
	if err := b.Start(); err != nil {
		t.Fatal(err)
	}

	m.deliver("blockstage/broadcast/go", []byte("remote"))
	m.deliver("blockstage/broadcast/stop", nil)
	m.deliver("elsewhere/broadcast/go", nil)

	got := b.Drain()
	if len(got) != 2 || got[0] != "go" || got[1] != "stop" {
		t.Errorf("Drain = %v, want [go stop]", got)
	}
	if len(b.Drain()) != 0 {
		t.Error("Drain must clear the inbox")
	}
}

func TestOwnPublishNotEchoed(t *testing.T) {
	m := newMockBroker()
	b := New(m, DefaultConfig())
	if err := b.Start(); err != nil {
		t.Fatal(err)
	}

	b.Publish("go")
	if _, ok := m.published["blockstage/broadcast/go"]; !ok {
		t.Fatal("Publish must hit the broadcast topic")
	}
	if got := b.Drain(); len(got) != 0 {
		t.Errorf("Own publish echoed back: %v", got)
	}
}

func TestInboxBounded(t *testing.T) {
	m := newMockBroker()
	b := New(m, DefaultConfig())
	if err := b.Start(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < inboxSize+10; i++ {
		m.deliver("blockstage/broadcast/go", nil)
	}
	if n := len(b.Drain()); n != inboxSize {
		t.Errorf("Inbox held %d, want %d", n, inboxSize)
	}
}

func TestStartReportsConnectFailure(t *testing.T) {
	m := newMockBroker()
	m.connectErr = errors.New("refused")
	if err := New(m, DefaultConfig()).Start(); err == nil {
		t.Error("Start must surface connect errors")
	}
}
