package telegram

import (
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TestChatQueueKeepsOrderPerChat verifies updates of one chat run in order.
func TestChatQueueKeepsOrderPerChat(t *testing.T) {
	q := newChatQueue()

	var mu sync.Mutex
	seen := map[int64][]int{}

	for i := 0; i < 100; i++ {
		for _, chatID := range []int64{1, 2} {
			update := tgbotapi.Update{UpdateID: i}
			q.push(chatID, update, func(u tgbotapi.Update) {
				mu.Lock()
				seen[chatID] = append(seen[chatID], u.UpdateID)
				mu.Unlock()
			})
		}
	}
	q.wait()

	for _, chatID := range []int64{1, 2} {
		got := seen[chatID]
		if len(got) != 100 {
			t.Fatalf("chat %d: expected 100 updates, got %d", chatID, len(got))
		}
		for i, id := range got {
			if id != i {
				t.Fatalf("chat %d: expected update %d at %d, got %d", chatID, i, i, id)
			}
		}
	}
	if len(q.pending) != 0 {
		t.Fatalf("expected idle workers to exit, got %d", len(q.pending))
	}
}

// TestUpdateChatID verifies updates are routed by their chat.
func TestUpdateChatID(t *testing.T) {
	if id, ok := updateChatID(callbackUpdate("nav:back")); !ok || id != testChatID {
		t.Fatalf("expected callback chat %d, got %d", testChatID, id)
	}
	if id, ok := updateChatID(chatCommandUpdate(5, "/start", "")); !ok || id != 5 {
		t.Fatalf("expected message chat 5, got %d", id)
	}
	if _, ok := updateChatID(tgbotapi.Update{}); ok {
		t.Fatalf("expected no chat for an empty update")
	}
}
