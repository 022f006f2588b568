package telegram

import (
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// chatQueue runs updates of one chat in arrival order and different chats
// in parallel. A chat has at most one worker; it exits once its queue drains.
type chatQueue struct {
	mu      sync.Mutex
	pending map[int64][]tgbotapi.Update // key present while a worker runs
	wg      sync.WaitGroup
}

func newChatQueue() *chatQueue {
	return &chatQueue{pending: make(map[int64][]tgbotapi.Update)}
}

func (q *chatQueue) push(chatID int64, update tgbotapi.Update, handle func(tgbotapi.Update)) {
	q.mu.Lock()
	queued, running := q.pending[chatID]
	q.pending[chatID] = append(queued, update)
	q.mu.Unlock()

	if running {
		return
	}

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		for {
			q.mu.Lock()
			queued := q.pending[chatID]
			if len(queued) == 0 {
				delete(q.pending, chatID)
				q.mu.Unlock()
				return
			}
			next := queued[0]
			q.pending[chatID] = queued[1:]
			q.mu.Unlock()

			handle(next)
		}
	}()
}

// wait blocks until every worker has finished.
func (q *chatQueue) wait() {
	q.wg.Wait()
}

// updateChatID returns the chat an update belongs to, or false if it has none.
func updateChatID(update tgbotapi.Update) (int64, bool) {
	switch {
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil && update.CallbackQuery.Message.Chat != nil:
		return update.CallbackQuery.Message.Chat.ID, true
	case update.CallbackQuery != nil && update.CallbackQuery.From != nil:
		return update.CallbackQuery.From.ID, true
	case update.Message != nil && update.Message.Chat != nil:
		return update.Message.Chat.ID, true
	default:
		return 0, false
	}
}
