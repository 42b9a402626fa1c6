package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

// transcriptTTL 会话记录保活时长，活跃对话持续续期
const transcriptTTL = 24 * time.Hour

// ChatRepository 三个助手的会话记录都存Redis：
// 记录是 "User: ..."/"AI: ..." 标注的逐行文本，过期即自然重置会话
type ChatRepository struct {
	Redis *redis.Client
}

func NewChatRepository(rdb *redis.Client) *ChatRepository {
	return &ChatRepository{Redis: rdb}
}

func transcriptKey(assistant string, userID uint) string {
	return fmt.Sprintf("chat:%s:%d", assistant, userID)
}

func (r *ChatRepository) Transcript(ctx context.Context, assistant string, userID uint) (string, error) {
	val, err := r.Redis.Get(ctx, transcriptKey(assistant, userID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

// AppendExchange 追加一轮问答并续期
func (r *ChatRepository) AppendExchange(ctx context.Context, assistant string, userID uint, userMsg, aiMsg string) error {
	key := transcriptKey(assistant, userID)
	existing, err := r.Transcript(ctx, assistant, userID)
	if err != nil {
		return err
	}

	var b strings.Builder
	if existing != "" {
		b.WriteString(existing)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "User: %s\nAI: %s", userMsg, aiMsg)

	return r.Redis.Set(ctx, key, b.String(), transcriptTTL).Err()
}

func (r *ChatRepository) ClearTranscript(ctx context.Context, assistant string, userID uint) error {
	return r.Redis.Del(ctx, transcriptKey(assistant, userID)).Err()
}
