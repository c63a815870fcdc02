// cmd/announcer/main.go is a worker that pops lobby announcements from a Redis queue and
// republishes them to Discord webhook messages.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/shiburizu/concerto-server/internal/cache"
	log "github.com/sirupsen/logrus"
)

// Announcer holds the queue and webhook targets.
type Announcer struct {
	queue      *cache.Queue
	hooks      []Webhook
	client     *http.Client
	inviteBase string
	homepage   string
}

// Run pops announcements until ctx is cancelled. Only the newest queued snapshot is
// rendered.
func (an *Announcer) Run(ctx context.Context) {
	log.WithFields(log.Fields{"queue": an.queue.Name(), "webhooks": len(an.hooks)}).Info("announcer started")
	for {
		if ctx.Err() != nil {
			return
		}
		// a 3 second wait keeps context cancellation responsive
		a, err := an.queue.Pop(ctx, 3*time.Second)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.WithError(err).Error("pop announcement")
			time.Sleep(time.Second)
			continue
		}
		if a == nil {
			continue
		}
		for {
			next, err := an.queue.Pop(ctx, time.Second)
			if err != nil || next == nil {
				break
			}
			a = next
		}
		an.publish(ctx, *a)
	}
}

func (an *Announcer) publish(ctx context.Context, a cache.Announcement) {
	m := render(a, an.inviteBase, an.homepage)
	for _, hook := range an.hooks {
		if err := patch(ctx, an.client, hook, m); err != nil {
			log.WithError(err).WithField("message", hook.MessageID).Error("failed to update webhook")
		}
	}
	log.WithFields(log.Fields{"lobbies": len(m.Embeds), "players": a.Players}).Debug("announcement published")
}

func main() {
	if lvl, err := log.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		log.SetLevel(lvl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := cache.Connect(ctx, getEnv("REDIS_ADDR", "localhost:6379"), getEnvInt("REDIS_DB", 0))
	if err != nil {
		log.Fatal(err)
	}
	defer rdb.Close()

	hooks := webhooksFromEnv()
	if len(hooks) == 0 {
		log.Warn("no DISCORD_<n>/MSG_<n> pairs configured; announcements will be dropped")
	}

	an := &Announcer{
		queue:      cache.NewQueue(rdb, getEnv("ANNOUNCE_QUEUE", cache.DefaultQueueName)),
		hooks:      hooks,
		client:     &http.Client{Timeout: 10 * time.Second},
		inviteBase: getEnv("INVITE_BASE_URL", "https://invite.meltyblood.club/"),
		homepage:   getEnv("HOMEPAGE_URL", "https://concerto.shib.live"),
	}
	an.Run(ctx)
	log.Info("announcer shutdown complete")
}

// getEnv retrieves an environment variable's value or returns a default.
func getEnv(key, defVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defVal
}

// getEnvInt retrieves an integer value from an environment variable or returns a default value.
func getEnvInt(key string, defVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defVal
	}
	return i
}
