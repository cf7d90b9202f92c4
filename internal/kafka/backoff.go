package kafka

import (
	"context"
	"math/rand"
	"time"
)

// backoff — экспоненциальная задержка с equal jitter:
// половина интервала фиксирована, вторая половина случайна.
// Не потокобезопасен, используется только из цикла Run.
type backoff struct {
	initial time.Duration
	ceiling time.Duration
	cur     time.Duration
	rnd     *rand.Rand
}

func newBackoff(initial, ceiling time.Duration, seed int64) *backoff {
	if ceiling < initial {
		ceiling = initial
	}
	return &backoff{
		initial: initial,
		ceiling: ceiling,
		cur:     initial,
		rnd:     rand.New(rand.NewSource(seed)),
	}
}

// next — задержка для очередной попытки; интервал удваивается до ceiling.
func (b *backoff) next() time.Duration {
	d := b.jitter(b.cur)
	b.cur = min(b.cur*2, b.ceiling)
	return d
}

// reset — после успеха начинаем снова с initial.
func (b *backoff) reset() { b.cur = b.initial }

func (b *backoff) jitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	return half + time.Duration(b.rnd.Int63n(int64(d-half)+1))
}

// sleepCtx — ждёт d; false, если контекст отменили раньше.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
